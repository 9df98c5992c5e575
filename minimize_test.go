//  Copyright (c) 2019 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package quiver

import "testing"

// checkAllStatesDistinguishable fails if two states of the
// deterministic automaton accept the same language, found by BFS over
// state pairs of the totalized automaton.
func checkAllStatesDistinguishable(t *testing.T, a *Automaton) {
	t.Helper()
	total, err := Totalize(a)
	if err != nil {
		t.Fatal(err)
	}
	points := total.StartPoints()
	sink := total.NumStates() - 1

	equivalent := func(p, q int) bool {
		type pair struct{ a, b int }
		start := pair{p, q}
		seen := map[pair]struct{}{start: {}}
		worklist := []pair{start}
		for len(worklist) > 0 {
			pr := worklist[0]
			worklist = worklist[1:]
			if total.IsAccept(pr.a) != total.IsAccept(pr.b) {
				return false
			}
			for _, x := range points {
				np := pair{total.Step(pr.a, x), total.Step(pr.b, x)}
				if _, ok := seen[np]; !ok {
					seen[np] = struct{}{}
					worklist = append(worklist, np)
				}
			}
		}
		return true
	}

	for p := 0; p < sink; p++ {
		for q := p + 1; q < sink; q++ {
			if equivalent(p, q) {
				t.Fatalf("states %d and %d accept the same language", p, q)
			}
		}
	}
}

func TestMinimizeDuplicateUnion(t *testing.T) {
	u, err := Union(
		MakeString(StringToSymbols("ab")),
		MakeString(StringToSymbols("ab")),
	)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Minimize(u)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumStates() != 3 {
		t.Fatalf("expected 3 states (initial, after-a, accept), got %d", m.NumStates())
	}
	if !RunString(m, "ab") || RunString(m, "a") || RunString(m, "abb") {
		t.Errorf("minimized automaton has the wrong language")
	}
	checkAllStatesDistinguishable(t, m)
}

func TestMinimizePreservesLanguage(t *testing.T) {
	u, err := Union(
		MakeString(StringToSymbols("wheat")),
		MakeString(StringToSymbols("wheel")),
		MakeString(StringToSymbols("wheels")),
		MakeString(StringToSymbols("what")),
	)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Minimize(u)
	if err != nil {
		t.Fatal(err)
	}
	same, err := SameLanguage(u, m)
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Fatalf("minimize changed the language")
	}
	if !m.IsDeterministic() {
		t.Errorf("minimized automaton must be deterministic")
	}
	checkAllStatesDistinguishable(t, m)

	d := mustDeterminize(t, u)
	if m.NumStates() > d.NumStates() {
		t.Errorf("minimized automaton has more states (%d) than the determinized input (%d)",
			m.NumStates(), d.NumStates())
	}
}

func TestMinimizeSuffixSharing(t *testing.T) {
	// distinct prefixes with a shared suffix collapse at the tail
	u, err := Union(
		MakeString(StringToSymbols("xing")),
		MakeString(StringToSymbols("ying")),
	)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Minimize(u)
	if err != nil {
		t.Fatal(err)
	}
	// initial, x/y merge into a shared i-n-g chain: 1 + 4 states
	if m.NumStates() != 5 {
		t.Fatalf("expected 5 states, got %d", m.NumStates())
	}
	checkAllStatesDistinguishable(t, m)
}

func TestMinimizeEmpty(t *testing.T) {
	m, err := Minimize(MakeEmpty())
	if err != nil {
		t.Fatal(err)
	}
	if m.NumStates() != 0 {
		t.Errorf("minimizing the empty language must yield zero states, got %d", m.NumStates())
	}
}

func TestMinimizeAnyStringFastPath(t *testing.T) {
	a := MakeAnyString()
	m, err := Minimize(a)
	if err != nil {
		t.Fatal(err)
	}
	if m != a {
		t.Errorf("the all-accepting automaton must be returned unchanged")
	}
}

func TestMinimizeNondeterministicInput(t *testing.T) {
	a := newOverlapNFA(t)
	m, err := Minimize(a)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsDeterministic() {
		t.Fatalf("minimize must determinize its input")
	}
	same, err := SameLanguage(a, m)
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Errorf("minimize changed the language of a non-deterministic input")
	}
	checkAllStatesDistinguishable(t, m)
}
