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

// enumStrings generates every string over alphabet with length up to
// maxLen, for exhaustive language comparisons in tests.
func enumStrings(alphabet []int, maxLen int) [][]int {
	rv := [][]int{{}}
	prev := [][]int{{}}
	for l := 0; l < maxLen; l++ {
		var next [][]int
		for _, s := range prev {
			for _, c := range alphabet {
				ns := make([]int, len(s), len(s)+1)
				copy(ns, s)
				ns = append(ns, c)
				next = append(next, ns)
			}
		}
		rv = append(rv, next...)
		prev = next
	}
	return rv
}

// checkDisjoint fails unless every state's intervals are pairwise
// disjoint and ascending.
func checkDisjoint(t *testing.T, a *Automaton) {
	t.Helper()
	var tr Transition
	for s := 0; s < a.NumStates(); s++ {
		count := a.InitTransition(s, &tr)
		lastMax := -1
		for i := 0; i < count; i++ {
			a.GetNextTransition(&tr)
			if tr.Min <= lastMax {
				t.Fatalf("state %d has overlapping intervals", s)
			}
			lastMax = tr.Max
		}
	}
}

func newOverlapNFA(t *testing.T) *Automaton {
	t.Helper()
	a := NewAutomaton()
	a.CreateState()
	s1 := a.CreateState()
	a.SetAccept(s1, true)
	if err := a.AddTransition(0, s1, 'a', 'c'); err != nil {
		t.Fatal(err)
	}
	if err := a.AddTransition(0, 0, 'b', 'd'); err != nil {
		t.Fatal(err)
	}
	a.FinishState()
	return a
}

func TestDeterminizeOverlappingIntervals(t *testing.T) {
	a := newOverlapNFA(t)
	if a.IsDeterministic() {
		t.Fatalf("test automaton must start out non-deterministic")
	}

	d, err := Determinize(a)
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsDeterministic() {
		t.Fatalf("determinized automaton must report deterministic")
	}
	checkDisjoint(t, d)

	// language must be unchanged
	alphabet := []int{'a', 'b', 'c', 'd', 'e'}
	for _, s := range enumStrings(alphabet, 4) {
		want := nfaAccepts(a, s)
		got := Run(d, s)
		if want != got {
			t.Fatalf("language changed on %v: nfa=%t dfa=%t", s, want, got)
		}
	}
}

// nfaAccepts runs a possibly non-deterministic automaton by tracking
// the full reachable state set.
func nfaAccepts(a *Automaton, symbols []int) bool {
	if a.NumStates() == 0 {
		return false
	}
	current := map[int]struct{}{0: {}}
	var t Transition
	for _, c := range symbols {
		next := make(map[int]struct{})
		for s := range current {
			count := a.InitTransition(s, &t)
			for i := 0; i < count; i++ {
				a.GetNextTransition(&t)
				if t.Min <= c && c <= t.Max {
					next[t.Dest] = struct{}{}
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		current = next
	}
	for s := range current {
		if a.IsAccept(s) {
			return true
		}
	}
	return false
}

func TestDeterminizeIdempotent(t *testing.T) {
	a := newOverlapNFA(t)
	d, err := Determinize(a)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Determinize(d)
	if err != nil {
		t.Fatal(err)
	}
	if d2 != d {
		t.Errorf("determinizing a deterministic automaton must return it unchanged")
	}
}

func TestDeterminizeUnionOfStrings(t *testing.T) {
	u, err := Union(
		MakeString(StringToSymbols("wheat")),
		MakeString(StringToSymbols("wheel")),
		MakeString(StringToSymbols("what")),
	)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Determinize(u)
	if err != nil {
		t.Fatal(err)
	}
	checkDisjoint(t, d)

	for _, tt := range []struct {
		s    string
		want bool
	}{
		{"wheat", true},
		{"wheel", true},
		{"what", true},
		{"whee", false},
		{"", false},
		{"wheels", false},
	} {
		if got := RunString(d, tt.s); got != tt.want {
			t.Errorf("RunString(%q) = %t, expected %t", tt.s, got, tt.want)
		}
	}
}

func TestDeterminizeManyStates(t *testing.T) {
	// union of many overlapping range paths pushes the live multiset
	// past the map cutover
	var as []*Automaton
	for i := 0; i < 40; i++ {
		a := NewAutomaton()
		s0 := a.CreateState()
		s1 := a.CreateState()
		s2 := a.CreateState()
		a.SetAccept(s2, true)
		if err := a.AddTransition(s0, s1, 'a', 'a'+i%5); err != nil {
			t.Fatal(err)
		}
		if err := a.AddTransition(s1, s2, 'a', 'a'+i%7); err != nil {
			t.Fatal(err)
		}
		as = append(as, a)
	}
	u, err := Union(as...)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Determinize(u)
	if err != nil {
		t.Fatal(err)
	}
	checkDisjoint(t, d)

	alphabet := []int{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'}
	for _, s := range enumStrings(alphabet, 2) {
		if nfaAccepts(u, s) != Run(d, s) {
			t.Fatalf("language changed on %v", s)
		}
	}
}
