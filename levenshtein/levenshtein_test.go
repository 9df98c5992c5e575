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

package levenshtein

import (
	"testing"

	"github.com/couchbaselabs/quiver"
)

// editDistance is the straightforward dynamic-programming Levenshtein
// distance, the oracle the automata are checked against.
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			v := prev[j] + 1 // delete
			if cur[j-1]+1 < v {
				v = cur[j-1] + 1 // insert
			}
			if prev[j-1]+cost < v {
				v = prev[j-1] + cost // substitute
			}
			cur[j] = v
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func buildMatcher(t *testing.T, word string, n uint8, transpositions bool, prefix string) *quiver.RunAutomaton {
	t.Helper()
	la, err := New(word, transpositions)
	if err != nil {
		t.Fatal(err)
	}
	a, err := la.ToAutomaton(n, prefix)
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsDeterministic() {
		t.Fatalf("parametric construction must emit a deterministic automaton")
	}
	m, err := quiver.Minimize(a)
	if err != nil {
		t.Fatal(err)
	}
	ra, err := quiver.NewRunAutomaton(m)
	if err != nil {
		t.Fatal(err)
	}
	return ra
}

func TestFoobarDistanceOneWithTranspositions(t *testing.T) {
	ra := buildMatcher(t, "foobar", 1, true, "")
	tests := []struct {
		s    string
		want bool
	}{
		{"foobar", true},
		{"foebar", true},  // substitution
		{"fobar", true},   // deletion
		{"foobra", true},  // transposition
		{"fooxxbar", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ra.MatchesString(tt.s); got != tt.want {
			t.Errorf("matches(%q) = %t, expected %t", tt.s, got, tt.want)
		}
	}
}

func TestAbcDistanceOne(t *testing.T) {
	ra := buildMatcher(t, "abc", 1, false, "")
	tests := []struct {
		s    string
		want bool
	}{
		{"ab", true},
		{"abcd", true},
		{"xbc", true},
		{"xyz", false},
		{"abc", true},
	}
	for _, tt := range tests {
		if got := ra.MatchesString(tt.s); got != tt.want {
			t.Errorf("matches(%q) = %t, expected %t", tt.s, got, tt.want)
		}
	}
}

func TestKittenDistanceTwo(t *testing.T) {
	ra := buildMatcher(t, "kitten", 2, false, "")
	tests := []struct {
		s    string
		want bool
	}{
		{"sitting", false}, // distance 3
		{"sittin", true},   // distance 2
		{"kitten", true},
		{"mitten", true},
		{"kien", true},
		{"ken", false},
	}
	for _, tt := range tests {
		if got := ra.MatchesString(tt.s); got != tt.want {
			t.Errorf("matches(%q) = %t, expected %t", tt.s, got, tt.want)
		}
	}
}

func enumRuneStrings(alphabet []rune, maxLen int) []string {
	rv := []string{""}
	prev := []string{""}
	for l := 0; l < maxLen; l++ {
		var next []string
		for _, s := range prev {
			for _, c := range alphabet {
				next = append(next, s+string(c))
			}
		}
		rv = append(rv, next...)
		prev = next
	}
	return rv
}

func TestAgainstBruteForceDistance(t *testing.T) {
	words := []string{"", "a", "ab", "abc", "aabb", "abab"}
	alphabet := []rune{'a', 'b', 'x'}

	for _, word := range words {
		for _, n := range []uint8{1, 2} {
			la, err := New(word, false)
			if err != nil {
				t.Fatal(err)
			}
			a, err := la.ToAutomaton(n, "")
			if err != nil {
				t.Fatal(err)
			}
			for _, cand := range enumRuneStrings(alphabet, len(word)+2) {
				want := editDistance([]rune(word), []rune(cand)) <= int(n)
				got := quiver.RunString(a, cand)
				if got != want {
					t.Fatalf("word=%q n=%d cand=%q: run=%t distance oracle=%t",
						word, n, cand, got, want)
				}
			}
		}
	}
}

func TestCompiledPipelineAgainstRawAutomaton(t *testing.T) {
	word := "banana"
	la, err := New(word, false)
	if err != nil {
		t.Fatal(err)
	}
	a, err := la.ToAutomaton(2, "")
	if err != nil {
		t.Fatal(err)
	}
	ra := buildMatcher(t, word, 2, false, "")

	candidates := []string{
		"banana", "banan", "bananas", "bnana", "banxna", "bxnxna",
		"bxxxna", "nanana", "b", "", "bananana",
	}
	for _, cand := range candidates {
		if got, want := ra.MatchesString(cand), quiver.RunString(a, cand); got != want {
			t.Errorf("matches(%q) = %t, raw run = %t", cand, got, want)
		}
	}
}

func TestTranspositions(t *testing.T) {
	// adjacent swaps cost one edit with transpositions, two without
	with := buildMatcher(t, "abcdef", 1, true, "")
	without := buildMatcher(t, "abcdef", 1, false, "")

	if !with.MatchesString("abdcef") {
		t.Errorf("expected transposed string to match with transpositions")
	}
	if without.MatchesString("abdcef") {
		t.Errorf("expected transposed string not to match at distance 1 without transpositions")
	}
	if !without.MatchesString("abcdef") || !with.MatchesString("abcdef") {
		t.Errorf("the query itself must always match")
	}

	with2 := buildMatcher(t, "abcdef", 2, true, "")
	if !with2.MatchesString("badcef") {
		t.Errorf("expected two swaps to match at distance 2")
	}
	if with2.MatchesString("badcfx") {
		t.Errorf("expected two swaps plus two more edits not to match at distance 2")
	}
}

func TestPrefix(t *testing.T) {
	ra := buildMatcher(t, "bar", 1, false, "foo")
	tests := []struct {
		s    string
		want bool
	}{
		{"foobar", true},
		{"foobaz", true},  // one edit after the prefix
		{"fooar", true},   // deletion after the prefix
		{"fxobar", false}, // the prefix is exact
		{"bar", false},
		{"foo", false},
	}
	for _, tt := range tests {
		if got := ra.MatchesString(tt.s); got != tt.want {
			t.Errorf("matches(%q) = %t, expected %t", tt.s, got, tt.want)
		}
	}
}

func TestDistanceZero(t *testing.T) {
	ra := buildMatcher(t, "exact", 0, false, "")
	if !ra.MatchesString("exact") {
		t.Errorf("distance 0 must match the word itself")
	}
	for _, s := range []string{"exac", "exacts", "exxct", ""} {
		if ra.MatchesString(s) {
			t.Errorf("distance 0 must reject %q", s)
		}
	}
}

func TestDistanceZeroWithPrefix(t *testing.T) {
	ra := buildMatcher(t, "b", 0, false, "a")
	if !ra.MatchesString("ab") {
		t.Errorf("expected prefix+word to match")
	}
	if ra.MatchesString("a") || ra.MatchesString("b") {
		t.Errorf("expected partial strings to be rejected")
	}
}

func TestUnsupportedDistance(t *testing.T) {
	la, err := New("word", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := la.ToAutomaton(3, ""); err != ErrUnsupportedDistance {
		t.Errorf("expected ErrUnsupportedDistance, got %v", err)
	}
}

func TestEmptyWord(t *testing.T) {
	// distance n from the empty word means "at most n symbols"
	ra := buildMatcher(t, "", 2, false, "")
	for _, tt := range []struct {
		s    string
		want bool
	}{
		{"", true},
		{"a", true},
		{"ab", true},
		{"abc", false},
	} {
		if got := ra.MatchesString(tt.s); got != tt.want {
			t.Errorf("matches(%q) = %t, expected %t", tt.s, got, tt.want)
		}
	}
}

func TestMatchesSymbols(t *testing.T) {
	la, err := NewFromSymbols([]int{100, 200, 300}, quiver.AlphaMax, false)
	if err != nil {
		t.Fatal(err)
	}
	a, err := la.ToAutomaton(1, "")
	if err != nil {
		t.Fatal(err)
	}
	if !quiver.Run(a, []int{100, 200, 300}) {
		t.Errorf("expected the symbol word itself to match")
	}
	if !quiver.Run(a, []int{100, 300}) {
		t.Errorf("expected one deletion to match")
	}
	if quiver.Run(a, []int{100}) {
		t.Errorf("expected two deletions not to match at distance 1")
	}
}

func TestInvalidSymbol(t *testing.T) {
	if _, err := NewFromSymbols([]int{1, -5}, quiver.AlphaMax, false); err != ErrInvalidSymbol {
		t.Errorf("expected ErrInvalidSymbol for a negative symbol, got %v", err)
	}
	if _, err := NewFromSymbols([]int{1, 500}, 255, false); err != ErrInvalidSymbol {
		t.Errorf("expected ErrInvalidSymbol for a symbol above alphaMax, got %v", err)
	}
}
