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

// Constructors for the elementary automata the algebra and the
// Levenshtein builder start from.

// MakeEmpty returns a deterministic automaton with the empty
// language.
func MakeEmpty() *Automaton {
	a := NewAutomaton()
	a.FinishState()
	return a
}

// MakeEmptyString returns a deterministic automaton accepting only
// the empty string.
func MakeEmptyString() *Automaton {
	a := NewAutomaton()
	a.CreateState()
	a.SetAccept(0, true)
	return a
}

// MakeAnyChar returns a deterministic automaton accepting any single
// symbol.
func MakeAnyChar() *Automaton {
	return MakeCharRange(0, AlphaMax)
}

// MakeAnyString returns a deterministic automaton accepting every
// string, including the empty one.
func MakeAnyString() *Automaton {
	a := NewAutomaton()
	s := a.CreateState()
	a.SetAccept(s, true)
	_ = a.AddTransition(s, s, 0, AlphaMax)
	a.FinishState()
	return a
}

// MakeChar returns a deterministic automaton accepting the single
// one-symbol string c.
func MakeChar(c int) *Automaton {
	return MakeCharRange(c, c)
}

// MakeCharRange returns a deterministic automaton accepting a single
// symbol in [min, max].
func MakeCharRange(min, max int) *Automaton {
	if min > max {
		return MakeEmpty()
	}
	a := NewAutomaton()
	s1 := a.CreateState()
	s2 := a.CreateState()
	a.SetAccept(s2, true)
	_ = a.AddTransition(s1, s2, min, max)
	a.FinishState()
	return a
}

// MakeString returns a deterministic automaton accepting exactly the
// given symbol sequence.
func MakeString(symbols []int) *Automaton {
	a := NewAutomaton()
	last := a.CreateState()
	for _, c := range symbols {
		state := a.CreateState()
		_ = a.AddTransition(last, state, c, c)
		last = state
	}
	a.SetAccept(last, true)
	a.FinishState()
	return a
}

// StringToSymbols converts text to the symbol sequence the automata
// in this package run on, one symbol per code point.
func StringToSymbols(s string) []int {
	rv := make([]int, 0, len(s))
	for _, r := range s {
		rv = append(rv, int(r))
	}
	return rv
}
