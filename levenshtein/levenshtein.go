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

// Package levenshtein builds automata accepting all strings within
// some Levenshtein edit distance of a query word, by instantiating a
// precomputed parametric description against the word.  One automaton
// is compiled per query; the quiver package then determinizes,
// minimizes and executes it against candidates.
package levenshtein

import (
	"errors"
	"sort"

	"github.com/couchbaselabs/quiver"
)

// MaximumSupportedDistance is the largest edit distance these
// automata support.
const MaximumSupportedDistance = 2

// ErrUnsupportedDistance is returned when the requested edit distance
// exceeds MaximumSupportedDistance.
var ErrUnsupportedDistance = errors.New("edit distance exceeds maximum supported distance 2")

// ErrInvalidSymbol is returned when a query symbol falls outside
// [0, alphaMax].
var ErrInvalidSymbol = errors.New("symbol out of alphabet range")

// LevenshteinAutomata compiles automata matching a fixed query word
// within an edit distance.  Transpositions of adjacent symbols count
// as a single edit when enabled.
type LevenshteinAutomata struct {
	word               []int
	alphaMax           int
	withTranspositions bool

	alphabet   []int
	rangeLower []int
	rangeUpper []int
	numRanges  int
}

// New prepares automata construction for the given query word.
// The word is treated as a sequence of code points.
func New(word string, withTranspositions bool) (*LevenshteinAutomata, error) {
	return NewFromSymbols(quiver.StringToSymbols(word), quiver.AlphaMax, withTranspositions)
}

// NewFromSymbols prepares automata construction for a query given as
// raw symbols over the alphabet [0, alphaMax].
func NewFromSymbols(word []int, alphaMax int, withTranspositions bool) (*LevenshteinAutomata, error) {
	la := &LevenshteinAutomata{
		word:               word,
		alphaMax:           alphaMax,
		withTranspositions: withTranspositions,
	}

	// the sorted distinct symbols of the word
	la.alphabet = append([]int(nil), word...)
	sort.Ints(la.alphabet)
	out := la.alphabet[:0]
	for _, c := range la.alphabet {
		if c < 0 || c > alphaMax {
			return nil, ErrInvalidSymbol
		}
		if len(out) > 0 && c == out[len(out)-1] {
			continue
		}
		out = append(out, c)
	}
	la.alphabet = out

	// the ranges covering everything the alphabet does not
	la.rangeLower = make([]int, len(la.alphabet)+1)
	la.rangeUpper = make([]int, len(la.alphabet)+1)
	lower := 0
	for _, higher := range la.alphabet {
		if higher > lower {
			la.rangeLower[la.numRanges] = lower
			la.rangeUpper[la.numRanges] = higher - 1
			la.numRanges++
		}
		lower = higher + 1
	}
	if lower <= alphaMax {
		la.rangeLower[la.numRanges] = lower
		la.rangeUpper[la.numRanges] = alphaMax
		la.numRanges++
	}

	return la, nil
}

// ToAutomaton returns an automaton accepting every string within edit
// distance n of the query, all prefixed by the exact string prefix.
// The result is deterministic but not minimal.
func (la *LevenshteinAutomata) ToAutomaton(n uint8, prefix string) (*quiver.Automaton, error) {
	if n > MaximumSupportedDistance {
		return nil, ErrUnsupportedDistance
	}
	prefixSyms := quiver.StringToSymbols(prefix)
	for _, c := range prefixSyms {
		if c < 0 || c > la.alphaMax {
			return nil, ErrInvalidSymbol
		}
	}
	if n == 0 {
		return la.exactAutomaton(prefixSyms), nil
	}

	desc := &parametricDescription{
		core: coreFor(n, la.withTranspositions),
		w:    len(la.word),
		n:    n,
	}

	a := quiver.NewAutomaton()
	lastState := a.CreateState()
	for _, c := range prefixSyms {
		state := a.CreateState()
		if err := a.AddTransition(lastState, state, c, c); err != nil {
			return nil, err
		}
		lastState = state
	}

	stateOffset := lastState
	a.SetAccept(lastState, desc.isAccept(0))

	numStates := desc.size()
	for i := 1; i < numStates; i++ {
		state := a.CreateState()
		a.SetAccept(state, desc.isAccept(i))
	}

	span := 2*int(n) + 1
	for k := 0; k < numStates; k++ {
		xpos := desc.getPosition(k)
		if xpos < 0 {
			continue
		}
		end := len(la.word)
		if xpos+span < end {
			end = xpos + span
		}

		for _, ch := range la.alphabet {
			cvec := la.getVector(ch, xpos, end)
			dest := desc.transition(k, xpos, cvec)
			if dest >= 0 {
				if err := a.AddTransition(stateOffset+k, stateOffset+dest, ch, ch); err != nil {
					return nil, err
				}
			}
		}

		// all symbols outside the alphabet share the zero vector
		dest := desc.transition(k, xpos, 0)
		if dest >= 0 {
			for r := 0; r < la.numRanges; r++ {
				err := a.AddTransition(stateOffset+k, stateOffset+dest, la.rangeLower[r], la.rangeUpper[r])
				if err != nil {
					return nil, err
				}
			}
		}
	}

	a.FinishState()
	return a, nil
}

// exactAutomaton is the degenerate n = 0 case: accept exactly
// prefix + word.
func (la *LevenshteinAutomata) exactAutomaton(prefixSyms []int) *quiver.Automaton {
	syms := make([]int, 0, len(prefixSyms)+len(la.word))
	syms = append(syms, prefixSyms...)
	syms = append(syms, la.word...)
	return quiver.MakeString(syms)
}

// getVector computes the characteristic vector of ch over word
// positions [pos, end): bit i (from the high end) is set when
// word[pos+i] equals ch.
func (la *LevenshteinAutomata) getVector(ch, pos, end int) int {
	vector := 0
	for i := pos; i < end; i++ {
		vector <<= 1
		if la.word[i] == ch {
			vector |= 1
		}
	}
	return vector
}
