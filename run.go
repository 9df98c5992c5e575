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

import "github.com/willf/bitset"

// classmapSize caps the symbol range served by the precomputed class
// table; larger symbols fall back to binary search over the start
// points.
const classmapSize = 257

// RunAutomaton executes a deterministic automaton in constant time
// per symbol.  The symbol space is cut into the automaton's
// start-point classes; transitions is the dense state-by-class
// destination table (-1 for none).  A RunAutomaton is immutable and
// may be shared between goroutines without synchronization.
type RunAutomaton struct {
	size        int
	points      []int
	accept      *bitset.BitSet
	transitions []int // size*len(points), indexed state*len(points)+class
	classmap    []int
}

// NewRunAutomaton compiles the deterministic automaton a.  A
// non-deterministic input returns ErrNotDeterministic.
func NewRunAutomaton(a *Automaton) (*RunAutomaton, error) {
	if !a.IsDeterministic() {
		return nil, ErrNotDeterministic
	}

	size := a.NumStates()
	if size < 1 {
		size = 1
	}
	points := a.StartPoints()
	nPoints := len(points)

	ra := &RunAutomaton{
		size:        size,
		points:      points,
		accept:      bitset.New(uint(size)),
		transitions: make([]int, size*nPoints),
		classmap:    make([]int, classmapSize),
	}

	for i := range ra.transitions {
		ra.transitions[i] = -1
	}
	for n := 0; n < a.NumStates(); n++ {
		if a.IsAccept(n) {
			ra.accept.Set(uint(n))
		}
		for c, point := range points {
			dest := a.Step(n, point)
			ra.transitions[n*nPoints+c] = dest
		}
	}

	for v := 0; v < classmapSize; v++ {
		ra.classmap[v] = findIndex(v, points)
	}

	return ra, nil
}

// Size returns the number of states.
func (ra *RunAutomaton) Size() int {
	return ra.size
}

// IsAccept reports whether state accepts.
func (ra *RunAutomaton) IsAccept(state int) bool {
	return ra.accept.Test(uint(state))
}

// Step returns the state reached by reading symbol c in state, or -1.
func (ra *RunAutomaton) Step(state, c int) int {
	if c < classmapSize {
		return ra.transitions[state*len(ra.points)+ra.classmap[c]]
	}
	return ra.transitions[state*len(ra.points)+findIndex(c, ra.points)]
}

// Matches reports whether the symbol sequence is accepted.
func (ra *RunAutomaton) Matches(symbols []int) bool {
	state := 0
	for _, c := range symbols {
		state = ra.Step(state, c)
		if state == -1 {
			return false
		}
	}
	return ra.IsAccept(state)
}

// MatchesString is Matches over the code points of s.
func (ra *RunAutomaton) MatchesString(s string) bool {
	state := 0
	for _, r := range s {
		state = ra.Step(state, int(r))
		if state == -1 {
			return false
		}
	}
	return ra.IsAccept(state)
}
