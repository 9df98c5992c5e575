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

import (
	"fmt"
	"sort"

	"github.com/willf/bitset"
)

// AlphaMax is the largest symbol an automaton transition may carry.
// Symbols are non-negative integers; the default ceiling treats
// strings as sequences of 16-bit code units.
const AlphaMax = 0xFFFF

// Automaton is a finite automaton over integer symbol intervals.
// States are dense integers created with CreateState; state 0 is
// always the initial state.  Transitions for a state must all be
// added before moving on to the next state: the first AddTransition
// for a new source finishes the previous source, and FinishState must
// be called once after the last transition of the last state.  A
// finished state's transitions are sorted by (min, max, dest) and
// adjacent intervals to the same destination are merged.
//
// States and transitions live in two flat int slices: states[2*s] is
// the offset of state s's first transition record (-1 if none) and
// states[2*s+1] is its record count; each record is (dest, min, max).
type Automaton struct {
	curState      int
	states        []int // 2 slots per state
	transitions   []int // 3 slots per transition
	accept        *bitset.BitSet
	deterministic bool
}

// NewAutomaton returns an empty automaton with no states.
func NewAutomaton() *Automaton {
	return &Automaton{
		curState:      -1,
		accept:        bitset.New(4),
		deterministic: true,
	}
}

// CreateState adds a new state and returns its number.
func (a *Automaton) CreateState() int {
	state := len(a.states) / 2
	a.states = growInts(a.states, len(a.states)+2)
	a.states[2*state] = -1
	a.states[2*state+1] = 0
	return state
}

// NumStates returns the number of states.
func (a *Automaton) NumStates() int {
	return len(a.states) / 2
}

// NumTransitions returns the number of transitions leaving state.
func (a *Automaton) NumTransitions(state int) int {
	if a.states[2*state] == -1 {
		return 0
	}
	return a.states[2*state+1]
}

// SetAccept marks or unmarks state as an accept state.
func (a *Automaton) SetAccept(state int, accept bool) {
	assert(state >= 0 && state < a.NumStates(),
		fmt.Sprintf("state=%d is out of bounds (numStates=%d)", state, a.NumStates()))
	a.accept.SetTo(uint(state), accept)
}

// IsAccept reports whether state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.accept.Test(uint(state))
}

// IsDeterministic reports whether this automaton is known to be
// deterministic.  The flag is maintained conservatively: it is
// cleared as soon as a finished state carries overlapping intervals
// and is never re-asserted.
func (a *Automaton) IsDeterministic() bool {
	return a.deterministic
}

// AddTransition adds a transition accepting every symbol in
// [min, max] from source to dest.  Transitions for one source must be
// added contiguously; adding to a source whose transitions were
// already finished returns ErrStateFinished.
func (a *Automaton) AddTransition(source, dest, min, max int) error {
	if source < 0 || source >= a.NumStates() {
		return ErrOutOfRange
	}
	if dest < 0 || dest >= a.NumStates() {
		return ErrOutOfRange
	}
	if min < 0 || max > AlphaMax || min > max {
		return ErrOutOfRange
	}

	if a.curState != source {
		if a.curState != -1 {
			a.finishCurrentState()
		}
		a.curState = source
		if a.states[2*a.curState] != -1 {
			a.curState = -1
			return ErrStateFinished
		}
		a.states[2*a.curState] = len(a.transitions)
	}

	a.transitions = growInts(a.transitions, len(a.transitions)+3)
	n := len(a.transitions)
	a.transitions[n-3] = dest
	a.transitions[n-2] = min
	a.transitions[n-1] = max
	a.states[2*a.curState+1]++
	return nil
}

// AddEpsilon adds a virtual epsilon transition from source to dest by
// copying every outgoing transition of dest onto source and, if dest
// accepts, marking source accepting.  dest must already be finished.
func (a *Automaton) AddEpsilon(source, dest int) error {
	var t Transition
	count := a.InitTransition(dest, &t)
	for i := 0; i < count; i++ {
		a.GetNextTransition(&t)
		if err := a.AddTransition(source, t.Dest, t.Min, t.Max); err != nil {
			return err
		}
	}
	if a.IsAccept(dest) {
		a.SetAccept(source, true)
	}
	return nil
}

// Copy appends every state and transition of other, renumbering
// other's states sequentially after this automaton's.
func (a *Automaton) Copy(other *Automaton) {
	stateOffset := a.NumStates()
	transOffset := len(a.transitions)

	a.states = growInts(a.states, len(a.states)+len(other.states))
	for i := 0; i < len(other.states); i += 2 {
		if other.states[i] != -1 {
			a.states[2*stateOffset+i] = other.states[i] + transOffset
		} else {
			a.states[2*stateOffset+i] = -1
		}
		a.states[2*stateOffset+i+1] = other.states[i+1]
	}

	for s, ok := other.accept.NextSet(0); ok; s, ok = other.accept.NextSet(s + 1) {
		a.SetAccept(stateOffset+int(s), true)
	}

	a.transitions = growInts(a.transitions, transOffset+len(other.transitions))
	copy(a.transitions[transOffset:], other.transitions)
	for i := transOffset; i < len(a.transitions); i += 3 {
		a.transitions[i] += stateOffset
	}

	if !other.deterministic {
		a.deterministic = false
	}
}

// finishCurrentState sorts and reduces the current state's
// transitions: first by (dest, min, max) so that adjacent or
// overlapping intervals into the same destination merge, then by
// (min, max, dest).  Overlap between the remaining intervals clears
// the deterministic flag.
func (a *Automaton) finishCurrentState() {
	numTransitions := a.states[2*a.curState+1]
	assert(numTransitions > 0, "finishing a state with no transitions")

	offset := a.states[2*a.curState]
	sort.Sort(destMinMaxView{a.transitions, offset, numTransitions})

	upto, min, max, dest := 0, -1, -1, -1
	for i := 0; i < numTransitions; i++ {
		tDest := a.transitions[offset+3*i]
		tMin := a.transitions[offset+3*i+1]
		tMax := a.transitions[offset+3*i+2]

		if dest == tDest {
			if tMin <= max+1 {
				if tMax > max {
					max = tMax
				}
				continue
			}
		}
		if dest != -1 {
			a.transitions[offset+3*upto] = dest
			a.transitions[offset+3*upto+1] = min
			a.transitions[offset+3*upto+2] = max
			upto++
		}
		dest, min, max = tDest, tMin, tMax
	}
	if dest != -1 {
		a.transitions[offset+3*upto] = dest
		a.transitions[offset+3*upto+1] = min
		a.transitions[offset+3*upto+2] = max
		upto++
	}

	a.transitions = a.transitions[:len(a.transitions)-3*(numTransitions-upto)]
	a.states[2*a.curState+1] = upto

	sort.Sort(minMaxDestView{a.transitions, offset, upto})

	if a.deterministic && upto > 1 {
		lastMax := a.transitions[offset+2]
		for i := 1; i < upto; i++ {
			if a.transitions[offset+3*i+1] <= lastMax {
				a.deterministic = false
				break
			}
			lastMax = a.transitions[offset+3*i+2]
		}
	}
}

// FinishState finishes the current state.  Call once after the final
// state's last transition has been added.
func (a *Automaton) FinishState() {
	if a.curState != -1 {
		a.finishCurrentState()
		a.curState = -1
	}
}

// InitTransition prepares t for iterating the transitions of state
// and returns how many there are.
func (a *Automaton) InitTransition(state int, t *Transition) int {
	t.Source = state
	t.upto = a.states[2*state]
	return a.NumTransitions(state)
}

// GetNextTransition loads the next transition of the iteration
// prepared by InitTransition into t.
func (a *Automaton) GetNextTransition(t *Transition) {
	t.Dest = a.transitions[t.upto]
	t.Min = a.transitions[t.upto+1]
	t.Max = a.transitions[t.upto+2]
	t.upto += 3
}

// GetTransition loads the index'th transition of state into t.
func (a *Automaton) GetTransition(state, index int, t *Transition) {
	i := a.states[2*state] + 3*index
	t.Source = state
	t.Dest = a.transitions[i]
	t.Min = a.transitions[i+1]
	t.Max = a.transitions[i+2]
}

// Step returns the destination of the transition of state accepting
// label, or -1 when there is none.  When the automaton is
// deterministic at most one transition can match; with overlapping
// intervals the first match in (min, max, dest) order wins.
func (a *Automaton) Step(state, label int) int {
	trans := a.states[2*state]
	if trans == -1 {
		return -1
	}
	limit := trans + 3*a.states[2*state+1]
	for ; trans < limit; trans += 3 {
		if a.transitions[trans+1] <= label && label <= a.transitions[trans+2] {
			return a.transitions[trans]
		}
	}
	return -1
}

// StartPoints returns the sorted points partitioning the symbol space
// into classes within which every state transitions identically:
// every transition min, every max+1 that does not overflow AlphaMax,
// and the sentinel 0.
func (a *Automaton) StartPoints() []int {
	pointset := map[int]struct{}{0: {}}
	for s := 0; s < a.NumStates(); s++ {
		trans := a.states[2*s]
		if trans == -1 {
			continue
		}
		limit := trans + 3*a.states[2*s+1]
		for ; trans < limit; trans += 3 {
			min, max := a.transitions[trans+1], a.transitions[trans+2]
			pointset[min] = struct{}{}
			if max < AlphaMax {
				pointset[max+1] = struct{}{}
			}
		}
	}
	points := make([]int, 0, len(pointset))
	for p := range pointset {
		points = append(points, p)
	}
	sort.Ints(points)
	return points
}

// sortedTransitions returns, per state, its transitions as Transition
// values in (min, max, dest) order.  States must be finished.
func (a *Automaton) sortedTransitions() [][]Transition {
	numStates := a.NumStates()
	rv := make([][]Transition, numStates)
	var t Transition
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, &t)
		rv[s] = make([]Transition, count)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			rv[s][i] = t
		}
	}
	return rv
}

func (a *Automaton) String() string {
	rv := ""
	var t Transition
	for s := 0; s < a.NumStates(); s++ {
		mark := " "
		if a.IsAccept(s) {
			mark = "*"
		}
		rv += fmt.Sprintf("state %d%s\n", s, mark)
		count := a.InitTransition(s, &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			rv += fmt.Sprintf("  %s\n", t.String())
		}
	}
	return rv
}
