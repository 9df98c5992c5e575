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
	"sort"

	"github.com/willf/bitset"
)

// A Builder assembles an Automaton without the contiguous-source
// restriction of Automaton.AddTransition: transitions may arrive in
// any order and are buffered as (src, dest, min, max) quads.  Finish
// sorts the buffer by (src, min, max, dest) and replays it into a
// fresh automaton.  Algorithms which discover transitions out of
// source order, such as reverse and repeat, build through this type.
type Builder struct {
	numStates   int
	accept      *bitset.BitSet
	transitions []int // 4 slots per buffered transition
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		accept: bitset.New(4),
	}
}

// CreateState adds a new state and returns its number.
func (b *Builder) CreateState() int {
	state := b.numStates
	b.numStates++
	return state
}

// NumStates returns the number of states created so far.
func (b *Builder) NumStates() int {
	return b.numStates
}

// SetAccept marks or unmarks state as an accept state.
func (b *Builder) SetAccept(state int, accept bool) {
	b.accept.SetTo(uint(state), accept)
}

// IsAccept reports whether state is an accept state.
func (b *Builder) IsAccept(state int) bool {
	return b.accept.Test(uint(state))
}

// AddTransition buffers a transition accepting [min, max] from source
// to dest.
func (b *Builder) AddTransition(source, dest, min, max int) error {
	if source < 0 || source >= b.numStates {
		return ErrOutOfRange
	}
	if dest < 0 || dest >= b.numStates {
		return ErrOutOfRange
	}
	if min < 0 || max > AlphaMax || min > max {
		return ErrOutOfRange
	}
	b.transitions = growInts(b.transitions, len(b.transitions)+4)
	n := len(b.transitions)
	b.transitions[n-4] = source
	b.transitions[n-3] = dest
	b.transitions[n-2] = min
	b.transitions[n-1] = max
	return nil
}

// Copy buffers every state and transition of a, renumbered after the
// states created so far.
func (b *Builder) Copy(a *Automaton) {
	offset := b.numStates
	numStates := a.NumStates()
	for s := 0; s < numStates; s++ {
		ns := b.CreateState()
		b.SetAccept(ns, a.IsAccept(s))
	}
	var t Transition
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			// range already validated by a
			_ = b.AddTransition(offset+s, offset+t.Dest, t.Min, t.Max)
		}
	}
}

// Finish sorts the buffered transitions and replays them into a new
// Automaton.
func (b *Builder) Finish() *Automaton {
	a := NewAutomaton()
	for s := 0; s < b.numStates; s++ {
		a.CreateState()
		a.SetAccept(s, b.IsAccept(s))
	}
	sort.Sort(srcMinMaxDestView{b.transitions, len(b.transitions) / 4})
	for i := 0; i < len(b.transitions); i += 4 {
		err := a.AddTransition(b.transitions[i], b.transitions[i+1],
			b.transitions[i+2], b.transitions[i+3])
		assert(err == nil, "replaying a validated transition failed")
	}
	a.FinishState()
	return a
}
