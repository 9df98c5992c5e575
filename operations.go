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

// Automaton algebra.  Every operation builds a fresh automaton; the
// inputs are never mutated.

// Concatenate returns an automaton accepting the concatenation of the
// languages of the given automata, in order.
func Concatenate(as ...*Automaton) (*Automaton, error) {
	if len(as) == 0 {
		return MakeEmptyString(), nil
	}

	result := NewAutomaton()

	// first pass: create all states
	for _, a := range as {
		if a.NumStates() == 0 {
			result.FinishState()
			return result, nil
		}
		numStates := a.NumStates()
		for s := 0; s < numStates; s++ {
			result.CreateState()
		}
	}

	// second pass: add transitions, splicing each automaton's accept
	// states into the initial state of the next
	stateOffset := 0
	var t Transition
	for i, a := range as {
		numStates := a.NumStates()

		var nextA *Automaton
		if i+1 < len(as) {
			nextA = as[i+1]
		}

		for s := 0; s < numStates; s++ {
			count := a.InitTransition(s, &t)
			for j := 0; j < count; j++ {
				a.GetNextTransition(&t)
				err := result.AddTransition(stateOffset+s, stateOffset+t.Dest, t.Min, t.Max)
				if err != nil {
					return nil, err
				}
			}

			if a.IsAccept(s) {
				followA := nextA
				followOffset := stateOffset
				upto := i + 1
				for {
					if followA == nil {
						result.SetAccept(stateOffset+s, true)
						break
					}

					// a virtual epsilon into followA's initial state
					count = followA.InitTransition(0, &t)
					for j := 0; j < count; j++ {
						followA.GetNextTransition(&t)
						err := result.AddTransition(stateOffset+s, followOffset+numStates+t.Dest, t.Min, t.Max)
						if err != nil {
							return nil, err
						}
					}
					if !followA.IsAccept(0) {
						break
					}
					// followA accepts the empty string: keep chaining
					followOffset += followA.NumStates()
					if upto == len(as)-1 {
						followA = nil
					} else {
						followA = as[upto+1]
					}
					upto++
				}
			}
		}

		stateOffset += numStates
	}

	if result.NumStates() == 0 {
		result.CreateState()
	}
	result.FinishState()
	return result, nil
}

// Union returns an automaton accepting the union of the languages of
// the given automata.
func Union(as ...*Automaton) (*Automaton, error) {
	result := NewAutomaton()
	result.CreateState()

	for _, a := range as {
		result.Copy(a)
	}

	stateOffset := 1
	for _, a := range as {
		if a.NumStates() == 0 {
			continue
		}
		if err := result.AddEpsilon(0, stateOffset); err != nil {
			return nil, err
		}
		stateOffset += a.NumStates()
	}
	result.FinishState()

	return RemoveDeadStates(result)
}

// Optional returns an automaton accepting the union of the empty
// string and the language of a.
func Optional(a *Automaton) (*Automaton, error) {
	result := NewAutomaton()
	result.CreateState()
	result.SetAccept(0, true)
	if a.NumStates() > 0 {
		result.Copy(a)
		if err := result.AddEpsilon(0, 1); err != nil {
			return nil, err
		}
	}
	result.FinishState()
	return result, nil
}

// Repeat returns an automaton accepting the Kleene star of the
// language of a: zero or more concatenated repetitions.
func Repeat(a *Automaton) (*Automaton, error) {
	if a.NumStates() == 0 {
		// repeating the empty language accepts only the empty string
		return MakeEmptyString(), nil
	}

	b := NewBuilder()
	b.CreateState()
	b.SetAccept(0, true)
	b.Copy(a)

	var t Transition
	count := a.InitTransition(0, &t)
	for i := 0; i < count; i++ {
		a.GetNextTransition(&t)
		if err := b.AddTransition(0, t.Dest+1, t.Min, t.Max); err != nil {
			return nil, err
		}
	}

	numStates := a.NumStates()
	for s := 0; s < numStates; s++ {
		if !a.IsAccept(s) {
			continue
		}
		count = a.InitTransition(0, &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			if err := b.AddTransition(s+1, t.Dest+1, t.Min, t.Max); err != nil {
				return nil, err
			}
		}
	}

	return b.Finish(), nil
}

// RepeatMin returns an automaton accepting min or more concatenated
// repetitions of the language of a.
func RepeatMin(a *Automaton, min int) (*Automaton, error) {
	if min == 0 {
		return Repeat(a)
	}
	as := make([]*Automaton, 0, min+1)
	for i := 0; i < min; i++ {
		as = append(as, a)
	}
	ra, err := Repeat(a)
	if err != nil {
		return nil, err
	}
	as = append(as, ra)
	return Concatenate(as...)
}

type statePair struct{ s1, s2 int }

// Intersection returns an automaton accepting the intersection of the
// languages of a1 and a2, by product construction over reachable
// state pairs.
func Intersection(a1, a2 *Automaton) (*Automaton, error) {
	if a1 == a2 || a1.NumStates() == 0 {
		return a1, nil
	}
	if a2.NumStates() == 0 {
		return a2, nil
	}

	transitions1 := a1.sortedTransitions()
	transitions2 := a2.sortedTransitions()

	c := NewAutomaton()
	c.CreateState()

	p := statePair{0, 0}
	worklist := []statePair{p}
	newstates := map[statePair]int{p: 0}

	for len(worklist) > 0 {
		p = worklist[0]
		worklist = worklist[1:]
		s := newstates[p]
		c.SetAccept(s, a1.IsAccept(p.s1) && a2.IsAccept(p.s2))
		t1 := transitions1[p.s1]
		t2 := transitions2[p.s2]
		for n1, b2 := 0, 0; n1 < len(t1); n1++ {
			for b2 < len(t2) && t2[b2].Max < t1[n1].Min {
				b2++
			}
			for n2 := b2; n2 < len(t2) && t1[n1].Max >= t2[n2].Min; n2++ {
				if t2[n2].Max < t1[n1].Min {
					continue
				}
				q := statePair{t1[n1].Dest, t2[n2].Dest}
				r, ok := newstates[q]
				if !ok {
					r = c.CreateState()
					worklist = append(worklist, q)
					newstates[q] = r
				}
				min := t1[n1].Min
				if t2[n2].Min > min {
					min = t2[n2].Min
				}
				max := t1[n1].Max
				if t2[n2].Max < max {
					max = t2[n2].Max
				}
				if err := c.AddTransition(s, r, min, max); err != nil {
					return nil, err
				}
			}
		}
	}
	c.FinishState()

	return RemoveDeadStates(c)
}

// Reverse returns an automaton accepting the reverse language of a.
func Reverse(a *Automaton) (*Automaton, error) {
	return reverseStates(a, nil)
}

// reverseStates reverses a; when initialStates is non-nil it is
// filled with the states of the result corresponding to a's accept
// states.
func reverseStates(a *Automaton, initialStates map[int]struct{}) (*Automaton, error) {
	if IsEmpty(a) {
		return NewAutomaton(), nil
	}

	numStates := a.NumStates()
	b := NewBuilder()

	// fresh initial node; epsilon transitions into the old accept
	// states come last
	b.CreateState()
	for s := 0; s < numStates; s++ {
		b.CreateState()
	}

	// old initial state becomes the accept state
	b.SetAccept(1, true)

	var t Transition
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			if err := b.AddTransition(t.Dest+1, s+1, t.Min, t.Max); err != nil {
				return nil, err
			}
		}
	}

	result := b.Finish()

	acceptStates := a.accept
	for s, ok := acceptStates.NextSet(0); ok && int(s) < numStates; s, ok = acceptStates.NextSet(s + 1) {
		if err := result.AddEpsilon(0, int(s)+1); err != nil {
			return nil, err
		}
		if initialStates != nil {
			initialStates[int(s)+1] = struct{}{}
		}
	}
	result.FinishState()

	return result, nil
}

// Totalize returns an automaton equivalent to a in which every
// (state, symbol) pair has a defined transition, by routing all gaps
// into a fresh sink state with a full-range self-loop.
func Totalize(a *Automaton) (*Automaton, error) {
	result := NewAutomaton()
	numStates := a.NumStates()
	for i := 0; i < numStates; i++ {
		result.CreateState()
		result.SetAccept(i, a.IsAccept(i))
	}

	deadState := result.CreateState()
	if err := result.AddTransition(deadState, deadState, 0, AlphaMax); err != nil {
		return nil, err
	}

	var t Transition
	for i := 0; i < numStates; i++ {
		maxi := 0
		count := a.InitTransition(i, &t)
		for j := 0; j < count; j++ {
			a.GetNextTransition(&t)
			if err := result.AddTransition(i, t.Dest, t.Min, t.Max); err != nil {
				return nil, err
			}
			if t.Min > maxi {
				if err := result.AddTransition(i, deadState, maxi, t.Min-1); err != nil {
					return nil, err
				}
			}
			if t.Max+1 > maxi {
				maxi = t.Max + 1
			}
		}
		if maxi <= AlphaMax {
			if err := result.AddTransition(i, deadState, maxi, AlphaMax); err != nil {
				return nil, err
			}
		}
	}

	result.FinishState()
	return result, nil
}

// Complement returns a deterministic automaton accepting exactly the
// strings a rejects.
func Complement(a *Automaton) (*Automaton, error) {
	a, err := Determinize(a)
	if err != nil {
		return nil, err
	}
	a, err = Totalize(a)
	if err != nil {
		return nil, err
	}
	numStates := a.NumStates()
	for p := 0; p < numStates; p++ {
		a.SetAccept(p, !a.IsAccept(p))
	}
	return RemoveDeadStates(a)
}

// RemoveDeadStates returns an automaton with the same language as a
// in which every state is reachable from the initial state and can
// reach an accept state.  When the language is empty the result has
// no states.
func RemoveDeadStates(a *Automaton) (*Automaton, error) {
	numStates := a.NumStates()
	live := liveStates(a)

	m := make([]int, numStates)
	result := NewAutomaton()
	for i := 0; i < numStates; i++ {
		if live.Test(uint(i)) {
			m[i] = result.CreateState()
			result.SetAccept(m[i], a.IsAccept(i))
		}
	}

	var t Transition
	for i := 0; i < numStates; i++ {
		if !live.Test(uint(i)) {
			continue
		}
		count := a.InitTransition(i, &t)
		for j := 0; j < count; j++ {
			a.GetNextTransition(&t)
			if !live.Test(uint(t.Dest)) {
				continue
			}
			if err := result.AddTransition(m[i], m[t.Dest], t.Min, t.Max); err != nil {
				return nil, err
			}
		}
	}

	result.FinishState()
	return result, nil
}

// liveStates returns the states reachable from the initial state from
// which an accept state is also reachable.
func liveStates(a *Automaton) *bitset.BitSet {
	live := liveStatesFromInitial(a)
	live.InPlaceIntersection(liveStatesToAccept(a))
	return live
}

func liveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.NumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 {
		return live
	}
	workList := []int{0}
	live.Set(0)

	var t Transition
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		count := a.InitTransition(s, &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			if !live.Test(uint(t.Dest)) {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}
	return live
}

func liveStatesToAccept(a *Automaton) *bitset.BitSet {
	numStates := a.NumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 {
		return live
	}

	// reverse all edges and BFS from the accept states
	b := NewBuilder()
	var t Transition
	for s := 0; s < numStates; s++ {
		b.CreateState()
	}
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			// ranges already validated by a
			_ = b.AddTransition(t.Dest, s, t.Min, t.Max)
		}
	}
	a2 := b.Finish()

	var workList []int
	acceptBits := a.accept
	for s, ok := acceptBits.NextSet(0); ok && int(s) < numStates; s, ok = acceptBits.NextSet(s + 1) {
		live.Set(s)
		workList = append(workList, int(s))
	}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		count := a2.InitTransition(s, &t)
		for i := 0; i < count; i++ {
			a2.GetNextTransition(&t)
			if !live.Test(uint(t.Dest)) {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}
	return live
}

// hasDeadStatesFromInitial reports whether some state reachable from
// the initial state cannot reach an accept state.
func hasDeadStatesFromInitial(a *Automaton) bool {
	reachableFromInitial := liveStatesFromInitial(a)
	reachableFromInitial.InPlaceDifference(liveStatesToAccept(a))
	return reachableFromInitial.Any()
}

// IsEmpty reports whether a accepts no strings.
func IsEmpty(a *Automaton) bool {
	if a.NumStates() == 0 {
		return true
	}
	if !a.IsAccept(0) && a.NumTransitions(0) == 0 {
		return true
	}
	if a.IsAccept(0) {
		return false
	}

	workList := []int{0}
	seen := bitset.New(uint(a.NumStates()))
	seen.Set(0)

	var t Transition
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]
		if a.IsAccept(state) {
			return false
		}
		count := a.InitTransition(state, &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			if !seen.Test(uint(t.Dest)) {
				workList = append(workList, t.Dest)
				seen.Set(uint(t.Dest))
			}
		}
	}
	return true
}

// IsFinite reports whether the language of a has finitely many
// strings.  a must have no dead states; a transition reaching a state
// on the current DFS path means a reachable cycle, hence an infinite
// language.
func IsFinite(a *Automaton) bool {
	if a.NumStates() == 0 {
		return true
	}
	path := bitset.New(uint(a.NumStates()))
	visited := bitset.New(uint(a.NumStates()))
	return isFinite(&Transition{}, a, 0, path, visited)
}

func isFinite(scratch *Transition, a *Automaton, state int, path, visited *bitset.BitSet) bool {
	path.Set(uint(state))
	numTransitions := a.NumTransitions(state)
	for i := 0; i < numTransitions; i++ {
		a.GetTransition(state, i, scratch)
		if path.Test(uint(scratch.Dest)) {
			return false
		}
		if !visited.Test(uint(scratch.Dest)) && !isFinite(scratch, a, scratch.Dest, path, visited) {
			return false
		}
	}
	path.Clear(uint(state))
	visited.Set(uint(state))
	return true
}

// SubsetOf reports whether the language of a1 is a subset of the
// language of a2.  Both inputs must be deterministic.
func SubsetOf(a1, a2 *Automaton) (bool, error) {
	if !a1.IsDeterministic() || !a2.IsDeterministic() {
		return false, ErrNotDeterministic
	}
	if a1 == a2 {
		return true, nil
	}

	transitions1 := a1.sortedTransitions()
	transitions2 := a2.sortedTransitions()

	if a1.NumStates() == 0 {
		return true, nil
	}
	if a2.NumStates() == 0 {
		return IsEmpty(a1), nil
	}

	p := statePair{0, 0}
	worklist := []statePair{p}
	visited := map[statePair]struct{}{p: {}}

	for len(worklist) > 0 {
		p = worklist[0]
		worklist = worklist[1:]
		if a1.IsAccept(p.s1) && !a2.IsAccept(p.s2) {
			return false, nil
		}
		t1 := transitions1[p.s1]
		t2 := transitions2[p.s2]
		for n1, b2 := 0, 0; n1 < len(t1); n1++ {
			for b2 < len(t2) && t2[b2].Max < t1[n1].Min {
				b2++
			}
			min1, max1 := t1[n1].Min, t1[n1].Max
			for n2 := b2; n2 < len(t2) && t1[n1].Max >= t2[n2].Min; n2++ {
				if t2[n2].Min > min1 {
					return false, nil
				}
				if t2[n2].Max < AlphaMax {
					min1 = t2[n2].Max + 1
				} else {
					min1, max1 = AlphaMax, 0
				}
				q := statePair{t1[n1].Dest, t2[n2].Dest}
				if _, ok := visited[q]; !ok {
					worklist = append(worklist, q)
					visited[q] = struct{}{}
				}
			}
			if min1 <= max1 {
				return false, nil
			}
		}
	}
	return true, nil
}

// SameLanguage reports whether a1 and a2 accept exactly the same
// language.  The inputs are determinized as needed; this is a costly
// computation.
func SameLanguage(a1, a2 *Automaton) (bool, error) {
	if a1 == a2 {
		return true, nil
	}
	d1, err := Determinize(a1)
	if err != nil {
		return false, err
	}
	d2, err := Determinize(a2)
	if err != nil {
		return false, err
	}
	sub1, err := SubsetOf(d1, d2)
	if err != nil || !sub1 {
		return false, err
	}
	return SubsetOf(d2, d1)
}

// Run walks the symbol sequence through a from state 0 using Step and
// reports whether it ends in an accept state.  a must be
// deterministic; use Determinize first otherwise.
func Run(a *Automaton, symbols []int) bool {
	if a.NumStates() == 0 {
		return false
	}
	state := 0
	for _, c := range symbols {
		state = a.Step(state, c)
		if state == -1 {
			return false
		}
	}
	return a.IsAccept(state)
}

// RunString is Run over the code points of s.
func RunString(a *Automaton, s string) bool {
	return Run(a, StringToSymbols(s))
}

// CommonPrefix returns the longest symbol sequence that is a prefix
// of every accepted string.  a must not have dead states reachable
// from the initial state; RemoveDeadStates establishes that.
func CommonPrefix(a *Automaton) ([]int, error) {
	if hasDeadStatesFromInitial(a) {
		return nil, ErrOutOfRange
	}
	if IsEmpty(a) {
		return nil, nil
	}

	var prefix []int
	var t Transition
	current := bitset.New(uint(a.NumStates()))
	next := bitset.New(uint(a.NumStates()))
	current.Set(0)

	for {
		label := -1
		// step every current path forward once; all must agree on a
		// single label and none may accept yet
		for s, ok := current.NextSet(0); ok; s, ok = current.NextSet(s + 1) {
			if a.IsAccept(int(s)) {
				return prefix, nil
			}
			count := a.NumTransitions(int(s))
			for i := 0; i < count; i++ {
				a.GetTransition(int(s), i, &t)
				if label == -1 {
					label = t.Min
				}
				if t.Min != t.Max || t.Min != label {
					return prefix, nil
				}
				next.Set(uint(t.Dest))
			}
		}

		prefix = append(prefix, label)
		current, next = next, current
		next.ClearAll()
	}
}
