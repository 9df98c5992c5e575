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

// stateList is a doubly-linked membership list: one per
// (partition block, symbol class) pair during minimization.
type stateList struct {
	size        int
	first, last *stateListNode
}

type stateListNode struct {
	q          int
	next, prev *stateListNode
	sl         *stateList
}

func (sl *stateList) add(q int) *stateListNode {
	node := &stateListNode{q: q, sl: sl}
	sl.size++
	if sl.size == 1 {
		sl.first, sl.last = node, node
	} else {
		sl.last.next = node
		node.prev = sl.last
		sl.last = node
	}
	return node
}

func (node *stateListNode) remove() {
	node.sl.size--
	if node.sl.first == node {
		node.sl.first = node.next
	} else {
		node.prev.next = node.next
	}
	if node.sl.last == node {
		node.sl.last = node.prev
	} else {
		node.next.prev = node.prev
	}
}

type intPair struct{ n1, n2 int }

// Minimize returns the minimal deterministic automaton accepting the
// same language as a, using Hopcroft partition refinement over the
// symbol classes of the determinized, totalized input.
func Minimize(a *Automaton) (*Automaton, error) {
	if a.NumStates() == 0 || (!a.IsAccept(0) && a.NumTransitions(0) == 0) {
		// the empty language is already minimal
		return NewAutomaton(), nil
	}

	a, err := Determinize(a)
	if err != nil {
		return nil, err
	}
	if a.IsAccept(0) && a.NumTransitions(0) == 1 {
		var t Transition
		a.GetTransition(0, 0, &t)
		if t.Dest == 0 && t.Min == 0 && t.Max == AlphaMax {
			// accepts everything: already minimal
			return a, nil
		}
	}

	a, err = Totalize(a)
	if err != nil {
		return nil, err
	}

	// initialize data structures
	sigma := a.StartPoints()
	sigmaLen, statesLen := len(sigma), a.NumStates()

	reverse := make([][][]int, statesLen)
	partition := make([]map[int]struct{}, statesLen)
	splitblock := make([][]int, statesLen)
	block := make([]int, statesLen)
	active := make([][]*stateList, statesLen)
	active2 := make([][]*stateListNode, statesLen)
	var pending []intPair
	pending2 := bitset.New(uint(sigmaLen * statesLen))
	split := bitset.New(uint(statesLen))
	refine := bitset.New(uint(statesLen))
	refine2 := bitset.New(uint(statesLen))
	for q := 0; q < statesLen; q++ {
		reverse[q] = make([][]int, sigmaLen)
		partition[q] = make(map[int]struct{})
		active[q] = make([]*stateList, sigmaLen)
		active2[q] = make([]*stateListNode, sigmaLen)
		for x := 0; x < sigmaLen; x++ {
			active[q][x] = &stateList{}
		}
	}

	// find initial partition and reverse edges
	for q := 0; q < statesLen; q++ {
		j := 1
		if a.IsAccept(q) {
			j = 0
		}
		partition[j][q] = struct{}{}
		block[q] = j
		for x := 0; x < sigmaLen; x++ {
			dest := a.Step(q, sigma[x])
			assert(dest >= 0, "totalized automaton has no transition")
			reverse[dest][x] = append(reverse[dest][x], q)
		}
	}

	// initialize active sets
	for j := 0; j <= 1; j++ {
		for x := 0; x < sigmaLen; x++ {
			for q := range partition[j] {
				if reverse[q][x] != nil {
					active2[q][x] = active[j][x].add(q)
				}
			}
		}
	}

	// initialize pending with the smaller half of the initial split
	for x := 0; x < sigmaLen; x++ {
		j := 0
		if active[0][x].size > active[1][x].size {
			j = 1
		}
		pending = append(pending, intPair{j, x})
		pending2.Set(uint(x*statesLen + j))
	}

	// process pending until fixed point
	k := 2
	for len(pending) > 0 {
		ip := pending[0]
		pending = pending[1:]
		p, x := ip.n1, ip.n2
		pending2.Clear(uint(x*statesLen + p))

		// find states that need to be split off their blocks
		for m := active[p][x].first; m != nil; m = m.next {
			for _, s := range reverse[m.q][x] {
				if !split.Test(uint(s)) {
					split.Set(uint(s))
					j := block[s]
					splitblock[j] = append(splitblock[j], s)
					if !refine2.Test(uint(j)) {
						refine2.Set(uint(j))
						refine.Set(uint(j))
					}
				}
			}
		}

		// refine blocks
		for j, ok := refine.NextSet(0); ok; j, ok = refine.NextSet(j + 1) {
			sb := splitblock[j]
			if len(sb) < len(partition[j]) {
				b1, b2 := partition[j], partition[k]
				for _, s := range sb {
					delete(b1, s)
					b2[s] = struct{}{}
					block[s] = k
					for c := 0; c < sigmaLen; c++ {
						sn := active2[s][c]
						if sn != nil && sn.sl == active[int(j)][c] {
							sn.remove()
							active2[s][c] = active[k][c].add(s)
						}
					}
				}
				// update pending
				for c := 0; c < sigmaLen; c++ {
					aj := active[int(j)][c].size
					ak := active[k][c].size
					ofs := c * statesLen
					if !pending2.Test(uint(ofs+int(j))) && 0 < aj && aj <= ak {
						pending2.Set(uint(ofs + int(j)))
						pending = append(pending, intPair{int(j), c})
					} else {
						pending2.Set(uint(ofs + k))
						pending = append(pending, intPair{k, c})
					}
				}
				k++
			}
			refine2.Clear(j)
			for _, s := range sb {
				split.Clear(uint(s))
			}
			splitblock[j] = splitblock[j][:0]
		}
		refine.ClearAll()
	}

	// make one new state per equivalence class; the class containing
	// the old initial state becomes state 0
	result := NewAutomaton()
	stateMap := make([]int, statesLen)
	stateRep := make([]int, k)

	result.CreateState()
	for n := 0; n < k; n++ {
		isInitial := false
		for q := range partition[n] {
			if q == 0 {
				isInitial = true
				break
			}
		}

		newState := 0
		if !isInitial {
			newState = result.CreateState()
		}
		for q := range partition[n] {
			stateMap[q] = newState
			result.SetAccept(newState, a.IsAccept(q))
			stateRep[newState] = q
		}
	}

	// build transitions from one representative per class
	var t Transition
	for n := 0; n < k; n++ {
		count := a.InitTransition(stateRep[n], &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			if err := result.AddTransition(n, stateMap[t.Dest], t.Min, t.Max); err != nil {
				return nil, err
			}
		}
	}
	result.FinishState()

	return RemoveDeadStates(result)
}
