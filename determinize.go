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

import "sort"

// pointTransitions collects the transitions starting at one interval
// point and the transitions ending just before it.  Records are
// (dest, min, max) triples like the automaton store's.
type pointTransitions struct {
	point  int
	ends   []int
	starts []int
}

func newPointTransitions() *pointTransitions {
	return &pointTransitions{
		ends:   make([]int, 0, 6),
		starts: make([]int, 0, 6),
	}
}

func (pt *pointTransitions) reset(point int) {
	pt.point = point
	pt.ends = pt.ends[:0]
	pt.starts = pt.starts[:0]
}

// hashmapCutover is the point count at which pointTransitionSet stops
// scanning its small array and switches to a map, mirroring the
// sortedIntSet cutover.
const hashmapCutover = 30

// pointTransitionSet indexes the outgoing transitions of a subset by
// their interval endpoints: each transition registers a start event
// at min and an end event at max+1.
type pointTransitionSet struct {
	points  []*pointTransitions
	dict    map[int]*pointTransitions
	useHash bool
}

func newPointTransitionSet() *pointTransitionSet {
	return &pointTransitionSet{
		points: make([]*pointTransitions, 0, 5),
		dict:   make(map[int]*pointTransitions),
	}
}

func (pts *pointTransitionSet) next(point int) *pointTransitions {
	pt := newPointTransitions()
	pt.reset(point)
	pts.points = append(pts.points, pt)
	return pt
}

func (pts *pointTransitionSet) find(point int) *pointTransitions {
	if pts.useHash {
		pt, ok := pts.dict[point]
		if !ok {
			pt = pts.next(point)
			pts.dict[point] = pt
		}
		return pt
	}

	for _, pt := range pts.points {
		if pt.point == point {
			return pt
		}
	}

	pt := pts.next(point)
	if len(pts.points) == hashmapCutover {
		for _, v := range pts.points {
			pts.dict[v.point] = v
		}
		pts.useHash = true
	}
	return pt
}

func (pts *pointTransitionSet) add(t *Transition) {
	start := pts.find(t.Min)
	start.starts = append(start.starts, t.Dest, t.Min, t.Max)

	end := pts.find(1 + t.Max)
	end.ends = append(end.ends, t.Dest, t.Min, t.Max)
}

func (pts *pointTransitionSet) sort() {
	sort.Slice(pts.points, func(i, j int) bool {
		return pts.points[i].point < pts.points[j].point
	})
}

func (pts *pointTransitionSet) reset() {
	if pts.useHash {
		pts.dict = make(map[int]*pointTransitions)
		pts.useHash = false
	}
	pts.points = pts.points[:0]
}

// Determinize returns a deterministic automaton accepting the same
// language as a, built by subset construction.  Distinct symbol
// intervals are swept through their start and end points so each new
// state's outgoing transitions come out as disjoint intervals.  An
// already-deterministic input (or one with at most one state) is
// returned unchanged.
//
// Worst case the result is exponential in the number of input states;
// in practice it is linear in the number of distinct subsets
// encountered.
func Determinize(a *Automaton) (*Automaton, error) {
	if a.IsDeterministic() || a.NumStates() <= 1 {
		return a, nil
	}

	b := NewBuilder()
	b.CreateState()
	b.SetAccept(0, a.IsAccept(0))

	initial := newFrozenIntSet([]int{0}, 0)
	worklist := []*frozenIntSet{initial}

	newstate := newRegistry()
	newstate.insert(initial)

	points := newPointTransitionSet()
	statesSet := newSortedIntSet(5)

	var t Transition

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]

		// collate all outgoing transitions by min / 1+max
		for _, s0 := range s.values {
			count := a.InitTransition(s0, &t)
			for i := 0; i < count; i++ {
				a.GetNextTransition(&t)
				points.add(&t)
			}
		}

		if len(points.points) == 0 {
			// no outgoing transitions
			continue
		}

		points.sort()

		lastPoint := -1
		accCount := 0
		r := s.state

		for _, pt := range points.points {
			point := pt.point

			if statesSet.size() > 0 {
				assert(lastPoint != -1, "open interval without a start point")

				hash := statesSet.computeHash()
				q, ok := newstate.lookup(statesSet, hash)
				if !ok {
					q = b.CreateState()
					f := statesSet.freeze(q, hash)
					worklist = append(worklist, f)
					b.SetAccept(q, accCount > 0)
					newstate.insert(f)
				}

				if err := b.AddTransition(r, q, lastPoint, point-1); err != nil {
					return nil, err
				}
			}

			// transitions ending at this point close their interval
			for i := 0; i < len(pt.ends); i += 3 {
				dest := pt.ends[i]
				statesSet.decr(dest)
				if a.IsAccept(dest) {
					accCount--
				}
			}

			// transitions starting at this point open a new interval
			for i := 0; i < len(pt.starts); i += 3 {
				dest := pt.starts[i]
				statesSet.incr(dest)
				if a.IsAccept(dest) {
					accCount++
				}
			}

			lastPoint = point
		}

		points.reset()
		assert(statesSet.size() == 0, "live set not empty at end of subset")
	}

	return b.Finish(), nil
}
