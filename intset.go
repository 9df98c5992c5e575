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
	"strconv"
)

// Sets of automaton states keyed by the determinizer.  Both the
// mutable multiset and its frozen snapshot hash the same way, so a
// live set can be looked up against frozen keys: starting from
// h = |set|, each element v in ascending order folds in as
// h = 683*h + v.

// treeMapCutover is the distinct-element count at which sortedIntSet
// switches from the parallel sorted arrays to a map.
const treeMapCutover = 30

// sortedIntSet is a mutable sorted multiset of states.  Below
// treeMapCutover distinct elements it is a pair of parallel sorted
// slices (value, count); at the cutover it switches to a map, and it
// reverts to the slices when it empties.
type sortedIntSet struct {
	values []int
	counts []int
	dict   map[int]int
	useMap bool
}

func newSortedIntSet(capacity int) *sortedIntSet {
	return &sortedIntSet{
		values: make([]int, 0, capacity),
		counts: make([]int, 0, capacity),
		dict:   make(map[int]int),
	}
}

// incr inserts num or increments its count.
func (s *sortedIntSet) incr(num int) {
	if s.useMap {
		s.dict[num]++
		return
	}

	inserted := false
	for i, v := range s.values {
		if v == num {
			s.counts[i]++
			return
		} else if num < v {
			s.values = append(s.values, 0)
			copy(s.values[i+1:], s.values[i:])
			s.values[i] = num
			s.counts = append(s.counts, 0)
			copy(s.counts[i+1:], s.counts[i:])
			s.counts[i] = 1
			inserted = true
			break
		}
	}

	if !inserted {
		s.values = append(s.values, num)
		s.counts = append(s.counts, 1)
	}

	if len(s.values) == treeMapCutover {
		s.useMap = true
		for i, v := range s.values {
			s.dict[v] = s.counts[i]
		}
	}
}

// decr decrements num's count, erasing it at zero.  Decrementing a
// value that is not present is a caller bug.
func (s *sortedIntSet) decr(num int) {
	if s.useMap {
		count, ok := s.dict[num]
		assert(ok, "decr of absent value "+strconv.Itoa(num))
		if count == 1 {
			delete(s.dict, num)
			if len(s.dict) == 0 {
				s.useMap = false
				s.values = s.values[:0]
				s.counts = s.counts[:0]
			}
		} else {
			s.dict[num] = count - 1
		}
		return
	}

	for i, v := range s.values {
		if v == num {
			s.counts[i]--
			if s.counts[i] == 0 {
				s.values = append(s.values[:i], s.values[i+1:]...)
				s.counts = append(s.counts[:i], s.counts[i+1:]...)
			}
			return
		}
	}

	panic("decr of absent value " + strconv.Itoa(num))
}

func (s *sortedIntSet) size() int {
	if s.useMap {
		return len(s.dict)
	}
	return len(s.values)
}

// computeHash refreshes the sorted element view if the map
// representation is active and returns the set hash.
func (s *sortedIntSet) computeHash() int64 {
	if s.useMap {
		s.values = s.values[:0]
		for state := range s.dict {
			s.values = append(s.values, state)
		}
		sort.Ints(s.values)
	}
	hash := int64(len(s.values))
	for _, v := range s.values {
		hash = 683*hash + int64(v)
	}
	return hash
}

// equalsFrozen compares the element sets.  Valid only after
// computeHash refreshed the sorted view.
func (s *sortedIntSet) equalsFrozen(f *frozenIntSet) bool {
	if len(s.values) != len(f.values) {
		return false
	}
	for i, v := range s.values {
		if v != f.values[i] {
			return false
		}
	}
	return true
}

// freeze snapshots the current elements as the key of the subset
// state.  Valid only after computeHash refreshed the sorted view.
func (s *sortedIntSet) freeze(state int, hash int64) *frozenIntSet {
	values := make([]int, len(s.values))
	copy(values, s.values)
	return &frozenIntSet{values: values, hash: hash, state: state}
}

func (s *sortedIntSet) String() string {
	rv := "["
	for i, v := range s.values {
		if i > 0 {
			rv += " "
		}
		rv += fmt.Sprintf("%d:%d", v, s.counts[i])
	}
	return rv + "]"
}

// frozenIntSet is an immutable sorted state set with its precomputed
// hash, plus the determinized state standing for it.
type frozenIntSet struct {
	values []int
	hash   int64
	state  int
}

func newFrozenIntSet(values []int, state int) *frozenIntSet {
	hash := int64(len(values))
	for _, v := range values {
		hash = 683*hash + int64(v)
	}
	return &frozenIntSet{values: values, hash: hash, state: state}
}

func (f *frozenIntSet) String() string {
	rv := "["
	for i, v := range f.values {
		if i > 0 {
			rv += " "
		}
		rv += strconv.Itoa(v)
	}
	return rv + "]"
}
