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

// registry maps frozen state sets to their determinized state.  It is
// a plain chained hash table over the shared 683 set hash; lookups
// probe with the live multiset so no allocation happens on the hit
// path.
type registry struct {
	buckets map[int64][]*frozenIntSet
}

func newRegistry() *registry {
	return &registry{
		buckets: make(map[int64][]*frozenIntSet),
	}
}

// lookup returns the state registered for the element set currently
// held by s, probing with hash as returned by s.computeHash.
func (r *registry) lookup(s *sortedIntSet, hash int64) (int, bool) {
	for _, f := range r.buckets[hash] {
		if s.equalsFrozen(f) {
			return f.state, true
		}
	}
	return 0, false
}

// insert registers a frozen set under its hash.
func (r *registry) insert(f *frozenIntSet) {
	r.buckets[f.hash] = append(r.buckets[f.hash], f)
}
