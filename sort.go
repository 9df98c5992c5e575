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

// The automaton store keeps transitions as flat (dest, min, max)
// records inside one int slice.  Sorting a state's records by
// different tuple orders is expressed as sort.Interface views over a
// window of that slice, so the records are rearranged in place.

// destMinMaxView sorts the count records starting at base by
// (dest, min, max).
type destMinMaxView struct {
	a     []int
	base  int
	count int
}

func (v destMinMaxView) Len() int { return v.count }

func (v destMinMaxView) Swap(i, j int) {
	pi, pj := v.base+3*i, v.base+3*j
	v.a[pi], v.a[pj] = v.a[pj], v.a[pi]
	v.a[pi+1], v.a[pj+1] = v.a[pj+1], v.a[pi+1]
	v.a[pi+2], v.a[pj+2] = v.a[pj+2], v.a[pi+2]
}

func (v destMinMaxView) Less(i, j int) bool {
	pi, pj := v.base+3*i, v.base+3*j
	if v.a[pi] != v.a[pj] { // dest
		return v.a[pi] < v.a[pj]
	}
	if v.a[pi+1] != v.a[pj+1] { // min
		return v.a[pi+1] < v.a[pj+1]
	}
	return v.a[pi+2] < v.a[pj+2] // max
}

// minMaxDestView sorts the count records starting at base by
// (min, max, dest).
type minMaxDestView struct {
	a     []int
	base  int
	count int
}

func (v minMaxDestView) Len() int { return v.count }

func (v minMaxDestView) Swap(i, j int) {
	destMinMaxView(v).Swap(i, j)
}

func (v minMaxDestView) Less(i, j int) bool {
	pi, pj := v.base+3*i, v.base+3*j
	if v.a[pi+1] != v.a[pj+1] { // min
		return v.a[pi+1] < v.a[pj+1]
	}
	if v.a[pi+2] != v.a[pj+2] { // max
		return v.a[pi+2] < v.a[pj+2]
	}
	return v.a[pi] < v.a[pj] // dest
}

// srcMinMaxDestView sorts buffered builder records, stored as
// (src, dest, min, max) quads, by (src, min, max, dest).
type srcMinMaxDestView struct {
	a     []int
	count int
}

func (v srcMinMaxDestView) Len() int { return v.count }

func (v srcMinMaxDestView) Swap(i, j int) {
	pi, pj := 4*i, 4*j
	for k := 0; k < 4; k++ {
		v.a[pi+k], v.a[pj+k] = v.a[pj+k], v.a[pi+k]
	}
}

func (v srcMinMaxDestView) Less(i, j int) bool {
	pi, pj := 4*i, 4*j
	if v.a[pi] != v.a[pj] { // src
		return v.a[pi] < v.a[pj]
	}
	if v.a[pi+2] != v.a[pj+2] { // min
		return v.a[pi+2] < v.a[pj+2]
	}
	if v.a[pi+3] != v.a[pj+3] { // max
		return v.a[pi+3] < v.a[pj+3]
	}
	return v.a[pi+1] < v.a[pj+1] // dest
}
