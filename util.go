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

import "fmt"

const bytesPerInt = 8

// oversize computes a capacity at least minTargetSize, padded so that
// repeated growth is amortized linear: the pad is max(3, size>>3)
// elements, rounded up to keep the allocation a whole number of
// 8-byte words.
func oversize(minTargetSize, bytesPerElement int) int {
	if minTargetSize < 0 {
		panic(fmt.Sprintf("invalid array size %d", minTargetSize))
	}
	if minTargetSize == 0 {
		return 0
	}
	extra := minTargetSize >> 3
	if extra < 3 {
		extra = 3
	}
	newSize := minTargetSize + extra
	switch bytesPerElement {
	case 4:
		return (newSize + 1) &^ 1
	case 2:
		return (newSize + 3) &^ 3
	case 1:
		return (newSize + 7) &^ 7
	default:
		return newSize
	}
}

// growInts returns in, extended to at least minSize elements,
// reallocating with oversize when the capacity is exhausted.
func growInts(in []int, minSize int) []int {
	if minSize <= cap(in) {
		return in[:minSize]
	}
	out := make([]int, minSize, oversize(minSize, bytesPerInt))
	copy(out, in)
	return out
}

// findIndex locates the largest entry of points which is <= c, or 0
// if there is no such entry.  points must be sorted ascending.
func findIndex(c int, points []int) int {
	a, b := 0, len(points)
	for b-a > 1 {
		d := int(uint(a+b) >> 1)
		if points[d] > c {
			b = d
		} else if points[d] < c {
			a = d
		} else {
			return d
		}
	}
	return a
}

func assert(ok bool, msg string) {
	if !ok {
		panic(msg)
	}
}
