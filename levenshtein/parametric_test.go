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

package levenshtein

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	for bits := uint(1); bits <= 5; bits++ {
		max := int(mask(bits))
		values := make([]int, 200)
		for i := range values {
			values[i] = i * 31 % (max + 1)
		}
		packed := pack(values, bits)
		for i, v := range values {
			if got := unpack(packed, i, bits); int(got) != v {
				t.Fatalf("bits=%d index=%d: unpack = %d, expected %d", bits, i, got, v)
			}
		}
	}
}

func TestUnpackStraddlesWordBoundary(t *testing.T) {
	// 5-bit fields: field 12 occupies bits 60..64, crossing the first
	// 64-bit word
	values := make([]int, 16)
	for i := range values {
		values[i] = i * 2 % 32
	}
	packed := pack(values, 5)
	if len(packed) < 2 {
		t.Fatalf("expected the packed data to span two words")
	}
	if got := unpack(packed, 12, 5); int(got) != values[12] {
		t.Errorf("straddling field = %d, expected %d", got, values[12])
	}
}

func TestPackRejectsOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for a value wider than its field")
		}
	}()
	pack([]int{9}, 3)
}

func TestReverseBits(t *testing.T) {
	if got := reverseBits(0x1, 3); got != 0x4 {
		t.Errorf("reverseBits(001) = %03b, expected 100", got)
	}
	if got := reverseBits(0x6, 3); got != 0x3 {
		t.Errorf("reverseBits(110) = %03b, expected 011", got)
	}
	if got := reverseBits(0x15, 5); got != 0x15 {
		t.Errorf("reverseBits of a palindrome must not change, got %05b", got)
	}
}

func TestCoreShapes(t *testing.T) {
	// every description starts from the unit multistate and must
	// produce a non-trivial, fully-packed table
	for _, tt := range []struct {
		name string
		core *parametricCore
	}{
		{"lev1", lev1},
		{"lev1T", lev1T},
		{"lev2", lev2},
		{"lev2T", lev2T},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if tt.core.numStates < 2 {
				t.Fatalf("suspiciously small parametric state count %d", tt.core.numStates)
			}
			if tt.core.diameter != 2*int(tt.core.maxDistance)+1 {
				t.Errorf("diameter = %d", tt.core.diameter)
			}
			if len(tt.core.minErrors) != tt.core.numStates {
				t.Errorf("minErrors length %d != state count %d",
					len(tt.core.minErrors), tt.core.numStates)
			}
			// the initial state has the single position (0, 0)
			if tt.core.minErrors[0] != 0 {
				t.Errorf("initial state minErrors = %d", tt.core.minErrors[0])
			}
		})
	}

	// more context distinguishes more states at higher degree
	if lev2.numStates <= lev1.numStates {
		t.Errorf("lev2 must have more parametric states than lev1")
	}
	if lev1T.numStates < lev1.numStates {
		t.Errorf("transpositions must not reduce the parametric state count")
	}
}

func TestNFAMatchAdvancesBase(t *testing.T) {
	nfa := &levenshteinNFA{maxDistance: 1}

	// a match on the window's first symbol subsumes every error
	// successor: the multistate shape repeats with its base advanced
	ms, incr := nfa.transitionMultistate([]position{{offset: 0, distance: 0}}, 1)
	if len(ms) != 1 || ms[0] != (position{offset: 0, distance: 0}) {
		t.Fatalf("unexpected successor multistate %v", ms)
	}
	if incr != 1 {
		t.Errorf("expected the base to advance by 1, got %d", incr)
	}

	// a mismatch spends one error on insert and substitute
	ms, incr = nfa.transitionMultistate([]position{{offset: 0, distance: 0}}, 0)
	if incr != 0 {
		t.Errorf("expected the base to stay, got %d", incr)
	}
	if len(ms) != 2 {
		t.Fatalf("expected insertion and substitution positions, got %v", ms)
	}

	// out of budget and no match: dead
	ms, _ = nfa.transitionMultistate([]position{{offset: 0, distance: 1}}, 0)
	if ms != nil {
		t.Errorf("expected a dead successor, got %v", ms)
	}
}

func TestSubsumption(t *testing.T) {
	p := position{offset: 1, distance: 0}
	q := position{offset: 0, distance: 1}
	if !p.subsumes(q) {
		t.Errorf("a cheaper position within the error gap must subsume")
	}
	if p.subsumes(position{offset: 3, distance: 1}) {
		t.Errorf("offset gap beyond the error gap must not subsume")
	}
	if p.subsumes(position{offset: 1, distance: 0}) {
		t.Errorf("a position must not subsume itself")
	}
	if p.subsumes(position{offset: 1, distance: 1, transpose: true}) {
		t.Errorf("subsumption must not cross position kinds")
	}
	tp := position{offset: 1, distance: 0, transpose: true}
	if !tp.subsumes(position{offset: 1, distance: 1, transpose: true}) {
		t.Errorf("transposing positions at one offset subsume by distance")
	}
}
