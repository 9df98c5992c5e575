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

import "sort"

// The nondeterministic Levenshtein automaton, described positionally:
// a position (offset, distance) means "offset query symbols consumed
// with distance errors spent".  A transposition in flight is a third
// coordinate: the position has matched word[offset+1] and still owes
// word[offset].  Multisets of positions ("multistates") are what the
// parametric construction enumerates; they are kept normalized by
// subtracting the smallest offset, so equal shapes at different word
// positions collapse into one parametric state.

type position struct {
	offset    int
	distance  uint8
	transpose bool
}

// subsumes reports whether p makes q redundant: every completion
// reachable through q is reachable through p at no extra cost.  The
// rule is applied only between positions of the same kind.
func (p position) subsumes(q position) bool {
	if p.transpose != q.transpose {
		return false
	}
	if p.distance >= q.distance {
		return false
	}
	if p.transpose {
		return p.offset == q.offset
	}
	diff := p.offset - q.offset
	if diff < 0 {
		diff = -diff
	}
	return diff <= int(q.distance-p.distance)
}

type levenshteinNFA struct {
	maxDistance uint8
	damerau     bool
}

// transitionPosition emits the successors of p for one consumed
// symbol.  chi is the characteristic bit vector shifted so that bit 0
// answers "does the symbol equal word[p.offset]".
func (nfa *levenshteinNFA) transitionPosition(p position, chi uint32, out []position) []position {
	if p.transpose {
		if chi&1 != 0 {
			out = append(out, position{p.offset + 2, p.distance, false})
		}
		return out
	}

	if chi&1 != 0 {
		// match
		out = append(out, position{p.offset + 1, p.distance, false})
	}
	if p.distance < nfa.maxDistance {
		// insertion
		out = append(out, position{p.offset, p.distance + 1, false})
		// substitution
		out = append(out, position{p.offset + 1, p.distance + 1, false})
		// deletion of d query symbols followed by a match
		budget := int(nfa.maxDistance - p.distance)
		for d := 1; d <= budget; d++ {
			if chi>>uint(d)&1 != 0 {
				out = append(out, position{p.offset + 1 + d, p.distance + uint8(d), false})
			}
		}
		if nfa.damerau && chi>>1&1 != 0 {
			// begin a transposition: word[offset+1] consumed first
			out = append(out, position{p.offset, p.distance + 1, true})
		}
	}
	return out
}

// transitionMultistate applies one consumed symbol to a normalized
// multistate.  chi is relative to the multistate's base offset.  It
// returns the normalized successor multistate (nil when dead) and the
// amount its base advanced.
func (nfa *levenshteinNFA) transitionMultistate(ms []position, chi uint32) ([]position, int) {
	var dest []position
	for _, p := range ms {
		dest = nfa.transitionPosition(p, chi>>uint(p.offset), dest)
	}
	dest = reduce(dest)
	if len(dest) == 0 {
		return nil, 0
	}
	base := dest[0].offset
	for i := range dest {
		dest[i].offset -= base
	}
	return dest, base
}

// reduce sorts a raw successor list, removes duplicates and subsumed
// positions.
func reduce(ms []position) []position {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].offset != ms[j].offset {
			return ms[i].offset < ms[j].offset
		}
		if ms[i].distance != ms[j].distance {
			return ms[i].distance < ms[j].distance
		}
		return !ms[i].transpose && ms[j].transpose
	})

	out := make([]position, 0, len(ms))
	for i, p := range ms {
		if i > 0 && p == ms[i-1] {
			continue
		}
		keep := true
		for _, q := range ms {
			if q != p && q.subsumes(p) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}
