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

import "fmt"

// A parametric description encodes a Levenshtein automaton of degree
// n abstractly: a state is a pair (stateIndex, offset) packed as
// absState = stateIndex*(w+1) + offset for word length w, and
// transitions are looked up by characteristic vector in tables shared
// by every query word of that degree.
//
// The four descriptions (degree 1 and 2, with and without
// transposition) are computed once at start-up by enumerating the
// normalized multistates of the Levenshtein NFA, then frozen into
// bit-packed tables: each table value occupies a fixed declared
// number of bits inside []uint64 words and is read back with unpack.
// Freezing the tables keeps the per-query DFA construction free of
// NFA machinery, at a few milliseconds of one-time cost.

// parametricCore holds the word-length-independent tables of one
// description.
type parametricCore struct {
	maxDistance uint8
	damerau     bool

	// diameter is the characteristic vector width, 2n+1.
	diameter int

	// numStates is the number of parametric state indices.
	numStates int

	// minErrors[s] is min(distance - offset) over the positions of
	// parametric state s; a state accepts at word offset o when
	// w - o + minErrors[s] <= n.
	minErrors []int8

	// toStates[chi*numStates+s], stateBits wide, is the successor
	// state index plus one (0 means dead); offsetIncrs, incrBits
	// wide, is how far the offset advances.
	toStates    []uint64
	stateBits   uint
	offsetIncrs []uint64
	incrBits    uint
}

// The process-wide descriptions, one per (degree, transposition)
// pair.
var (
	lev1  = generateCore(1, false)
	lev1T = generateCore(1, true)
	lev2  = generateCore(2, false)
	lev2T = generateCore(2, true)
)

func coreFor(n uint8, transpositions bool) *parametricCore {
	switch {
	case n == 1 && !transpositions:
		return lev1
	case n == 1 && transpositions:
		return lev1T
	case n == 2 && !transpositions:
		return lev2
	default:
		return lev2T
	}
}

// generateCore enumerates every reachable normalized multistate of
// the degree-n NFA under every characteristic vector and freezes the
// result into packed tables.
func generateCore(maxDistance uint8, damerau bool) *parametricCore {
	nfa := &levenshteinNFA{maxDistance: maxDistance, damerau: damerau}
	diameter := 2*int(maxDistance) + 1
	numChi := 1 << uint(diameter)

	shapes := [][]position{{{offset: 0, distance: 0}}}
	index := map[string]int{shapeKey(shapes[0]): 0}

	// edges[s*numChi+chi] = (successor+1, increment)
	type edge struct{ to, incr int }
	var edges []edge
	maxIncr := 0

	for i := 0; i < len(shapes); i++ {
		for chiIdx := 0; chiIdx < numChi; chiIdx++ {
			// table indexes use the construction's vector layout:
			// the first position of the window is the high bit
			chi := reverseBits(uint32(chiIdx), uint(diameter))
			dest, incr := nfa.transitionMultistate(shapes[i], chi)
			if dest == nil {
				edges = append(edges, edge{0, 0})
				continue
			}
			key := shapeKey(dest)
			id, ok := index[key]
			if !ok {
				id = len(shapes)
				shapes = append(shapes, dest)
				index[key] = id
			}
			if incr > maxIncr {
				maxIncr = incr
			}
			edges = append(edges, edge{id + 1, incr})
		}
	}

	numStates := len(shapes)
	core := &parametricCore{
		maxDistance: maxDistance,
		damerau:     damerau,
		diameter:    diameter,
		numStates:   numStates,
		minErrors:   make([]int8, numStates),
		stateBits:   bitsRequired(numStates),
		incrBits:    bitsRequired(maxIncr),
	}

	for s, shape := range shapes {
		minErr := int(shape[0].distance) - shape[0].offset
		for _, p := range shape[1:] {
			if e := int(p.distance) - p.offset; e < minErr {
				minErr = e
			}
		}
		core.minErrors[s] = int8(minErr)
	}

	// repack from state-major exploration order to the
	// chi*numStates+state table layout
	toStates := make([]int, numChi*numStates)
	offsetIncrs := make([]int, numChi*numStates)
	for s := 0; s < numStates; s++ {
		for chiIdx := 0; chiIdx < numChi; chiIdx++ {
			e := edges[s*numChi+chiIdx]
			toStates[chiIdx*numStates+s] = e.to
			offsetIncrs[chiIdx*numStates+s] = e.incr
		}
	}
	core.toStates = pack(toStates, core.stateBits)
	core.offsetIncrs = pack(offsetIncrs, core.incrBits)
	return core
}

func shapeKey(ms []position) string {
	key := make([]byte, 0, 3*len(ms))
	for _, p := range ms {
		t := byte(0)
		if p.transpose {
			t = 1
		}
		key = append(key, byte(p.offset), p.distance, t)
	}
	return string(key)
}

func reverseBits(v uint32, width uint) uint32 {
	var rv uint32
	for i := uint(0); i < width; i++ {
		rv = rv<<1 | v>>i&1
	}
	return rv
}

// parametricDescription is one description instantiated for a word
// length.
type parametricDescription struct {
	core *parametricCore
	w    int
	n    uint8
}

// size returns the number of absolute states, numStates*(w+1).
func (d *parametricDescription) size() int {
	return d.core.numStates * (d.w + 1)
}

// isAccept reports whether absState accepts: the remaining word can
// be consumed within the remaining error budget.
func (d *parametricDescription) isAccept(absState int) bool {
	state := absState / (d.w + 1)
	offset := absState % (d.w + 1)
	return d.w-offset+int(d.core.minErrors[state]) <= int(d.n)
}

// getPosition returns the word offset of absState.
func (d *parametricDescription) getPosition(absState int) int {
	return absState % (d.w + 1)
}

// transition returns the successor of absState after consuming a
// symbol whose characteristic vector at the given word position is
// vector, or -1 when the successor is dead.  Near the end of the word
// the vector carries fewer than diameter bits; position determines
// the padding.  Every parametric state is instantiated at every
// offset, including combinations no input reaches; a successor whose
// offset would pass the word end is likewise reported as -1.
func (d *parametricDescription) transition(absState, position, vector int) int {
	state := absState / (d.w + 1)
	offset := absState % (d.w + 1)

	width := d.w - position
	if width > d.core.diameter {
		width = d.core.diameter
	}
	chi := vector << uint(d.core.diameter-width)

	loc := chi*d.core.numStates + state
	next := int(unpack(d.core.toStates, loc, d.core.stateBits)) - 1
	if next == -1 {
		return -1
	}
	incr := int(unpack(d.core.offsetIncrs, loc, d.core.incrBits))
	if offset+incr > d.w {
		return -1
	}
	return next*(d.w+1) + offset + incr
}

// bitsRequired returns how many bits hold values in [0, maxValue].
func bitsRequired(maxValue int) uint {
	bits := uint(1)
	for maxValue>>bits != 0 {
		bits++
	}
	return bits
}

// unpack extracts the index'th bits-wide value from the packed words,
// including values straddling a 64-bit boundary.
func unpack(data []uint64, index int, bits uint) uint64 {
	bitLoc := uint64(bits) * uint64(index)
	dataLoc := int(bitLoc >> 6)
	bitStart := uint(bitLoc & 63)
	if bitStart+bits <= 64 {
		return data[dataLoc] >> bitStart & mask(bits)
	}
	end := 64 - bitStart
	return data[dataLoc]>>bitStart&mask(end) |
		data[dataLoc+1]&mask(bits-end)<<end
}

// pack stores each value in bits bits, little-endian within and
// across the 64-bit words, the layout unpack reads.
func pack(values []int, bits uint) []uint64 {
	out := make([]uint64, (len(values)*int(bits)+63)>>6)
	for i, v := range values {
		if uint64(v) > mask(bits) {
			panic(fmt.Sprintf("value %d does not fit in %d bits", v, bits))
		}
		bitLoc := uint64(bits) * uint64(i)
		dataLoc := int(bitLoc >> 6)
		bitStart := uint(bitLoc & 63)
		out[dataLoc] |= uint64(v) << bitStart
		if bitStart+bits > 64 {
			out[dataLoc+1] = uint64(v) >> (64 - bitStart)
		}
	}
	return out
}

func mask(bits uint) uint64 {
	return 1<<bits - 1
}
