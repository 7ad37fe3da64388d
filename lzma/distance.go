// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// Constants governing the distance codec's structure, per spec.md §4.6.
const (
	lenToPosStates = 4  // number of length-selected posSlot decoders
	startPosModel  = 4  // first posSlot using the position models
	endPosModel    = 14 // first posSlot using direct bits + align tree
	posSlotBits    = 6
	alignBits      = 4

	// eosDist is the distance offset that signals the end-of-stream
	// marker (0xffffffff).
	eosDist = 1<<32 - 1
)

// distanceDecoder decodes the zero-based distance offset of a new match.
// Callers add 1 to get the actual window distance.
type distanceDecoder struct {
	posSlot    [lenToPosStates]bitTree
	posDecoder []prob // shared reverse-tree storage for posSlot in [4,14)
	align      bitTree
}

func newDistanceDecoder() *distanceDecoder {
	dc := &distanceDecoder{
		// One extra leading slot absorbs the dist-posSlot index
		// offset used below, mirroring PosDecoders[1 + ...] in the
		// original C++.
		posDecoder: make([]prob, 1+numFullDistances-endPosModel),
		align:      makeBitTree(alignBits),
	}
	for i := range dc.posSlot {
		dc.posSlot[i] = makeBitTree(posSlotBits)
	}
	for i := range dc.posDecoder {
		dc.posDecoder[i] = probInit
	}
	return dc
}

// numFullDistances is 1 << (endPosModel >> 1) = 2^7, the size bound used
// to size the shared PosDecoders table.
const numFullDistances = 1 << (endPosModel >> 1)

// lenState clamps a decoded length offset to the range of posSlot
// decoders available.
func lenState(length uint32) uint32 {
	if length >= lenToPosStates {
		return lenToPosStates - 1
	}
	return length
}

// decode returns the zero-based distance offset for a match of the given
// length offset (pre-minMatchLen value, as produced by lengthDecoder).
func (dc *distanceDecoder) decode(d *rangeDecoder, length uint32) (uint32, error) {
	posSlot, err := dc.posSlot[lenState(length)].decodeForward(d)
	if err != nil {
		return 0, err
	}
	if posSlot < startPosModel {
		return posSlot, nil
	}

	numDirectBits := (posSlot >> 1) - 1
	dist := (2 | (posSlot & 1)) << numDirectBits

	if posSlot < endPosModel {
		base := dist - posSlot
		v, err := decodeReverseFrom(dc.posDecoder[base:], uint(numDirectBits), d)
		if err != nil {
			return 0, err
		}
		return dist + v, nil
	}

	v, err := d.decodeDirectBits(int(numDirectBits - alignBits))
	if err != nil {
		return 0, err
	}
	dist += v << alignBits

	a, err := dc.align.decodeReverse(d)
	if err != nil {
		return 0, err
	}
	return dist + a, nil
}
