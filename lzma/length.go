// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// minMatchLen is added to every decoded length value to get the actual
// match length (kMatchMinLen in the original C++).
const minMatchLen = 2

// maxMatchLen is the largest match length the length decoder can produce:
// 2 + (8 + 8 + 256 - 1).
const maxMatchLen = minMatchLen + 16 + 256 - 1

// lengthDecoder produces a length offset in [0, 271], shared identically
// by the new-match and repeat-match paths (each keeps its own instance
// with independent probabilities), per spec.md §4.5.
type lengthDecoder struct {
	choice  prob
	choice2 prob
	low     [1 << maxPosBits]bitTree
	mid     [1 << maxPosBits]bitTree
	high    bitTree
}

func newLengthDecoder() *lengthDecoder {
	ld := &lengthDecoder{
		choice:  probInit,
		choice2: probInit,
		high:    makeBitTree(8),
	}
	for i := range ld.low {
		ld.low[i] = makeBitTree(3)
		ld.mid[i] = makeBitTree(3)
	}
	return ld
}

// decode returns the length offset for the given posState; callers add
// minMatchLen to get the actual match length.
func (ld *lengthDecoder) decode(d *rangeDecoder, posState uint32) (uint32, error) {
	b, err := d.decodeBit(&ld.choice)
	if err != nil {
		return 0, err
	}
	if b == 0 {
		return ld.low[posState].decodeForward(d)
	}
	b, err = d.decodeBit(&ld.choice2)
	if err != nil {
		return 0, err
	}
	if b == 0 {
		v, err := ld.mid[posState].decodeForward(d)
		return v + 8, err
	}
	v, err := ld.high.decodeForward(d)
	return v + 16, err
}
