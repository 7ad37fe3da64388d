// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "io"

// movebits defines the number of bits used for the updates of probability
// values.
const movebits = 5

// probbits defines the number of bits of a probability value.
const probbits = 11

// probInit is 0.5 represented as an 11-bit probability: the initial value
// of every probability slot.
const probInit prob = 1 << (probbits - 1)

// topValue is the normalization threshold for Range: it must never drop
// below it after a Normalize call.
const topValue = 1 << 24

// prob represents an adaptive prediction for the next binary symbol,
// stored as an 11-bit fraction of 2048.
type prob uint16

// dec decreases the probability proportionally to its current value,
// making symbol 1 more likely next time.
func (p *prob) dec() {
	*p -= *p >> movebits
}

// inc increases the probability proportionally to the distance from the
// maximum, making symbol 0 more likely next time.
func (p *prob) inc() {
	*p += ((1 << probbits) - *p) >> movebits
}

// bound computes the split point of the interval [0, r) assigned to
// symbol 0 under this probability.
func (p prob) bound(r uint32) uint32 {
	return (r >> probbits) * uint32(p)
}

// rangeDecoder implements the adaptive binary arithmetic decoder described
// in LZMA's range coding scheme. Range and Code must satisfy Code < Range
// at all times in a non-corrupted stream; Corrupted records a violation of
// that invariant without itself aborting decoding, following the
// reference decoder's advisory-flag behavior.
type rangeDecoder struct {
	r         io.ByteReader
	Range     uint32
	Code      uint32
	Corrupted bool
}

// newRangeDecoder creates and initializes a range decoder, reading five
// bytes from r. The first byte must be zero; if it is not, init reports an
// error and also marks the decoder Corrupted (the reference decoder
// proceeds to read the remaining bytes regardless so the stream position
// stays consistent, but this implementation treats a nonzero leading byte
// as fatal per spec.md §7, returning before further reads).
func newRangeDecoder(r io.ByteReader) (*rangeDecoder, error) {
	d := &rangeDecoder{r: r}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *rangeDecoder) init() error {
	d.Range = 0xffffffff
	d.Code = 0

	b, err := d.r.ReadByte()
	if err != nil {
		return err
	}
	if b != 0 {
		d.Corrupted = true
		return errCorrupted("range decoder: leading byte not zero")
	}

	for i := 0; i < 4; i++ {
		if err = d.updateCode(); err != nil {
			return err
		}
	}

	if d.Code >= d.Range {
		d.Corrupted = true
	}
	return nil
}

// updateCode reads one byte and shifts it into the low 8 bits of Code.
func (d *rangeDecoder) updateCode() error {
	b, err := d.r.ReadByte()
	if err != nil {
		return err
	}
	d.Code = (d.Code << 8) | uint32(b)
	return nil
}

// normalize restores the Range >= 2^24 invariant after it has shrunk,
// pulling in one more input byte each time it does so.
func (d *rangeDecoder) normalize() error {
	if d.Range < topValue {
		d.Range <<= 8
		if err := d.updateCode(); err != nil {
			return err
		}
	}
	return nil
}

// decodeBit decodes one adaptive bit using and updating *p.
func (d *rangeDecoder) decodeBit(p *prob) (uint32, error) {
	v := *p
	bound := v.bound(d.Range)
	var symbol uint32
	if d.Code < bound {
		d.Range = bound
		v.inc()
		symbol = 0
	} else {
		d.Code -= bound
		d.Range -= bound
		v.dec()
		symbol = 1
	}
	*p = v
	if err := d.normalize(); err != nil {
		return 0, err
	}
	return symbol, nil
}

// decodeDirectBits decodes n fixed-probability (0.5) bits, MSB first,
// returning them packed into the low n bits of the result. It uses the
// same branch-free subtract-and-restore form as the reference decoder.
func (d *rangeDecoder) decodeDirectBits(n int) (uint32, error) {
	var res uint32
	for ; n > 0; n-- {
		d.Range >>= 1
		d.Code -= d.Range
		t := 0 - (d.Code >> 31)
		d.Code += d.Range & t

		if d.Code == d.Range {
			d.Corrupted = true
		}

		if err := d.normalize(); err != nil {
			return 0, err
		}
		res <<= 1
		res += t + 1
	}
	return res, nil
}

// isFinishedOK reports whether Code has been driven to zero, the
// condition the reference decoder uses to confirm a clean finish.
func (d *rangeDecoder) isFinishedOK() bool {
	return d.Code == 0
}
