// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lzmatest builds hand-specified LZMA streams for the decoder
// package's tests. It is the encode half the production lzma package
// deliberately omits: a test-only mirror of the range encoder and packet
// encoders, used to emit streams with exact, chosen packet sequences
// (literal runs, specific rep-distance matches) rather than whatever a
// general-purpose match finder would choose.
//
// Grounded on the teacher's lzma/range_encoder.go (shiftLow/low/cache
// carry handling) and the companion encode side of state.go,
// length_codec.go and dist_codec.go, mirrored here because those types
// are unexported in the lzma package and this package cannot reach them.
package lzmatest

import (
	"bytes"
	"io"

	"github.com/go-lzma/lzma/lzma"
)

const (
	movebits = 5
	probbits = 11
	probInit = uint16(1) << (probbits - 1)
	topValue = 1 << 24
)

func incProb(p uint16) uint16 { return p + (((1 << probbits) - p) >> movebits) }
func decProb(p uint16) uint16 { return p - (p >> movebits) }
func probBound(p uint16, r uint32) uint32 { return (r >> probbits) * uint32(p) }

// rangeEncoder mirrors the carry-propagating low/cache scheme of the
// teacher's range encoder.
type rangeEncoder struct {
	bw       io.ByteWriter
	low      uint64
	cacheLen int
	nrange   uint32
	cache    byte
}

func newRangeEncoder(bw io.ByteWriter) *rangeEncoder {
	return &rangeEncoder{bw: bw, nrange: 1<<32 - 1, cacheLen: 1}
}

func (e *rangeEncoder) shiftLow() error {
	if uint32(e.low) < 0xff000000 || (e.low>>32) != 0 {
		tmp := e.cache
		for {
			if err := e.bw.WriteByte(tmp + byte(e.low>>32)); err != nil {
				return err
			}
			tmp = 0xff
			e.cacheLen--
			if e.cacheLen <= 0 {
				break
			}
		}
		e.cache = byte(uint32(e.low) >> 24)
	}
	e.cacheLen++
	e.low = uint64(uint32(e.low) << 8)
	return nil
}

func (e *rangeEncoder) encodeBit(p *uint16, b uint32) error {
	bound := probBound(*p, e.nrange)
	if b&1 == 0 {
		e.nrange = bound
		*p = incProb(*p)
	} else {
		e.low += uint64(bound)
		e.nrange -= bound
		*p = decProb(*p)
	}
	if e.nrange < topValue {
		e.nrange <<= 8
		return e.shiftLow()
	}
	return nil
}

func (e *rangeEncoder) encodeDirectBits(v uint32, n int) error {
	for n--; n >= 0; n-- {
		e.nrange >>= 1
		b := (v >> uint(n)) & 1
		e.low += uint64(e.nrange) & (0 - uint64(b))
		if e.nrange < topValue {
			e.nrange <<= 8
			if err := e.shiftLow(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *rangeEncoder) close() error {
	for i := 0; i < 5; i++ {
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

// bitTree mirrors the decoder's forward/reverse probability tree, kept
// separate since lzma.bitTree is unexported.
type bitTree struct {
	probs []uint16
	bits  uint
}

func makeBitTree(bits uint) bitTree {
	t := bitTree{probs: make([]uint16, 1<<bits), bits: bits}
	for i := range t.probs {
		t.probs[i] = probInit
	}
	return t
}

func (t *bitTree) encodeForward(e *rangeEncoder, v uint32) error {
	m := uint32(1)
	for i := int(t.bits) - 1; i >= 0; i-- {
		b := (v >> uint(i)) & 1
		if err := e.encodeBit(&t.probs[m], b); err != nil {
			return err
		}
		m = (m << 1) | b
	}
	return nil
}

func (t *bitTree) encodeReverse(e *rangeEncoder, v uint32) error {
	return encodeReverseInto(t.probs, t.bits, e, v)
}

func encodeReverseInto(probs []uint16, bits uint, e *rangeEncoder, v uint32) error {
	m := uint32(1)
	for i := uint(0); i < bits; i++ {
		b := (v >> i) & 1
		if err := e.encodeBit(&probs[m], b); err != nil {
			return err
		}
		m = (m << 1) | b
	}
	return nil
}

// lengthEncoder mirrors lzma.lengthDecoder's Choice/Choice2/low/mid/high
// layout.
type lengthEncoder struct {
	choice, choice2 uint16
	low, mid        [16]bitTree
	high            bitTree
}

func newLengthEncoder() *lengthEncoder {
	le := &lengthEncoder{choice: probInit, choice2: probInit, high: makeBitTree(8)}
	for i := range le.low {
		le.low[i] = makeBitTree(3)
		le.mid[i] = makeBitTree(3)
	}
	return le
}

// encode emits the length offset lenOff (length - minMatchLen).
func (le *lengthEncoder) encode(e *rangeEncoder, posState uint32, lenOff uint32) error {
	if lenOff < 8 {
		if err := e.encodeBit(&le.choice, 0); err != nil {
			return err
		}
		return le.low[posState].encodeForward(e, lenOff)
	}
	if err := e.encodeBit(&le.choice, 1); err != nil {
		return err
	}
	if lenOff < 16 {
		if err := e.encodeBit(&le.choice2, 0); err != nil {
			return err
		}
		return le.mid[posState].encodeForward(e, lenOff-8)
	}
	if err := e.encodeBit(&le.choice2, 1); err != nil {
		return err
	}
	return le.high.encodeForward(e, lenOff-16)
}

const (
	lenToPosStates = 4
	startPosModel  = 4
	endPosModel    = 14
	posSlotBits    = 6
	alignBits      = 4
	eosDist        = 1<<32 - 1
	numFullDist    = 1 << (endPosModel >> 1)
)

// distEncoder mirrors lzma.distanceDecoder.
type distEncoder struct {
	posSlot    [lenToPosStates]bitTree
	posDecoder []uint16
	align      bitTree
}

func newDistEncoder() *distEncoder {
	de := &distEncoder{
		posDecoder: make([]uint16, 1+numFullDist-endPosModel),
		align:      makeBitTree(alignBits),
	}
	for i := range de.posSlot {
		de.posSlot[i] = makeBitTree(posSlotBits)
	}
	for i := range de.posDecoder {
		de.posDecoder[i] = probInit
	}
	return de
}

func distLenState(lenOff uint32) uint32 {
	if lenOff >= lenToPosStates {
		return lenToPosStates - 1
	}
	return lenOff
}

// posSlotFor returns the posSlot value that encodes zero-based distance
// dist, plus the number of low bits not covered by the slot index itself.
func posSlotFor(dist uint32) (slot uint32, directBits uint32) {
	if dist < startPosModel {
		return dist, 0
	}
	n := uint32(31)
	for (dist>>n)&1 == 0 {
		n--
	}
	slot = 2*n + (dist>>(n-1))&1
	directBits = n - 1
	return slot, directBits
}

// encode emits the zero-based distance dist for a match whose length
// offset is lenOff.
func (de *distEncoder) encode(e *rangeEncoder, lenOff uint32, dist uint32) error {
	slot, numDirectBits := posSlotFor(dist)
	if err := de.posSlot[distLenState(lenOff)].encodeForward(e, slot); err != nil {
		return err
	}
	if slot < startPosModel {
		return nil
	}
	base := (2 | (slot & 1)) << numDirectBits
	reduced := dist - base
	if slot < endPosModel {
		return encodeReverseInto(de.posDecoder[base-slot:], uint(numDirectBits), e, reduced)
	}
	if err := e.encodeDirectBits(reduced>>alignBits, int(numDirectBits-alignBits)); err != nil {
		return err
	}
	return de.align.encodeReverse(e, reduced&(1<<alignBits-1))
}

// literalEncoder mirrors lzma.literalDecoder.
type literalEncoder struct {
	probs  []uint16
	lc, lp uint
}

func newLiteralEncoder(lc, lp int) *literalEncoder {
	c := &literalEncoder{probs: make([]uint16, 0x300<<uint(lc+lp)), lc: uint(lc), lp: uint(lp)}
	for i := range c.probs {
		c.probs[i] = probInit
	}
	return c
}

// encode emits the bits of b against the literal-decoder's probability
// layout. It mirrors the decoder's break condition exactly: once a
// matched-mode bit diverges from matchByte, the remaining bits of b fall
// back to the plain per-symbol probabilities.
func (c *literalEncoder) encode(e *rangeEncoder, matchByte byte, useMatch bool, litState uint32, b byte) error {
	k := litState * 0x300
	probs := c.probs[k : k+0x300]
	symbol := uint32(1)
	m := uint32(matchByte)
	bitPos := 7
	if useMatch {
		for ; bitPos >= 0; bitPos-- {
			matchBit := (m >> 7) & 1
			m <<= 1
			bit := uint32(b>>uint(bitPos)) & 1
			idx := ((1 + matchBit) << 8) | symbol
			if err := e.encodeBit(&probs[idx], bit); err != nil {
				return err
			}
			symbol = (symbol << 1) | bit
			if matchBit != bit {
				bitPos--
				break
			}
		}
	}
	for ; bitPos >= 0; bitPos-- {
		bit := uint32(b>>uint(bitPos)) & 1
		if err := e.encodeBit(&probs[symbol], bit); err != nil {
			return err
		}
		symbol = (symbol << 1) | bit
	}
	return nil
}

// Encoder assembles a complete LZMA stream by hand: callers drive the
// packet sequence explicitly rather than letting a match finder choose
// it, which is what makes it suitable for building exact fixtures.
type Encoder struct {
	buf  bytes.Buffer
	re   *rangeEncoder
	rep  [4]uint32
	state uint32
	props lzma.Properties

	lit      *literalEncoder
	matchLen *lengthEncoder
	repLen   *lengthEncoder
	dist     *distEncoder

	isMatch    [12 << 4]uint16
	isRep      [12]uint16
	isRepG0    [12]uint16
	isRepG1    [12]uint16
	isRepG2    [12]uint16
	isRep0Long [12 << 4]uint16

	totalPos int64
	window   []byte
}

// NewStream starts a new fixture with the given header fields. unpackSize
// and sizeDefined control the header's declared-size field exactly as a
// real encoder would set them.
func NewStream(props lzma.Properties, dictSize uint32, unpackSize uint64, sizeDefined bool) *Encoder {
	enc := &Encoder{
		props:    props,
		lit:      newLiteralEncoder(props.LC(), props.LP()),
		matchLen: newLengthEncoder(),
		repLen:   newLengthEncoder(),
		dist:     newDistEncoder(),
	}
	for i := range enc.isMatch {
		enc.isMatch[i] = probInit
		enc.isRep0Long[i] = probInit
	}
	for i := range enc.isRep {
		enc.isRep[i] = probInit
		enc.isRepG0[i] = probInit
		enc.isRepG1[i] = probInit
		enc.isRepG2[i] = probInit
	}

	enc.buf.WriteByte(byte(props))
	putUint32LE(&enc.buf, dictSize)
	if sizeDefined {
		putUint64LE(&enc.buf, unpackSize)
	} else {
		putUint64LE(&enc.buf, 1<<64-1)
	}
	enc.re = newRangeEncoder(&enc.buf)
	return enc
}

func putUint32LE(b *bytes.Buffer, v uint32) {
	b.WriteByte(byte(v))
	b.WriteByte(byte(v >> 8))
	b.WriteByte(byte(v >> 16))
	b.WriteByte(byte(v >> 24))
}

func putUint64LE(b *bytes.Buffer, v uint64) {
	putUint32LE(b, uint32(v))
	putUint32LE(b, uint32(v>>32))
}

func (enc *Encoder) posState() uint32 {
	mask := uint32(1)<<uint(enc.props.PB()) - 1
	return uint32(enc.totalPos) & mask
}

func (enc *Encoder) litState() uint32 {
	var prevByte byte
	if len(enc.window) > 0 {
		prevByte = enc.window[len(enc.window)-1]
	}
	lp, lc := uint(enc.props.LP()), uint(enc.props.LC())
	mask := uint32(1)<<lp - 1
	return ((uint32(enc.totalPos) & mask) << lc) | (uint32(prevByte) >> (8 - lc))
}

func (enc *Encoder) appendLiteral(b byte) {
	enc.window = append(enc.window, b)
	enc.totalPos++
}

func (enc *Encoder) appendMatch(dist uint32, length int) {
	for i := 0; i < length; i++ {
		enc.window = append(enc.window, enc.window[len(enc.window)-int(dist)-1])
	}
	enc.totalPos += int64(length)
}

func (enc *Encoder) updateLiteral() {
	switch {
	case enc.state < 4:
		enc.state = 0
	case enc.state < 10:
		enc.state -= 3
	default:
		enc.state -= 6
	}
}

func (enc *Encoder) updateMatch() {
	if enc.state < 7 {
		enc.state = 7
	} else {
		enc.state = 10
	}
}

func (enc *Encoder) updateRep() {
	if enc.state < 7 {
		enc.state = 8
	} else {
		enc.state = 11
	}
}

func (enc *Encoder) updateShortRep() {
	if enc.state < 7 {
		enc.state = 9
	} else {
		enc.state = 11
	}
}

// Literal emits a single literal byte.
func (enc *Encoder) Literal(b byte) error {
	state2 := (enc.state << 4) | enc.posState()
	if err := enc.re.encodeBit(&enc.isMatch[state2], 0); err != nil {
		return err
	}
	litState := enc.litState()
	useMatch := enc.state >= 7
	var matchByte byte
	if useMatch {
		matchByte = enc.window[len(enc.window)-int(enc.rep[0])-1]
	}
	if err := enc.lit.encode(enc.re, matchByte, useMatch, litState, b); err != nil {
		return err
	}
	enc.appendLiteral(b)
	enc.updateLiteral()
	return nil
}

// Match emits a new-match packet at the given one-based distance and
// length, rotating it into the rep-distance cache as rep0.
func (enc *Encoder) Match(dist uint32, length int) error {
	state2 := (enc.state << 4) | enc.posState()
	if err := enc.re.encodeBit(&enc.isMatch[state2], 1); err != nil {
		return err
	}
	if err := enc.re.encodeBit(&enc.isRep[enc.state], 0); err != nil {
		return err
	}
	lenOff := uint32(length - 2)
	posState := enc.posState()
	if err := enc.matchLen.encode(enc.re, posState, lenOff); err != nil {
		return err
	}
	if err := enc.dist.encode(enc.re, lenOff, dist-1); err != nil {
		return err
	}
	enc.rep[3], enc.rep[2], enc.rep[1], enc.rep[0] = enc.rep[2], enc.rep[1], enc.rep[0], dist-1
	enc.appendMatch(dist-1, length)
	enc.updateMatch()
	return nil
}

// Rep emits a repeat-match packet reusing rep-cache slot idx (0-3).
func (enc *Encoder) Rep(idx int, length int) error {
	state2 := (enc.state << 4) | enc.posState()
	if err := enc.re.encodeBit(&enc.isMatch[state2], 1); err != nil {
		return err
	}
	if err := enc.re.encodeBit(&enc.isRep[enc.state], 1); err != nil {
		return err
	}
	dist := enc.rep[idx]
	if idx == 0 {
		if err := enc.re.encodeBit(&enc.isRepG0[enc.state], 0); err != nil {
			return err
		}
		if err := enc.re.encodeBit(&enc.isRep0Long[state2], 1); err != nil {
			return err
		}
	} else {
		if err := enc.re.encodeBit(&enc.isRepG0[enc.state], 1); err != nil {
			return err
		}
		if idx == 1 {
			if err := enc.re.encodeBit(&enc.isRepG1[enc.state], 0); err != nil {
				return err
			}
		} else {
			if err := enc.re.encodeBit(&enc.isRepG1[enc.state], 1); err != nil {
				return err
			}
			if idx == 2 {
				if err := enc.re.encodeBit(&enc.isRepG2[enc.state], 0); err != nil {
					return err
				}
			} else {
				if err := enc.re.encodeBit(&enc.isRepG2[enc.state], 1); err != nil {
					return err
				}
			}
		}
		for i := idx; i > 0; i-- {
			enc.rep[i] = enc.rep[i-1]
		}
		enc.rep[0] = dist
	}

	lenOff := uint32(length - 2)
	posState := enc.posState()
	if err := enc.repLen.encode(enc.re, posState, lenOff); err != nil {
		return err
	}
	enc.appendMatch(dist, length)
	enc.updateRep()
	return nil
}

// ShortRep emits a one-byte repeat of rep0.
func (enc *Encoder) ShortRep() error {
	state2 := (enc.state << 4) | enc.posState()
	if err := enc.re.encodeBit(&enc.isMatch[state2], 1); err != nil {
		return err
	}
	if err := enc.re.encodeBit(&enc.isRep[enc.state], 1); err != nil {
		return err
	}
	if err := enc.re.encodeBit(&enc.isRepG0[enc.state], 0); err != nil {
		return err
	}
	if err := enc.re.encodeBit(&enc.isRep0Long[state2], 0); err != nil {
		return err
	}
	enc.appendMatch(enc.rep[0], 1)
	enc.updateShortRep()
	return nil
}

// EndMarker emits the explicit end-of-stream marker (a new match at
// distance 2^32).
func (enc *Encoder) EndMarker() error {
	state2 := (enc.state << 4) | enc.posState()
	if err := enc.re.encodeBit(&enc.isMatch[state2], 1); err != nil {
		return err
	}
	if err := enc.re.encodeBit(&enc.isRep[enc.state], 0); err != nil {
		return err
	}
	lenOff := uint32(0)
	posState := enc.posState()
	if err := enc.matchLen.encode(enc.re, posState, lenOff); err != nil {
		return err
	}
	return enc.dist.encode(enc.re, lenOff, eosDist)
}

// Bytes finishes the range coder and returns the complete stream.
func (enc *Encoder) Bytes() ([]byte, error) {
	if err := enc.re.close(); err != nil {
		return nil, err
	}
	return enc.buf.Bytes(), nil
}
