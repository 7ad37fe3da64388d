// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// numStates is the size of the packet-type state machine described in
// spec.md §4.4.
const numStates = 12

// maxPosBits bounds pb and lp: posState and the literal position context
// are both indexed by at most this many low bits of the total position.
const maxPosBits = 4

// packetState tracks the finite-state machine remembering the kind of the
// last few packets decoded (literal, match, rep, short rep), and derives
// the posState / literal-state context values from it and the window's
// total position. Grounded in state.go / op_codec.go's identical
// updateState* quartet and states()/litState() helpers.
type packetState struct {
	props Properties
	state uint32
	rep   [4]uint32
}

func newPacketState(props Properties) *packetState {
	return &packetState{props: props}
}

// posState returns the low pb bits of the window's total output position,
// used to select among pb-indexed probability slices.
func (s *packetState) posState(totalPos int64) uint32 {
	mask := uint32(1)<<uint(s.props.PB()) - 1
	return uint32(totalPos) & mask
}

// litState computes the literal-state index from the previous output byte
// and the current total position, per spec.md §4.7.
func (s *packetState) litState(prevByte byte, totalPos int64) uint32 {
	lp, lc := uint(s.props.LP()), uint(s.props.LC())
	mask := uint32(1)<<lp - 1
	return ((uint32(totalPos) & mask) << lc) | (uint32(prevByte) >> (8 - lc))
}

// updateLiteral transitions the state after a literal packet.
func (s *packetState) updateLiteral() {
	switch {
	case s.state < 4:
		s.state = 0
	case s.state < 10:
		s.state -= 3
	default:
		s.state -= 6
	}
}

// updateMatch transitions the state after a new-match packet.
func (s *packetState) updateMatch() {
	if s.state < 7 {
		s.state = 7
	} else {
		s.state = 10
	}
}

// updateRep transitions the state after a repeat-match packet.
func (s *packetState) updateRep() {
	if s.state < 7 {
		s.state = 8
	} else {
		s.state = 11
	}
}

// updateShortRep transitions the state after a short-rep packet.
func (s *packetState) updateShortRep() {
	if s.state < 7 {
		s.state = 9
	} else {
		s.state = 11
	}
}
