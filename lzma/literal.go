// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// literalDecoder decodes single literal bytes, optionally contextualized
// against the byte a just-finished match would have produced (the
// "matched literal" mode entered right after a match or repeat), per
// spec.md §4.7. It holds 0x300 probabilities per literal-state slot: the
// first 0x100 for the plain decode loop, the remaining 0x200 for the two
// possible match-bit contexts of the matched mode.
type literalDecoder struct {
	probs []prob
	lc    uint
	lp    uint
}

func newLiteralDecoder(lc, lp int) *literalDecoder {
	c := &literalDecoder{
		probs: make([]prob, 0x300<<uint(lc+lp)),
		lc:    uint(lc),
		lp:    uint(lp),
	}
	for i := range c.probs {
		c.probs[i] = probInit
	}
	return c
}

// decode decodes one literal byte. matchByte is the byte the window would
// return at rep0+1 and is only consulted when state >= 7 (i.e. the
// previous packet was a match or repeat).
func (c *literalDecoder) decode(d *rangeDecoder, state uint32, matchByte byte, litState uint32) (byte, error) {
	k := litState * 0x300
	probs := c.probs[k : k+0x300]
	symbol := uint32(1)

	if state >= 7 {
		m := uint32(matchByte)
		for {
			matchBit := (m >> 7) & 1
			m <<= 1
			i := ((1 + matchBit) << 8) | symbol
			bit, err := d.decodeBit(&probs[i])
			if err != nil {
				return 0, err
			}
			symbol = (symbol << 1) | bit
			if matchBit != bit || symbol >= 0x100 {
				break
			}
		}
	}
	for symbol < 0x100 {
		bit, err := d.decodeBit(&probs[symbol])
		if err != nil {
			return 0, err
		}
		symbol = (symbol << 1) | bit
	}
	return byte(symbol - 0x100), nil
}
