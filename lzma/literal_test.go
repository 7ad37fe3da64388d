// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"testing"
)

// encodeLiteralTest mirrors literalDecoder.decode's matched/plain split.
func encodeLiteralTest(enc *testEncoder, c *literalDecoder, state uint32, matchByte byte, litState uint32, b byte) {
	k := litState * 0x300
	probs := c.probs[k : k+0x300]
	symbol := uint32(1)
	m := uint32(matchByte)
	bitPos := 7
	if state >= 7 {
		for ; bitPos >= 0; bitPos-- {
			matchBit := (m >> 7) & 1
			m <<= 1
			bit := uint32(b>>uint(bitPos)) & 1
			idx := ((1 + matchBit) << 8) | symbol
			enc.encodeBit(&probs[idx], bit)
			symbol = (symbol << 1) | bit
			if matchBit != bit {
				bitPos--
				break
			}
		}
	}
	for ; bitPos >= 0; bitPos-- {
		bit := uint32(b>>uint(bitPos)) & 1
		enc.encodeBit(&probs[symbol], bit)
		symbol = (symbol << 1) | bit
	}
}

func TestLiteralDecoderPlain(t *testing.T) {
	for _, b := range []byte("Hi!") {
		enc := newTestEncoder()
		encC := newLiteralDecoder(3, 0)
		encodeLiteralTest(enc, encC, 0, 0, 0, b)
		data := enc.close()

		rd, err := newRangeDecoder(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("newRangeDecoder error %s", err)
		}
		decC := newLiteralDecoder(3, 0)
		got, err := decC.decode(rd, 0, 0, 0)
		if err != nil {
			t.Fatalf("decode error %s", err)
		}
		if got != b {
			t.Errorf("decode round trip = %q; want %q", got, b)
		}
	}
}

func TestLiteralDecoderMatched(t *testing.T) {
	tests := []struct {
		matchByte byte
		b         byte
	}{
		{'a', 'a'}, // fully matches: all eight bits decoded in matched mode
		{'a', 'b'}, // diverges partway: exercises the plain fallback
	}
	for _, tc := range tests {
		enc := newTestEncoder()
		encC := newLiteralDecoder(0, 0)
		encodeLiteralTest(enc, encC, 7, tc.matchByte, 0, tc.b)
		data := enc.close()

		rd, err := newRangeDecoder(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("newRangeDecoder error %s", err)
		}
		decC := newLiteralDecoder(0, 0)
		got, err := decC.decode(rd, 7, tc.matchByte, 0)
		if err != nil {
			t.Fatalf("decode error %s", err)
		}
		if got != tc.b {
			t.Errorf("decode round trip = %q; want %q", got, tc.b)
		}
	}
}
