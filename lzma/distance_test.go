// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"testing"
)

// encodeDistanceTest mirrors distanceDecoder.decode's branch structure.
func encodeDistanceTest(enc *testEncoder, dc *distanceDecoder, length uint32, dist uint32) {
	slot, numDirectBits := posSlotForTest(dist)
	encodeForwardTest(enc, &dc.posSlot[lenState(length)], slot)
	if slot < startPosModel {
		return
	}
	base := (2 | (slot & 1)) << numDirectBits
	reduced := dist - base
	if slot < endPosModel {
		probs := dc.posDecoder[base-slot:]
		m := uint32(1)
		for i := uint32(0); i < numDirectBits; i++ {
			bit := (reduced >> i) & 1
			enc.encodeBit(&probs[m], bit)
			m = (m << 1) | bit
		}
		return
	}
	direct := reduced >> alignBits
	for i := int(numDirectBits-alignBits) - 1; i >= 0; i-- {
		bit := (direct >> uint(i)) & 1
		enc.nrange >>= 1
		enc.low += uint64(enc.nrange) & (0 - uint64(bit))
		if enc.nrange < topValue {
			enc.nrange <<= 8
			enc.shiftLow()
		}
	}
	encodeReverseTest(enc, &dc.align, reduced&(1<<alignBits-1))
}

func posSlotForTest(dist uint32) (slot uint32, directBits uint32) {
	if dist < startPosModel {
		return dist, 0
	}
	n := uint32(31)
	for (dist>>n)&1 == 0 {
		n--
	}
	return 2*n + (dist>>(n-1))&1, n - 1
}

func TestDistanceDecoderRoundTrip(t *testing.T) {
	for _, dist := range []uint32{0, 3, 4, 7, 8, 127, 1000, 1 << 20} {
		enc := newTestEncoder()
		encDC := newDistanceDecoder()
		const length = 2 // lenState(2) == 2, an arbitrary mid slot
		encodeDistanceTest(enc, encDC, length, dist)
		data := enc.close()

		rd, err := newRangeDecoder(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("newRangeDecoder error %s", err)
		}
		decDC := newDistanceDecoder()
		got, err := decDC.decode(rd, length)
		if err != nil {
			t.Fatalf("decode error %s", err)
		}
		if got != dist {
			t.Errorf("decode round trip = %d; want %d", got, dist)
		}
	}
}

func TestEOSDistanceRoundTrip(t *testing.T) {
	enc := newTestEncoder()
	encDC := newDistanceDecoder()
	encodeDistanceTest(enc, encDC, 0, eosDist)
	data := enc.close()

	rd, err := newRangeDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("newRangeDecoder error %s", err)
	}
	decDC := newDistanceDecoder()
	got, err := decDC.decode(rd, 0)
	if err != nil {
		t.Fatalf("decode error %s", err)
	}
	if got != eosDist {
		t.Errorf("decode round trip = 0x%x; want eosDist", got)
	}
}
