// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-lzma/lzma/internal/lzmatest"
)

var classicProps = mustProperties(3, 0, 2)

func mustProperties(lc, lp, pb int) Properties {
	p, err := NewProperties(lc, lp, pb)
	if err != nil {
		panic(err)
	}
	return p
}

func TestDecodeEmptyStream(t *testing.T) {
	enc := lzmatest.NewStream(classicProps, 1<<20, 0, true)
	data, err := enc.Bytes()
	if err != nil {
		t.Fatalf("Bytes error %s", err)
	}
	d, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder error %s", err)
	}
	var out bytes.Buffer
	res, err := d.Decode(&out)
	if err != nil {
		t.Fatalf("Decode error %s", err)
	}
	if res != FinishedWithoutMarker {
		t.Errorf("Result = %s; want %s", res, FinishedWithoutMarker)
	}
	if out.Len() != 0 {
		t.Errorf("decoded %q; want empty", out.String())
	}
}

func TestDecodeSingleLiteral(t *testing.T) {
	enc := lzmatest.NewStream(classicProps, 1<<20, 1, true)
	if err := enc.Literal('a'); err != nil {
		t.Fatalf("Literal error %s", err)
	}
	data, err := enc.Bytes()
	if err != nil {
		t.Fatalf("Bytes error %s", err)
	}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes error %s", err)
	}
	if string(got) != "a" {
		t.Errorf("decoded %q; want %q", got, "a")
	}
}

func TestDecodeShortRepeat(t *testing.T) {
	enc := lzmatest.NewStream(classicProps, 1<<20, 10, true)
	if err := enc.Literal('a'); err != nil {
		t.Fatalf("Literal('a') error %s", err)
	}
	if err := enc.Literal('b'); err != nil {
		t.Fatalf("Literal('b') error %s", err)
	}
	if err := enc.Match(2, 8); err != nil {
		t.Fatalf("Match error %s", err)
	}
	data, err := enc.Bytes()
	if err != nil {
		t.Fatalf("Bytes error %s", err)
	}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes error %s", err)
	}
	want := "ababababab"
	if string(got) != want {
		t.Errorf("decoded %q; want %q", got, want)
	}
}

func TestDecodeRepReusesDistance(t *testing.T) {
	// "abc" followed by two more copies at the same distance: one via a
	// new-match packet, one via a repeat-match packet reusing rep0.
	enc := lzmatest.NewStream(classicProps, 1<<20, 9, true)
	for _, b := range []byte("abc") {
		if err := enc.Literal(b); err != nil {
			t.Fatalf("Literal error %s", err)
		}
	}
	if err := enc.Match(3, 3); err != nil {
		t.Fatalf("Match error %s", err)
	}
	if err := enc.Rep(0, 3); err != nil {
		t.Fatalf("Rep error %s", err)
	}
	data, err := enc.Bytes()
	if err != nil {
		t.Fatalf("Bytes error %s", err)
	}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes error %s", err)
	}
	want := "abcabcabc"
	if string(got) != want {
		t.Errorf("decoded %q; want %q", got, want)
	}
}

func TestDecodeEndMarker(t *testing.T) {
	enc := lzmatest.NewStream(classicProps, 1<<20, 0, false)
	if err := enc.Literal('z'); err != nil {
		t.Fatalf("Literal error %s", err)
	}
	if err := enc.EndMarker(); err != nil {
		t.Fatalf("EndMarker error %s", err)
	}
	data, err := enc.Bytes()
	if err != nil {
		t.Fatalf("Bytes error %s", err)
	}
	d, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder error %s", err)
	}
	var out bytes.Buffer
	res, err := d.Decode(&out)
	if err != nil {
		t.Fatalf("Decode error %s", err)
	}
	if res != FinishedWithMarker {
		t.Errorf("Result = %s; want %s", res, FinishedWithMarker)
	}
	if out.String() != "z" {
		t.Errorf("decoded %q; want %q", out.String(), "z")
	}
}

func TestDecodeCorruptedLeadingByte(t *testing.T) {
	buf := append([]byte{}, classicHeader...)
	buf = append(buf, 1, 0, 0, 0, 0) // leading range-coder byte must be zero
	_, err := NewDecoder(bytes.NewReader(buf))
	if err == nil {
		t.Fatalf("NewDecoder succeeded with nonzero leading byte; want error")
	}
	if !errors.Is(err, ErrCorruptedStream) {
		t.Errorf("error %s does not wrap ErrCorruptedStream", err)
	}
}
