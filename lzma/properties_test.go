// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"testing"
)

func TestParseProperties(t *testing.T) {
	tests := []struct {
		b          byte
		lc, lp, pb int
	}{
		{0, 0, 0, 0},
		{93, 3, 0, 2}, // lc=3 lp=0 pb=2, the classic default
		{224, 8, 4, 4},
	}
	for _, tc := range tests {
		got, err := parseProperties(tc.b)
		if err != nil {
			t.Fatalf("parseProperties(%d) error %s", tc.b, err)
		}
		if got.LC() != tc.lc || got.LP() != tc.lp || got.PB() != tc.pb {
			t.Errorf("parseProperties(%d) = {lc:%d lp:%d pb:%d}; want {lc:%d lp:%d pb:%d}",
				tc.b, got.LC(), got.LP(), got.PB(), tc.lc, tc.lp, tc.pb)
		}
		if got.byte() != tc.b {
			t.Errorf("Properties(%+v).byte() = %d; want %d", got, got.byte(), tc.b)
		}
	}
}

func TestParsePropertiesInvalid(t *testing.T) {
	for _, b := range []byte{225, 255} {
		_, err := parseProperties(b)
		if err == nil {
			t.Fatalf("parseProperties(%d) succeeded; want error", b)
		}
		if !errors.Is(err, ErrInvalidProperties) {
			t.Errorf("parseProperties(%d) error %s does not wrap ErrInvalidProperties", b, err)
		}
	}
}

func TestPropertiesVerify(t *testing.T) {
	ok, err := NewProperties(3, 0, 2)
	if err != nil {
		t.Fatalf("NewProperties(3, 0, 2) error %s", err)
	}
	if err := ok.verify(); err != nil {
		t.Fatalf("verify() error %s for valid properties", err)
	}
	if _, err := NewProperties(9, 0, 2); err == nil {
		t.Fatalf("NewProperties(9, 0, 2) succeeded; want error")
	}
}
