// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma_test

import (
	"context"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/go-lzma/lzma/internal/lzmatest"
	"github.com/go-lzma/lzma/lzma"
)

func literalStream(t *testing.T, s string) []byte {
	t.Helper()
	props, err := lzma.NewProperties(3, 0, 2)
	if err != nil {
		t.Fatalf("NewProperties(3, 0, 2) error %s", err)
	}
	enc := lzmatest.NewStream(props, 1<<20, uint64(len(s)), true)
	for i := 0; i < len(s); i++ {
		enc.Literal(s[i])
	}
	data, err := enc.Bytes()
	if err != nil {
		t.Fatalf("building fixture: %s", err)
	}
	return data
}

func TestDecodeBytes(t *testing.T) {
	data := literalStream(t, "hello")
	out, err := lzma.DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %s", err)
	}
	if string(out) != "hello" {
		t.Errorf("got %q, want %q", out, "hello")
	}
}

func TestDecodeAllBytes(t *testing.T) {
	want := []string{"alpha", "bravo", "charlie"}
	buffers := make([][]byte, len(want))
	for i, s := range want {
		buffers[i] = literalStream(t, s)
	}

	results, err := lzma.DecodeAllBytes(context.Background(), buffers)
	if err != nil {
		t.Fatalf("DecodeAllBytes: %s", err)
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, w := range want {
		if !slices.Equal(results[i], []byte(w)) {
			t.Errorf("stream %d: got %q, want %q", i, results[i], w)
		}
	}
}

func TestDecodeAllBytesError(t *testing.T) {
	buffers := [][]byte{literalStream(t, "ok"), {0x00}}
	if _, err := lzma.DecodeAllBytes(context.Background(), buffers); err == nil {
		t.Fatal("expected an error from the truncated second stream")
	}
}
