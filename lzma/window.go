// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "io"

// window is the sliding output buffer: a ring of the last Size output
// bytes. It both retains history for match copying and forwards every
// byte to the output sink as soon as it is produced, per spec.md §5
// ("each PutByte flushes to the sink before the next instruction").
//
// Grounded in the teacher's decoderdict.go ByteAt/WriteMatch ring
// arithmetic and the original C++ reference's COutWindow; field names
// follow the spec's own vocabulary (Pos, Size, IsFull, TotalPos).
type window struct {
	buf      []byte
	Pos      uint32
	Size     uint32
	IsFull   bool
	TotalPos int64

	sink io.ByteWriter
}

// newWindow allocates a window of the given size backed by sink.
func newWindow(size uint32, sink io.ByteWriter) *window {
	return &window{
		buf:  make([]byte, size),
		Size: size,
		sink: sink,
	}
}

// IsEmpty reports whether no bytes have been written yet.
func (w *window) IsEmpty() bool {
	return w.Pos == 0 && !w.IsFull
}

// CheckDistance reports whether the byte at distance dist (1 <= dist) has
// actually been produced: either it lies before the current cursor within
// the first lap, or the window has already wrapped at least once.
func (w *window) CheckDistance(dist uint32) bool {
	return dist <= w.Pos || w.IsFull
}

// GetByte returns the byte written dist steps before the cursor. Its
// result is undefined (per spec.md §4.2) if CheckDistance(dist) is false;
// callers are expected to have checked first where that matters.
func (w *window) GetByte(dist uint32) byte {
	var i uint32
	if dist <= w.Pos {
		i = w.Pos - dist
	} else {
		i = w.Size - dist + w.Pos
	}
	return w.buf[i]
}

// PutByte appends b to the window and forwards it to the output sink.
func (w *window) PutByte(b byte) error {
	w.TotalPos++
	w.buf[w.Pos] = b
	w.Pos++
	if w.Pos == w.Size {
		w.Pos = 0
		w.IsFull = true
	}
	return w.sink.WriteByte(b)
}

// CopyMatch repeats PutByte(GetByte(dist)) length times. Because GetByte
// reads through the same ring PutByte writes to, a distance smaller than
// length is legal and correctly reproduces the LZ77 overlap semantic: the
// copy can read bytes it only just wrote earlier in this same call. This
// is why the copy must proceed byte-by-byte rather than as a block move
// (spec.md §9).
func (w *window) CopyMatch(dist uint32, length int) error {
	for ; length > 0; length-- {
		if err := w.PutByte(w.GetByte(dist)); err != nil {
			return err
		}
	}
	return nil
}
