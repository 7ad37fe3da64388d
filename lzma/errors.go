// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"fmt"
)

// lzmaError represents a general lzma error. The output of the Error
// function is prefixed by the string "lzma: ".
type lzmaError struct {
	Msg string
}

func (err lzmaError) Error() string { return "lzma: " + err.Msg }

func newError(msg string) error { return lzmaError{msg} }

// rangeError describes a situation where a value falls outside of its
// supported range.
type rangeError struct {
	Name  string
	Value interface{}
}

func (err rangeError) Error() string {
	return fmt.Sprintf("lzma: %s value %v out of range", err.Name, err.Value)
}

// ErrInvalidProperties is returned when the properties byte in the stream
// header does not satisfy d < 9*5*5.
var ErrInvalidProperties = errors.New("lzma: invalid properties byte")

// ErrCorruptedStream is returned when the range decoder's leading byte is
// not zero, and for any structural violation encountered while decoding:
// a decoded distance beyond the produced data, a repeat requested from an
// empty window, more output than the declared uncompressed size, or an end
// marker reached with a dirty range-decoder state. The range decoder's
// advisory Corrupted flag does not by itself produce this error. Bytes
// decoded before the violation have already been written to the output.
var ErrCorruptedStream = errors.New("lzma: corrupted stream")

// corruptedError wraps ErrCorruptedStream with the specific violation, so
// callers using errors.Is(err, ErrCorruptedStream) still see the sentinel
// while %v / %s callers see the detail.
type corruptedError struct {
	reason string
}

func (e *corruptedError) Error() string { return "lzma: corrupted stream: " + e.reason }

func (e *corruptedError) Unwrap() error { return ErrCorruptedStream }

func errCorrupted(reason string) error { return &corruptedError{reason} }

// invalidPropertiesError wraps ErrInvalidProperties with the offending byte.
type invalidPropertiesError struct {
	b byte
}

func (e *invalidPropertiesError) Error() string {
	return fmt.Sprintf("lzma: invalid properties byte 0x%02x (must be < 225)", e.b)
}

func (e *invalidPropertiesError) Unwrap() error { return ErrInvalidProperties }
