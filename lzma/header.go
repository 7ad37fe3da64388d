// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"io"
)

// headerLen is the size in bytes of the classic LZMA stream header: one
// properties byte, four dictionary-size bytes, eight uncompressed-size
// bytes.
const headerLen = 13

// minDictCap is the minimum dictionary capacity the format allows; smaller
// values decoded from the header are clamped up to it.
const minDictCap = 1 << 12

// noSizeInHeader is the sentinel value of the size field (all eight bytes
// 0xff) that marks an undefined uncompressed size, requiring an explicit
// end-of-stream marker.
const noSizeInHeader uint64 = 1<<64 - 1

// getUint32LE reads a little-endian uint32 from the front of b.
func getUint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// getUint64LE reads a little-endian uint64 from the front of b.
func getUint64LE(b []byte) uint64 {
	x := uint64(getUint32LE(b))
	x |= uint64(getUint32LE(b[4:])) << 32
	return x
}

// Header is the parsed form of the 13-byte LZMA stream header.
type Header struct {
	Properties Properties
	// DictSize is the dictionary capacity after the 4096-byte floor has
	// been applied.
	DictSize uint32
	// UnpackSize is the declared uncompressed size. It is meaningful
	// only when SizeDefined is true.
	UnpackSize uint64
	// SizeDefined is false when all eight size bytes were 0xff, meaning
	// the stream must carry an explicit end-of-stream marker.
	SizeDefined bool
}

// readHeader reads and parses the 13-byte stream header from r.
func readHeader(r io.Reader) (*Header, error) {
	buf := make([]byte, headerLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	props, err := parseProperties(buf[0])
	if err != nil {
		return nil, err
	}

	dictSize := getUint32LE(buf[1:5])
	if dictSize < minDictCap {
		dictSize = minDictCap
	}

	size := getUint64LE(buf[5:13])
	h := &Header{Properties: props, DictSize: dictSize}
	if size == noSizeInHeader {
		h.SizeDefined = false
	} else {
		h.SizeDefined = true
		h.UnpackSize = size
	}
	return h, nil
}
