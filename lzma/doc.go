// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lzma implements a reference decoder for the classic LZMA stream
// format: a 13-byte header followed by a range-coded bit stream of literal
// and match packets. The package decodes only; it does not produce LZMA
// streams, nor does it understand the .xz container, .7z archives, or
// LZMA2 chunk framing.
package lzma
