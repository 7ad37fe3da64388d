// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"
)

// DecodeBytes decodes a complete in-memory LZMA stream and returns the
// recovered data. It is a convenience wrapper around NewDecoder/Decode for
// callers that already hold the whole compressed stream in memory, the
// same role the teacher's xz.DecodeBytes helper plays for the container
// format.
func DecodeBytes(data []byte) ([]byte, error) {
	r, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if _, err = r.Decode(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeAllBytes decodes every stream in buffers concurrently, returning
// their recovered contents in the same order. Streams are independent;
// decoding one never depends on another, which is what makes fanning the
// batch out across goroutines safe. If any stream fails to decode,
// DecodeAllBytes returns the first error encountered; errgroup cancels its
// derived context at that point, and any buffer whose decode has not yet
// started skips it and returns ctx.Err() instead. If ctx is canceled by the
// caller before the batch finishes, already-running decodes still run to
// completion, but every not-yet-started buffer is skipped the same way.
func DecodeAllBytes(ctx context.Context, buffers [][]byte) ([][]byte, error) {
	results := make([][]byte, len(buffers))
	g, gctx := errgroup.WithContext(ctx)
	for i, buf := range buffers {
		i, buf := i, buf
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := DecodeBytes(buf)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
