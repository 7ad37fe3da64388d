// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bufio"
	"io"

	"github.com/go-lzma/lzma/basics/i64"
	"github.com/go-lzma/lzma/internal/xtrace"
)

// Result is the disposition a completed Decode returns, mirroring the
// three outcomes in spec.md §6.
type Result int

const (
	// Error means the stream was corrupted or the declared size did
	// not match what was produced. Decode also returns a non-nil error
	// in this case; Result is reported mainly so callers inspecting a
	// partially-written output (see ErrCorruptedStream docs) know the
	// decode did not finish cleanly.
	Error Result = iota
	// FinishedWithMarker means the end-of-stream marker was decoded
	// and the range decoder's state was clean at that point.
	FinishedWithMarker
	// FinishedWithoutMarker means a size-defined stream reached its
	// declared size with no marker, and the range decoder was clean.
	FinishedWithoutMarker
)

func (r Result) String() string {
	switch r {
	case FinishedWithMarker:
		return "finished with marker"
	case FinishedWithoutMarker:
		return "finished without marker"
	default:
		return "error"
	}
}

// Decoder owns every probability table and the packet-type state machine
// for one LZMA stream, and drives the range decoder to produce literals
// and matches that are routed to its output window. A Decoder is used
// once: construct it with NewDecoder, call Decode, discard it.
//
// Grounded across the teacher's op_codec.go/state.go (table layout),
// literal_codec.go/length_codec.go/dist_codec.go (sub-decoders) and the
// original C++ CLzmaDecoder, consolidated into one type per SPEC_FULL.md.
type Decoder struct {
	header Header
	rd     *rangeDecoder
	win    *window
	ps     *packetState

	isMatch     [numStates << maxPosBits]prob
	isRep       [numStates]prob
	isRepG0     [numStates]prob
	isRepG1     [numStates]prob
	isRepG2     [numStates]prob
	isRep0Long  [numStates << maxPosBits]prob
	lit         *literalDecoder
	lenDecoder  *lengthDecoder
	repLen      *lengthDecoder
	distDecoder *distanceDecoder

	trace *xtrace.Logger
}

// DecoderOption configures a Decoder at construction time.
type DecoderOption func(*Decoder)

// WithTrace attaches a debug trace logger to the decoder's packet loop.
func WithTrace(l *xtrace.Logger) DecoderOption {
	return func(d *Decoder) { d.trace = l }
}

func initProbSlice(p []prob) {
	for i := range p {
		p[i] = probInit
	}
}

// NewDecoder reads the 13-byte stream header from r and returns a Decoder
// ready to decode the payload that follows. r must also implement
// io.ByteReader or it is wrapped in a bufio.Reader, matching the
// teacher's makeByteReader helper.
func NewDecoder(r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if err = h.Properties.verify(); err != nil {
		return nil, err
	}

	br := asByteReader(r)
	rd, err := newRangeDecoder(br)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		header:      *h,
		rd:          rd,
		win:         newWindow(h.DictSize, nopByteWriter{}),
		ps:          newPacketState(h.Properties),
		lit:         newLiteralDecoder(h.Properties.LC(), h.Properties.LP()),
		lenDecoder:  newLengthDecoder(),
		repLen:      newLengthDecoder(),
		distDecoder: newDistanceDecoder(),
		trace:       xtrace.Discard,
	}
	initProbSlice(d.isMatch[:])
	initProbSlice(d.isRep[:])
	initProbSlice(d.isRepG0[:])
	initProbSlice(d.isRepG1[:])
	initProbSlice(d.isRepG2[:])
	initProbSlice(d.isRep0Long[:])

	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// asByteReader returns r itself if it already implements io.ByteReader,
// otherwise wraps it in a bufio.Reader, following the teacher's
// makeByteReader pattern.
func asByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// nopByteWriter is installed as win.sink by NewDecoder; Decode replaces
// it with the caller's real sink. It exists only so Decoder construction
// never holds a nil writer.
type nopByteWriter struct{}

func (nopByteWriter) WriteByte(byte) error { return nil }

// byteSink adapts an io.Writer without a WriteByte method into one, the
// same role bufio.Writer plays for the teacher's writer side.
type byteSink struct {
	w io.Writer
	b [1]byte
}

func (s *byteSink) WriteByte(c byte) error {
	s.b[0] = c
	_, err := s.w.Write(s.b[:])
	return err
}

func asByteWriter(w io.Writer) io.ByteWriter {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw
	}
	return &byteSink{w: w}
}

// Decode runs the decoder to completion, writing decoded bytes to w as
// they are produced, and returns the stream's final disposition.
func (d *Decoder) Decode(w io.Writer) (Result, error) {
	d.win.sink = asByteWriter(w)

	sizeDefined := d.header.SizeDefined
	remaining := int64(d.header.UnpackSize)
	markerMandatory := !sizeDefined

	for {
		if sizeDefined && remaining == 0 && !markerMandatory {
			if d.rd.isFinishedOK() {
				return FinishedWithoutMarker, nil
			}
		}

		posState := d.ps.posState(d.win.TotalPos)
		state2 := (d.ps.state << maxPosBits) | posState

		b, err := d.rd.decodeBit(&d.isMatch[state2])
		if err != nil {
			return Error, err
		}
		if b == 0 {
			if sizeDefined && remaining == 0 {
				return Error, errCorrupted("literal past declared size")
			}
			if err = d.decodeLiteralPacket(); err != nil {
				return Error, err
			}
			d.ps.updateLiteral()
			if remaining, err = decRemaining(remaining); err != nil {
				return Error, err
			}
			d.trace.Printf(xtrace.Debug, "literal totalPos=%d", d.win.TotalPos)
			continue
		}

		var length uint32
		isRep, err := d.rd.decodeBit(&d.isRep[d.ps.state])
		if err != nil {
			return Error, err
		}
		if isRep == 0 {
			// New match.
			d.ps.rep[3], d.ps.rep[2], d.ps.rep[1] = d.ps.rep[2], d.ps.rep[1], d.ps.rep[0]
			d.ps.updateMatch()

			length, err = d.lenDecoder.decode(d.rd, posState)
			if err != nil {
				return Error, err
			}
			dist, err := d.distDecoder.decode(d.rd, length)
			if err != nil {
				return Error, err
			}
			d.ps.rep[0] = dist

			if d.ps.rep[0] == eosDist {
				if d.rd.isFinishedOK() {
					return FinishedWithMarker, nil
				}
				return Error, errCorrupted("end marker with dirty range decoder")
			}
			if sizeDefined && remaining == 0 {
				return Error, errCorrupted("match past declared size")
			}
			if d.ps.rep[0] >= d.header.DictSize || !d.win.CheckDistance(d.ps.rep[0]) {
				return Error, errCorrupted("distance out of range")
			}
		} else {
			if sizeDefined && remaining == 0 {
				return Error, errCorrupted("repeat past declared size")
			}
			if d.win.IsEmpty() {
				return Error, errCorrupted("repeat from empty window")
			}

			repG0, err := d.rd.decodeBit(&d.isRepG0[d.ps.state])
			if err != nil {
				return Error, err
			}
			dist := d.ps.rep[0]
			if repG0 == 0 {
				shortRep, err := d.rd.decodeBit(&d.isRep0Long[state2])
				if err != nil {
					return Error, err
				}
				if shortRep == 0 {
					d.ps.updateShortRep()
					if err = d.win.PutByte(d.win.GetByte(d.ps.rep[0] + 1)); err != nil {
						return Error, err
					}
					if remaining, err = decRemaining(remaining); err != nil {
						return Error, err
					}
					continue
				}
			} else {
				repG1, err := d.rd.decodeBit(&d.isRepG1[d.ps.state])
				if err != nil {
					return Error, err
				}
				if repG1 == 0 {
					dist = d.ps.rep[1]
				} else {
					repG2, err := d.rd.decodeBit(&d.isRepG2[d.ps.state])
					if err != nil {
						return Error, err
					}
					if repG2 == 0 {
						dist = d.ps.rep[2]
					} else {
						dist = d.ps.rep[3]
						d.ps.rep[3] = d.ps.rep[2]
					}
					d.ps.rep[2] = d.ps.rep[1]
				}
				d.ps.rep[1] = d.ps.rep[0]
				d.ps.rep[0] = dist
			}

			length, err = d.repLen.decode(d.rd, posState)
			if err != nil {
				return Error, err
			}
			d.ps.updateRep()
		}

		length += minMatchLen
		truncated := false
		if sizeDefined && remaining < int64(length) {
			length = uint32(remaining)
			truncated = true
		}
		if err = d.win.CopyMatch(d.ps.rep[0]+1, int(length)); err != nil {
			return Error, err
		}
		z, overflow := i64.Sub(remaining, int64(length))
		if overflow {
			return Error, errCorrupted("remaining size underflow")
		}
		remaining = z
		d.trace.Printf(xtrace.Debug, "match dist=%d len=%d", d.ps.rep[0]+1, length)
		if truncated {
			return Error, errCorrupted("match length exceeds declared size")
		}
	}
}

// decRemaining subtracts one from remaining, reporting corruption on the
// int64 underflow that i64.Sub would otherwise silently wrap.
func decRemaining(remaining int64) (int64, error) {
	z, overflow := i64.Sub(remaining, 1)
	if overflow {
		return 0, errCorrupted("remaining size underflow")
	}
	return z, nil
}

// decodeLiteralPacket decodes one literal byte and writes it to the
// window.
func (d *Decoder) decodeLiteralPacket() error {
	var prevByte byte
	if !d.win.IsEmpty() {
		prevByte = d.win.GetByte(1)
	}
	litState := d.ps.litState(prevByte, d.win.TotalPos)

	var matchByte byte
	if d.ps.state >= 7 {
		matchByte = d.win.GetByte(d.ps.rep[0] + 1)
	}

	s, err := d.lit.decode(d.rd, d.ps.state, matchByte, litState)
	if err != nil {
		return err
	}
	return d.win.PutByte(s)
}
