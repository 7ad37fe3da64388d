// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// Limits for the individual property fields, per the LZMA stream spec.
const (
	minLC = 0
	maxLC = 8
	minLP = 0
	maxLP = 4
	minPB = 0
	maxPB = 4

	// maxPropertyByte is the first value the properties byte must not
	// reach: 9 * 5 * 5 - 1 is the largest valid encoding.
	maxPropertyByte = 9 * 5 * 5
)

// Properties packs the three parameters carried in the first header byte:
// lc (literal context bits), lp (literal position bits) and pb (position
// bits), following d = (pb*5+lp)*9 + lc.
type Properties byte

// NewProperties builds a Properties value from lc, lp and pb, verifying
// that each is within its supported range.
func NewProperties(lc, lp, pb int) (Properties, error) {
	if err := verifyProperties(lc, lp, pb); err != nil {
		return 0, err
	}
	return Properties((pb*5+lp)*9 + lc), nil
}

// LC returns the number of literal context bits.
func (p Properties) LC() int { return int(p) % 9 }

// LP returns the number of literal position bits.
func (p Properties) LP() int { return (int(p) / 9) % 5 }

// PB returns the number of position bits.
func (p Properties) PB() int { return int(p) / 45 }

// parseProperties decodes the properties byte d = properties[0], rejecting
// any value that could not have come from a valid lc/lp/pb triple.
func parseProperties(d byte) (Properties, error) {
	if d >= maxPropertyByte {
		return 0, &invalidPropertiesError{d}
	}
	return Properties(d), nil
}

// byte encodes the Properties back into the single properties byte. It is
// used only by tests; the production decoder never writes streams.
func (p Properties) byte() byte { return byte(p) }

// verify checks that all three fields are within their supported ranges.
func (p Properties) verify() error {
	return verifyProperties(p.LC(), p.LP(), p.PB())
}

// verifyProperties checks lc, lp and pb against their supported ranges.
func verifyProperties(lc, lp, pb int) error {
	if !(minLC <= lc && lc <= maxLC) {
		return rangeError{"lc", lc}
	}
	if !(minLP <= lp && lp <= maxLP) {
		return rangeError{"lp", lp}
	}
	if !(minPB <= pb && pb <= maxPB) {
		return rangeError{"pb", pb}
	}
	return nil
}
