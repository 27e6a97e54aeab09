/*
 * ASAP - Fixed width binary field formatting.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package bitfmt formats the MSB-first binary strings that make up the
// SMU and SRU configuration bitstreams, and parses them back for the
// Decode helpers.
package bitfmt

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/rcornwell/asap/asaperr"
)

// Bits writes the width-bit, MSB-first binary representation of v into
// str. v must fit in width bits; callers are expected to have range
// checked the field already.
func Bits(str *strings.Builder, v uint64, width int) {
	for shift := width - 1; shift >= 0; shift-- {
		if (v>>uint(shift))&1 != 0 {
			str.WriteByte('1')
		} else {
			str.WriteByte('0')
		}
	}
}

// Bit writes a single bit.
func Bit(str *strings.Builder, b bool) {
	if b {
		str.WriteByte('1')
	} else {
		str.WriteByte('0')
	}
}

// Zeros writes width zero bits, used for the unused tail of a segment
// or PLA row.
func Zeros(str *strings.Builder, width int) {
	for range width {
		str.WriteByte('0')
	}
}

// ParseBits reads width bits at offset off of s and returns them as a
// uint64, MSB first.
func ParseBits(s string, off, width int) (uint64, error) {
	if off < 0 || width < 0 || off+width > len(s) {
		return 0, asaperr.Newf(asaperr.InternalEncoding, "bitstream", "field [%d:%d) out of range of %d bit stream", off, off+width, len(s))
	}
	var v uint64
	for i := off; i < off+width; i++ {
		v <<= 1
		switch s[i] {
		case '1':
			v |= 1
		case '0':
		default:
			return 0, asaperr.Newf(asaperr.InternalEncoding, "bitstream", "non-binary character %q at offset %d", s[i], i)
		}
	}
	return v, nil
}

// ParseBit reads a single bit at offset off.
func ParseBit(s string, off int) (bool, error) {
	v, err := ParseBits(s, off, 1)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// PadLeft pads s on the left with zero bits until it is width wide.
// Used when a numeric field is produced with strconv and needs to be
// widened to its fixed field width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// FormatUint renders v as a bare binary string, no padding.
func FormatUint(v uint64) string {
	return strconv.FormatUint(v, 2)
}

// CeilLog2 returns the number of bits needed to select one of n
// options, 0 for n <= 1.
func CeilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}
