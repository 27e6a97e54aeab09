/*
 * ASAP - SMU bitstream decoder.
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

package smu

import (
	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/bitfmt"
	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/smulang"
)

// DecodedCell is one (cycle, trigger) row read back out of a
// bitstream, for console inspection ("show smu").
type DecodedCell struct {
	SmuEnb bool
	InpSel uint64
	CmpVal uint64
	Mask   uint64
	FsmCmp uint64
	CmpSel smulang.CompareKind
}

// Decode is the table-driven inverse of renderStream: it walks the
// same cycle-outermost, trigger-innermost, reverse-field-order layout
// Compile produced and reads each fixed-width field back out.
func Decode(stream Stream, observe *catalogue.Tree, params Params) ([][]DecodedCell, error) {
	fw := computeFieldWidths(observe, params)
	s := string(stream)

	rowWidth := fw.cmpSel + fw.fsmCmp + fw.mask + fw.cmpVal + fw.inpSel + fw.smuEnb
	want := rowWidth * params.MaxSeqDepth * params.MaxTriggers
	if len(s) != want {
		return nil, asaperr.Newf(asaperr.InternalEncoding, "smu.stream", "stream length %d does not match expected %d", len(s), want)
	}

	table := make([][]DecodedCell, params.MaxSeqDepth)
	off := 0
	for cyc := 0; cyc < params.MaxSeqDepth; cyc++ {
		table[cyc] = make([]DecodedCell, params.MaxTriggers)
		for trig := 0; trig < params.MaxTriggers; trig++ {
			var cell DecodedCell

			cmpSelBits, err := bitfmt.ParseBits(s, off, fw.cmpSel)
			if err != nil {
				return nil, err
			}
			cell.CmpSel = decodeCmpSel(cmpSelBits)
			off += fw.cmpSel

			if cell.FsmCmp, err = bitfmt.ParseBits(s, off, fw.fsmCmp); err != nil {
				return nil, err
			}
			off += fw.fsmCmp

			if cell.Mask, err = bitfmt.ParseBits(s, off, fw.mask); err != nil {
				return nil, err
			}
			off += fw.mask

			if cell.CmpVal, err = bitfmt.ParseBits(s, off, fw.cmpVal); err != nil {
				return nil, err
			}
			off += fw.cmpVal

			if cell.InpSel, err = bitfmt.ParseBits(s, off, fw.inpSel); err != nil {
				return nil, err
			}
			off += fw.inpSel

			enb, err := bitfmt.ParseBit(s, off)
			if err != nil {
				return nil, err
			}
			cell.SmuEnb = enb
			off++

			table[cyc][trig] = cell
		}
	}
	return table, nil
}

func decodeCmpSel(v uint64) smulang.CompareKind {
	switch v {
	case 0b11:
		return smulang.EQ
	case 0b10:
		return smulang.GT
	case 0b01:
		return smulang.LT
	default:
		return smulang.Pass
	}
}
