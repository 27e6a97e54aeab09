/*
 * ASAP - SRU bitstream decoder.
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

package sru

import (
	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/bitfmt"
)

// PLAConfig is one PLA hardware slot's decoded fields.
type PLAConfig struct {
	TrigSel    []uint64 // length SRU_SEGMENT_SIZE, slot 0 is the LSB-side atom
	MintermSel []bool   // length 2^SRU_SEGMENT_SIZE
}

// DecodedConfig is a full SRU bitstream read back out field by field,
// for console inspection ("show sru"). Per-bit arrays are in
// connection order, clock group first then signal group, matching the
// bitstream's own PLA_SEL/CNTL_ENB assembly order: index 0 of each
// array is that group's highest bit.
type DecodedConfig struct {
	PLA            []PLAConfig
	ClockPlaSel    []uint64
	SignalPlaSel   []uint64
	ClockCntlEnb   []bool
	SignalCntlEnb  []bool
	SignalConstant []bool
}

// Decode is the table-driven inverse of Compile's bitstream assembly.
// numSignal/numClock are the reordered catalogue's group widths (the
// same values Compile returned in its Result).
func Decode(stream Stream, numSignal, numClock int, params Params) (*DecodedConfig, error) {
	s := string(stream)
	off := 0

	trigWidth := bitfmt.CeilLog2(params.MaxTriggers)
	plaSelWidth := bitfmt.CeilLog2(params.SruNumPLA)
	mintermFieldWidth := 1 << params.SruSegmentSize

	out := &DecodedConfig{PLA: make([]PLAConfig, params.SruNumPLA)}

	for p := 0; p < params.SruNumPLA; p++ {
		trigSel := make([]uint64, params.SruSegmentSize)
		for slot := params.SruSegmentSize - 1; slot >= 0; slot-- {
			v, err := bitfmt.ParseBits(s, off, trigWidth)
			if err != nil {
				return nil, err
			}
			trigSel[slot] = v
			off += trigWidth
		}
		out.PLA[p].TrigSel = trigSel
	}

	for p := 0; p < params.SruNumPLA; p++ {
		minterm := make([]bool, mintermFieldWidth)
		for i := 0; i < mintermFieldWidth; i++ {
			b, err := bitfmt.ParseBit(s, off)
			if err != nil {
				return nil, err
			}
			minterm[i] = b
			off++
		}
		out.PLA[p].MintermSel = minterm
	}

	out.ClockPlaSel = make([]uint64, numClock)
	for i := range out.ClockPlaSel {
		v, err := bitfmt.ParseBits(s, off, plaSelWidth)
		if err != nil {
			return nil, err
		}
		out.ClockPlaSel[i] = v
		off += plaSelWidth
	}
	out.SignalPlaSel = make([]uint64, numSignal)
	for i := range out.SignalPlaSel {
		v, err := bitfmt.ParseBits(s, off, plaSelWidth)
		if err != nil {
			return nil, err
		}
		out.SignalPlaSel[i] = v
		off += plaSelWidth
	}

	out.ClockCntlEnb = make([]bool, numClock)
	for i := range out.ClockCntlEnb {
		b, err := bitfmt.ParseBit(s, off)
		if err != nil {
			return nil, err
		}
		out.ClockCntlEnb[i] = b
		off++
	}
	out.SignalCntlEnb = make([]bool, numSignal)
	for i := range out.SignalCntlEnb {
		b, err := bitfmt.ParseBit(s, off)
		if err != nil {
			return nil, err
		}
		out.SignalCntlEnb[i] = b
		off++
	}

	out.SignalConstant = make([]bool, numSignal)
	for i := range out.SignalConstant {
		b, err := bitfmt.ParseBit(s, off)
		if err != nil {
			return nil, err
		}
		out.SignalConstant[i] = b
		off++
	}

	if off != len(s) {
		return nil, asaperr.Newf(asaperr.InternalEncoding, "sru.stream", "stream length %d does not match decoded width %d", len(s), off)
	}

	return out, nil
}
