/*
 * ASAP - SMU compiler (C4).
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

// Package smu compiles sequence-trigger descriptions into the SMU
// (sequence-match-unit) configuration bitstream: for each trigger slot
// and cycle, a row of fields describing which observed segment to
// compare, against what mask and constant, using which comparison, and
// whether the row is active at all.
package smu

import (
	"strings"

	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/bitfmt"
	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/smulang"
)

// Params is the subset of the spec file's settings the SMU compiler
// needs.
type Params struct {
	SmuSegmentSize int
	MaxSeqDepth    int
	MaxTriggers    int
}

// Stream is a dense, MSB-first bitstream: one character per bit, no
// separators. Spaced renders the external wire format.
type Stream string

// Spaced renders s as the whitespace-separated bitstream text the spec
// file format uses.
func (s Stream) Spaced() string {
	var sb strings.Builder
	for i, c := range string(s) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(c))
	}
	return sb.String()
}

// ParseSpaced parses a whitespace-separated bitstream back into its
// dense form.
func ParseSpaced(text string) (Stream, error) {
	var sb strings.Builder
	for _, r := range text {
		switch r {
		case '0', '1':
			sb.WriteRune(r)
		case ' ', '\t', '\n', '\r':
		default:
			return "", asaperr.Newf(asaperr.InternalEncoding, "bitstream", "non-binary character %q", r)
		}
	}
	return Stream(sb.String()), nil
}

// fieldWidths holds the per-field bit widths derived from the
// catalogue geometry, in enum order SMU_ENB, INP_SEL, CMP_VAL, MASK,
// FSM_CMP, CMP_SEL.
type fieldWidths struct {
	smuEnb int
	inpSel int
	cmpVal int
	mask   int
	fsmCmp int
	cmpSel int
	seg    int
}

func computeFieldWidths(observe *catalogue.Tree, params Params) fieldWidths {
	w := observe.MaxMSB() + 1
	numSegments := (w + params.SmuSegmentSize - 1) / params.SmuSegmentSize
	return fieldWidths{
		smuEnb: 1,
		inpSel: bitfmt.CeilLog2(numSegments),
		cmpVal: params.SmuSegmentSize,
		mask:   params.SmuSegmentSize,
		fsmCmp: bitfmt.CeilLog2(params.MaxSeqDepth),
		cmpSel: 2,
		seg:    params.SmuSegmentSize,
	}
}

// cell is one (cycle, trigger) row of the SMU configuration table. The
// zero value is the default inactive, pass-through row.
type cell struct {
	smuEnb bool
	inpSel uint64
	cmpVal uint64
	mask   uint64
	fsmCmp uint64
	cmpSel smulang.CompareKind
}

// Compile lowers seqs against the observability catalogue into the SMU
// bitstream and returns the trigger-slot assignment (sequence name to
// trigger index, equal to input order) alongside it.
func Compile(seqs []smulang.Sequence, observe *catalogue.Tree, params Params) (Stream, map[string]int, error) {
	if len(seqs) > params.MaxTriggers {
		return "", nil, asaperr.Newf(asaperr.TooManySequences, "", "%d sequences exceeds MAX_TRIGGERS=%d", len(seqs), params.MaxTriggers)
	}

	fw := computeFieldWidths(observe, params)

	// table[cycle][trigger]; unused cells keep their zero-value default.
	table := make([][]cell, params.MaxSeqDepth)
	for c := range table {
		table[c] = make([]cell, params.MaxTriggers)
		for t := range table[c] {
			table[c][t] = cell{cmpSel: smulang.Pass}
		}
	}

	triggerIndex := make(map[string]int, len(seqs))
	for trig, seq := range seqs {
		triggerIndex[seq.Name] = trig
		fsmCmp := uint64(len(seq.Patterns) - 1)
		for cyc, pat := range seq.Patterns {
			cl, err := lowerPattern(pat, observe, fw)
			if err != nil {
				return "", nil, err
			}
			cl.smuEnb = true
			cl.fsmCmp = fsmCmp
			table[cyc][trig] = cl
		}
	}

	return renderStream(table, fw, params), triggerIndex, nil
}

func lowerPattern(pat smulang.Pattern, observe *catalogue.Tree, fw fieldWidths) (cell, error) {
	if pat.Empty() {
		return cell{cmpSel: smulang.Pass}, nil
	}

	obs, ok := observe.LookupDotted(pat.Var.Name())
	if !ok {
		return cell{}, asaperr.Newf(asaperr.UnknownSignal, pat.Var.Name(), "signal not found in observability catalogue")
	}

	width := obs.Width()
	if pat.Var.LSB < 0 || pat.Var.MSB < pat.Var.LSB || pat.Var.MSB > width-1 {
		return cell{}, asaperr.Newf(asaperr.PatternRange, pat.Var.Name(), "part-select [%d:%d] out of range for width %d", pat.Var.MSB, pat.Var.LSB, width)
	}

	seg := obs.LSB / fw.seg
	base := obs.LSB % fw.seg
	sigWidth := pat.Var.MSB - pat.Var.LSB + 1
	if base+(pat.Var.MSB-pat.Var.LSB) >= fw.seg {
		return cell{}, asaperr.Newf(asaperr.SegmentCrossing, pat.Var.Name(), "signal spans two SMU segments of size %d", fw.seg)
	}

	shift := base + pat.Var.LSB
	segMask := uint64(1)<<uint(fw.seg) - 1
	mask := (uint64(1)<<uint(sigWidth) - 1) << uint(shift) & segMask

	constVal, err := bitfmt.ParseBits(pat.Const.Bits, 0, pat.Const.Width)
	if err != nil {
		return cell{}, asaperr.Wrap(asaperr.InternalEncoding, pat.Var.Name(), err)
	}
	cmpVal := (constVal << uint(shift)) & segMask

	if cmpVal&^mask != 0 {
		return cell{}, asaperr.Newf(asaperr.InternalEncoding, pat.Var.Name(), "CMP_VAL not contained within MASK")
	}

	return cell{
		inpSel: uint64(seg),
		cmpVal: cmpVal,
		mask:   mask,
		cmpSel: *pat.Cmp,
	}, nil
}

// renderStream walks cycle outermost, then trigger, emitting each
// row's fields in the reverse of the enum order: CMP_SEL, FSM_CMP,
// MASK, CMP_VAL, INP_SEL, SMU_ENB.
func renderStream(table [][]cell, fw fieldWidths, params Params) Stream {
	var sb strings.Builder
	for cyc := 0; cyc < params.MaxSeqDepth; cyc++ {
		for trig := 0; trig < params.MaxTriggers; trig++ {
			cl := table[cyc][trig]
			sb.WriteString(cl.cmpSel.Encode())
			bitfmt.Bits(&sb, cl.fsmCmp, fw.fsmCmp)
			bitfmt.Bits(&sb, cl.mask, fw.mask)
			bitfmt.Bits(&sb, cl.cmpVal, fw.cmpVal)
			bitfmt.Bits(&sb, cl.inpSel, fw.inpSel)
			bitfmt.Bit(&sb, cl.smuEnb)
		}
	}
	return Stream(sb.String())
}
