/*
 * ASAP - SRU compiler (C5).
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
	"strings"

	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/bitfmt"
	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/srulang"
)

// Params is the subset of the spec file's settings the SRU compiler
// needs.
type Params struct {
	SruSegmentSize int
	SruNumPLA      int
	MaxTriggers    int
}

// Stream is a dense, MSB-first bitstream; see smu.Stream for the same
// convention.
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

// Result is everything C5 produces: the bitstream plus the reordered
// catalogue and group sizes the top patch-block emitter needs to wire
// qIn/qOut.
type Result struct {
	Stream           Stream
	ReorderedControl *catalogue.Tree
	NumSignal        int
	NumClock         int
}

// signalConfig is one controlled signal's lowered fields, kept as a
// flat map keyed by dotted name rather than mirroring the nested
// per-hierarchy dict the Python builds; the reordered catalogue
// already carries the hierarchy shape, so nesting it a second time
// here would be redundant.
type signalConfig struct {
	plaSel   string
	cntlEnb  string
	constant string
}

// Compile lowers nodes against the controllability catalogue into the
// SRU bitstream, given the trigger-index map C4 returned.
func Compile(nodes []srulang.RewriteNode, control *catalogue.Tree, controlType *catalogue.TypeTree, triggerIndex map[string]int, params Params) (*Result, error) {
	reordered, numSignal, numClock, err := Reorder(control, controlType)
	if err != nil {
		return nil, err
	}

	plaOrder, plaIndex, err := allocatePLA(nodes, params.SruNumPLA)
	if err != nil {
		return nil, err
	}

	plaSelWidth := bitfmt.CeilLog2(params.SruNumPLA)
	trigWidth := bitfmt.CeilLog2(params.MaxTriggers)

	perSignal, err := lowerNodes(nodes, plaIndex, plaSelWidth)
	if err != nil {
		return nil, err
	}

	signalLeaves, clockLeaves := groupLeaves(reordered, numSignal)
	signalOrder := connectionOrder(signalLeaves)
	clockOrder := connectionOrder(clockLeaves)

	var sb strings.Builder

	// TRIG_SEL/MINTERM_SEL are emitted once per hardware PLA slot
	// (SRU_NUM_PLA of them), not once per distinct trigger expression
	// actually used: unallocated slots get the all-zero default, same
	// as an SMU cell nothing writes to.
	for idx := 0; idx < params.SruNumPLA; idx++ {
		expr := srulang.POSExpr{}
		if idx < len(plaOrder) {
			expr = plaOrder[idx]
		}
		if err := writeTrigSel(&sb, expr, triggerIndex, params.SruSegmentSize, trigWidth); err != nil {
			return nil, err
		}
	}
	for idx := 0; idx < params.SruNumPLA; idx++ {
		expr := srulang.POSExpr{}
		if idx < len(plaOrder) {
			expr = plaOrder[idx]
		}
		writeMintermSel(&sb, expr, params.SruSegmentSize)
	}

	for _, leaf := range clockOrder {
		cfg, err := lookupConfig(perSignal, leaf.Name)
		if err != nil {
			return nil, err
		}
		sb.WriteString(cfg.plaSel)
	}
	for _, leaf := range signalOrder {
		cfg, err := lookupConfig(perSignal, leaf.Name)
		if err != nil {
			return nil, err
		}
		sb.WriteString(cfg.plaSel)
	}

	for _, leaf := range clockOrder {
		cfg, _ := lookupConfig(perSignal, leaf.Name)
		sb.WriteString(cfg.cntlEnb)
	}
	for _, leaf := range signalOrder {
		cfg, _ := lookupConfig(perSignal, leaf.Name)
		sb.WriteString(cfg.cntlEnb)
	}

	for _, leaf := range signalOrder {
		cfg, _ := lookupConfig(perSignal, leaf.Name)
		sb.WriteString(cfg.constant)
	}

	return &Result{
		Stream:           Stream(sb.String()),
		ReorderedControl: reordered,
		NumSignal:        numSignal,
		NumClock:         numClock,
	}, nil
}

func lookupConfig(perSignal map[string]signalConfig, name string) (signalConfig, error) {
	cfg, ok := perSignal[name]
	if !ok {
		return signalConfig{}, asaperr.Newf(asaperr.UnknownSignal, name, "controllability catalogue leaf has no matching rewrite node")
	}
	return cfg, nil
}

// lowerNodes stamps PLA_SEL/CNTL_ENB/CONSTANT for every rewrite node,
// replicating PLA_SEL and CNTL_ENB across the signal's width and
// encoding the bypass constant at its declared width (clock nodes omit
// the constant).
func lowerNodes(nodes []srulang.RewriteNode, plaIndex map[string]int, plaSelWidth int) (map[string]signalConfig, error) {
	out := make(map[string]signalConfig, len(nodes))
	for _, n := range nodes {
		width := n.Target.MSB - n.Target.LSB + 1
		if n.Kind == srulang.KindClock && width != 1 {
			return nil, asaperr.Newf(asaperr.PatternRange, n.Target.Name(), "clock rewrite node target must be single-bit, got width %d", width)
		}
		idx, ok := plaIndex[n.Trigger.Key()]
		if !ok {
			return nil, asaperr.Newf(asaperr.InternalEncoding, n.Target.Name(), "trigger expression was not allocated a PLA")
		}

		var plaSel strings.Builder
		for i := 0; i < width; i++ {
			bitfmt.Bits(&plaSel, uint64(idx), plaSelWidth)
		}

		var cntlEnb strings.Builder
		for i := 0; i < width; i++ {
			cntlEnb.WriteByte('1')
		}

		var constant string
		if n.Kind == srulang.KindData {
			if n.Bypass == nil || n.Bypass.Width != width {
				return nil, asaperr.Newf(asaperr.PatternRange, n.Target.Name(), "bypass constant width does not match signal width %d", width)
			}
			constant = n.Bypass.Bits
		}

		out[n.Target.Name()] = signalConfig{
			plaSel:   plaSel.String(),
			cntlEnb:  cntlEnb.String(),
			constant: constant,
		}
	}
	return out, nil
}
