/*
 * ASAP - Top patch-block RTL emitter.
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

// Package toppatch emits the top-level patch-block RTL (asapTop.v) that
// wraps the compiled smu and sru modules, rearranging the board-level
// control vector into the order sru's reorder pass expects.
package toppatch

import (
	"fmt"
	"io"
)

// ReorderEntry maps one contiguous control field from its bit range in
// the board-facing qIn/qOut vector to its bit range in the SRU-facing
// (clock-controls-first, then signal-controls) internal vector.
type ReorderEntry struct {
	OriginalMSB, OriginalLSB     int
	RearrangedMSB, RearrangedLSB int
}

// Params is everything the patch-block module needs: its numeric
// parameters plus the two reorder lists, clock controls first, then
// signal controls, matching the SRU's own C-then-S field ordering.
type Params struct {
	MaxSeqDepth        int // N
	ObserveWidth       int // K
	MaxTriggers        int // M
	NumClockControls   int // C
	NumSignalControls  int // S
	NumPLA             int
	SruSegmentSize     int
	SmuSegmentSize     int
	ClockReorder       []ReorderEntry
	SignalReorder      []ReorderEntry
}

// Generate writes the patchBlock module to w.
func Generate(w io.Writer, p Params) error {
	fmt.Fprintf(w, "module patchBlock #(\n")
	fmt.Fprintf(w, "    parameter N = %d,\n", p.MaxSeqDepth)
	fmt.Fprintf(w, "    parameter K = %d,\n", p.ObserveWidth)
	fmt.Fprintf(w, "    parameter M = %d,\n", p.MaxTriggers)
	fmt.Fprintf(w, "    parameter C = %d,\n", p.NumClockControls)
	fmt.Fprintf(w, "    parameter S = %d,\n", p.NumSignalControls)
	fmt.Fprintf(w, "    parameter CONTROL_WIDTH = C + S,\n")
	fmt.Fprintf(w, "    parameter NUM_PLA = %d,\n", p.NumPLA)
	fmt.Fprintf(w, "    parameter SRU_SEGMENT_SIZE = %d,\n", p.SruSegmentSize)
	fmt.Fprintf(w, "    parameter SMU_SEGMENT_SIZE = %d\n", p.SmuSegmentSize)
	fmt.Fprintf(w, ") (\n")
	fmt.Fprintf(w, "    clk, cfgClk, rst, bitstreamSerialIn,\n")
	fmt.Fprintf(w, "    smuStreamValid, sruStreamValid,\n")
	fmt.Fprintf(w, "    p, qIn, qOut\n")
	fmt.Fprintf(w, ");\n\n")

	fmt.Fprintf(w, "input clk;\n")
	fmt.Fprintf(w, "input cfgClk;\n")
	fmt.Fprintf(w, "input rst;\n")
	fmt.Fprintf(w, "input bitstreamSerialIn;\n")
	fmt.Fprintf(w, "input smuStreamValid;\n")
	fmt.Fprintf(w, "input sruStreamValid;\n")
	fmt.Fprintf(w, "input [K-1:0] p;\n")
	fmt.Fprintf(w, "input [CONTROL_WIDTH-1:0] qIn;\n")
	fmt.Fprintf(w, "output [CONTROL_WIDTH-1:0] qOut;\n\n")

	fmt.Fprintf(w, "wire [CONTROL_WIDTH-1:0] qInInternal;\n")
	fmt.Fprintf(w, "wire [CONTROL_WIDTH-1:0] qOutInternal;\n")
	fmt.Fprintf(w, "wire [M-1:0] trigger;\n\n")

	// Clock controls are rearranged before signal controls, matching
	// the reorder catalogue's [S, S+C-1] placement for clock leaves.
	for _, e := range p.ClockReorder {
		emitReorderAssigns(w, e)
	}
	for _, e := range p.SignalReorder {
		emitReorderAssigns(w, e)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "smu #(\n")
	fmt.Fprintf(w, "    .N(N), .K(K), .M(M), .SMU_SEGMENT_SIZE(SMU_SEGMENT_SIZE)\n")
	fmt.Fprintf(w, ") smu_inst (\n")
	fmt.Fprintf(w, "    .clk(clk), .rst(rst), .cfgClk(cfgClk),\n")
	fmt.Fprintf(w, "    .bitstreamSerialIn(bitstreamSerialIn), .bitstreamValid(smuStreamValid),\n")
	fmt.Fprintf(w, "    .p(p), .trigger(trigger)\n")
	fmt.Fprintf(w, ");\n\n")

	fmt.Fprintf(w, "sru #(\n")
	fmt.Fprintf(w, "    .M(M), .C(C), .S(S), .NUM_PLA(NUM_PLA), .SRU_SEGMENT_SIZE(SRU_SEGMENT_SIZE)\n")
	fmt.Fprintf(w, ") sru_inst (\n")
	fmt.Fprintf(w, "    .clk(clk), .rst(rst), .cfgClk(cfgClk),\n")
	fmt.Fprintf(w, "    .bitstreamSerialIn(bitstreamSerialIn), .bitstreamValid(sruStreamValid),\n")
	fmt.Fprintf(w, "    .Qin(qInInternal), .Qout(qOutInternal), .trigger(trigger)\n")
	fmt.Fprintf(w, ");\n\n")

	fmt.Fprintf(w, "endmodule\n")
	return nil
}

func emitReorderAssigns(w io.Writer, e ReorderEntry) {
	fmt.Fprintf(w, "assign qInInternal%s = qIn%s;\n", bitRange(e.RearrangedMSB, e.RearrangedLSB), bitRange(e.OriginalMSB, e.OriginalLSB))
	fmt.Fprintf(w, "assign qOut%s = qOutInternal%s;\n", bitRange(e.OriginalMSB, e.OriginalLSB), bitRange(e.RearrangedMSB, e.RearrangedLSB))
}

func bitRange(msb, lsb int) string {
	if msb == lsb {
		return fmt.Sprintf("[%d]", lsb)
	}
	return fmt.Sprintf("[%d:%d]", msb, lsb)
}
