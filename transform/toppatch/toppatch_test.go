/*
 * ASAP - Top patch-block RTL emitter tests.
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

package toppatch

import (
	"strings"
	"testing"
)

func TestGenerateIncludesParamsAndInstances(t *testing.T) {
	p := Params{
		MaxSeqDepth:       4,
		ObserveWidth:      8,
		MaxTriggers:       2,
		NumClockControls:  1,
		NumSignalControls: 3,
		NumPLA:            2,
		SruSegmentSize:    4,
		SmuSegmentSize:    4,
		ClockReorder: []ReorderEntry{
			{OriginalMSB: 3, OriginalLSB: 3, RearrangedMSB: 3, RearrangedLSB: 3},
		},
		SignalReorder: []ReorderEntry{
			{OriginalMSB: 2, OriginalLSB: 0, RearrangedMSB: 2, RearrangedLSB: 0},
		},
	}

	var sb strings.Builder
	if err := Generate(&sb, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"module patchBlock #(",
		"parameter N = 4,",
		"parameter CONTROL_WIDTH = C + S,",
		"smu_inst (",
		"sru_inst (",
		"assign qInInternal[3] = qIn[3];",
		"assign qOut[3] = qOutInternal[3];",
		"assign qInInternal[2:0] = qIn[2:0];",
		"endmodule",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected generated RTL to contain %q, got:\n%s", want, out)
		}
	}
}

func TestBitRangeCollapsesSingleBit(t *testing.T) {
	if got := bitRange(5, 5); got != "[5]" {
		t.Errorf("bitRange(5,5) = %q, want [5]", got)
	}
	if got := bitRange(5, 2); got != "[5:2]" {
		t.Errorf("bitRange(5,2) = %q, want [5:2]", got)
	}
}
