/*
 * ASAP - SMU compiler tests.
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
	"testing"

	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/smulang"
)

func observeTree(t *testing.T) *catalogue.Tree {
	t.Helper()
	tree := catalogue.NewBranch()
	if err := tree.Set([]string{"cpu", "state"}, catalogue.Range{MSB: 3, LSB: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tree.Set([]string{"cpu", "valid"}, catalogue.Range{MSB: 4, LSB: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

func eq() *smulang.CompareKind {
	k := smulang.EQ
	return &k
}

func TestCompileRoundTripsThroughDecode(t *testing.T) {
	tree := observeTree(t)
	params := Params{SmuSegmentSize: 8, MaxSeqDepth: 2, MaxTriggers: 2}

	seqs := []smulang.Sequence{
		{
			Name: "seq0",
			Patterns: []smulang.Pattern{
				{
					Var:   &smulang.VarRef{Hier: []string{"cpu", "state"}, MSB: 3, LSB: 0},
					Cmp:   eq(),
					Const: &smulang.Const{Width: 4, Bits: "1010"},
				},
				{}, // empty/pass cycle
			},
		},
	}

	stream, triggerIndex, err := Compile(seqs, tree, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if triggerIndex["seq0"] != 0 {
		t.Errorf("expected seq0 assigned trigger 0, got %d", triggerIndex["seq0"])
	}

	table, err := Decode(stream, tree, params)
	if err != nil {
		t.Fatalf("unexpected error decoding: %v", err)
	}

	row := table[0][0]
	if !row.SmuEnb {
		t.Error("expected cycle 0 trigger 0 enabled")
	}
	if row.CmpSel != smulang.EQ {
		t.Errorf("expected CmpSel EQ, got %v", row.CmpSel)
	}
	if row.Mask != 0b1111 {
		t.Errorf("expected mask 0b1111, got %b", row.Mask)
	}
	if row.CmpVal != 0b1010 {
		t.Errorf("expected cmpVal 0b1010, got %b", row.CmpVal)
	}

	row1 := table[1][0]
	if !row1.SmuEnb {
		t.Error("expected cycle 1 trigger 0 (pass cycle) to still be enabled per per-sequence lowering")
	}

	// Untouched trigger slot 1 should be the all-zero PASS default.
	other := table[0][1]
	if other.SmuEnb || other.CmpSel != smulang.Pass {
		t.Errorf("expected unused trigger slot to default to inactive PASS, got %+v", other)
	}
}

func TestCompileRejectsTooManySequences(t *testing.T) {
	tree := observeTree(t)
	params := Params{SmuSegmentSize: 8, MaxSeqDepth: 1, MaxTriggers: 1}
	seqs := []smulang.Sequence{
		{Name: "a", Patterns: []smulang.Pattern{{}}},
		{Name: "b", Patterns: []smulang.Pattern{{}}},
	}
	_, _, err := Compile(seqs, tree, params)
	if err == nil {
		t.Fatal("expected an error")
	}
	if ae, ok := err.(*asaperr.Error); !ok || ae.Kind != asaperr.TooManySequences {
		t.Errorf("expected TooManySequences, got %v", err)
	}
}

func TestCompileRejectsUnknownSignal(t *testing.T) {
	tree := observeTree(t)
	params := Params{SmuSegmentSize: 8, MaxSeqDepth: 1, MaxTriggers: 1}
	seqs := []smulang.Sequence{
		{
			Name: "seq0",
			Patterns: []smulang.Pattern{
				{
					Var:   &smulang.VarRef{Hier: []string{"cpu", "missing"}, MSB: 0, LSB: 0},
					Cmp:   eq(),
					Const: &smulang.Const{Width: 1, Bits: "1"},
				},
			},
		},
	}
	_, _, err := Compile(seqs, tree, params)
	if ae, ok := err.(*asaperr.Error); !ok || ae.Kind != asaperr.UnknownSignal {
		t.Errorf("expected UnknownSignal, got %v", err)
	}
}

func TestCompileRejectsSegmentCrossing(t *testing.T) {
	tree := catalogue.NewBranch()
	if err := tree.Set([]string{"wide"}, catalogue.Range{MSB: 9, LSB: 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := Params{SmuSegmentSize: 8, MaxSeqDepth: 1, MaxTriggers: 1}
	seqs := []smulang.Sequence{
		{
			Name: "seq0",
			Patterns: []smulang.Pattern{
				{
					Var:   &smulang.VarRef{Hier: []string{"wide"}, MSB: 3, LSB: 0},
					Cmp:   eq(),
					Const: &smulang.Const{Width: 4, Bits: "0000"},
				},
			},
		},
	}
	_, _, err := Compile(seqs, tree, params)
	if ae, ok := err.(*asaperr.Error); !ok || ae.Kind != asaperr.SegmentCrossing {
		t.Errorf("expected SegmentCrossing, got %v", err)
	}
}

func TestSpacedRoundTrip(t *testing.T) {
	s := Stream("1010")
	spaced := s.Spaced()
	if spaced != "1 0 1 0" {
		t.Errorf("Spaced() = %q, want %q", spaced, "1 0 1 0")
	}
	back, err := ParseSpaced(spaced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != s {
		t.Errorf("ParseSpaced round trip = %q, want %q", back, s)
	}
}
