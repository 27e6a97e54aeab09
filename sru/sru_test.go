/*
 * ASAP - SRU compiler tests.
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
	"testing"

	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/srulang"
)

func controlCatalogue(t *testing.T) (*catalogue.Tree, *catalogue.TypeTree) {
	t.Helper()
	control := catalogue.NewBranch()
	controlType := catalogue.NewTypeBranch()

	sets := []struct {
		path []string
		r    catalogue.Range
		kind catalogue.Kind
	}{
		{[]string{"cpu", "gclk"}, catalogue.Range{MSB: 0, LSB: 0}, catalogue.KindClock},
		{[]string{"cpu", "dout"}, catalogue.Range{MSB: 4, LSB: 1}, catalogue.KindSignal},
		{[]string{"cpu", "valid"}, catalogue.Range{MSB: 5, LSB: 5}, catalogue.KindSignal},
	}
	for _, s := range sets {
		if err := control.Set(s.path, s.r); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := controlType.Set(s.path, s.kind); err != nil {
			t.Fatalf("Set type: %v", err)
		}
	}
	return control, controlType
}

func TestReorderGroupsSignalBeforeClock(t *testing.T) {
	control, controlType := controlCatalogue(t)
	reordered, numSignal, numClock, err := Reorder(control, controlType)
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if numSignal != 5 {
		t.Errorf("expected 5 signal bits (dout[4] + valid[1]), got %d", numSignal)
	}
	if numClock != 1 {
		t.Errorf("expected 1 clock bit, got %d", numClock)
	}

	for _, name := range []string{"cpu.dout", "cpu.valid"} {
		r, ok := reordered.LookupDotted(name)
		if !ok {
			t.Fatalf("missing reordered leaf %q", name)
		}
		if r.LSB < 0 || r.MSB >= numSignal {
			t.Errorf("%s: expected range inside [0,%d), got %+v", name, numSignal, r)
		}
	}
	r, ok := reordered.LookupDotted("cpu.gclk")
	if !ok {
		t.Fatal("missing reordered leaf cpu.gclk")
	}
	if r.LSB < numSignal || r.MSB >= numSignal+numClock {
		t.Errorf("cpu.gclk: expected range inside [%d,%d), got %+v", numSignal, numSignal+numClock, r)
	}
}

func posExpr(t *testing.T, src string) srulang.POSExpr {
	t.Helper()
	list, err := srulang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(list.Nodes) == 0 {
		t.Fatal("expected at least one node")
	}
	return list.Nodes[0].Trigger
}

func TestAllocatePLASharesEquivalentTriggers(t *testing.T) {
	src1 := `
signal {
	name = TOP.a[0:0]
	trigger = (s0.s1' + s0'.s1)
	constant = 1'b1
}
`
	src2 := `
signal {
	name = TOP.b[0:0]
	trigger = (s1.s0' + s1'.s0)
	constant = 1'b1
}
`
	nodes := []srulang.RewriteNode{
		{Kind: srulang.KindData, Trigger: posExpr(t, src1)},
		{Kind: srulang.KindData, Trigger: posExpr(t, src2)},
	}
	order, index, err := allocatePLA(nodes, 4)
	if err != nil {
		t.Fatalf("allocatePLA: %v", err)
	}
	if len(order) != 1 {
		t.Fatalf("expected equivalent triggers to share one PLA, got %d", len(order))
	}
	if index[nodes[0].Trigger.Key()] != index[nodes[1].Trigger.Key()] {
		t.Errorf("expected both nodes to resolve to the same PLA index")
	}
}

func TestAllocatePLARejectsOverflow(t *testing.T) {
	nodes := []srulang.RewriteNode{
		{Trigger: posExpr(t, "signal{name=TOP.a[0:0]\ntrigger=(s0)\nconstant=1'b1}")},
		{Trigger: posExpr(t, "signal{name=TOP.a[0:0]\ntrigger=(s1)\nconstant=1'b1}")},
		{Trigger: posExpr(t, "signal{name=TOP.a[0:0]\ntrigger=(s2)\nconstant=1'b1}")},
	}
	if _, _, err := allocatePLA(nodes, 2); err == nil {
		t.Fatal("expected TooManyPLAs error")
	}
}

func compileCatalogue(t *testing.T) (*catalogue.Tree, *catalogue.TypeTree) {
	t.Helper()
	control := catalogue.NewBranch()
	controlType := catalogue.NewTypeBranch()
	sets := []struct {
		path []string
		r    catalogue.Range
		kind catalogue.Kind
	}{
		{[]string{"cpu", "gclk"}, catalogue.Range{MSB: 0, LSB: 0}, catalogue.KindClock},
		{[]string{"cpu", "dout"}, catalogue.Range{MSB: 4, LSB: 1}, catalogue.KindSignal},
	}
	for _, s := range sets {
		if err := control.Set(s.path, s.r); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := controlType.Set(s.path, s.kind); err != nil {
			t.Fatalf("Set type: %v", err)
		}
	}
	return control, controlType
}

func TestCompileDecodeRoundTrip(t *testing.T) {
	control, controlType := compileCatalogue(t)

	src := `
signal {
	name = cpu.dout[4:1]
	trigger = (s0.s1')
	constant = 4'b1100
}
clock {
	name = cpu.gclk[0:0]
	trigger = (s0.s1')
}
`
	list, err := srulang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	triggerIndex := map[string]int{"s0": 0, "s1": 1}
	params := Params{SruSegmentSize: 2, SruNumPLA: 2, MaxTriggers: 4}

	result, err := Compile(list.Nodes, control, controlType, triggerIndex, params)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	decoded, err := Decode(result.Stream, result.NumSignal, result.NumClock, params)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(decoded.PLA) != params.SruNumPLA {
		t.Fatalf("expected %d PLA slots, got %d", params.SruNumPLA, len(decoded.PLA))
	}
	if decoded.PLA[0].TrigSel[0] != 0 || decoded.PLA[0].TrigSel[1] != 1 {
		t.Errorf("unexpected TRIG_SEL for PLA 0: %v", decoded.PLA[0].TrigSel)
	}
	// s0.s1' is satisfied only when bit0(s0)=1, bit1(s1)=0: assignment 1.
	if !decoded.PLA[0].MintermSel[1] {
		t.Errorf("expected minterm 1 set for s0.s1', got %v", decoded.PLA[0].MintermSel)
	}
	if decoded.PLA[0].MintermSel[0] || decoded.PLA[0].MintermSel[3] {
		t.Errorf("expected minterms 0 and 3 clear for s0.s1', got %v", decoded.PLA[0].MintermSel)
	}
	if decoded.PLA[1].TrigSel[0] != 0 {
		t.Errorf("unused PLA slot should default to zero TRIG_SEL, got %v", decoded.PLA[1].TrigSel)
	}

	for i, b := range decoded.SignalCntlEnb {
		if !b {
			t.Errorf("expected signal CNTL_ENB bit %d set", i)
		}
	}
	for i, b := range decoded.ClockCntlEnb {
		if !b {
			t.Errorf("expected clock CNTL_ENB bit %d set", i)
		}
	}

	wantConst := []bool{true, true, false, false}
	if len(decoded.SignalConstant) != len(wantConst) {
		t.Fatalf("expected %d constant bits, got %d", len(wantConst), len(decoded.SignalConstant))
	}
	for i, want := range wantConst {
		if decoded.SignalConstant[i] != want {
			t.Errorf("constant bit %d: expected %v, got %v", i, want, decoded.SignalConstant[i])
		}
	}
}

func TestCompileRejectsBypassWidthMismatch(t *testing.T) {
	control, controlType := compileCatalogue(t)
	src := `
signal {
	name = cpu.dout[4:1]
	trigger = (s0)
	constant = 2'b11
}
`
	list, err := srulang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	params := Params{SruSegmentSize: 1, SruNumPLA: 1, MaxTriggers: 4}
	if _, err := Compile(list.Nodes, control, controlType, map[string]int{"s0": 0}, params); err == nil {
		t.Fatal("expected an error for a bypass constant narrower than its signal")
	}
}

func TestCompileRejectsMultiBitClockTarget(t *testing.T) {
	control := catalogue.NewBranch()
	controlType := catalogue.NewTypeBranch()
	if err := control.Set([]string{"cpu", "gclk"}, catalogue.Range{MSB: 1, LSB: 0}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := controlType.Set([]string{"cpu", "gclk"}, catalogue.KindClock); err != nil {
		t.Fatalf("Set type: %v", err)
	}

	src := `
clock {
	name = cpu.gclk[1:0]
	trigger = (s0)
}
`
	list, err := srulang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	params := Params{SruSegmentSize: 1, SruNumPLA: 1, MaxTriggers: 4}
	if _, err := Compile(list.Nodes, control, controlType, map[string]int{"s0": 0}, params); err == nil {
		t.Fatal("expected an error for a multi-bit clock rewrite node target")
	}
}

func TestSpacedRoundTrip(t *testing.T) {
	s := Stream("1011")
	parsed, err := ParseSpaced(s.Spaced())
	if err != nil {
		t.Fatalf("ParseSpaced: %v", err)
	}
	if parsed != s {
		t.Errorf("expected %q, got %q", s, parsed)
	}
}
