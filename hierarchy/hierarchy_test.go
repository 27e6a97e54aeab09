/*
 * ASAP - Hierarchy resolver tests.
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

package hierarchy

import "testing"

func leafModule() *Module {
	return &Module{
		Name: "LEAF",
		Signals: []SignalDecl{
			{Name: "a", Observe: &Range{MSB: 2, LSB: 0}},
		},
	}
}

// Two instances of the same leaf module each with 3 observed bits
// produce a parent observe port of width 6, instance 0 at [2:0] and
// instance 1 at [5:3].
func TestHierarchyWeave(t *testing.T) {
	reg := Registry{}
	if err := reg.Add(leafModule()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Add(&Module{
		Name: "TOP_MOD",
		Instances: []InstanceDecl{
			{Name: "inst0", ModuleName: "LEAF"},
			{Name: "inst1", ModuleName: "LEAF"},
		},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root, err := BuildTree("TOP_MOD", reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	observe, _, _, err := BuildCatalogues(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r0, ok := observe.LookupDotted("TOP.inst0.a")
	if !ok {
		t.Fatalf("inst0.a not found in observe catalogue")
	}
	if r0.MSB != 2 || r0.LSB != 0 {
		t.Errorf("inst0.a: expected [2:0], got [%d:%d]", r0.MSB, r0.LSB)
	}

	r1, ok := observe.LookupDotted("TOP.inst1.a")
	if !ok {
		t.Fatalf("inst1.a not found in observe catalogue")
	}
	if r1.MSB != 5 || r1.LSB != 3 {
		t.Errorf("inst1.a: expected [5:3], got [%d:%d]", r1.MSB, r1.LSB)
	}

	if observe.MaxMSB() != 5 {
		t.Errorf("expected overall observe width 6 (max msb 5), got max msb %d", observe.MaxMSB())
	}
}

func TestBuildTreeMissingTopModule(t *testing.T) {
	reg := Registry{}
	if _, err := BuildTree("NOPE", reg); err == nil {
		t.Fatal("expected an error for an undefined top module")
	}
}

func TestBuildTreeMissingInstanceModule(t *testing.T) {
	reg := Registry{}
	_ = reg.Add(&Module{
		Name:      "TOP_MOD",
		Instances: []InstanceDecl{{Name: "inst0", ModuleName: "GHOST"}},
	})
	if _, err := BuildTree("TOP_MOD", reg); err == nil {
		t.Fatal("expected an error for an instance referencing an undefined module")
	}
}

func TestBuildTreeDetectsCycle(t *testing.T) {
	reg := Registry{}
	_ = reg.Add(&Module{
		Name:      "A",
		Instances: []InstanceDecl{{Name: "b_inst", ModuleName: "B"}},
	})
	_ = reg.Add(&Module{
		Name:      "B",
		Instances: []InstanceDecl{{Name: "a_inst", ModuleName: "A"}},
	})
	if _, err := BuildTree("A", reg); err == nil {
		t.Fatal("expected an error for an instantiation cycle")
	}
}

func TestRegistryRejectsDuplicateModule(t *testing.T) {
	reg := Registry{}
	if err := reg.Add(&Module{Name: "A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Add(&Module{Name: "A"}); err == nil {
		t.Fatal("expected an error for a duplicate module name")
	}
}

// A module instantiated from two different branches of the tree (a
// diamond) is not a cycle.
func TestDiamondInstantiationIsNotACycle(t *testing.T) {
	reg := Registry{}
	_ = reg.Add(leafModule())
	_ = reg.Add(&Module{
		Name:      "MID",
		Instances: []InstanceDecl{{Name: "leaf_inst", ModuleName: "LEAF"}},
	})
	_ = reg.Add(&Module{
		Name: "TOP_MOD",
		Instances: []InstanceDecl{
			{Name: "mid0", ModuleName: "MID"},
			{Name: "mid1", ModuleName: "MID"},
		},
	})
	if _, err := BuildTree("TOP_MOD", reg); err != nil {
		t.Fatalf("unexpected error for a diamond instantiation: %v", err)
	}
}
