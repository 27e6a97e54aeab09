/*
 * ASAP - Instance hierarchy resolver.
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

// Package hierarchy builds the instance tree rooted at a named top
// module from a registry of per-module declarations, and walks that
// tree to build the observability/controllability catalogues C3
// persists for C4/C5.
package hierarchy

import "github.com/rcornwell/asap/asaperr"

// SignalDecl is one pragma-annotated declaration found in a module's
// source: a signal may be observed, controlled, or both.
type SignalDecl struct {
	Name        string
	Observe     *Range
	Control     *Range
	ControlKind ControlKind
}

// Range is a declared bit range, msb >= lsb >= 0, as found at the
// declaration site (before catalogue renumbering).
type Range struct {
	MSB int
	LSB int
}

// Width returns the number of bits the range spans.
func (r Range) Width() int {
	return r.MSB - r.LSB + 1
}

// ControlKind distinguishes a data-signal control declaration from a
// clock one; mirrors catalogue.Kind but belongs to the declaration
// site rather than the flattened catalogue.
type ControlKind int

const (
	ControlSignal ControlKind = iota
	ControlClock
)

// InstanceDecl is one instance declaration inside a module: an
// instance name bound to the module it instantiates.
type InstanceDecl struct {
	Name       string
	ModuleName string
}

// Module is one parsed module: its own pragma-annotated signals, in
// source order, plus the instances it declares, also in source order.
type Module struct {
	Name      string
	Signals   []SignalDecl
	Instances []InstanceDecl
}

// Registry maps module name to its parsed Module, built from every
// file in the file list.
type Registry map[string]*Module

// Add registers a module, failing if the name is already taken.
func (r Registry) Add(m *Module) error {
	if _, exists := r[m.Name]; exists {
		return asaperr.Newf(asaperr.HierarchyError, m.Name, "module %q declared more than once", m.Name)
	}
	r[m.Name] = m
	return nil
}

// Instance is one node of the instance tree: the root is always named
// "TOP" regardless of the top module's own name.
type Instance struct {
	Name       string
	ModuleName string
	Module     *Module
	Children   []*Instance
}

// BuildTree constructs the instance tree rooted at topModule, named
// "TOP" per the root-naming convention. Fails with HierarchyError on a
// missing module or an instantiation cycle.
func BuildTree(topModule string, reg Registry) (*Instance, error) {
	top, ok := reg[topModule]
	if !ok {
		return nil, asaperr.Newf(asaperr.HierarchyError, topModule, "top module %q not found", topModule)
	}
	root := &Instance{Name: "TOP", ModuleName: topModule, Module: top}
	visiting := map[string]bool{topModule: true}
	if err := buildChildren(root, reg, visiting); err != nil {
		return nil, err
	}
	return root, nil
}

// buildChildren recurses depth-first, tracking modules currently on
// the path from the root so a cycle (a module instantiating itself,
// directly or transitively) is detected rather than stack-overflowing.
// Reuse of the same module from two different branches (a diamond) is
// fine and is not flagged.
func buildChildren(inst *Instance, reg Registry, visiting map[string]bool) error {
	for _, decl := range inst.Module.Instances {
		childMod, ok := reg[decl.ModuleName]
		if !ok {
			return asaperr.Newf(asaperr.HierarchyError, decl.ModuleName,
				"instance %q references undefined module %q", decl.Name, decl.ModuleName)
		}
		if visiting[decl.ModuleName] {
			return asaperr.Newf(asaperr.HierarchyError, decl.ModuleName,
				"instantiation cycle detected through module %q", decl.ModuleName)
		}
		child := &Instance{Name: decl.Name, ModuleName: decl.ModuleName, Module: childMod}
		visiting[decl.ModuleName] = true
		if err := buildChildren(child, reg, visiting); err != nil {
			return err
		}
		delete(visiting, decl.ModuleName)
		inst.Children = append(inst.Children, child)
	}
	return nil
}
