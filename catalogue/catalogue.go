/*
 * ASAP - Hierarchical observe/control catalogues.
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

// Package catalogue implements the tree-shaped observability and
// controllability catalogues that C2 builds and C3 persists to the
// interface file for C4/C5 to consume. A catalogue node is either a
// Branch, keyed by instance or signal name, or a Leaf giving that
// signal's bit position in the flattened vector.
package catalogue

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/rcornwell/asap/asaperr"
)

// Range is an inclusive [MSB, LSB] bit position within a flattened
// observe or control vector.
type Range struct {
	MSB int
	LSB int
}

// Width returns the number of bits the range spans.
func (r Range) Width() int {
	return r.MSB - r.LSB + 1
}

// Tree is the Branch(map)/Leaf(Range) tagged variant: exactly one of
// Leaf or Children is set on any given node.
type Tree struct {
	Leaf     *Range
	Children map[string]*Tree
}

// NewBranch returns an empty branch node.
func NewBranch() *Tree {
	return &Tree{Children: map[string]*Tree{}}
}

// NewLeaf returns a leaf node holding r.
func NewLeaf(r Range) *Tree {
	return &Tree{Leaf: &r}
}

// Set inserts a leaf at the dotted path, creating intermediate
// branches as needed. It fails if a path component already names a
// leaf (a signal can't also be a sub-hierarchy).
func (t *Tree) Set(path []string, r Range) error {
	if len(path) == 0 {
		return asaperr.New(asaperr.HierarchyError, "", "empty catalogue path")
	}
	node := t
	for _, name := range path[:len(path)-1] {
		if node.Leaf != nil {
			return asaperr.Newf(asaperr.HierarchyError, strings.Join(path, "."), "path crosses existing leaf at %q", name)
		}
		child, ok := node.Children[name]
		if !ok {
			child = NewBranch()
			node.Children[name] = child
		}
		node = child
	}
	leafName := path[len(path)-1]
	if node.Children == nil {
		return asaperr.Newf(asaperr.HierarchyError, strings.Join(path, "."), "path crosses existing leaf at %q", leafName)
	}
	if _, exists := node.Children[leafName]; exists {
		return asaperr.Newf(asaperr.HierarchyError, strings.Join(path, "."), "duplicate catalogue entry")
	}
	node.Children[leafName] = NewLeaf(r)
	return nil
}

// Lookup resolves a dotted hierarchical path to its Range.
func (t *Tree) Lookup(path []string) (Range, bool) {
	node := t
	for _, name := range path {
		if node == nil || node.Children == nil {
			return Range{}, false
		}
		child, ok := node.Children[name]
		if !ok {
			return Range{}, false
		}
		node = child
	}
	if node == nil || node.Leaf == nil {
		return Range{}, false
	}
	return *node.Leaf, true
}

// LookupDotted is Lookup for a "."-joined name.
func (t *Tree) LookupDotted(name string) (Range, bool) {
	return t.Lookup(strings.Split(name, "."))
}

// Leaf carries a leaf's full dotted name alongside its range, for
// callers that need to walk every signal in the catalogue.
type Leaf struct {
	Name  string
	Range Range
}

// Leaves returns every leaf in the tree in unspecified order.
func (t *Tree) Leaves() []Leaf {
	var out []Leaf
	var walk func(node *Tree, prefix []string)
	walk = func(node *Tree, prefix []string) {
		if node == nil {
			return
		}
		if node.Leaf != nil {
			out = append(out, Leaf{Name: strings.Join(prefix, "."), Range: *node.Leaf})
			return
		}
		for name, child := range node.Children {
			walk(child, append(prefix, name))
		}
	}
	walk(t, nil)
	return out
}

// LeavesByLSBDesc returns every leaf sorted by descending LSB, the
// order C5's bitstream assembly walks a reordered catalogue's
// connection order (see Design Notes: MSB-first assembly prepends the
// lowest LSB last, which is equivalent to appending leaves highest
// LSB first).
func (t *Tree) LeavesByLSBDesc() []Leaf {
	leaves := t.Leaves()
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Range.LSB > leaves[j].Range.LSB })
	return leaves
}

// MaxMSB returns the highest MSB in the tree, or -1 if it is empty.
// Used by C4 to compute the observed vector width.
func (t *Tree) MaxMSB() int {
	max := -1
	for _, leaf := range t.Leaves() {
		if leaf.Range.MSB > max {
			max = leaf.Range.MSB
		}
	}
	return max
}

// MarshalJSON renders a branch as a nested object and a leaf as the
// two-element [msb, lsb] array the interface file format uses.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if t.Leaf != nil {
		return json.Marshal([2]int{t.Leaf.MSB, t.Leaf.LSB})
	}
	return json.Marshal(t.Children)
}

// UnmarshalJSON accepts either a [msb, lsb] array (leaf) or an object
// of nested trees (branch), matching the shape Tree.MarshalJSON emits.
func (t *Tree) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pair [2]int
		if err := json.Unmarshal(data, &pair); err != nil {
			return asaperr.Wrap(asaperr.ConfigError, "interface file", err)
		}
		t.Leaf = &Range{MSB: pair[0], LSB: pair[1]}
		return nil
	}
	var children map[string]*Tree
	if err := json.Unmarshal(data, &children); err != nil {
		return asaperr.Wrap(asaperr.ConfigError, "interface file", err)
	}
	t.Children = children
	return nil
}

// Kind labels a controllability leaf as a data signal or a clock.
type Kind int

const (
	KindSignal Kind = iota
	KindClock
)

func (k Kind) String() string {
	if k == KindClock {
		return "clock"
	}
	return "signal"
}

// ParseKind recovers a Kind from its JSON string label.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "signal":
		return KindSignal, nil
	case "clock":
		return KindClock, nil
	default:
		return 0, asaperr.Newf(asaperr.ConfigError, s, "unknown control type")
	}
}

// TypeTree parallels Tree, labeling each controllability leaf as a
// signal or a clock instead of giving it a range.
type TypeTree struct {
	Leaf     *Kind
	Children map[string]*TypeTree
}

// NewTypeBranch returns an empty branch node.
func NewTypeBranch() *TypeTree {
	return &TypeTree{Children: map[string]*TypeTree{}}
}

// NewTypeLeaf returns a leaf labeled k.
func NewTypeLeaf(k Kind) *TypeTree {
	return &TypeTree{Leaf: &k}
}

// Set inserts a type leaf at the dotted path, mirroring Tree.Set.
func (t *TypeTree) Set(path []string, k Kind) error {
	if len(path) == 0 {
		return asaperr.New(asaperr.HierarchyError, "", "empty catalogue path")
	}
	node := t
	for _, name := range path[:len(path)-1] {
		child, ok := node.Children[name]
		if !ok {
			child = NewTypeBranch()
			node.Children[name] = child
		}
		node = child
	}
	leafName := path[len(path)-1]
	node.Children[leafName] = NewTypeLeaf(k)
	return nil
}

// Lookup resolves a dotted path to its Kind.
func (t *TypeTree) Lookup(path []string) (Kind, bool) {
	node := t
	for _, name := range path {
		if node == nil || node.Children == nil {
			return 0, false
		}
		child, ok := node.Children[name]
		if !ok {
			return 0, false
		}
		node = child
	}
	if node == nil || node.Leaf == nil {
		return 0, false
	}
	return *node.Leaf, true
}

// MarshalJSON renders a leaf as its string label and a branch as a
// nested object.
func (t *TypeTree) MarshalJSON() ([]byte, error) {
	if t.Leaf != nil {
		return json.Marshal(t.Leaf.String())
	}
	return json.Marshal(t.Children)
}

// UnmarshalJSON accepts either a string label (leaf) or an object of
// nested type trees (branch).
func (t *TypeTree) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return asaperr.Wrap(asaperr.ConfigError, "interface file", err)
		}
		kind, err := ParseKind(label)
		if err != nil {
			return err
		}
		t.Leaf = &kind
		return nil
	}
	var children map[string]*TypeTree
	if err := json.Unmarshal(data, &children); err != nil {
		return asaperr.Wrap(asaperr.ConfigError, "interface file", err)
	}
	t.Children = children
	return nil
}

// InterfaceFile is the JSON document C3 writes and C4/C5 read, the
// boundary described in spec §4.6/§6.
type InterfaceFile struct {
	ObservabilityMap   *Tree     `json:"OBSERVABILITY_MAP"`
	ControllabilityMap *Tree     `json:"CONTROLLABILITY_MAP"`
	ControlTypeMap     *TypeTree `json:"CONTROL_TYPE_MAP"`
}
