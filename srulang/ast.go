/*
 * ASAP - Rewrite language AST and POS expression normalization.
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

// Package srulang implements the lexer, parser and AST for the SRU
// rewrite-description language: a list of signal/clock control blocks,
// each guarded by a product-of-sums trigger expression over SMU
// trigger names.
package srulang

import (
	"sort"
	"strings"

	"github.com/rcornwell/asap/smulang"
)

// VarRef and Const are exactly the smulang forms; both languages
// share the same hier[msb:lsb] and width'bbits syntax.
type VarRef = smulang.VarRef
type Const = smulang.Const

// Atom is one trigger name in a product term, optionally complemented.
type Atom struct {
	Name       string
	Complement bool
}

func (a Atom) String() string {
	if a.Complement {
		return a.Name + "'"
	}
	return a.Name
}

// Term is a conjunction of atoms (a product term); order in source is
// not significant to its identity.
type Term []Atom

// normalized returns the term's atoms sorted by their string form, so
// that "a.b'" and "b'.a" produce the same key.
func (t Term) normalized() []string {
	strs := make([]string, len(t))
	for i, a := range t {
		strs[i] = a.String()
	}
	sort.Strings(strs)
	return strs
}

func (t Term) key() string {
	return strings.Join(t.normalized(), ".")
}

// POSExpr is a product-of-sums expression: a set of product terms.
type POSExpr struct {
	Terms []Term
}

// Vars returns the distinct atom names (without complement marks)
// referenced anywhere in the expression, in first-seen order.
func (e POSExpr) Vars() []string {
	seen := map[string]bool{}
	var out []string
	for _, term := range e.Terms {
		for _, atom := range term {
			if !seen[atom.Name] {
				seen[atom.Name] = true
				out = append(out, atom.Name)
			}
		}
	}
	return out
}

// Key returns the expression's canonical identity: the sorted,
// deduplicated set of normalized term keys. Two expressions are
// equivalent, and must share one PLA, iff their Key is equal.
func (e POSExpr) Key() string {
	keys := make([]string, len(e.Terms))
	for i, term := range e.Terms {
		keys[i] = term.key()
	}
	sort.Strings(keys)
	uniq := keys[:0]
	for i, k := range keys {
		if i == 0 || k != keys[i-1] {
			uniq = append(uniq, k)
		}
	}
	return strings.Join(uniq, "+")
}

// NodeKind distinguishes a data-signal rewrite node from a clock one.
type NodeKind int

const (
	KindData NodeKind = iota
	KindClock
)

// RewriteNode is a signal or clock control block. Bypass is nil for
// clock nodes.
type RewriteNode struct {
	Kind    NodeKind
	Target  VarRef
	Trigger POSExpr
	Bypass  *Const
}

// ControlNodeList is every rewrite node in one source file, in
// source order.
type ControlNodeList struct {
	Nodes []RewriteNode
}
