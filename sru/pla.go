/*
 * ASAP - SRU PLA allocation and lowering.
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
	"github.com/rcornwell/asap/srulang"
)

// allocatePLA collects the distinct trigger expressions referenced by
// nodes, identity being POSExpr.Key(), assigning each first-seen
// expression the next PLA index.
func allocatePLA(nodes []srulang.RewriteNode, numPLA int) (order []srulang.POSExpr, index map[string]int, err error) {
	index = map[string]int{}
	for _, n := range nodes {
		key := n.Trigger.Key()
		if _, ok := index[key]; ok {
			continue
		}
		if len(order) >= numPLA {
			return nil, nil, asaperr.Newf(asaperr.TooManyPLAs, "", "more than %d distinct trigger expressions", numPLA)
		}
		index[key] = len(order)
		order = append(order, n.Trigger)
	}
	return order, index, nil
}

// writeTrigSel appends one PLA's TRIG_SEL field: segSize slots of
// width trigWidth, slot 0 (the first-seen atom) at the LSB side and
// later atoms toward the MSB, unused slots zero.
func writeTrigSel(sb *strings.Builder, expr srulang.POSExpr, triggerIndex map[string]int, segSize, trigWidth int) error {
	atoms := expr.Vars()
	if len(atoms) > segSize {
		return asaperr.Newf(asaperr.InternalEncoding, "", "expression uses %d atoms, exceeding SRU_SEGMENT_SIZE=%d", len(atoms), segSize)
	}
	for slot := segSize - 1; slot >= 0; slot-- {
		var v uint64
		if slot < len(atoms) {
			idx, ok := triggerIndex[atoms[slot]]
			if !ok {
				return asaperr.Newf(asaperr.TriggerOverflow, atoms[slot], "trigger expression references an undeclared sequence")
			}
			v = uint64(idx)
		}
		bitfmt.Bits(sb, v, trigWidth)
	}
	return nil
}

// writeMintermSel appends one PLA's MINTERM_SEL field: 2^segSize bits,
// bit i set iff some product term of expr is satisfied by treating i
// as the atom-assignment a[segSize-1..0] (atom slot 0 at bit 0).
func writeMintermSel(sb *strings.Builder, expr srulang.POSExpr, segSize int) {
	atoms := expr.Vars()
	atomIndex := make(map[string]int, len(atoms))
	for i, name := range atoms {
		atomIndex[name] = i
	}
	total := 1 << segSize
	for assignment := 0; assignment < total; assignment++ {
		bitfmt.Bit(sb, exprSatisfied(expr, atomIndex, assignment))
	}
}

func exprSatisfied(expr srulang.POSExpr, atomIndex map[string]int, assignment int) bool {
	for _, term := range expr.Terms {
		if termSatisfied(term, atomIndex, assignment) {
			return true
		}
	}
	return false
}

func termSatisfied(term srulang.Term, atomIndex map[string]int, assignment int) bool {
	for _, atom := range term {
		idx := atomIndex[atom.Name]
		bit := (assignment >> uint(idx)) & 1
		want := 1
		if atom.Complement {
			want = 0
		}
		if bit != want {
			return false
		}
	}
	return true
}
