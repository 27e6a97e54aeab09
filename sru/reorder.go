/*
 * ASAP - SRU signal/clock reorder pass.
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

// Package sru implements C5, the signal-rewrite-unit compiler: it
// groups controlled signals into PLAs by shared trigger expression,
// reorders the controllability catalogue into a signal-then-clock
// layout, and lowers the rewrite description into the SRU bitstream.
package sru

import (
	"sort"
	"strings"

	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/catalogue"
)

// Reorder repacks control's leaves into a new catalogue with every
// signal-typed leaf given a contiguous range starting at 0, followed
// by every clock-typed leaf starting where the signal group ends.
// Relative order within each group follows ascending original LSB,
// the same order the hierarchy resolver assigned bit positions in,
// deterministic and the natural substitute for the insertion-order
// dict traversal a Go map cannot replay.
func Reorder(control *catalogue.Tree, controlType *catalogue.TypeTree) (reordered *catalogue.Tree, numSignal, numClock int, err error) {
	leaves := control.Leaves()
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Range.LSB < leaves[j].Range.LSB })

	reordered = catalogue.NewBranch()
	index := 0
	for _, pass := range []catalogue.Kind{catalogue.KindSignal, catalogue.KindClock} {
		for _, leaf := range leaves {
			path := strings.Split(leaf.Name, ".")
			kind, ok := controlType.Lookup(path)
			if !ok {
				return nil, 0, 0, asaperr.Newf(asaperr.UnknownSignal, leaf.Name, "no control-type entry for catalogue leaf")
			}
			if kind != pass {
				continue
			}
			width := leaf.Range.Width()
			newRange := catalogue.Range{MSB: index + width - 1, LSB: index}
			if err := reordered.Set(path, newRange); err != nil {
				return nil, 0, 0, err
			}
			index += width
		}
		if pass == catalogue.KindSignal {
			numSignal = index
		}
	}
	numClock = index - numSignal
	return reordered, numSignal, numClock, nil
}

// connectionOrder returns leaves sorted by descending LSB. Paired with
// appending (rather than prepending) each leaf's bit string, this
// reproduces an ascending-LSB, prepend-each-leaf walk without needing
// a prepend-heavy accumulator: the two traversal/accumulation
// direction pairs are bit-identical.
func connectionOrder(leaves []catalogue.Leaf) []catalogue.Leaf {
	out := make([]catalogue.Leaf, len(leaves))
	copy(out, leaves)
	sort.Slice(out, func(i, j int) bool { return out[i].Range.LSB > out[j].Range.LSB })
	return out
}

// groupLeaves splits a reordered catalogue's leaves into its signal
// group ([0, numSignal)) and clock group ([numSignal, numSignal+numClock)).
func groupLeaves(reordered *catalogue.Tree, numSignal int) (signal, clock []catalogue.Leaf) {
	for _, leaf := range reordered.Leaves() {
		if leaf.Range.LSB < numSignal {
			signal = append(signal, leaf)
		} else {
			clock = append(clock, leaf)
		}
	}
	return signal, clock
}
