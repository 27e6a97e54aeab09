/*
 * ASAP - Console catalogue/bitstream formatting.
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

package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/smu"
	"github.com/rcornwell/asap/sru"
)

// formatCatalogue renders every leaf as "name [msb:lsb]", sorted by
// ascending LSB, optionally annotated with its control kind.
func formatCatalogue(tree *catalogue.Tree, kinds *catalogue.TypeTree) string {
	if tree == nil {
		return "(empty)"
	}
	leaves := tree.Leaves()
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Range.LSB < leaves[j].Range.LSB })

	var sb strings.Builder
	for _, leaf := range leaves {
		fmt.Fprintf(&sb, "%-32s [%d:%d]", leaf.Name, leaf.Range.MSB, leaf.Range.LSB)
		if kinds != nil {
			if kind, ok := kinds.Lookup(strings.Split(leaf.Name, ".")); ok {
				fmt.Fprintf(&sb, " (%s)", kind)
			}
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatTriggers renders sequence names in trigger-slot order.
func formatTriggers(names []string) string {
	if len(names) == 0 {
		return "(no sequences)"
	}
	var sb strings.Builder
	for i, name := range names {
		fmt.Fprintf(&sb, "%d: %s\n", i, name)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatSMU decodes sess's SMU bitstream and renders one line per
// populated (cycle, trigger) cell.
func formatSMU(sess *Session) (string, error) {
	table, err := smu.Decode(sess.SMUStream, sess.Observe, sess.SMUParams)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for cycle, row := range table {
		for trig, cell := range row {
			if !cell.SmuEnb {
				continue
			}
			fmt.Fprintf(&sb, "cycle %d trigger %d: cmp=%s mask=%0*b val=%0*b inpSel=%d fsmCmp=%d\n",
				cycle, trig, cell.CmpSel, sess.SMUParams.SmuSegmentSize, cell.Mask,
				sess.SMUParams.SmuSegmentSize, cell.CmpVal, cell.InpSel, cell.FsmCmp)
		}
	}
	if sb.Len() == 0 {
		return "(no populated cells)", nil
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// formatSRU decodes sess's SRU bitstream and renders each PLA slot's
// trigger selection and, for every reordered control leaf, its
// PLA_SEL/CNTL_ENB/CONSTANT fields, read at the leaf's LSB bit.
func formatSRU(sess *Session) (string, error) {
	if sess.SRU == nil {
		return "", fmt.Errorf("no SRU result in this session")
	}
	decoded, err := sru.Decode(sess.SRU.Stream, sess.SRU.NumSignal, sess.SRU.NumClock, sess.SRUParams)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, pla := range decoded.PLA {
		fmt.Fprintf(&sb, "PLA %d trigSel=%v\n", i, pla.TrigSel)
	}

	signal, clock := groupReordered(sess.SRU.ReorderedControl, sess.SRU.NumSignal)
	for _, leaf := range clock {
		idx := sess.SRU.NumClock - 1 - (leaf.Range.LSB - sess.SRU.NumSignal)
		fmt.Fprintf(&sb, "%-32s plaSel=%d cntlEnb=%v (clock)\n", leaf.Name, decoded.ClockPlaSel[idx], decoded.ClockCntlEnb[idx])
	}
	for _, leaf := range signal {
		idx := sess.SRU.NumSignal - 1 - leaf.Range.LSB
		fmt.Fprintf(&sb, "%-32s plaSel=%d cntlEnb=%v constant=%v\n", leaf.Name, decoded.SignalPlaSel[idx], decoded.SignalCntlEnb[idx], decoded.SignalConstant[idx])
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// groupReordered splits a reordered control catalogue's leaves into
// its signal and clock groups, sorted by ascending LSB for a stable
// display order.
func groupReordered(tree *catalogue.Tree, numSignal int) (signal, clock []catalogue.Leaf) {
	if tree == nil {
		return nil, nil
	}
	for _, leaf := range tree.Leaves() {
		if leaf.Range.LSB < numSignal {
			signal = append(signal, leaf)
		} else {
			clock = append(clock, leaf)
		}
	}
	sort.Slice(signal, func(i, j int) bool { return signal[i].Range.LSB < signal[j].Range.LSB })
	sort.Slice(clock, func(i, j int) bool { return clock[i].Range.LSB < clock[j].Range.LSB })
	return signal, clock
}
