/*
 * ASAP - Intra-module RTL rewrite (C3 stage 1).
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

package transform

import (
	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/pragma"
	"github.com/rcornwell/asap/rtlast"
)

// ModuleInfo is the stage-1 output for one module: the rewritten AST
// plus the taps its internal observe/control aggregate wires must
// thread, in source order.
type ModuleInfo struct {
	Module      *rtlast.Module
	ObserveTaps []Tap
	DriverTaps  []Tap // fed into control_port_in_int, outbound to the SRU
	LoadTaps    []Tap // driven from control_port_out_int, inbound from the SRU
	ControlKind []catalogue.Kind
}

// controlRewrite describes how one declaration kind is rewritten when
// its line carries a control pragma. Every kind except Input routes
// its original driver through a renamed "_controlled" net and leaves
// the original name as the post-bypass value loads read; Input routes
// the other way, since an input port has no internal driver to
// rename; only its internal loads move to the renamed net.
type controlRewrite struct {
	renameIsRHS bool // true: rename RHS (load) occurrences; false: rename LHS (driver) occurrences
	extraKind   rtlast.DeclKind
	newDeclKind rtlast.DeclKind
}

func rewriteFor(kind rtlast.DeclKind) controlRewrite {
	switch kind {
	case rtlast.KindInput:
		return controlRewrite{renameIsRHS: true, extraKind: rtlast.KindWire, newDeclKind: rtlast.KindInput}
	case rtlast.KindOutput:
		return controlRewrite{renameIsRHS: false, extraKind: rtlast.KindWire, newDeclKind: rtlast.KindOutput}
	case rtlast.KindOutputReg:
		return controlRewrite{renameIsRHS: false, extraKind: rtlast.KindReg, newDeclKind: rtlast.KindOutput}
	case rtlast.KindReg:
		return controlRewrite{renameIsRHS: false, extraKind: rtlast.KindReg, newDeclKind: rtlast.KindWire}
	default: // KindWire
		return controlRewrite{renameIsRHS: false, extraKind: rtlast.KindWire, newDeclKind: rtlast.KindWire}
	}
}

// Stage1 rewrites one module's interior: for each pragma-annotated
// declaration, apply the controlled-signal rename (if controlled) and
// record the observe tap (if observed), per spec §4.3 stage 1. It
// mutates m in place and returns the tap bookkeeping stage 2 needs.
func Stage1(m *rtlast.Module, directives []pragma.Directive) (*ModuleInfo, error) {
	byLine := make(map[int]pragma.Directive, len(directives))
	for _, d := range directives {
		byLine[d.Line] = d
	}

	info := &ModuleInfo{Module: m}
	// Snapshot: appending to m.Decls while ranging over it would walk
	// the newly appended "_controlled" decls too.
	original := make([]rtlast.Decl, len(m.Decls))
	copy(original, m.Decls)

	controlledNet := map[string]string{} // original name -> "<name>_controlled", for the observe tap rule

	for i, decl := range original {
		directive, ok := byLine[decl.Line]
		if !ok {
			continue
		}

		if directive.Control != nil {
			rule := rewriteFor(decl.Kind)
			controlledName := decl.Name + "_controlled"
			controlledNet[decl.Name] = controlledName

			if rule.renameIsRHS {
				m.RenameRHS(decl.Name, controlledName)
			} else {
				m.RenameLHS(decl.Name, controlledName)
			}

			m.Decls[i].Kind = rule.newDeclKind
			extra := rtlast.Decl{
				Kind:  rule.extraKind,
				Name:  controlledName,
				Range: decl.Range,
				MSB:   directive.Control.Range.MSB,
				LSB:   directive.Control.Range.LSB,
				Line:  decl.Line,
			}
			if directive.Control.Range.MSB != directive.Control.Range.LSB || decl.Range {
				extra.Range = true
			}
			m.Decls = append(m.Decls, extra)

			driverName, loadName := decl.Name, controlledName
			if !rule.renameIsRHS {
				driverName, loadName = controlledName, decl.Name
			}
			info.DriverTaps = append(info.DriverTaps, Tap{Name: driverName, MSB: directive.Control.Range.MSB, LSB: directive.Control.Range.LSB})
			info.LoadTaps = append(info.LoadTaps, Tap{Name: loadName, MSB: directive.Control.Range.MSB, LSB: directive.Control.Range.LSB})
			info.ControlKind = append(info.ControlKind, directive.Control.Kind)
		}

		if directive.Observe != nil {
			tapName := decl.Name
			if controlled, ok := controlledNet[decl.Name]; ok && !rewriteFor(decl.Kind).renameIsRHS {
				tapName = controlled
			}
			info.ObserveTaps = append(info.ObserveTaps, Tap{
				Name: tapName,
				MSB:  directive.Observe.MSB,
				LSB:  directive.Observe.LSB,
			})
		}
	}

	addAggregateWiring(m, info)
	return info, nil
}

// addAggregateWiring inserts observe_port_int, control_port_in_int and
// control_port_out_int and the pack/unpack assigns that connect them
// to the per-signal taps collected above.
func addAggregateWiring(m *rtlast.Module, info *ModuleInfo) {
	if w := totalWidth(info.ObserveTaps); w > 0 {
		m.Decls = append(m.Decls, rtlast.Decl{Kind: rtlast.KindWire, Name: "observe_port_int", Range: w > 1, MSB: w - 1, LSB: 0})
		refs := make([]string, len(info.ObserveTaps))
		for i, t := range info.ObserveTaps {
			refs[i] = t.Ref()
		}
		m.Assigns = append(m.Assigns, rtlast.Assign{LHS: "observe_port_int", RHS: concat(refs)})
	}

	if w := totalWidth(info.DriverTaps); w > 0 {
		m.Decls = append(m.Decls, rtlast.Decl{Kind: rtlast.KindWire, Name: "control_port_in_int", Range: w > 1, MSB: w - 1, LSB: 0})
		refs := make([]string, len(info.DriverTaps))
		for i, t := range info.DriverTaps {
			refs[i] = t.Ref()
		}
		m.Assigns = append(m.Assigns, rtlast.Assign{LHS: "control_port_in_int", RHS: concat(refs)})
	}

	if w := totalWidth(info.LoadTaps); w > 0 {
		m.Decls = append(m.Decls, rtlast.Decl{Kind: rtlast.KindWire, Name: "control_port_out_int", Range: w > 1, MSB: w - 1, LSB: 0})
		hi := w - 1
		for _, t := range info.LoadTaps {
			lo := hi - t.Width() + 1
			m.Assigns = append(m.Assigns, rtlast.Assign{LHS: t.Ref(), RHS: sliceRef("control_port_out_int", hi, lo)})
			hi = lo - 1
		}
	}
}

func totalWidth(taps []Tap) int {
	w := 0
	for _, t := range taps {
		w += t.Width()
	}
	return w
}

// concat renders a Verilog-style concatenation, first element at the
// MSB side.
func concat(refs []string) string {
	out := "{"
	for i, r := range refs {
		if i > 0 {
			out += ", "
		}
		out += r
	}
	return out + "}"
}
