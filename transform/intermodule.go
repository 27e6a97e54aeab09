/*
 * ASAP - Inter-module port weaving (C3 stage 2).
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
	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/rtlast"
)

// Totals is one module's woven observe/control port widths. Control is
// a single width because a module's outbound (control_port_in) and
// inbound (control_port_out) control vectors are always the same
// size: each driver tap has a matching load tap of equal width.
type Totals struct {
	ObserveWidth int
	ControlWidth int
}

// Stage2 weaves observe_port/control_port_in/control_port_out up the
// instance hierarchy starting at topModule, memoized by module name so
// a module instantiated from several places is only woven once.
func Stage2(topModule string, infos map[string]*ModuleInfo) (Totals, error) {
	return weaveModule(topModule, infos, map[string]Totals{}, map[string]bool{})
}

func weaveModule(name string, infos map[string]*ModuleInfo, totals map[string]Totals, visiting map[string]bool) (Totals, error) {
	if t, ok := totals[name]; ok {
		return t, nil
	}
	info, ok := infos[name]
	if !ok {
		return Totals{}, asaperr.Newf(asaperr.HierarchyError, name, "module %q not found", name)
	}
	if visiting[name] {
		return Totals{}, asaperr.Newf(asaperr.HierarchyError, name, "instantiation cycle detected through module %q", name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	m := info.Module
	oIdx, cIdx := 0, 0
	for i := range m.Instances {
		inst := &m.Instances[i]
		child, err := weaveModule(inst.ModuleName, infos, totals, visiting)
		if err != nil {
			return Totals{}, err
		}
		if child.ObserveWidth > 0 {
			hi := oIdx + child.ObserveWidth - 1
			inst.Ports = append(inst.Ports, rtlast.PortConn{Port: "observe_port", Expr: sliceRef("observe_port_inst", hi, oIdx)})
			oIdx = hi + 1
		}
		if child.ControlWidth > 0 {
			hi := cIdx + child.ControlWidth - 1
			inst.Ports = append(inst.Ports,
				rtlast.PortConn{Port: "control_port_in", Expr: sliceRef("control_port_in_inst", hi, cIdx)},
				rtlast.PortConn{Port: "control_port_out", Expr: sliceRef("control_port_out_inst", hi, cIdx)})
			cIdx = hi + 1
		}
	}
	instObserveWidth, instControlWidth := oIdx, cIdx
	intObserveWidth := totalWidth(info.ObserveTaps)
	intControlWidth := totalWidth(info.DriverTaps)

	totalObserve := instObserveWidth + intObserveWidth
	totalControl := instControlWidth + intControlWidth

	if instObserveWidth > 0 {
		m.Decls = append(m.Decls, wireDecl("observe_port_inst", instObserveWidth))
	}
	if instControlWidth > 0 {
		m.Decls = append(m.Decls, wireDecl("control_port_in_inst", instControlWidth))
		m.Decls = append(m.Decls, wireDecl("control_port_out_inst", instControlWidth))
	}

	weaveOutput(m, "observe_port", totalObserve, intObserveWidth, instObserveWidth, "observe_port_int", "observe_port_inst")
	weaveOutput(m, "control_port_in", totalControl, intControlWidth, instControlWidth, "control_port_in_int", "control_port_in_inst")
	weaveInput(m, "control_port_out", totalControl, intControlWidth, instControlWidth, "control_port_out_int", "control_port_out_inst")

	t := Totals{ObserveWidth: totalObserve, ControlWidth: totalControl}
	totals[name] = t
	return t, nil
}

func wireDecl(name string, width int) rtlast.Decl {
	return rtlast.Decl{Kind: rtlast.KindWire, Name: name, Range: width > 1, MSB: width - 1, LSB: 0}
}

// weaveOutput declares (or widens) an output port of total width
// combining an int half and an inst half, joined by concatenation
// (int half at the MSB side) or aliased directly when only one half
// is non-empty.
func weaveOutput(m *rtlast.Module, portName string, total, intWidth, instWidth int, intNet, instNet string) {
	if total == 0 {
		return
	}
	m.PortNames = append(m.PortNames, portName)
	m.Decls = append(m.Decls, rtlast.Decl{Kind: rtlast.KindOutput, Name: portName, Range: total > 1, MSB: total - 1, LSB: 0})
	switch {
	case intWidth > 0 && instWidth > 0:
		m.Assigns = append(m.Assigns, rtlast.Assign{LHS: portName, RHS: concat([]string{intNet, instNet})})
	case intWidth > 0:
		m.Assigns = append(m.Assigns, rtlast.Assign{LHS: portName, RHS: intNet})
	default:
		m.Assigns = append(m.Assigns, rtlast.Assign{LHS: portName, RHS: instNet})
	}
}

// weaveInput declares (or widens) an input port of total width and
// splits it back into its int and inst halves using the same bit
// layout weaveOutput used for the matching output port (int half at
// the MSB side), so index i in one corresponds to index i in the
// other.
func weaveInput(m *rtlast.Module, portName string, total, intWidth, instWidth int, intNet, instNet string) {
	if total == 0 {
		return
	}
	m.PortNames = append(m.PortNames, portName)
	m.Decls = append(m.Decls, rtlast.Decl{Kind: rtlast.KindInput, Name: portName, Range: total > 1, MSB: total - 1, LSB: 0})
	switch {
	case intWidth > 0 && instWidth > 0:
		m.Assigns = append(m.Assigns,
			rtlast.Assign{LHS: intNet, RHS: sliceRef(portName, total-1, instWidth)},
			rtlast.Assign{LHS: instNet, RHS: sliceRef(portName, instWidth-1, 0)})
	case intWidth > 0:
		m.Assigns = append(m.Assigns, rtlast.Assign{LHS: intNet, RHS: portName})
	default:
		m.Assigns = append(m.Assigns, rtlast.Assign{LHS: instNet, RHS: portName})
	}
}
