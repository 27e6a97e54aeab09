/*
 * ASAP - Minimal RTL AST.
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

// Package rtlast defines the minimal RTL AST and emitter surface the
// transform package needs: a declaration list, a statement list, and
// rename/emit operations. A full Verilog grammar is outside scope,
// treated as an external collaborator the real RTL parser stands in
// for; the shapes and small reference parser/emitter here are enough
// to drive C3's rewrite policy and its round-trip test.
package rtlast

// DeclKind is the kind of an I/O or internal declaration.
type DeclKind int

const (
	KindInput DeclKind = iota
	KindOutput
	KindOutputReg
	KindReg
	KindWire
)

func (k DeclKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindOutputReg:
		return "output reg"
	case KindReg:
		return "reg"
	case KindWire:
		return "wire"
	default:
		return "?"
	}
}

// Decl is one I/O or internal signal declaration.
type Decl struct {
	Kind  DeclKind
	Name  string
	MSB   int // MSB == LSB == 0 for a scalar (no range print)
	LSB   int
	Line  int // 1-based source line, for pragma association
	Range bool
}

// Width returns the declared bit width.
func (d Decl) Width() int {
	if !d.Range {
		return 1
	}
	return d.MSB - d.LSB + 1
}

// Assign is one continuous assignment.
type Assign struct {
	LHS string
	RHS string
}

// PortConn is one named port connection in a module instantiation.
type PortConn struct {
	Port string
	Expr string
}

// Instance is one module instantiation.
type Instance struct {
	ModuleName   string
	InstanceName string
	Ports        []PortConn
}

// Module is one parsed RTL module: its port list (declaration order,
// for the header), its declarations, continuous assigns, and
// sub-instances, each in source order.
type Module struct {
	Name      string
	PortNames []string
	Decls     []Decl
	Assigns   []Assign
	Instances []Instance
}

// FindDecl returns the declaration named name, if any.
func (m *Module) FindDecl(name string) (*Decl, bool) {
	for i := range m.Decls {
		if m.Decls[i].Name == name {
			return &m.Decls[i], true
		}
	}
	return nil, false
}
