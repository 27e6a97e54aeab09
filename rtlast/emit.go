/*
 * ASAP - Minimal RTL emitter.
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

package rtlast

import (
	"fmt"
	"io"
	"strings"
)

// Emitter renders a Module back to source text. C3 is written against
// this interface rather than the concrete TextEmitter so a richer
// emitter (preserving original formatting/comments) can be substituted
// without changing the transform's policy code.
type Emitter interface {
	Emit(w io.Writer, m *Module) error
}

// TextEmitter renders a canonical textual form: not byte-identical to
// arbitrary input formatting, but textually equivalent modulo
// whitespace for any module ParseModule accepts, which is what the
// round-trip property requires.
type TextEmitter struct{}

func (TextEmitter) Emit(w io.Writer, m *Module) error {
	if _, err := fmt.Fprintf(w, "module %s(%s);\n", m.Name, strings.Join(m.PortNames, ", ")); err != nil {
		return err
	}
	for _, d := range m.Decls {
		if _, err := fmt.Fprintf(w, "%s%s;\n", declKeyword(d), d.Name); err != nil {
			return err
		}
	}
	for _, a := range m.Assigns {
		if _, err := fmt.Fprintf(w, "assign %s = %s;\n", a.LHS, a.RHS); err != nil {
			return err
		}
	}
	for _, inst := range m.Instances {
		conns := make([]string, len(inst.Ports))
		for i, c := range inst.Ports {
			conns[i] = fmt.Sprintf(".%s(%s)", c.Port, c.Expr)
		}
		if _, err := fmt.Fprintf(w, "%s %s(%s);\n", inst.ModuleName, inst.InstanceName, strings.Join(conns, ", ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "endmodule")
	return err
}

func declKeyword(d Decl) string {
	rng := ""
	if d.Range {
		rng = fmt.Sprintf("[%d:%d] ", d.MSB, d.LSB)
	}
	return d.Kind.String() + " " + rng
}
