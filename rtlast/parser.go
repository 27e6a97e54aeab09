/*
 * ASAP - Minimal RTL parser.
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
	"strconv"
	"strings"

	"github.com/rcornwell/asap/asaperr"
)

// ParseModule parses the restricted RTL subset this tree's transform
// and test fixtures use: a single "module NAME(ports...);" header,
// input/output/reg/wire declarations (optionally ranged), continuous
// assigns, named-port module instantiations, and "endmodule". This is
// intentionally not a full Verilog grammar; the real RTL parser is an
// external collaborator spec.md treats as out of scope, but this
// covers enough syntax to exercise C3's rewrite policy and its
// round-trip property.
func ParseModule(src string) (*Module, error) {
	lines := strings.Split(src, "\n")
	p := &modParser{lines: lines}
	return p.parse()
}

type modParser struct {
	lines []string
	pos   int // 0-based index into lines
}

func errAt(line int, format string, a ...any) error {
	return asaperr.Newf(asaperr.ConfigError, "line "+strconv.Itoa(line), format, a...)
}

func (p *modParser) parse() (*Module, error) {
	m := &Module{}
	sawHeader := false
	sawEnd := false
	for p.pos < len(p.lines) {
		lineNo := p.pos + 1
		text := strings.TrimSpace(stripLineComment(p.lines[p.pos]))
		p.pos++
		if text == "" {
			continue
		}
		switch {
		case strings.HasPrefix(text, "module "):
			name, ports, err := parseHeader(text, lineNo)
			if err != nil {
				return nil, err
			}
			m.Name = name
			m.PortNames = ports
			sawHeader = true
		case text == "endmodule":
			sawEnd = true
		case strings.HasPrefix(text, "input") || strings.HasPrefix(text, "output") ||
			strings.HasPrefix(text, "reg") || strings.HasPrefix(text, "wire"):
			decl, err := parseDecl(text, lineNo)
			if err != nil {
				return nil, err
			}
			m.Decls = append(m.Decls, decl)
		case strings.HasPrefix(text, "assign "):
			a, err := parseAssign(text, lineNo)
			if err != nil {
				return nil, err
			}
			m.Assigns = append(m.Assigns, a)
		default:
			inst, err := parseInstance(text, lineNo)
			if err != nil {
				return nil, err
			}
			m.Instances = append(m.Instances, inst)
		}
		if sawEnd {
			break
		}
	}
	if !sawHeader {
		return nil, asaperr.New(asaperr.ConfigError, "", "missing module header")
	}
	if !sawEnd {
		return nil, asaperr.New(asaperr.ConfigError, m.Name, "missing endmodule")
	}
	return m, nil
}

func stripLineComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

func parseHeader(text string, line int) (string, []string, error) {
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	open := strings.IndexByte(text, '(')
	close := strings.LastIndexByte(text, ')')
	if open < 0 || close < 0 || close < open {
		return "", nil, errAt(line, "malformed module header %q", text)
	}
	name := strings.TrimSpace(strings.TrimPrefix(text[:open], "module"))
	var ports []string
	for _, p := range strings.Split(text[open+1:close], ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			ports = append(ports, p)
		}
	}
	return name, ports, nil
}

func parseDecl(text string, line int) (Decl, error) {
	// Anything after the terminating ';' (such as a "#pragma" directive
	// on the same line) is not part of the declaration.
	if semi := strings.IndexByte(text, ';'); semi >= 0 {
		text = text[:semi]
	}
	text = strings.TrimSpace(text)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Decl{}, errAt(line, "empty declaration")
	}

	var kind DeclKind
	idx := 1
	switch fields[0] {
	case "input":
		kind = KindInput
	case "output":
		kind = KindOutput
		if len(fields) > 1 && fields[1] == "reg" {
			kind = KindOutputReg
			idx = 2
		}
	case "reg":
		kind = KindReg
	case "wire":
		kind = KindWire
	default:
		return Decl{}, errAt(line, "unknown declaration kind %q", fields[0])
	}
	if idx < len(fields) && fields[idx] == "wire" {
		idx++ // "output wire foo"
	}
	if idx >= len(fields) {
		return Decl{}, errAt(line, "declaration missing a name")
	}

	d := Decl{Kind: kind, Line: line}
	if strings.HasPrefix(fields[idx], "[") {
		msb, lsb, err := parseRange(fields[idx], line)
		if err != nil {
			return Decl{}, err
		}
		d.Range, d.MSB, d.LSB = true, msb, lsb
		idx++
	}
	if idx >= len(fields) {
		return Decl{}, errAt(line, "declaration missing a name")
	}
	d.Name = strings.TrimSuffix(fields[idx], ",")
	return d, nil
}

func parseRange(text string, line int) (int, int, error) {
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	colon := strings.IndexByte(text, ':')
	if colon < 0 {
		return 0, 0, errAt(line, "malformed range %q", text)
	}
	msb, err1 := strconv.Atoi(strings.TrimSpace(text[:colon]))
	lsb, err2 := strconv.Atoi(strings.TrimSpace(text[colon+1:]))
	if err1 != nil || err2 != nil {
		return 0, 0, errAt(line, "malformed range %q", text)
	}
	return msb, lsb, nil
}

func parseAssign(text string, line int) (Assign, error) {
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	body := strings.TrimSpace(strings.TrimPrefix(text, "assign"))
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		return Assign{}, errAt(line, "malformed assign %q", text)
	}
	return Assign{
		LHS: strings.TrimSpace(body[:eq]),
		RHS: strings.TrimSpace(body[eq+1:]),
	}, nil
}

func parseInstance(text string, line int) (Instance, error) {
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	open := strings.IndexByte(text, '(')
	close := strings.LastIndexByte(text, ')')
	if open < 0 || close < 0 || close < open {
		return Instance{}, errAt(line, "malformed instantiation %q", text)
	}
	header := strings.Fields(text[:open])
	if len(header) != 2 {
		return Instance{}, errAt(line, "malformed instantiation header %q", text[:open])
	}
	inst := Instance{ModuleName: header[0], InstanceName: header[1]}
	for _, conn := range splitTopLevel(text[open+1:close], ',') {
		conn = strings.TrimSpace(conn)
		if conn == "" {
			continue
		}
		if !strings.HasPrefix(conn, ".") {
			return Instance{}, errAt(line, "expected a named port connection, got %q", conn)
		}
		lp := strings.IndexByte(conn, '(')
		rp := strings.LastIndexByte(conn, ')')
		if lp < 0 || rp < 0 || rp < lp {
			return Instance{}, errAt(line, "malformed port connection %q", conn)
		}
		inst.Ports = append(inst.Ports, PortConn{
			Port: strings.TrimSpace(conn[1:lp]),
			Expr: strings.TrimSpace(conn[lp+1 : rp]),
		})
	}
	return inst, nil
}

// splitTopLevel splits on sep, ignoring occurrences nested inside
// parens, so a port expression like foo(bar, baz) isn't split.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
