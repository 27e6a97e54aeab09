/*
 * ASAP - Rewrite language parser.
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

package srulang

import "strings"

// Parse reads a rewrite-language source file into a ControlNodeList.
func Parse(src string) (*ControlNodeList, error) {
	c := newCursor(src)
	list := &ControlNodeList{}
	for !c.atEOF() {
		word, err := c.readIdent()
		if err != nil {
			return nil, err
		}
		switch word {
		case "signal":
			node, err := parseBlock(c, KindData)
			if err != nil {
				return nil, err
			}
			list.Nodes = append(list.Nodes, *node)
		case "clock":
			node, err := parseBlock(c, KindClock)
			if err != nil {
				return nil, err
			}
			list.Nodes = append(list.Nodes, *node)
		default:
			return nil, errAt(c.line, "expected 'signal' or 'clock', got %q", word)
		}
	}
	return list, nil
}

// parseBlock parses the body of a signal or clock control block. A
// signal block requires name, trigger and constant; a clock block
// requires name and trigger only, and forbids constant.
func parseBlock(c *cursor, kind NodeKind) (*RewriteNode, error) {
	if err := c.expectByte('{'); err != nil {
		return nil, err
	}

	var target *VarRef
	var trigger *POSExpr
	var bypass *Const

	for {
		c.skipSpace()
		if c.peek() == '}' {
			c.pos++
			break
		}
		field, err := c.readIdent()
		if err != nil {
			return nil, err
		}
		if err := c.expectByte('='); err != nil {
			return nil, err
		}
		switch field {
		case "name":
			if target != nil {
				return nil, errAt(c.line, "duplicate name field")
			}
			v, err := c.readVariable()
			if err != nil {
				return nil, err
			}
			target = &v
		case "trigger":
			if trigger != nil {
				return nil, errAt(c.line, "duplicate trigger field")
			}
			text, err := c.readParenExpr()
			if err != nil {
				return nil, err
			}
			expr, err := parsePOSExpr(text, c.line)
			if err != nil {
				return nil, err
			}
			trigger = &expr
		case "constant":
			if kind == KindClock {
				return nil, errAt(c.line, "clock block cannot have a constant field")
			}
			if bypass != nil {
				return nil, errAt(c.line, "duplicate constant field")
			}
			cst, err := c.readConst()
			if err != nil {
				return nil, err
			}
			bypass = &cst
		default:
			return nil, errAt(c.line, "unknown field %q in control block", field)
		}
	}

	if target == nil || trigger == nil {
		return nil, errAt(c.line, "control block missing name or trigger")
	}
	if kind == KindData && bypass == nil {
		return nil, errAt(c.line, "signal block missing constant field")
	}

	return &RewriteNode{Kind: kind, Target: *target, Trigger: *trigger, Bypass: bypass}, nil
}

// parsePOSExpr parses the text inside a trigger's parens: terms
// separated by '+', each term a '.'-joined conjunction of atoms, each
// atom an identifier optionally suffixed with a complement mark.
func parsePOSExpr(text string, line int) (POSExpr, error) {
	var expr POSExpr
	for _, termText := range strings.Split(text, "+") {
		termText = strings.TrimSpace(termText)
		if termText == "" {
			return POSExpr{}, errAt(line, "empty term in trigger expression %q", text)
		}
		var term Term
		for _, atomText := range strings.Split(termText, ".") {
			atomText = strings.TrimSpace(atomText)
			if atomText == "" {
				return POSExpr{}, errAt(line, "empty atom in trigger expression %q", text)
			}
			complement := strings.HasSuffix(atomText, "'")
			name := strings.TrimSuffix(atomText, "'")
			if name == "" {
				return POSExpr{}, errAt(line, "atom with no name in trigger expression %q", text)
			}
			term = append(term, Atom{Name: name, Complement: complement})
		}
		expr.Terms = append(expr.Terms, term)
	}
	return expr, nil
}
