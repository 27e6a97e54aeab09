/*
 * ASAP - Rewrite language cursor scanner.
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

import (
	"strconv"
	"unicode"

	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/smulang"
)

// cursor walks the rewrite-language source a byte at a time. Unlike
// smulang this package has no fixed token alphabet worth pre-lexing:
// "name"/"trigger"/"constant" fields each take a differently shaped
// value, so the cursor idiom from config/configparser is used
// directly instead of a separate token pass.
type cursor struct {
	src  string
	pos  int
	line int
}

func newCursor(src string) *cursor {
	return &cursor{src: src, line: 1}
}

func (c *cursor) skipSpace() {
	for c.pos < len(c.src) {
		switch c.src[c.pos] {
		case '\n':
			c.line++
			c.pos++
		case ' ', '\t', '\r':
			c.pos++
		default:
			if c.src[c.pos] == '/' && c.pos+1 < len(c.src) && c.src[c.pos+1] == '/' {
				for c.pos < len(c.src) && c.src[c.pos] != '\n' {
					c.pos++
				}
				continue
			}
			return
		}
	}
}

func (c *cursor) atEOF() bool {
	c.skipSpace()
	return c.pos >= len(c.src)
}

func (c *cursor) peek() byte {
	if c.pos >= len(c.src) {
		return 0
	}
	return c.src[c.pos]
}

func errAt(line int, format string, a ...any) error {
	return asaperr.Newf(asaperr.ParseSyntax, "line "+strconv.Itoa(line), format, a...)
}

func isIdentStart(b byte) bool {
	return unicode.IsLetter(rune(b)) || b == '_'
}

func isIdentCont(b byte) bool {
	return unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b)) || b == '_'
}

// readIdent reads a bare identifier: a block keyword (signal/clock)
// or a field name (name/trigger/constant).
func (c *cursor) readIdent() (string, error) {
	c.skipSpace()
	if c.pos >= len(c.src) || !isIdentStart(c.src[c.pos]) {
		return "", errAt(c.line, "expected identifier")
	}
	start := c.pos
	for c.pos < len(c.src) && isIdentCont(c.src[c.pos]) {
		c.pos++
	}
	return c.src[start:c.pos], nil
}

func (c *cursor) expectByte(b byte) error {
	c.skipSpace()
	if c.pos >= len(c.src) || c.src[c.pos] != b {
		return errAt(c.line, "expected %q", string(b))
	}
	c.pos++
	return nil
}

// readVariable reads a hier.hier[msb:lsb] reference, the same shape
// smulang.ParseVariable expects, then delegates to it.
func (c *cursor) readVariable() (VarRef, error) {
	c.skipSpace()
	start := c.pos
	if c.pos >= len(c.src) || !isIdentStart(c.src[c.pos]) {
		return VarRef{}, errAt(c.line, "expected a variable reference")
	}
	for c.pos < len(c.src) && isIdentCont(c.src[c.pos]) {
		c.pos++
	}
	for c.pos < len(c.src) && c.src[c.pos] == '.' {
		dot := c.pos
		c.pos++
		if c.pos >= len(c.src) || !isIdentStart(c.src[c.pos]) {
			c.pos = dot
			break
		}
		for c.pos < len(c.src) && isIdentCont(c.src[c.pos]) {
			c.pos++
		}
	}
	if c.pos >= len(c.src) || c.src[c.pos] != '[' {
		return VarRef{}, errAt(c.line, "variable %q missing part-select", c.src[start:c.pos])
	}
	c.pos++
	for c.pos < len(c.src) && c.src[c.pos] != ']' {
		c.pos++
	}
	if c.pos >= len(c.src) {
		return VarRef{}, errAt(c.line, "unterminated part-select")
	}
	c.pos++
	return smulang.ParseVariable(c.src[start:c.pos], c.line)
}

// readConst reads a width'bbits literal and delegates to
// smulang.ParseConst.
func (c *cursor) readConst() (Const, error) {
	c.skipSpace()
	start := c.pos
	for c.pos < len(c.src) && unicode.IsDigit(rune(c.src[c.pos])) {
		c.pos++
	}
	if c.pos == start || c.pos >= len(c.src) || c.src[c.pos] != '\'' {
		return Const{}, errAt(c.line, "malformed constant")
	}
	c.pos++
	if c.pos >= len(c.src) || (c.src[c.pos] != 'b' && c.src[c.pos] != 'B') {
		return Const{}, errAt(c.line, "expected 'b' in constant")
	}
	c.pos++
	bitsStart := c.pos
	for c.pos < len(c.src) && (c.src[c.pos] == '0' || c.src[c.pos] == '1') {
		c.pos++
	}
	if c.pos == bitsStart {
		return Const{}, errAt(c.line, "constant has no bits")
	}
	return smulang.ParseConst(c.src[start:c.pos], c.line)
}

// readParenExpr reads a balanced-paren-free expression body: '(' ...
// ')', returning the inner text. The POS grammar has no nested
// parens, matching the original lexer's single-level capture.
func (c *cursor) readParenExpr() (string, error) {
	if err := c.expectByte('('); err != nil {
		return "", err
	}
	start := c.pos
	for c.pos < len(c.src) && c.src[c.pos] != ')' {
		c.pos++
	}
	if c.pos >= len(c.src) {
		return "", errAt(c.line, "unterminated trigger expression")
	}
	text := c.src[start:c.pos]
	c.pos++
	return text, nil
}
