/*
 * ASAP - Sequence language lexer.
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

package smulang

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/asap/asaperr"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokVariable
	tokComparison
	tokConst
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer walks the source one byte at a time, the same cursor idiom as
// the rest of this tree's hand-rolled parsers.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' {
			l.line++
			l.pos++
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' {
			l.pos++
			continue
		}
		if c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		break
	}
}

func isIdentStart(c byte) bool {
	return unicode.IsLetter(rune(c)) || c == '_'
}

func isIdentCont(c byte) bool {
	return unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) || c == '_'
}

// tokens lexes the entire source into a slice, terminated by tokEOF.
func (l *lexer) tokens() ([]token, error) {
	var out []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if t.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	line := l.line
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: line}, nil
	}
	c := l.src[l.pos]
	switch c {
	case '{':
		l.pos++
		return token{kind: tokLBrace, text: "{", line: line}, nil
	case '}':
		l.pos++
		return token{kind: tokRBrace, text: "}", line: line}, nil
	case '(':
		l.pos++
		return token{kind: tokLParen, text: "(", line: line}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen, text: ")", line: line}, nil
	case '=':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokComparison, text: "==", line: line}, nil
		}
		return token{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "unexpected '='")
	case '<', '>':
		l.pos++
		return token{kind: tokComparison, text: string(c), line: line}, nil
	}
	if unicode.IsDigit(rune(c)) {
		return l.lexConst(line)
	}
	if isIdentStart(c) {
		return l.lexVariableOrIdent(line)
	}
	return token{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "unexpected character %q", c)
}

// lexConst reads a sized binary literal: <width>'b<bits>.
func (l *lexer) lexConst(line int) (token, error) {
	start := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
		l.pos++
	}
	if l.pos >= len(l.src) || l.src[l.pos] != '\'' {
		return token{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "malformed sized literal")
	}
	l.pos++
	if l.pos >= len(l.src) || (l.src[l.pos] != 'b' && l.src[l.pos] != 'B') {
		return token{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "expected 'b' in sized literal")
	}
	l.pos++
	bitsStart := l.pos
	for l.pos < len(l.src) && (l.src[l.pos] == '0' || l.src[l.pos] == '1') {
		l.pos++
	}
	if l.pos == bitsStart {
		return token{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "sized literal has no bits")
	}
	return token{kind: tokConst, text: l.src[start:l.pos], line: line}, nil
}

// lexVariableOrIdent reads an identifier, and if followed directly by
// a dotted hierarchy or a [msb:lsb] part-select, folds that in as a
// single VARIABLE token.
func (l *lexer) lexVariableOrIdent(line int) (token, error) {
	start := l.pos
	l.readIdent()
	for l.pos < len(l.src) && l.src[l.pos] == '.' {
		dotPos := l.pos
		l.pos++
		if l.pos >= len(l.src) || !isIdentStart(l.src[l.pos]) {
			l.pos = dotPos
			break
		}
		l.readIdent()
	}
	if l.pos < len(l.src) && l.src[l.pos] == '[' {
		if err := l.readPartSelect(line); err != nil {
			return token{}, err
		}
		return token{kind: tokVariable, text: l.src[start:l.pos], line: line}, nil
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], line: line}, nil
}

func (l *lexer) readIdent() {
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) readPartSelect(line int) error {
	l.pos++ // consume '['
	msbStart := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
		l.pos++
	}
	if l.pos == msbStart || l.pos >= len(l.src) || l.src[l.pos] != ':' {
		return asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "malformed part-select")
	}
	l.pos++
	lsbStart := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
		l.pos++
	}
	if l.pos == lsbStart || l.pos >= len(l.src) || l.src[l.pos] != ']' {
		return asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "malformed part-select")
	}
	l.pos++
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// ParseVariable splits a VARIABLE token's text (hier.hier[msb:lsb])
// into hierarchy and part-select. Exported so srulang, which shares
// this exact variable syntax, can reuse it instead of re-lexing.
func ParseVariable(text string, line int) (VarRef, error) {
	lbrack := strings.IndexByte(text, '[')
	if lbrack < 0 {
		return VarRef{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "variable %q has no part-select", text)
	}
	hier := strings.Split(text[:lbrack], ".")
	rangeText := text[lbrack+1 : len(text)-1]
	colon := strings.IndexByte(rangeText, ':')
	msb, err1 := strconv.Atoi(rangeText[:colon])
	lsb, err2 := strconv.Atoi(rangeText[colon+1:])
	if err1 != nil || err2 != nil {
		return VarRef{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "bad part-select in %q", text)
	}
	return VarRef{Hier: hier, MSB: msb, LSB: lsb}, nil
}

// ParseConst splits a CONST token's text (width'bbits) into width and
// bit string. Exported for reuse by srulang.
func ParseConst(text string, line int) (Const, error) {
	quote := strings.IndexByte(text, '\'')
	width, err := strconv.Atoi(text[:quote])
	if err != nil {
		return Const{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "bad width in %q", text)
	}
	bits := text[quote+2:]
	if len(bits) != width {
		return Const{}, asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), "literal %q declares width %d but has %d bits", text, width, len(bits))
	}
	return Const{Width: width, Bits: bits}, nil
}
