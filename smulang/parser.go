/*
 * ASAP - Sequence language parser.
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

import "github.com/rcornwell/asap/asaperr"

// parser is a recursive-descent parser over the token stream a lexer
// produces. The sequence header is recognized by adjacency (an IDENT
// token immediately followed by an LBRACE, optionally preceded by the
// keyword "seq"), not by a combined lexer token, so the lexer stays a
// plain tokenizer.
type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func errAt(line int, format string, a ...any) error {
	return asaperr.Newf(asaperr.ParseSyntax, "line "+itoa(line), format, a...)
}

// Parse lexes and parses a sequence-language source file into a
// SequenceList.
func Parse(src string) (*SequenceList, error) {
	lx := newLexer(src)
	toks, err := lx.tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseSequenceList()
}

func (p *parser) parseSequenceList() (*SequenceList, error) {
	list := &SequenceList{}
	for p.cur().kind != tokEOF {
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		list.Sequences = append(list.Sequences, *seq)
	}
	return list, nil
}

func (p *parser) parseSequence() (*Sequence, error) {
	name := p.cur()
	if name.kind == tokIdent && name.text == "seq" && p.toks[p.pos+1].kind == tokIdent {
		p.advance() // optional "seq" keyword before the sequence name
		name = p.cur()
	}
	if name.kind != tokIdent {
		return nil, errAt(name.line, "expected sequence name, got %q", name.text)
	}
	p.advance()
	brace := p.cur()
	if brace.kind != tokLBrace {
		return nil, errAt(brace.line, "expected '{' after sequence name %q", name.text)
	}
	p.advance()

	seq := &Sequence{Name: name.text}
	for p.cur().kind != tokRBrace {
		if p.cur().kind == tokEOF {
			return nil, errAt(p.cur().line, "unterminated sequence %q", name.text)
		}
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		seq.Patterns = append(seq.Patterns, *pat)
	}
	p.advance() // consume '}'
	return seq, nil
}

func (p *parser) parsePattern() (*Pattern, error) {
	open := p.cur()
	if open.kind != tokLParen {
		return nil, errAt(open.line, "expected '(' to start a pattern, got %q", open.text)
	}
	p.advance()

	if p.cur().kind == tokRParen {
		p.advance()
		return &Pattern{}, nil
	}

	varTok := p.cur()
	if varTok.kind != tokVariable {
		return nil, errAt(varTok.line, "expected a variable in pattern, got %q", varTok.text)
	}
	p.advance()
	v, err := ParseVariable(varTok.text, varTok.line)
	if err != nil {
		return nil, err
	}

	cmpTok := p.cur()
	if cmpTok.kind != tokComparison {
		return nil, errAt(cmpTok.line, "expected a comparison operator, got %q", cmpTok.text)
	}
	p.advance()
	kind, err := compareKindOf(cmpTok.text, cmpTok.line)
	if err != nil {
		return nil, err
	}

	constTok := p.cur()
	if constTok.kind != tokConst {
		return nil, errAt(constTok.line, "expected a sized constant, got %q", constTok.text)
	}
	p.advance()
	c, err := ParseConst(constTok.text, constTok.line)
	if err != nil {
		return nil, err
	}

	closeTok := p.cur()
	if closeTok.kind != tokRParen {
		return nil, errAt(closeTok.line, "expected ')' to close pattern, got %q", closeTok.text)
	}
	p.advance()

	return &Pattern{Var: &v, Cmp: &kind, Const: &c}, nil
}

func compareKindOf(text string, line int) (CompareKind, error) {
	switch text {
	case "==":
		return EQ, nil
	case ">":
		return GT, nil
	case "<":
		return LT, nil
	default:
		return 0, errAt(line, "unknown comparison operator %q", text)
	}
}
