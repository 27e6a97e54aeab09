/*
 * ASAP - Pragma directive scanner.
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

// Package pragma scans RTL source lines for "#pragma observe"/"#pragma
// control" directives. A directive is attached to the line it appears
// on; matching it to the declaration that line carries is the
// hierarchy/transform stages' job, not this package's.
package pragma

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/catalogue"
)

// Range is an inclusive [MSB, LSB] bit range as written in a pragma.
type Range struct {
	MSB int
	LSB int
}

// ControlDecl is the "control <type> <msb>:<lsb>" clause of a pragma.
type ControlDecl struct {
	Kind  catalogue.Kind
	Range Range
}

// Directive is everything a single source line's pragma declares.
type Directive struct {
	Line    int
	Observe *Range
	Control *ControlDecl
}

const marker = "#pragma"

// lineScanner walks a pragma's clause text with the same byte-cursor
// idiom as the other hand-rolled parsers in this tree.
type lineScanner struct {
	line string
	pos  int
}

func (s *lineScanner) skipSpace() {
	for s.pos < len(s.line) && (s.line[s.pos] == ' ' || s.line[s.pos] == '\t') {
		s.pos++
	}
}

func (s *lineScanner) isEOL() bool {
	s.skipSpace()
	return s.pos >= len(s.line)
}

// getWord reads a run of non-space characters.
func (s *lineScanner) getWord() string {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.line) && s.line[s.pos] != ' ' && s.line[s.pos] != '\t' {
		s.pos++
	}
	return s.line[start:s.pos]
}

func parseRange(word string, lineNo int) (Range, error) {
	parts := strings.SplitN(word, ":", 2)
	if len(parts) != 2 {
		return Range{}, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "expected <msb>:<lsb>, got %q", word)
	}
	msb, err1 := strconv.Atoi(parts[0])
	lsb, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return Range{}, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "non-integer bound in %q", word)
	}
	if msb < lsb || lsb < 0 {
		return Range{}, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "invalid range %q", word)
	}
	return Range{MSB: msb, LSB: lsb}, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// parseClauses parses the text following the "#pragma" marker.
func parseClauses(text string, lineNo int) (*Directive, error) {
	d := &Directive{Line: lineNo}
	s := &lineScanner{line: text}
	for !s.isEOL() {
		word := s.getWord()
		switch word {
		case "observe":
			rangeWord := s.getWord()
			if rangeWord == "" {
				return nil, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "observe missing range")
			}
			r, err := parseRange(rangeWord, lineNo)
			if err != nil {
				return nil, err
			}
			if d.Observe != nil {
				return nil, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "duplicate observe clause")
			}
			d.Observe = &r
		case "control":
			typeWord := s.getWord()
			var kind catalogue.Kind
			switch typeWord {
			case "signal":
				kind = catalogue.KindSignal
			case "clock":
				kind = catalogue.KindClock
			default:
				return nil, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "unknown control type %q", typeWord)
			}
			rangeWord := s.getWord()
			if rangeWord == "" {
				return nil, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "control missing range")
			}
			r, err := parseRange(rangeWord, lineNo)
			if err != nil {
				return nil, err
			}
			if d.Control != nil {
				return nil, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "duplicate control clause")
			}
			d.Control = &ControlDecl{Kind: kind, Range: r}
		case "":
			// shouldn't happen; isEOL guards this
		default:
			return nil, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "unknown pragma clause %q", word)
		}
	}
	if d.Observe == nil && d.Control == nil {
		return nil, asaperr.Newf(asaperr.PragmaSyntax, "line "+itoa(lineNo), "pragma has no observe or control clause")
	}
	return d, nil
}

// ScanLines scans pre-split source lines, returning one Directive per
// line that carries a pragma.
func ScanLines(lines []string) ([]Directive, error) {
	var directives []Directive
	for i, line := range lines {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(marker):]
		d, err := parseClauses(rest, i+1)
		if err != nil {
			return nil, err
		}
		directives = append(directives, *d)
	}
	return directives, nil
}

// ScanFile reads path and scans it for pragma directives.
func ScanFile(path string) ([]Directive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	directives, err := ScanLines(lines)
	if err != nil {
		if asapErr, ok := err.(*asaperr.Error); ok {
			asapErr.Construct = path + ":" + asapErr.Construct
			return nil, asapErr
		}
		return nil, err
	}
	return directives, nil
}
