/*
 * ASAP - Identifier renaming over RTL expressions.
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

import "unicode"

// ReplaceIdent substitutes old for new wherever it appears as a whole
// identifier in expr (not as a substring of a longer identifier), the
// way C3 retargets a controlled or observed signal's drivers/loads to
// its "_controlled" counterpart without disturbing unrelated names
// that merely share a prefix or suffix.
func ReplaceIdent(expr, old, new string) string {
	if old == "" {
		return expr
	}
	var out []byte
	i := 0
	for i < len(expr) {
		if matchesIdentAt(expr, i, old) {
			out = append(out, new...)
			i += len(old)
			continue
		}
		out = append(out, expr[i])
		i++
	}
	return string(out)
}

func matchesIdentAt(s string, i int, ident string) bool {
	if i+len(ident) > len(s) || s[i:i+len(ident)] != ident {
		return false
	}
	if i > 0 && isIdentRune(rune(s[i-1])) {
		return false
	}
	end := i + len(ident)
	if end < len(s) && isIdentRune(rune(s[end])) {
		return false
	}
	return true
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// RenameLHS replaces old with new in every continuous assign's driver
// (left-hand) side. It never touches an assign's RHS, so a rename
// pass walking drivers cannot accidentally retarget a load.
func (m *Module) RenameLHS(old, new string) int {
	n := 0
	for i := range m.Assigns {
		before := m.Assigns[i].LHS
		m.Assigns[i].LHS = ReplaceIdent(before, old, new)
		if m.Assigns[i].LHS != before {
			n++
		}
	}
	return n
}

// RenameRHS replaces old with new in every continuous assign's load
// (right-hand) side, symmetric to RenameLHS.
func (m *Module) RenameRHS(old, new string) int {
	n := 0
	for i := range m.Assigns {
		before := m.Assigns[i].RHS
		m.Assigns[i].RHS = ReplaceIdent(before, old, new)
		if m.Assigns[i].RHS != before {
			n++
		}
	}
	return n
}
