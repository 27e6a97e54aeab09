/*
 * ASAP - Sequence language AST.
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

// Package smulang implements the lexer, parser and AST for the SMU
// sequence-description language: a file of named sequences, each an
// ordered list of per-cycle observation patterns.
package smulang

import "strings"

// CompareKind is the comparison operator of a non-empty pattern.
type CompareKind int

const (
	EQ CompareKind = iota
	GT
	LT
	Pass
)

// Encode returns the 2-bit CMP_SEL selector for the comparison kind,
// per the bitstream field encoding EQ->11, GT->10, LT->01, PASS->00.
func (k CompareKind) Encode() string {
	switch k {
	case EQ:
		return "11"
	case GT:
		return "10"
	case LT:
		return "01"
	default:
		return "00"
	}
}

func (k CompareKind) String() string {
	switch k {
	case EQ:
		return "=="
	case GT:
		return ">"
	case LT:
		return "<"
	default:
		return "PASS"
	}
}

// Const is an unsigned binary literal of explicit width.
type Const struct {
	Width int
	Bits  string
}

// VarRef is a dotted hierarchical variable reference with a
// [MSB:LSB] part-select.
type VarRef struct {
	Hier []string
	MSB  int
	LSB  int
}

// Name joins the hierarchy back into a dotted string.
func (v VarRef) Name() string {
	return strings.Join(v.Hier, ".")
}

// Pattern is one cycle's observation constraint. A nil Var denotes
// the empty ("pass") pattern.
type Pattern struct {
	Var   *VarRef
	Cmp   *CompareKind
	Const *Const
}

// Empty reports whether this is a pass cycle.
func (p Pattern) Empty() bool {
	return p.Var == nil
}

// Sequence is a named, ordered list of patterns.
type Sequence struct {
	Name     string
	Patterns []Pattern
}

// SequenceList is the top-level AST node: every sequence in one
// source file.
type SequenceList struct {
	Sequences []Sequence
}
