/*
 * ASAP - Typed compiler errors.
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

// Package asaperr defines the fatal error taxonomy shared by every stage
// of the toolchain: pragma and language parsing, hierarchy resolution,
// RTL transformation, and the SMU/SRU compilers.
package asaperr

import "fmt"

// Kind identifies which class of fatal error occurred. All errors in the
// toolchain are fatal at the point of detection; there is no recovery.
type Kind int

const (
	// ConfigError marks a malformed specification or file list.
	ConfigError Kind = iota + 1
	// PragmaSyntax marks an invalid pragma directive.
	PragmaSyntax
	// ParseSyntax marks invalid sequence or rewrite source.
	ParseSyntax
	// HierarchyError marks a missing top module, missing child module, or
	// a cyclic instance graph.
	HierarchyError
	// UnknownSignal marks a reference to a name absent from the catalogue.
	UnknownSignal
	// PatternRange marks a pattern that violates the bit-range rule.
	PatternRange
	// SegmentCrossing marks a pattern whose signal spans two SMU segments.
	SegmentCrossing
	// TooManySequences marks more sequences than MAX_TRIGGERS allows.
	TooManySequences
	// TooManyPLAs marks more distinct trigger expressions than SRU_NUM_PLA allows.
	TooManyPLAs
	// TriggerOverflow marks a reference to a trigger index beyond capacity.
	TriggerOverflow
	// InternalEncoding marks a post-encoding invariant violation; indicates
	// a compiler bug rather than bad input.
	InternalEncoding
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case PragmaSyntax:
		return "PragmaSyntax"
	case ParseSyntax:
		return "ParseSyntax"
	case HierarchyError:
		return "HierarchyError"
	case UnknownSignal:
		return "UnknownSignal"
	case PatternRange:
		return "PatternRange"
	case SegmentCrossing:
		return "SegmentCrossing"
	case TooManySequences:
		return "TooManySequences"
	case TooManyPLAs:
		return "TooManyPLAs"
	case TriggerOverflow:
		return "TriggerOverflow"
	case InternalEncoding:
		return "InternalEncoding"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by every stage. Construct
// identifies the offending file, line, sequence name, or signal name so
// the message can point at what went wrong without a stack trace.
type Error struct {
	Kind      Kind
	Construct string // file, line, sequence name, or signal name.
	Msg       string
	Cause     error
}

func (e *Error) Error() string {
	if e.Construct == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Construct, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, construct, msg string) *Error {
	return &Error{Kind: kind, Construct: construct, Msg: msg}
}

// Wrap builds an *Error that carries an underlying cause.
func Wrap(kind Kind, construct string, cause error) *Error {
	return &Error{Kind: kind, Construct: construct, Msg: cause.Error(), Cause: cause}
}

// Newf builds an *Error with a formatted message.
func Newf(kind Kind, construct, format string, a ...any) *Error {
	return &Error{Kind: kind, Construct: construct, Msg: fmt.Sprintf(format, a...)}
}
