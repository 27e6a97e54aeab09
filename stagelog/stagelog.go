/*
 * ASAP - Per-stage verbose tracing.
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

// Package stagelog gates per-stage trace output behind a bitmask, one
// bit per pipeline stage, so -debug=hierarchy,smu can be enabled
// independently of the rest of the pipeline.
package stagelog

import (
	"fmt"
	"log/slog"
)

// Stage identifies one pipeline stage for tracing purposes.
type Stage int

const (
	StagePragma Stage = 1 << iota
	StageHierarchy
	StageTransform
	StageSMU
	StageSRU
	StageAll = StagePragma | StageHierarchy | StageTransform | StageSMU | StageSRU
)

var names = map[string]Stage{
	"pragma":    StagePragma,
	"hierarchy": StageHierarchy,
	"transform": StageTransform,
	"smu":       StageSMU,
	"sru":       StageSRU,
	"all":       StageAll,
}

// Parse turns a comma separated list of stage names into a mask. An
// unrecognized name is ignored rather than rejected; tracing is a
// debugging aid, not a spec-checked input.
func Parse(list []string) Stage {
	var mask Stage
	for _, name := range list {
		mask |= names[name]
	}
	return mask
}

var enabled Stage

// Enable sets the active trace mask for the process.
func Enable(mask Stage) {
	enabled = mask
}

// Tracef logs a debug message for stage if its bit is set in the
// active mask.
func Tracef(stage Stage, format string, a ...any) {
	if enabled&stage != 0 {
		slog.Debug(formatted(format, a...))
	}
}

func formatted(format string, a ...any) string {
	if len(a) == 0 {
		return format
	}
	return fmt.Sprintf(format, a...)
}
