/*
 * ASAP - RTL transform orchestration (C3).
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

package transform

import (
	"github.com/rcornwell/asap/pragma"
	"github.com/rcornwell/asap/rtlast"
)

// Result is everything C3 produces: the rewritten modules keyed by
// name, and the woven top module's final observe/control port widths.
type Result struct {
	Infos  map[string]*ModuleInfo
	Totals Totals
}

// Run applies stage 1 to every module, then weaves stage 2 from
// topModule down. moduleDirectives supplies each module's pragma
// directives, keyed by module name.
func Run(topModule string, modules []*rtlast.Module, moduleDirectives map[string][]pragma.Directive) (*Result, error) {
	infos := make(map[string]*ModuleInfo, len(modules))
	for _, m := range modules {
		info, err := Stage1(m, moduleDirectives[m.Name])
		if err != nil {
			return nil, err
		}
		infos[m.Name] = info
	}

	totals, err := Stage2(topModule, infos)
	if err != nil {
		return nil, err
	}

	return &Result{Infos: infos, Totals: totals}, nil
}
