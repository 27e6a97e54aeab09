/*
 * ASAP - Console inspection session.
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

// Package console implements the optional, read-only interactive REPL
// for inspecting a completed batch run's catalogues and compiled
// bitstreams. It never recomputes or mutates anything C1-C5 produced;
// it only formats what Session already holds.
package console

import (
	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/smu"
	"github.com/rcornwell/asap/sru"
)

// Session is every artifact a completed run leaves behind that the
// REPL's show commands report on.
type Session struct {
	Observe     *catalogue.Tree
	Control     *catalogue.Tree
	ControlType *catalogue.TypeTree

	TriggerNames []string // sequence names, in trigger-slot order

	SMUStream smu.Stream
	SMUParams smu.Params

	SRU       *sru.Result
	SRUParams sru.Params
}
