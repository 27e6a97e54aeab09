/*
 * ASAP - Console command tests.
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

package console

import (
	"strings"
	"testing"

	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/smu"
	"github.com/rcornwell/asap/smulang"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	observe := catalogue.NewBranch()
	if err := observe.Set([]string{"cpu", "state"}, catalogue.Range{MSB: 3, LSB: 0}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	params := smu.Params{SmuSegmentSize: 4, MaxSeqDepth: 2, MaxTriggers: 2}
	pat := smulang.Pattern{
		Var:   &smulang.VarRef{Hier: []string{"cpu", "state"}, MSB: 3, LSB: 0},
		Cmp:   ptrCmp(smulang.EQ),
		Const: &smulang.Const{Width: 4, Bits: "0101"},
	}
	seq := smulang.Sequence{Name: "seq0", Patterns: []smulang.Pattern{pat}}

	stream, triggerIndex, err := smu.Compile([]smulang.Sequence{seq}, observe, params)
	if err != nil {
		t.Fatalf("smu.Compile: %v", err)
	}

	names := make([]string, len(triggerIndex))
	for name, idx := range triggerIndex {
		names[idx] = name
	}

	return &Session{
		Observe:      observe,
		TriggerNames: names,
		SMUStream:    stream,
		SMUParams:    params,
	}
}

func ptrCmp(k smulang.CompareKind) *smulang.CompareKind { return &k }

func TestShowObserve(t *testing.T) {
	sess := testSession(t)
	quit, err := ProcessCommand(sess, "show observe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quit {
		t.Error("show observe should not quit the REPL")
	}
}

func TestShowTriggers(t *testing.T) {
	sess := testSession(t)
	out := formatTriggers(sess.TriggerNames)
	if !strings.Contains(out, "seq0") {
		t.Errorf("expected seq0 in triggers output, got %q", out)
	}
}

func TestShowSMU(t *testing.T) {
	sess := testSession(t)
	out, err := formatSMU(sess)
	if err != nil {
		t.Fatalf("formatSMU: %v", err)
	}
	if !strings.Contains(out, "cycle 0 trigger 0") {
		t.Errorf("expected the populated cell in output, got %q", out)
	}
}

func TestQuitCommand(t *testing.T) {
	sess := testSession(t)
	quit, err := ProcessCommand(sess, "quit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quit {
		t.Error("expected quit to return true")
	}
}

func TestUnknownCommand(t *testing.T) {
	sess := testSession(t)
	if _, err := ProcessCommand(sess, "bogus"); err == nil {
		t.Fatal("expected an error for an unrecognized command")
	}
}

func TestShowMissingArgument(t *testing.T) {
	sess := testSession(t)
	if _, err := ProcessCommand(sess, "show"); err == nil {
		t.Fatal("expected an error for show with no target")
	}
}

func TestCommandAbbreviation(t *testing.T) {
	sess := testSession(t)
	quit, err := ProcessCommand(sess, "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quit {
		t.Error("expected the 'q' abbreviation to match quit")
	}
}
