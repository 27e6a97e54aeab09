/*
 * ASAP - RTL parser/emitter tests.
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

import (
	"strings"
	"testing"
)

const sampleModule = `module leaf(clk, a, b, y);
input wire clk;
input wire [3:0] a;
output wire [3:0] b;
output wire y;
reg [3:0] acc;
wire [3:0] sum;
assign sum = a + acc;
assign b = sum;
child u0(.clk(clk), .in(a), .out(y));
endmodule
`

func TestParseModule(t *testing.T) {
	m, err := ParseModule(sampleModule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "leaf" {
		t.Errorf("expected module name leaf, got %q", m.Name)
	}
	if len(m.Decls) != 6 {
		t.Fatalf("expected 6 decls, got %d", len(m.Decls))
	}
	if len(m.Assigns) != 2 {
		t.Fatalf("expected 2 assigns, got %d", len(m.Assigns))
	}
	if len(m.Instances) != 1 || m.Instances[0].ModuleName != "child" {
		t.Fatalf("expected one child instance, got %+v", m.Instances)
	}
	if len(m.Instances[0].Ports) != 3 {
		t.Errorf("expected 3 port connections, got %d", len(m.Instances[0].Ports))
	}
}

// Parse->emit of an unmodified RTL file is textually equivalent modulo
// whitespace.
func TestRoundTripTextuallyEquivalent(t *testing.T) {
	m, err := ParseModule(sampleModule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sb strings.Builder
	if err := (TextEmitter{}).Emit(&sb, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m2, err := ParseModule(sb.String())
	if err != nil {
		t.Fatalf("re-parsing emitted output failed: %v", err)
	}
	if m2.Name != m.Name || len(m2.Decls) != len(m.Decls) ||
		len(m2.Assigns) != len(m.Assigns) || len(m2.Instances) != len(m.Instances) {
		t.Fatalf("emitted module does not round-trip: got %+v", m2)
	}
	for i := range m.Assigns {
		if m.Assigns[i] != m2.Assigns[i] {
			t.Errorf("assign %d drifted: %+v vs %+v", i, m.Assigns[i], m2.Assigns[i])
		}
	}
}

func TestRenameLHSDoesNotTouchRHS(t *testing.T) {
	m, err := ParseModule(sampleModule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.RenameLHS("sum", "sum_controlled")
	if m.Assigns[0].LHS != "sum_controlled" {
		t.Errorf("expected LHS rename, got %q", m.Assigns[0].LHS)
	}
	if m.Assigns[1].RHS != "sum" {
		t.Errorf("RenameLHS must not touch RHS occurrences, got %q", m.Assigns[1].RHS)
	}
}

func TestReplaceIdentWholeWordOnly(t *testing.T) {
	got := ReplaceIdent("sum + sum2 + my_sum", "sum", "sum_controlled")
	want := "sum_controlled + sum2 + my_sum"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
