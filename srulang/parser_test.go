/*
 * ASAP - Rewrite language parser tests.
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

package srulang

import "testing"

func TestParseSignalBlock(t *testing.T) {
	src := `
signal {
	name = TOP.dout[3:0]
	trigger = (s0.s1' + s0'.s1)
	constant = 4'b1010
}
`
	list, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(list.Nodes))
	}
	n := list.Nodes[0]
	if n.Kind != KindData {
		t.Errorf("expected KindData, got %v", n.Kind)
	}
	if n.Target.MSB != 3 || n.Target.LSB != 0 {
		t.Errorf("unexpected target range: %+v", n.Target)
	}
	if n.Bypass == nil || n.Bypass.Bits != "1010" {
		t.Errorf("unexpected bypass: %+v", n.Bypass)
	}
	if len(n.Trigger.Terms) != 2 {
		t.Errorf("expected 2 terms, got %d", len(n.Trigger.Terms))
	}
}

func TestParseClockBlock(t *testing.T) {
	src := `
clock {
	trigger = (s2)
	name = TOP.gclk[0:0]
}
`
	list, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := list.Nodes[0]
	if n.Kind != KindClock {
		t.Errorf("expected KindClock, got %v", n.Kind)
	}
	if n.Bypass != nil {
		t.Errorf("clock node must not have a bypass constant")
	}
}

func TestClockBlockRejectsConstant(t *testing.T) {
	src := `
clock {
	name = TOP.gclk[0:0]
	trigger = (s2)
	constant = 1'b0
}
`
	if _, err := Parse(src); err == nil {
		t.Fatal("expected an error for a clock block with a constant field")
	}
}

func TestSignalBlockRequiresConstant(t *testing.T) {
	src := `
signal {
	name = TOP.dout[3:0]
	trigger = (s0)
}
`
	if _, err := Parse(src); err == nil {
		t.Fatal("expected an error for a signal block missing its constant field")
	}
}

// PLA sharing: two trigger expressions that are equal as sets of
// normalized terms must produce the same Key, so C5 allocates them to
// the same PLA.
func TestPOSExprKeyEquivalence(t *testing.T) {
	src := `
signal {
	name = TOP.a[0:0]
	trigger = (s0.s1' + s0'.s1)
	constant = 1'b1
}
signal {
	name = TOP.b[0:0]
	trigger = (s1.s0' + s1'.s0)
	constant = 1'b1
}
`
	list, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(list.Nodes))
	}
	k0 := list.Nodes[0].Trigger.Key()
	k1 := list.Nodes[1].Trigger.Key()
	if k0 != k1 {
		t.Errorf("expected equivalent trigger expressions to share a key, got %q vs %q", k0, k1)
	}
}

func TestPOSExprKeyDistinguishesUnordered(t *testing.T) {
	a, err := parsePOSExpr("a.b + c", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := parsePOSExpr("c + a.b", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Key() != b.Key() {
		t.Errorf("term order within an expression must not affect its key: %q vs %q", a.Key(), b.Key())
	}

	c, err := parsePOSExpr("a.b + c'", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Key() == c.Key() {
		t.Errorf("expressions differing by complement must have distinct keys")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		`signal { name = TOP.a[0:0] trigger = (s0) constant = 1'b1`,      // unterminated block
		`widget { name = TOP.a[0:0] }`,                                   // unknown block keyword
		`signal { name = TOP.a[0:0] name = TOP.b[0:0] trigger = (s0) constant = 1'b1 }`, // duplicate field
		`signal { trigger = (s0) constant = 1'b1 }`,                      // missing name
	}
	for i, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Errorf("case %d: expected an error, got none", i)
		}
	}
}
