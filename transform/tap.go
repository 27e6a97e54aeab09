/*
 * ASAP - RTL transform shared helpers.
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

// Package transform implements C3: the two-stage RTL rewrite that
// splices observe/control taps into each module's interior, then
// weaves observe/control ports up the instance hierarchy.
package transform

import "fmt"

// Tap is one net, or a bit-range slice of a net, feeding into or out
// of one of a module's aggregate observe/control vectors.
type Tap struct {
	Name string
	MSB  int
	LSB  int
}

// Width returns the number of bits the tap contributes.
func (t Tap) Width() int {
	return t.MSB - t.LSB + 1
}

// Ref renders the tap as a Verilog-style net reference, omitting the
// range suffix for a plain scalar net.
func (t Tap) Ref() string {
	if t.MSB == 0 && t.LSB == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s[%d:%d]", t.Name, t.MSB, t.LSB)
}

// sliceRef renders a [hi:lo] reference into a wider aggregate net,
// collapsing to a bare name when the slice is the whole net (hi==lo
// for a single-bit slice is printed as a scalar index).
func sliceRef(name string, hi, lo int) string {
	if hi == lo {
		return fmt.Sprintf("%s[%d]", name, lo)
	}
	return fmt.Sprintf("%s[%d:%d]", name, hi, lo)
}
