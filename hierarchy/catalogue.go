/*
 * ASAP - Signal catalogue construction.
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

package hierarchy

import "github.com/rcornwell/asap/catalogue"

// BuildCatalogues walks the instance tree depth-first, post-order: a
// child subtree's observed/controlled signals are assigned a
// contiguous range before the parent's own declarations are appended,
// so every instance's own window sits directly above its children's.
func BuildCatalogues(root *Instance) (*catalogue.Tree, *catalogue.Tree, *catalogue.TypeTree, error) {
	observe := catalogue.NewBranch()
	control := catalogue.NewBranch()
	controlType := catalogue.NewTypeBranch()
	oIdx, cIdx := 0, 0

	var walk func(inst *Instance, path []string) error
	walk = func(inst *Instance, path []string) error {
		for _, child := range inst.Children {
			childPath := append(append([]string{}, path...), child.Name)
			if err := walk(child, childPath); err != nil {
				return err
			}
		}
		for _, sig := range inst.Module.Signals {
			sigPath := append(append([]string{}, path...), sig.Name)
			if sig.Observe != nil {
				w := sig.Observe.Width()
				r := catalogue.Range{MSB: oIdx + w - 1, LSB: oIdx}
				if err := observe.Set(sigPath, r); err != nil {
					return err
				}
				oIdx += w
			}
			if sig.Control != nil {
				w := sig.Control.Width()
				r := catalogue.Range{MSB: cIdx + w - 1, LSB: cIdx}
				if err := control.Set(sigPath, r); err != nil {
					return err
				}
				kind := catalogue.KindSignal
				if sig.ControlKind == ControlClock {
					kind = catalogue.KindClock
				}
				if err := controlType.Set(sigPath, kind); err != nil {
					return err
				}
				cIdx += w
			}
		}
		return nil
	}

	if err := walk(root, []string{root.Name}); err != nil {
		return nil, nil, nil, err
	}
	return observe, control, controlType, nil
}
