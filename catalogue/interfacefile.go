/*
 * ASAP - Interface file I/O.
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

package catalogue

import (
	"encoding/json"
	"os"

	"github.com/rcornwell/asap/asaperr"
)

// WriteInterfaceFile serializes the three catalogues C3 produced to
// path as pretty-printed JSON.
func WriteInterfaceFile(path string, f *InterfaceFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	return nil
}

// ReadInterfaceFile loads and parses the JSON interface file C4/C5
// consume.
func ReadInterfaceFile(path string) (*InterfaceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	var f InterfaceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	return &f, nil
}
