/*
 * ASAP - ASAP_SPEC and file list parser.
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

// Package specfile loads the ASAP_SPEC line-oriented KEY=VALUE file
// and the RTL file list it references.
package specfile

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/asap/asaperr"
)

// Spec holds the parsed contents of an ASAP_SPEC file.
type Spec struct {
	TopModule      string
	FileList       string
	SMUSegmentSize int
	MaxSeqDepth    int
	MaxTriggers    int
	SRUSegmentSize int
	SRUNumPLA      int

	// SequenceFile and RewriteFile name the sequence program (§4.1's
	// smulang grammar) and rewrite program (srulang grammar) ASAP_SPEC
	// points C4/C5 at. Optional: a spec file with neither key runs C1-C3
	// only, emitting the rewritten RTL and interface JSON without
	// compiling bitstreams.
	SequenceFile string
	RewriteFile  string
}

var requiredKeys = []string{
	"TOP_MODULE", "FILELIST", "SMU_SEGMENT_SIZE", "MAX_SEQ_DEPTH",
	"MAX_TRIGGERS", "SRU_SEGMENT_SIZE", "SRU_NUM_PLA",
}

// optionLine scans one KEY=VALUE line with the same byte-cursor idiom
// used throughout the parser packages: skip whitespace, take a run of
// non-'=' bytes as the key, the rest (trimmed) as the value.
type optionLine struct {
	line string
	pos  int
}

func (o *optionLine) skipSpace() {
	for o.pos < len(o.line) && (o.line[o.pos] == ' ' || o.line[o.pos] == '\t') {
		o.pos++
	}
}

func (o *optionLine) isEOL() bool {
	return o.pos >= len(o.line)
}

// parseKeyValue splits the line into key and value around its single
// '=', trimming surrounding space from both.
func (o *optionLine) parseKeyValue() (string, string, error) {
	eq := strings.IndexByte(o.line, '=')
	if eq < 0 || strings.Count(o.line, "=") != 1 {
		return "", "", asaperr.Newf(asaperr.ConfigError, o.line, "expected exactly one '='")
	}
	key := strings.TrimSpace(o.line[:eq])
	value := strings.TrimSpace(o.line[eq+1:])
	if key == "" {
		return "", "", asaperr.Newf(asaperr.ConfigError, o.line, "empty key")
	}
	return key, value, nil
}

// Load reads an ASAP_SPEC file and returns its parsed settings. Blank
// lines and lines starting with '#' are ignored.
func Load(path string) (*Spec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	defer file.Close()

	values := map[string]string{}
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		ol := &optionLine{line: raw}
		ol.skipSpace()
		if ol.isEOL() || ol.line[ol.pos] == '#' {
			continue
		}
		key, value, err := ol.parseKeyValue()
		if err != nil {
			return nil, asaperr.Newf(asaperr.ConfigError, path, "line %d: %s", lineNum, err.(*asaperr.Error).Msg)
		}
		values[strings.ToUpper(key)] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, asaperr.Wrap(asaperr.ConfigError, path, err)
	}

	for _, key := range requiredKeys {
		if _, ok := values[key]; !ok {
			return nil, asaperr.Newf(asaperr.ConfigError, path, "missing required key %s", key)
		}
	}

	intVal := func(key string) (int, error) {
		n, err := strconv.Atoi(values[key])
		if err != nil {
			return 0, asaperr.Newf(asaperr.ConfigError, path, "key %s: not an integer: %s", key, values[key])
		}
		return n, nil
	}

	spec := &Spec{
		TopModule:    values["TOP_MODULE"],
		FileList:     values["FILELIST"],
		SequenceFile: values["SEQUENCE_FILE"],
		RewriteFile:  values["REWRITE_FILE"],
	}
	var err2 error
	if spec.SMUSegmentSize, err2 = intVal("SMU_SEGMENT_SIZE"); err2 != nil {
		return nil, err2
	}
	if spec.MaxSeqDepth, err2 = intVal("MAX_SEQ_DEPTH"); err2 != nil {
		return nil, err2
	}
	if spec.MaxTriggers, err2 = intVal("MAX_TRIGGERS"); err2 != nil {
		return nil, err2
	}
	if spec.SRUSegmentSize, err2 = intVal("SRU_SEGMENT_SIZE"); err2 != nil {
		return nil, err2
	}
	if spec.SRUNumPLA, err2 = intVal("SRU_NUM_PLA"); err2 != nil {
		return nil, err2
	}
	return spec, nil
}

// LoadFileList reads one RTL source path per line from path, skipping
// blank lines.
func LoadFileList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	defer file.Close()

	var files []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	return files, nil
}
