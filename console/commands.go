/*
 * ASAP - Console command table.
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
	"errors"
	"fmt"
)

// command is one REPL verb: a name, its minimum unambiguous
// abbreviation length, and the handler it dispatches to.
type command struct {
	name    string
	min     int
	process func(sess *Session, line *cmdLine) (bool, error)
}

var commandList = []command{
	{name: "show", min: 2, process: show},
	{name: "quit", min: 1, process: quit},
}

// matchCommand reports whether command abbreviates to at least its
// minimum length.
func matchCommand(c command, word string) bool {
	if len(word) < c.min || len(word) > len(c.name) {
		return false
	}
	return c.name[:len(word)] == word
}

func matchList(word string) []command {
	var out []command
	for _, c := range commandList {
		if matchCommand(c, word) {
			out = append(out, c)
		}
	}
	return out
}

// ProcessCommand executes one typed line against sess, returning true
// when the REPL should exit.
func ProcessCommand(sess *Session, text string) (bool, error) {
	line := &cmdLine{line: text}
	word := line.getWord()
	if word == "" {
		return false, nil
	}

	match := matchList(word)
	switch len(match) {
	case 0:
		return false, errors.New("command not found: " + word)
	case 1:
		return match[0].process(sess, line)
	default:
		return false, errors.New("ambiguous command: " + word)
	}
}

// quit ends the REPL.
func quit(_ *Session, _ *cmdLine) (bool, error) {
	return true, nil
}

// show dispatches the five read-only inspection subcommands.
func show(sess *Session, line *cmdLine) (bool, error) {
	what := line.getWord()
	switch what {
	case "observe":
		fmt.Println(formatCatalogue(sess.Observe, nil))
	case "control":
		fmt.Println(formatCatalogue(sess.Control, sess.ControlType))
	case "triggers":
		fmt.Println(formatTriggers(sess.TriggerNames))
	case "smu":
		out, err := formatSMU(sess)
		if err != nil {
			return false, err
		}
		fmt.Println(out)
	case "sru":
		out, err := formatSRU(sess)
		if err != nil {
			return false, err
		}
		fmt.Println(out)
	case "":
		return false, errors.New("show requires an argument: observe, control, triggers, smu, or sru")
	default:
		return false, errors.New("unknown show target: " + what)
	}
	return false, nil
}
