/*
 * ASAP - Console REPL loop.
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
	"log/slog"

	"github.com/peterh/liner"
)

// commandNames lists the REPL verbs for tab completion.
func commandNames() []string {
	names := make([]string, len(commandList))
	for i, c := range commandList {
		names[i] = c.name
	}
	return names
}

// showTargets are the completions offered after "show ".
var showTargets = []string{"observe", "control", "triggers", "smu", "sru"}

func complete(line string) []string {
	l := &cmdLine{line: line}
	word := l.getWord()

	if !l.isEOL() && l.pos < len(line) && line[l.pos] == ' ' {
		if word != "show" {
			return nil
		}
		var out []string
		for _, t := range showTargets {
			out = append(out, "show "+t)
		}
		return out
	}

	var matches []string
	for _, name := range commandNames() {
		if len(name) >= len(word) && name[:len(word)] == word {
			matches = append(matches, name)
		}
	}
	return matches
}

// Run starts the interactive REPL over sess, reading lines until the
// user quits or aborts with Ctrl-C/Ctrl-D.
func Run(sess *Session) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	for {
		text, err := line.Prompt("asap> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("console read error", "error", err)
			return
		}

		line.AppendHistory(text)
		quit, err := ProcessCommand(sess, text)
		if err != nil {
			fmt.Println("error: " + err.Error())
		}
		if quit {
			return
		}
	}
}
