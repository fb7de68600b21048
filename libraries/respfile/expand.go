// Copyright 2021 Cmdtree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package respfile expands "@file" command line tokens into the tokens read
// from the named response file.
//
// Each line of a response file is split into tokens with a shell-like
// grammar: unescaped whitespace splits tokens; single or double quotes
// capture their contents verbatim (the opposite quote is literal); a
// backslash collapses a following quote character and is otherwise kept
// literally together with the character it precedes. Blank lines and lines
// whose first character is '#' are skipped. Tokens never span lines, and a
// file's contents are never re-scanned for further "@" references.
package respfile

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/cmdtree/cmdtree/libraries/utils/filesys"
)

// Expand replaces every token of length >= 2 beginning with '@' with the
// tokens read from the named file, resolved against workingDir when the path
// is not absolute. When allowSeparator is set, a bare "--" token stops
// expansion: it and every following token are copied through unchanged.
// A file that cannot be read fails the whole expansion; no partial result is
// returned.
func Expand(fs filesys.ReadableFS, workingDir string, args []string, allowSeparator bool) ([]string, error) {
	expanded := make([]string, 0, len(args))

	for i, arg := range args {
		if allowSeparator && arg == "--" {
			expanded = append(expanded, args[i:]...)
			return expanded, nil
		}

		if len(arg) < 2 || arg[0] != '@' {
			expanded = append(expanded, arg)
			continue
		}

		path := arg[1:]
		if !filepath.IsAbs(path) {
			path = filepath.Join(workingDir, path)
		}

		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read response file '%s'", arg[1:])
		}

		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSuffix(line, "\r")
			if line == "" || line[0] == '#' {
				continue
			}
			expanded = append(expanded, splitLine(line)...)
		}
	}

	return expanded, nil
}

// splitLine tokenizes one response file line. The end of the line terminates
// whatever token is open, so an empty quoted run still yields an empty token.
func splitLine(line string) []string {
	var toks []string
	var sb strings.Builder

	open := false
	var quote byte

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case ch == '\\':
			if i+1 < len(line) {
				next := line[i+1]
				if next == '"' || next == '\'' {
					sb.WriteByte(next)
				} else {
					sb.WriteByte('\\')
					sb.WriteByte(next)
				}
				i++
			} else {
				// trailing backslash is kept literally
				sb.WriteByte('\\')
			}
			open = true

		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				sb.WriteByte(ch)
			}

		case ch == '"' || ch == '\'':
			quote = ch
			open = true

		case ch == ' ' || ch == '\t':
			if open {
				toks = append(toks, sb.String())
				sb.Reset()
				open = false
			}

		default:
			sb.WriteByte(ch)
			open = true
		}
	}

	if open {
		toks = append(toks, sb.String())
	}

	return toks
}
