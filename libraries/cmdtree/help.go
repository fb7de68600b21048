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

package cmdtree

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const helpGutter = 2

var sectionHeader = color.New(color.Bold)

// ShowHelp renders help text for the command, or for the named direct child
// when target is non-empty, to the command's output writer. Rendering never
// mutates model state.
func (cmd *Command) ShowHelp(target string) {
	node := cmd
	if target != "" {
		if child := cmd.findChild(target); child != nil {
			node = child
		}
	}

	node.writeHelp(node.out())
}

// ShowVersion renders the command's full name and its long-form version text
// to the command's output writer.
func (cmd *Command) ShowVersion() {
	w := cmd.out()

	version := ""
	if producer := cmd.versionProducer(); producer != nil {
		version = producer()
	}

	fmt.Fprintln(w, cmd.FullName(), version)
}

func (cmd *Command) writeHelp(w io.Writer) {
	args := cmd.visibleArguments()
	opts := cmd.visibleOptions()
	cmds := cmd.visibleChildren()

	fmt.Fprintln(w, "Usage:", cmd.usageLine(args, opts, cmds))

	if cmd.Desc != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cmd.Desc)
	}
	if cmd.ExtendedDesc != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cmd.ExtendedDesc)
	}

	if len(args) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionHeader.Sprint("Arguments:"))
		writeTable(w, args)
	}

	if len(opts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionHeader.Sprint("Options:"))
		writeTable(w, opts)
	}

	if len(cmds) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionHeader.Sprint("Commands:"))
		writeTable(w, cmds)

		if helpOpt := cmd.nearestHelpOption(); helpOpt != nil {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Run '%s [command] --%s' for more information about a command.\n", cmd.FullName(), helpOpt.LongName)
		}
	}
}

// usageLine builds the usage header: the ancestor name chain followed by a
// bracket hint for each non-empty section.
func (cmd *Command) usageLine(args, opts, cmds [][2]string) string {
	parts := []string{cmd.FullName()}

	if len(args) > 0 {
		parts = append(parts, "[arguments]")
	}
	if len(opts) > 0 {
		parts = append(parts, "[options]")
	}
	if len(cmds) > 0 {
		parts = append(parts, "[command]")
	}
	if cmd.AllowArgumentSeparator {
		parts = append(parts, "[[--] <arg>...]")
	}

	return strings.Join(parts, " ")
}

func (cmd *Command) visibleArguments() [][2]string {
	var rows [][2]string
	for _, arg := range cmd.arguments {
		if arg.Hidden {
			continue
		}
		rows = append(rows, [2]string{"<" + arg.Name + ">", arg.Desc})
	}
	return rows
}

func (cmd *Command) visibleOptions() [][2]string {
	var rows [][2]string
	for _, opt := range cmd.EffectiveOptions() {
		if opt.Hidden {
			continue
		}
		rows = append(rows, [2]string{opt.helpName(), opt.Desc})
	}
	return rows
}

// visibleChildren returns the commands table sorted alphabetically by name.
// The child list itself is left in declaration order.
func (cmd *Command) visibleChildren() [][2]string {
	var rows [][2]string
	for _, child := range cmd.children {
		if child.Hidden {
			continue
		}
		rows = append(rows, [2]string{child.name, child.Desc})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}

func (cmd *Command) nearestHelpOption() *Option {
	for node := cmd; node != nil; node = node.parent {
		if node.helpOpt != nil {
			return node.helpOpt
		}
	}
	return nil
}

// writeTable writes name/description rows with the name column padded to the
// widest name plus a fixed gutter.
func writeTable(w io.Writer, rows [][2]string) {
	widest := 0
	for _, row := range rows {
		if width := runewidth.StringWidth(row[0]); width > widest {
			widest = width
		}
	}

	for _, row := range rows {
		padding := widest - runewidth.StringWidth(row[0]) + helpGutter
		fmt.Fprintf(w, "  %s%s%s\n", row[0], strings.Repeat(" ", padding), row[1])
	}
}

// printUsageHint writes the one-line usage header to the command's output
// writer. It precedes every parse error.
func (cmd *Command) printUsageHint() {
	fmt.Fprintln(cmd.out(), "Usage:", cmd.usageLine(cmd.visibleArguments(), cmd.visibleOptions(), cmd.visibleChildren()))
}
