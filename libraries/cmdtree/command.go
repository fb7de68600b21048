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
	"io"
	"strings"

	"github.com/cmdtree/cmdtree/libraries/utils/filesys"
)

const (
	nameDelimChars  = "=:"
	whitespaceChars = " \r\n\t"
)

// A Command is one addressable node of a command tree. The root and every
// subcommand are the same type; children are owned by their parent's child
// list, and the parent link is a non-owning back-reference.
type Command struct {
	// DisplayName overrides the command's name in help output when set.
	DisplayName string
	// Desc is a brief description shown in the parent's commands table.
	Desc string
	// ExtendedDesc is longer help text shown under the command's own usage.
	ExtendedDesc string
	// ThrowOnUnexpected controls the unexpected-token policy: when true
	// (the default) an unexpected token fails the dispatch; when false the
	// token and everything after it are collected into RemainingArgs.
	ThrowOnUnexpected bool
	// AllowArgumentSeparator permits a bare "--" token to end option
	// matching when the node is also in collect mode.
	AllowArgumentSeparator bool
	// HandleResponseFiles enables "@file" token expansion. It is consulted
	// once at dispatch start, on the node Execute was invoked on.
	HandleResponseFiles bool
	// Hidden commands are omitted from their parent's help output.
	Hidden bool
	// WorkingDir resolves relative response file paths. Defaults to ".".
	WorkingDir string
	// FS is the filesystem response files are read through. Defaults to
	// filesys.LocalFS; tests substitute an InMemFS.
	FS filesys.ReadableFS
	// Out is the node's output writer. When nil the parent's writer is
	// used, falling back to CliOut at the root.
	Out io.Writer
	// Err is the node's error writer, falling back to CliErr.
	Err io.Writer
	// Call is the invocation callback run when dispatch resolves to this
	// node. When nil, dispatch renders the node's help and returns 0.
	Call func() int
	// RemainingArgs collects unrecognized trailing tokens when the node is
	// in collect mode.
	RemainingArgs []string

	name        string
	parent      *Command
	children    []*Command
	options     []*Option
	arguments   []*Argument
	helpOpt     *Option
	versionOpt  *Option
	longVersion func() string
	showingInfo bool
}

// NewCommand creates a root command node. Invalid names are a configuration
// defect and panic with a ConfigError.
func NewCommand(name, desc string) *Command {
	if err := checkName(name); err != nil {
		panic(err)
	}

	return &Command{
		name:              name,
		Desc:              desc,
		ThrowOnUnexpected: true,
	}
}

func checkName(name string) error {
	if name == "" {
		return configErrorf("command name is required")
	}
	if name[0] == '-' {
		return configErrorf("command name '%s' must not start with '-'", name)
	}
	if strings.ContainsAny(name, nameDelimChars) || strings.ContainsAny(name, whitespaceChars) {
		return configErrorf("command name '%s' contains an invalid character", name)
	}

	return nil
}

// Name returns the command's name.
func (cmd *Command) Name() string {
	return cmd.name
}

// Parent returns the command's parent node, or nil for the root.
func (cmd *Command) Parent() *Command {
	return cmd.parent
}

// Children returns the command's child nodes in declaration order.
func (cmd *Command) Children() []*Command {
	return cmd.children
}

// Options returns the command's own option declarations in declaration order.
func (cmd *Command) Options() []*Option {
	return cmd.options
}

// Arguments returns the command's positional declarations in declaration order.
func (cmd *Command) Arguments() []*Argument {
	return cmd.arguments
}

// FullName returns the space-joined names of the command's ancestors and the
// command itself, root first, using display names where set.
func (cmd *Command) FullName() string {
	if cmd.parent == nil {
		return cmd.displayName()
	}

	return cmd.parent.FullName() + " " + cmd.displayName()
}

func (cmd *Command) displayName() string {
	if cmd.DisplayName != "" {
		return cmd.DisplayName
	}
	return cmd.name
}

// AddCommand creates a child command node and returns it. Child names are
// matched case-insensitively at parse time, so two children whose names
// differ only by case are a configuration defect.
func (cmd *Command) AddCommand(name, desc string) *Command {
	if err := checkName(name); err != nil {
		panic(err)
	}
	if cmd.findChild(name) != nil {
		panic(configErrorf("duplicate subcommand '%s' under '%s'", name, cmd.name))
	}

	child := NewCommand(name, desc)
	child.parent = cmd
	cmd.children = append(cmd.children, child)
	return child
}

func (cmd *Command) findChild(name string) *Command {
	for _, child := range cmd.children {
		if strings.EqualFold(child.name, name) {
			return child
		}
	}
	return nil
}

// AddOption declares an option from a template string like "-n|--name <NAME>"
// and returns it. Name collisions within this node panic with a ConfigError;
// collisions with inherited ancestor options are detected lazily when the
// effective option set is matched during dispatch.
func (cmd *Command) AddOption(template, desc string, arity Arity) *Option {
	opt, err := newOption(template, desc, arity)
	if err != nil {
		panic(err)
	}

	for _, existing := range cmd.options {
		if existing.LongName == opt.LongName {
			panic(configErrorf("duplicate option name '--%s' on command '%s'", opt.LongName, cmd.name))
		}
		if opt.ShortName != "" && existing.ShortName == opt.ShortName {
			panic(configErrorf("duplicate option name '-%s' on command '%s'", opt.ShortName, cmd.name))
		}
		if opt.SymbolName != "" && existing.SymbolName == opt.SymbolName {
			panic(configErrorf("duplicate option name '-%s' on command '%s'", opt.SymbolName, cmd.name))
		}
	}

	cmd.options = append(cmd.options, opt)
	return opt
}

// SupportsFlag declares a bare switch. See AddOption for naming rules.
func (cmd *Command) SupportsFlag(template, desc string) *Option {
	return cmd.AddOption(template, desc, NoValue)
}

// SupportsString declares a single-value option. See AddOption for naming rules.
func (cmd *Command) SupportsString(template, desc string) *Option {
	return cmd.AddOption(template, desc, SingleValue)
}

// SupportsStringList declares a repeatable multi-value option. See AddOption
// for naming rules.
func (cmd *Command) SupportsStringList(template, desc string) *Option {
	return cmd.AddOption(template, desc, MultipleValues)
}

// AddArgument declares the next positional slot. Declaring any argument after
// a variadic one panics with a ConfigError naming the variadic argument.
func (cmd *Command) AddArgument(name, desc string) *Argument {
	return cmd.addArgument(name, desc, false)
}

// AddVariadicArgument declares a positional slot that absorbs all remaining
// positional tokens. It must be the last argument declared on the node.
func (cmd *Command) AddVariadicArgument(name, desc string) *Argument {
	return cmd.addArgument(name, desc, true)
}

func (cmd *Command) addArgument(name, desc string, variadic bool) *Argument {
	if name == "" {
		panic(configErrorf("argument name is required"))
	}
	if n := len(cmd.arguments); n > 0 && cmd.arguments[n-1].Variadic {
		panic(configErrorf("variadic argument '%s' must be the last argument of command '%s'", cmd.arguments[n-1].Name, cmd.name))
	}

	arg := &Argument{Name: name, Desc: desc, Variadic: variadic}
	cmd.arguments = append(cmd.arguments, arg)
	return arg
}

// SetHelpOption designates the node's help option, declared from the given
// template and marked inherited so it works after descending into
// subcommands. Matching it during dispatch renders help for the active node
// and short-circuits with status 0.
func (cmd *Command) SetHelpOption(template string) *Option {
	if cmd.helpOpt != nil {
		panic(configErrorf("help option already set on command '%s'", cmd.name))
	}

	opt := cmd.AddOption(template, "Show help information.", NoValue)
	opt.Inherited = true
	cmd.helpOpt = opt
	return opt
}

// SetVersionOption designates the node's version option. The longVersion
// producer supplies the version text rendered on match.
func (cmd *Command) SetVersionOption(template string, longVersion func() string) *Option {
	if cmd.versionOpt != nil {
		panic(configErrorf("version option already set on command '%s'", cmd.name))
	}

	opt := cmd.AddOption(template, "Show version information.", NoValue)
	cmd.versionOpt = opt
	cmd.longVersion = longVersion
	return opt
}

// HelpOption returns the node's designated help option, or nil.
func (cmd *Command) HelpOption() *Option {
	return cmd.helpOpt
}

// OnExecute sets the invocation callback and returns the command for chaining.
func (cmd *Command) OnExecute(fn func() int) *Command {
	cmd.Call = fn
	return cmd
}

// EffectiveOptions returns the node's own options followed by inherited
// ancestor options, nearest ancestor first. The set is recomputed on every
// call because the tree may be mutated between parses.
func (cmd *Command) EffectiveOptions() []*Option {
	opts := make([]*Option, 0, len(cmd.options))
	opts = append(opts, cmd.options...)

	for anc := cmd.parent; anc != nil; anc = anc.parent {
		for _, opt := range anc.options {
			if opt.Inherited {
				opts = append(opts, opt)
			}
		}
	}

	return opts
}

// isHelpOption reports whether opt is the designated help option of this node
// or of any ancestor it could have been inherited from.
func (cmd *Command) isHelpOption(opt *Option) bool {
	for node := cmd; node != nil; node = node.parent {
		if node.helpOpt != nil && node.helpOpt == opt {
			return true
		}
	}
	return false
}

func (cmd *Command) isVersionOption(opt *Option) bool {
	for node := cmd; node != nil; node = node.parent {
		if node.versionOpt != nil && node.versionOpt == opt {
			return true
		}
	}
	return false
}

func (cmd *Command) versionProducer() func() string {
	for node := cmd; node != nil; node = node.parent {
		if node.longVersion != nil {
			return node.longVersion
		}
	}
	return nil
}

// ShowingInformation reports whether the last dispatch short-circuited into
// help or version output at this node or below it.
func (cmd *Command) ShowingInformation() bool {
	return cmd.showingInfo
}

func (cmd *Command) markShowingInformation() {
	for node := cmd; node != nil; node = node.parent {
		node.showingInfo = true
	}
}

// Reset clears all parse state on the node and its descendants so the tree
// can be reused for another dispatch. It is never called implicitly.
func (cmd *Command) Reset() {
	cmd.RemainingArgs = nil
	cmd.showingInfo = false

	for _, opt := range cmd.options {
		opt.reset()
	}
	for _, arg := range cmd.arguments {
		arg.reset()
	}
	for _, child := range cmd.children {
		child.Reset()
	}
}

func (cmd *Command) out() io.Writer {
	for node := cmd; node != nil; node = node.parent {
		if node.Out != nil {
			return node.Out
		}
	}
	return CliOut
}

func (cmd *Command) errOut() io.Writer {
	for node := cmd; node != nil; node = node.parent {
		if node.Err != nil {
			return node.Err
		}
	}
	return CliErr
}

func (cmd *Command) workingDir() string {
	for node := cmd; node != nil; node = node.parent {
		if node.WorkingDir != "" {
			return node.WorkingDir
		}
	}
	return "."
}

func (cmd *Command) fs() filesys.ReadableFS {
	for node := cmd; node != nil; node = node.parent {
		if node.FS != nil {
			return node.FS
		}
	}
	return filesys.LocalFS
}
