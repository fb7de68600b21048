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
	"strings"

	"github.com/cmdtree/cmdtree/libraries/respfile"
)

type matchKind int

const (
	matchLong matchKind = iota
	matchShort
	matchSymbol
)

func (opt *Option) nameFor(kind matchKind) string {
	switch kind {
	case matchLong:
		return opt.LongName
	case matchShort:
		return opt.ShortName
	default:
		return opt.SymbolName
	}
}

// Execute dispatches the token vector against the command tree rooted at this
// node: a single left-to-right scan that mutates option and argument state,
// descends into subcommands, and finally runs the resolved node's callback,
// returning its status. Help and version matches short-circuit with status 0.
// Parse failures return a ParseError after emitting the active node's usage
// hint; duplicate names in an effective option set return a ConfigError.
func (cmd *Command) Execute(args []string) (int, error) {
	if cmd.HandleResponseFiles {
		expanded, err := respfile.Expand(cmd.fs(), cmd.workingDir(), args, cmd.AllowArgumentSeparator)
		if err != nil {
			return 1, err
		}
		args = expanded
	}

	cur := cmd
	var pending *Option
	var pendingName string
	var cursor *argCursor

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// a previously matched option is waiting for its value
		if pending != nil {
			if err := pending.accept(&arg); err != nil {
				return cur.failParse(err.Error())
			}
			pending = nil
			continue
		}

		if strings.HasPrefix(arg, "--") {
			name, inline, hasInline := splitNameValue(arg[2:])

			opt, err := matchOption(cur.EffectiveOptions(), name, matchLong)
			if err != nil {
				return 1, err
			}

			if opt == nil {
				if name == "" && !hasInline && !cur.ThrowOnUnexpected && cur.AllowArgumentSeparator {
					cur.RemainingArgs = append(cur.RemainingArgs, args[i+1:]...)
					break
				}
				return cur.unexpected(arg, true, args[i:])
			}

			if done, status, err := cur.checkShortCircuit(opt); done {
				return status, err
			}

			if hasInline {
				if err := opt.accept(&inline); err != nil {
					return cur.failParse(err.Error())
				}
			} else if opt.Arity == NoValue {
				if err := opt.accept(nil); err != nil {
					return cur.failParse(err.Error())
				}
			} else {
				pending, pendingName = opt, "--"+name
			}
			continue
		}

		if len(arg) > 1 && arg[0] == '-' {
			name, inline, hasInline := splitNameValue(arg[1:])

			opt, err := matchOption(cur.EffectiveOptions(), name, matchShort)
			if err != nil {
				return 1, err
			}
			if opt == nil {
				opt, err = matchOption(cur.EffectiveOptions(), name, matchSymbol)
				if err != nil {
					return 1, err
				}
			}

			if opt == nil {
				return cur.unexpected(arg, true, args[i:])
			}

			if done, status, err := cur.checkShortCircuit(opt); done {
				return status, err
			}

			if hasInline {
				if err := opt.accept(&inline); err != nil {
					return cur.failParse(err.Error())
				}
			} else if opt.Arity == NoValue {
				if err := opt.accept(nil); err != nil {
					return cur.failParse(err.Error())
				}
			} else {
				pending, pendingName = opt, "-"+name
			}
			continue
		}

		if child := cur.findChild(arg); child != nil {
			cur = child
			cursor = nil
			continue
		}

		if cursor == nil {
			cursor = &argCursor{args: cur.arguments}
		}

		slot := cursor.take()
		if slot == nil {
			return cur.unexpected(arg, false, args[i:])
		}
		if err := slot.accept(arg); err != nil {
			return cur.failParse(err.Error())
		}
	}

	if pending != nil {
		return cur.failParse("missing value for option '%s'", pendingName)
	}

	if cur.Call == nil {
		cur.ShowHelp("")
		return 0, nil
	}

	return cur.Call(), nil
}

// splitNameValue splits an option token body on the first '=' or ':' only.
func splitNameValue(body string) (name, value string, hasValue bool) {
	if idx := strings.IndexAny(body, nameDelimChars); idx != -1 {
		return body[:idx], body[idx+1:], true
	}
	return body, "", false
}

// matchOption finds the unique option in the effective set whose name of the
// given kind matches. Two candidates mean the caller configured conflicting
// names across scopes, a defect reported fail-fast rather than resolved to
// the first match.
func matchOption(set []*Option, name string, kind matchKind) (*Option, error) {
	if name == "" {
		return nil, nil
	}

	var found *Option
	for _, opt := range set {
		if opt.nameFor(kind) != name {
			continue
		}
		if found != nil {
			return nil, configErrorf("option name '%s' is declared more than once in the command's scope", name)
		}
		found = opt
	}

	return found, nil
}

// checkShortCircuit renders help or version output when opt is a designated
// help or version option visible from this node. It marks the node and every
// ancestor as showing information and ends the dispatch with status 0.
func (cmd *Command) checkShortCircuit(opt *Option) (done bool, status int, err error) {
	if cmd.isHelpOption(opt) {
		cmd.ShowHelp("")
		cmd.markShowingInformation()
		return true, 0, nil
	}

	if cmd.isVersionOption(opt) {
		cmd.ShowVersion()
		cmd.markShowingInformation()
		return true, 0, nil
	}

	return false, 0, nil
}

// unexpected applies the node's unexpected-token policy. asOption records how
// the token was being interpreted for the error message.
func (cmd *Command) unexpected(token string, asOption bool, rest []string) (int, error) {
	if !cmd.ThrowOnUnexpected {
		cmd.RemainingArgs = append(cmd.RemainingArgs, rest...)

		if cmd.Call == nil {
			cmd.ShowHelp("")
			return 0, nil
		}
		return cmd.Call(), nil
	}

	if asOption {
		return cmd.failParse("unrecognized option '%s'", token)
	}
	return cmd.failParse("unrecognized command or argument '%s'", token)
}

// failParse emits the node's short usage hint to its output writer and
// returns a ParseError carrying the node.
func (cmd *Command) failParse(format string, args ...interface{}) (int, error) {
	cmd.printUsageHint()
	return 1, parseErrorf(cmd, format, args...)
}
