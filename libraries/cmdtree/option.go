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
	"errors"
	"strconv"
	"strings"
)

// Arity describes how many values an option consumes.
type Arity int

const (
	// NoValue options are bare switches. They never consume a following
	// token, even when the next token looks like a value.
	NoValue Arity = iota
	// SingleValue options take exactly one value, inline or as the next token.
	SingleValue
	// MultipleValues options may be repeated, collecting each value in order.
	MultipleValues
)

// ValidationFunc validates a raw string value supplied for an option or
// argument. The core runs validators on assignment but attaches no meaning
// to them beyond accept/reject.
type ValidationFunc func(string) error

// IsIntStr is a convenience validator that asserts a value parses as an int.
func IsIntStr(str string) error {
	_, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return errors.New("\"" + str + "\" is not a valid int")
	}

	return nil
}

// IsUintStr is a convenience validator that asserts a value parses as a uint.
func IsUintStr(str string) error {
	_, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return errors.New("\"" + str + "\" is not a valid uint")
	}

	return nil
}

// ValidatorFromStrList returns a validator that accepts only the given
// strings, case-insensitively.
func ValidatorFromStrList(paramName string, validStrList []string) ValidationFunc {
	errSuffix := " is not a valid value for '" + paramName + "'. valid values are: " + strings.Join(validStrList, "|")
	validStrSet := make(map[string]struct{})

	for _, str := range validStrList {
		validStrSet[strings.ToLower(str)] = struct{}{}
	}

	return func(s string) error {
		_, ok := validStrSet[strings.ToLower(s)]

		if !ok {
			return errors.New(s + errSuffix)
		}

		return nil
	}
}

// An Option is one declared command line switch. Its names derive from a
// template string such as "-n|--name <NAME>": segments beginning with "--"
// supply the long name, single-character non-alphanumeric segments beginning
// with "-" supply the symbol name, and remaining "-" segments supply the
// short name. A "<...>" suffix names the value in help output.
type Option struct {
	// Template is the original template string the names were derived from.
	Template string
	// LongName is matched against "--name" tokens. Required.
	LongName string
	// ShortName is matched against "-name" tokens. Optional.
	ShortName string
	// SymbolName is a single non-alphanumeric character matched against
	// "-?" style tokens. Optional.
	SymbolName string
	// ValueName names the value in help output, e.g. NAME in "--name <NAME>".
	ValueName string
	// Desc is a brief description shown in help output.
	Desc string
	// Arity is the number of values this option consumes.
	Arity Arity
	// Inherited options are visible in the effective option set of every
	// descendant command node.
	Inherited bool
	// Hidden options are omitted from help output.
	Hidden bool
	// Validators run against each assigned value, in order.
	Validators []ValidationFunc

	vals []string
	seen bool
}

func newOption(template, desc string, arity Arity) (*Option, error) {
	opt := &Option{Template: template, Desc: desc, Arity: arity}

	for _, seg := range strings.Split(template, "|") {
		seg = strings.TrimSpace(seg)

		if strings.HasPrefix(seg, "<") && strings.HasSuffix(seg, ">") {
			opt.ValueName = seg[1 : len(seg)-1]
			continue
		}

		// a name segment may carry the value descriptor: "--name <NAME>"
		if sp := strings.IndexAny(seg, " \t"); sp != -1 {
			val := strings.TrimSpace(seg[sp+1:])
			if strings.HasPrefix(val, "<") && strings.HasSuffix(val, ">") {
				opt.ValueName = val[1 : len(val)-1]
			} else if val != "" {
				return nil, configErrorf("invalid option template segment '%s' in '%s'", seg, template)
			}
			seg = seg[:sp]
		}

		switch {
		case strings.HasPrefix(seg, "--"):
			name := seg[2:]
			if name == "" || opt.LongName != "" {
				return nil, configErrorf("invalid option template '%s': exactly one long name is required", template)
			}
			opt.LongName = name
		case strings.HasPrefix(seg, "-"):
			name := seg[1:]
			if name == "" {
				return nil, configErrorf("invalid option template '%s': empty short name", template)
			}
			if len(name) == 1 && !isAlphanumeric(name[0]) {
				if opt.SymbolName != "" {
					return nil, configErrorf("invalid option template '%s': multiple symbol names", template)
				}
				opt.SymbolName = name
			} else {
				if opt.ShortName != "" {
					return nil, configErrorf("invalid option template '%s': multiple short names", template)
				}
				opt.ShortName = name
			}
		case seg == "":
			return nil, configErrorf("invalid option template '%s': empty segment", template)
		default:
			return nil, configErrorf("invalid option template segment '%s' in '%s': names must start with '-'", seg, template)
		}
	}

	if opt.LongName == "" {
		return nil, configErrorf("invalid option template '%s': a long name is required", template)
	}

	return opt, nil
}

func isAlphanumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// accept records a parsed value. A nil value marks a bare occurrence of a
// NoValue option. The error identifies the violated arity or validator.
func (opt *Option) accept(value *string) error {
	if value == nil {
		if opt.Arity != NoValue {
			return errors.New("option '--" + opt.LongName + "' requires a value")
		}
		opt.seen = true
		return nil
	}

	if opt.Arity == NoValue {
		return errors.New("option '--" + opt.LongName + "' does not take a value, got '" + *value + "'")
	}

	if opt.Arity == SingleValue && len(opt.vals) > 0 {
		return errors.New("multiple values provided for option '--" + opt.LongName + "'")
	}

	for _, validator := range opt.Validators {
		if err := validator(*value); err != nil {
			return errors.New("invalid value '" + *value + "' for option '--" + opt.LongName + "': " + err.Error())
		}
	}

	opt.seen = true
	opt.vals = append(opt.vals, *value)
	return nil
}

// Seen returns true if the option appeared at least once during the last parse.
func (opt *Option) Seen() bool {
	return opt.seen
}

// Value returns the first collected value, or the empty string.
func (opt *Option) Value() string {
	if len(opt.vals) == 0 {
		return ""
	}
	return opt.vals[0]
}

// Values returns every collected value in the order supplied.
func (opt *Option) Values() []string {
	return opt.vals
}

// Validate appends a validator to the option and returns it for chaining.
func (opt *Option) Validate(fn ValidationFunc) *Option {
	opt.Validators = append(opt.Validators, fn)
	return opt
}

// SetInherited marks the option visible to descendant command nodes.
func (opt *Option) SetInherited() *Option {
	opt.Inherited = true
	return opt
}

// SetHidden omits the option from help output.
func (opt *Option) SetHidden() *Option {
	opt.Hidden = true
	return opt
}

func (opt *Option) reset() {
	opt.vals = nil
	opt.seen = false
}

// helpName formats the option's names for the options table in help output.
func (opt *Option) helpName() string {
	var parts []string
	if opt.ShortName != "" {
		parts = append(parts, "-"+opt.ShortName)
	}
	if opt.SymbolName != "" {
		parts = append(parts, "-"+opt.SymbolName)
	}
	parts = append(parts, "--"+opt.LongName)

	name := strings.Join(parts, "|")
	if opt.ValueName != "" && opt.Arity != NoValue {
		name += " <" + opt.ValueName + ">"
	}

	return name
}
