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

import "errors"

// An Argument is one declared positional slot. Arguments fill in declaration
// order; a variadic argument absorbs every remaining positional token
// directed at its owning command node.
type Argument struct {
	// Name identifies the argument in help output and error messages.
	Name string
	// Desc is a brief description shown in help output.
	Desc string
	// Variadic arguments accept unbounded trailing values and must be
	// declared last.
	Variadic bool
	// Hidden arguments are omitted from help output.
	Hidden bool
	// Validators run against each assigned value, in order.
	Validators []ValidationFunc

	vals []string
}

func (arg *Argument) accept(value string) error {
	for _, validator := range arg.Validators {
		if err := validator(value); err != nil {
			return errors.New("invalid value '" + value + "' for argument '" + arg.Name + "': " + err.Error())
		}
	}

	arg.vals = append(arg.vals, value)
	return nil
}

// Value returns the first collected value, or the empty string.
func (arg *Argument) Value() string {
	if len(arg.vals) == 0 {
		return ""
	}
	return arg.vals[0]
}

// Values returns every collected value in the order supplied.
func (arg *Argument) Values() []string {
	return arg.vals
}

// Validate appends a validator to the argument and returns it for chaining.
func (arg *Argument) Validate(fn ValidationFunc) *Argument {
	arg.Validators = append(arg.Validators, fn)
	return arg
}

func (arg *Argument) reset() {
	arg.vals = nil
}

// argCursor walks a command node's argument declarations during a parse.
// It is created lazily on the first positional token and never advances past
// a variadic argument.
type argCursor struct {
	args []*Argument
	idx  int
}

func (c *argCursor) take() *Argument {
	if c.idx >= len(c.args) {
		return nil
	}

	arg := c.args[c.idx]
	if !arg.Variadic {
		c.idx++
	}

	return arg
}
