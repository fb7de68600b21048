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

import "fmt"

// ConfigError reports caller misconfiguration of a command tree: duplicate
// names, malformed option templates, arguments declared after a variadic
// one. Tree-building calls panic with a ConfigError; the dispatch-time
// duplicate-name check returns it as an ordinary error.
type ConfigError struct {
	msg string
}

func configErrorf(format string, args ...interface{}) ConfigError {
	return ConfigError{msg: fmt.Sprintf(format, args...)}
}

func (ce ConfigError) Error() string {
	return ce.msg
}

// IsConfigError reports whether err is a tree-configuration defect.
func IsConfigError(err error) bool {
	_, ok := err.(ConfigError)
	return ok
}

// ParseError reports a failure to match the token stream against the command
// tree. It carries the command node that was active when parsing failed.
type ParseError struct {
	// Cmd is the node that was active when the error occurred.
	Cmd *Command
	msg string
}

func parseErrorf(cmd *Command, format string, args ...interface{}) ParseError {
	return ParseError{Cmd: cmd, msg: fmt.Sprintf(format, args...)}
}

func (pe ParseError) Error() string {
	return pe.msg
}

// IsParseError reports whether err arose from matching the token stream.
func IsParseError(err error) bool {
	_, ok := err.(ParseError)
	return ok
}
