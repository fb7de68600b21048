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

package respfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdtree/cmdtree/libraries/utils/filesys"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"single word", "word", []string{"word"}},
		{"whitespace split", "one  two\tthree", []string{"one", "two", "three"}},
		{"leading and trailing space", "  padded  ", []string{"padded"}},
		{"double quotes", `--name "a value"`, []string{"--name", "a value"}},
		{"single quotes", `--name 'a value'`, []string{"--name", "a value"}},
		{"opposite quote is literal", `"it's fine"`, []string{"it's fine"}},
		{"double inside single", `'say "hi"'`, []string{`say "hi"`}},
		{"quoted run joins token", `pre"mid"post`, []string{"premidpost"}},
		{"empty quotes yield empty token", `""`, []string{""}},
		{"empty quotes between words", `a "" b`, []string{"a", "", "b"}},
		{"escaped double quote", `\"quoted\"`, []string{`"quoted"`}},
		{"escaped single quote", `\'quoted\'`, []string{"'quoted'"}},
		{"escaped quote inside quotes", `"a \"b\" c"`, []string{`a "b" c`}},
		{"other escapes kept literally", `a\tb`, []string{`a\tb`}},
		{"escaped backslash kept literally", `a\\b`, []string{`a\\b`}},
		{"trailing backslash kept", `word\`, []string{`word\`}},
		{"unterminated quote ends at eol", `"no close`, []string{"no close"}},
		{"whitespace only", "   \t ", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, splitLine(test.line))
		})
	}
}

func TestExpand(t *testing.T) {
	fs := filesys.NewInMemFS(map[string][]byte{
		"/work/simple.rsp":   []byte("--force\n--name value\n"),
		"/work/comments.rsp": []byte("# a comment\n\n--force\n  # not a comment\n"),
		"/work/quoted.rsp":   []byte("--msg \"hello world\"\n"),
		"/work/nested.rsp":   []byte("@simple.rsp\n"),
		"/abs/abs.rsp":       []byte("from-abs\n"),
	}, "/work")

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			"no references pass through",
			[]string{"a", "-b", "--c=d"},
			[]string{"a", "-b", "--c=d"},
		},
		{
			"simple expansion in place",
			[]string{"pre", "@simple.rsp", "post"},
			[]string{"pre", "--force", "--name", "value", "post"},
		},
		{
			"comments and blanks skipped",
			[]string{"@comments.rsp"},
			[]string{"--force", "#", "not", "a", "comment"},
		},
		{
			"quoting preserved",
			[]string{"@quoted.rsp"},
			[]string{"--msg", "hello world"},
		},
		{
			"no nested expansion",
			[]string{"@nested.rsp"},
			[]string{"@simple.rsp"},
		},
		{
			"absolute path ignores working dir",
			[]string{"@/abs/abs.rsp"},
			[]string{"from-abs"},
		},
		{
			"bare at sign passes through",
			[]string{"@"},
			[]string{"@"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expanded, err := Expand(fs, "/work", test.args, false)
			require.NoError(t, err)
			assert.Equal(t, test.expected, expanded)
		})
	}
}

func TestExpandSeparatorStopsExpansion(t *testing.T) {
	fs := filesys.NewInMemFS(map[string][]byte{
		"/work/simple.rsp": []byte("--force\n"),
	}, "/work")

	expanded, err := Expand(fs, "/work", []string{"@simple.rsp", "--", "@simple.rsp"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"--force", "--", "@simple.rsp"}, expanded)

	// separator handling disabled: both references expand
	expanded, err = Expand(fs, "/work", []string{"@simple.rsp", "--", "@simple.rsp"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"--force", "--", "--force"}, expanded)
}

func TestExpandMissingFile(t *testing.T) {
	fs := filesys.EmptyInMemFS("/work")

	_, err := Expand(fs, "/work", []string{"@nope.rsp"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.rsp")
}

func TestExpandCRLF(t *testing.T) {
	fs := filesys.NewInMemFS(map[string][]byte{
		"/work/crlf.rsp": []byte("--force\r\nvalue\r\n"),
	}, "/work")

	expanded, err := Expand(fs, "/work", []string{"@crlf.rsp"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"--force", "value"}, expanded)
}
