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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionTemplateParsing(t *testing.T) {
	tests := []struct {
		template string
		long     string
		short    string
		symbol   string
		valName  string
		wantErr  bool
	}{
		{template: "--name", long: "name"},
		{template: "-n|--name", long: "name", short: "n"},
		{template: "-n|--name <NAME>", long: "name", short: "n", valName: "NAME"},
		{template: "--name <NAME>", long: "name", valName: "NAME"},
		{template: "-n|-?|--name", long: "name", short: "n", symbol: "?"},
		{template: "-nv|--no-verify", long: "no-verify", short: "nv"},
		{template: "--name|<NAME>", long: "name", valName: "NAME"},
		{template: "-n", wantErr: true},
		{template: "", wantErr: true},
		{template: "name", wantErr: true},
		{template: "--a|--b", wantErr: true},
		{template: "-a|-b|--c", wantErr: true},
		{template: "-?|-!|--c", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.template, func(t *testing.T) {
			opt, err := newOption(test.template, "", SingleValue)

			if test.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.long, opt.LongName)
			assert.Equal(t, test.short, opt.ShortName)
			assert.Equal(t, test.symbol, opt.SymbolName)
			assert.Equal(t, test.valName, opt.ValueName)
		})
	}
}

func TestOptionHelpName(t *testing.T) {
	tests := []struct {
		template string
		arity    Arity
		expected string
	}{
		{"--force", NoValue, "--force"},
		{"-f|--force", NoValue, "-f|--force"},
		{"-n|--name <NAME>", SingleValue, "-n|--name <NAME>"},
		{"-n|--name <NAME>", NoValue, "-n|--name"},
		{"-?|--help", NoValue, "-?|--help"},
	}

	for _, test := range tests {
		opt, err := newOption(test.template, "", test.arity)
		require.NoError(t, err)
		assert.Equal(t, test.expected, opt.helpName())
	}
}

func TestOptionAccept(t *testing.T) {
	val := func(s string) *string { return &s }

	t.Run("no value arity", func(t *testing.T) {
		opt, err := newOption("--flag", "", NoValue)
		require.NoError(t, err)

		require.NoError(t, opt.accept(nil))
		assert.True(t, opt.Seen())
		assert.Error(t, opt.accept(val("x")))
	})

	t.Run("single value arity", func(t *testing.T) {
		opt, err := newOption("--name", "", SingleValue)
		require.NoError(t, err)

		require.Error(t, opt.accept(nil))
		require.NoError(t, opt.accept(val("a")))
		assert.Equal(t, "a", opt.Value())
		assert.Error(t, opt.accept(val("b")))
	})

	t.Run("multiple values arity", func(t *testing.T) {
		opt, err := newOption("--tag", "", MultipleValues)
		require.NoError(t, err)

		require.NoError(t, opt.accept(val("a")))
		require.NoError(t, opt.accept(val("b")))
		assert.Equal(t, []string{"a", "b"}, opt.Values())
	})

	t.Run("validator runs on assignment", func(t *testing.T) {
		opt, err := newOption("--limit", "", SingleValue)
		require.NoError(t, err)
		opt.Validate(IsUintStr)

		require.Error(t, opt.accept(val("abc")))
		require.NoError(t, opt.accept(val("12")))
	})
}

func TestValidatorFromStrList(t *testing.T) {
	validator := ValidatorFromStrList("format", []string{"json", "csv"})

	assert.NoError(t, validator("json"))
	assert.NoError(t, validator("JSON"))
	assert.Error(t, validator("xml"))
}
