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

package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/cmdtree/cmdtree/libraries/utils/filesys"
)

const configFile = ".memo.toml"

type config struct {
	// StorePath is where notes are kept, relative to the working directory.
	StorePath string `toml:"store_path"`
	// DefaultLimit caps `memo list` output when no --limit is given.
	DefaultLimit int `toml:"default_limit"`
}

func defaultConfig() config {
	return config{StorePath: ".memo.json", DefaultLimit: 20}
}

// loadConfig reads the optional TOML config file from the working directory.
// A missing file yields the defaults; a malformed file is an error.
func loadConfig(fs filesys.ReadableFS) (config, error) {
	cfg := defaultConfig()

	if exists, isDir := fs.Exists(configFile); !exists || isDir {
		return cfg, nil
	}

	data, err := fs.ReadFile(configFile)
	if err != nil {
		return cfg, errors.Wrapf(err, "unable to read config '%s'", configFile)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config '%s' is malformed", configFile)
	}

	return cfg, nil
}
