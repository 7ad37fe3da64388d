// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig holds the subset of options lzmadec will read from an
// optional TOML config file (--config), letting a site pin defaults like
// "always keep input files" without repeating flags on every invocation.
// A setting is on when either the config or its command-line flag turns
// it on; a flag cannot turn off a setting the config enables.
type fileConfig struct {
	Keep    bool `toml:"keep"`
	Force   bool `toml:"force"`
	Verbose bool `toml:"verbose"`
}

// loadConfig reads a TOML config file if path is non-empty. A missing
// default path (path == "") is not an error; an explicitly named path
// that cannot be read or parsed is.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
