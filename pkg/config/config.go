// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config reads djinn's configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// File is the default location of the configuration file.
var File = filepath.Join(xdg.ConfigHome, "djinn", "config.yaml")

// Config is djinn's configuration. Command-line flags override it.
type Config struct {
	// Depth maps game keys to the depth the computer searches them at.
	Depth map[string]int `yaml:"depth,omitempty"`

	// Plugins lists plugin files to load along with the installed ones.
	Plugins []string `yaml:"plugins,omitempty"`

	Duel Duel `yaml:"duel"`
}

// Duel holds the defaults of the duel command.
type Duel struct {
	Pairs        int `yaml:"pairs"`
	Concurrency  int `yaml:"concurrency"`
	OpeningPlies int `yaml:"opening-plies"`
	MaxPlies     int `yaml:"max-plies"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Depth: map[string]int{},
		Duel: Duel{
			Pairs:        50,
			Concurrency:  1,
			OpeningPlies: 4,
			MaxPlies:     400,
		},
	}
}

// Load reads the configuration file at the given path on top of the
// defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Default(), nil
	case err != nil:
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return config, nil
}

// Parse parses a yaml configuration on top of the defaults. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if config.Depth == nil {
		config.Depth = map[string]int{}
	}

	for key, depth := range config.Depth {
		if depth < 0 {
			return nil, fmt.Errorf("depth of %s is negative", key)
		}

		if lower := strings.ToLower(key); lower != key {
			delete(config.Depth, key)
			config.Depth[lower] = depth
		}
	}

	return config, nil
}

// DepthOf returns the configured search depth of the given game, or
// fallback if none is set.
func (config *Config) DepthOf(game string, fallback int) int {
	if depth, found := config.Depth[strings.ToLower(game)]; found {
		return depth
	}

	return fallback
}
