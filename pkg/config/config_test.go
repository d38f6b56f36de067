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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/djinn/pkg/config"
)

func TestMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(heredoc.Doc(`
		depth:
		  Chess: 4
		  ataxx: 2
		plugins:
		  - ~/games/hex.js
		duel:
		  pairs: 200
		  concurrency: 8
	`)), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"chess": 4, "ataxx": 2}, cfg.Depth)
	assert.Equal(t, []string{"~/games/hex.js"}, cfg.Plugins)
	assert.Equal(t, config.Duel{Pairs: 200, Concurrency: 8, OpeningPlies: 4, MaxPlies: 400}, cfg.Duel)

	assert.Equal(t, 4, cfg.DepthOf("CHESS", 3))
	assert.Equal(t, 9, cfg.DepthOf("tictactoe", 9))
}

func TestParseEmpty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "dpeth:\n  chess: 4\n",
		"wrong type":     "duel:\n  pairs: many\n",
		"negative depth": "depth:\n  chess: -1\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}
