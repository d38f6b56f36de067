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

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"laptudirm.com/x/djinn/pkg/games"
	"laptudirm.com/x/djinn/pkg/games/ataxx"
	"laptudirm.com/x/djinn/pkg/games/chess"
	"laptudirm.com/x/djinn/pkg/games/tictactoe"
	"laptudirm.com/x/djinn/pkg/plugin"
)

// native is a game built into djinn.
type native struct {
	key string

	// fen reports whether the game can start from a custom position.
	fen bool

	// new creates a game, where a non-positive depth means the game's
	// default depth and an empty fen its standard starting position.
	new func(fen string, depth int) (games.Game, error)
}

var natives = []native{
	{
		key: "tictactoe",
		new: func(_ string, depth int) (games.Game, error) {
			return tictactoe.NewGame(depth), nil
		},
	},
	{
		key: "ataxx",
		fen: true,
		new: func(fen string, depth int) (games.Game, error) {
			return ataxx.NewGame(fen, depth)
		},
	},
	{
		key: "chess",
		fen: true,
		new: func(fen string, depth int) (games.Game, error) {
			return chess.NewGame(fen, depth), nil
		},
	},
}

func findNative(key string) (native, bool) {
	for _, game := range natives {
		if game.key == strings.ToLower(key) {
			return game, true
		}
	}

	return native{}, false
}

// catalog builds the registry of every game djinn knows about: the native
// games followed by the installed and configured plugins. A positive depth
// overrides the configured depths of all of them.
func catalog(cmd *cobra.Command, depth int) (*games.Registry, error) {
	cfg, err := settings(cmd)
	if err != nil {
		return nil, err
	}

	var registry games.Registry
	for _, game := range natives {
		g, err := game.new("", pick(depth, cfg.DepthOf(game.key, 0)))
		if err != nil {
			return nil, err
		}

		registry.Add(game.key, g)
	}

	paths, err := store(cmd).Paths()
	if err != nil {
		return nil, err
	}

	paths = append(paths, expand(cfg.Plugins)...)

	loader := plugin.NewLoader(plugin.NewRuntime(), 0)
	for _, p := range loader.LoadAll(paths) {
		key := pluginKey(p.Path())
		p.SetDepth(pick(depth, cfg.DepthOf(key, 0)))
		registry.Add(key, p)
	}

	return &registry, nil
}

// open finds the named game in the catalog. A non-empty fen replaces the
// game with one starting from that position, which only native games with
// positions described by FENs support.
func open(cmd *cobra.Command, name string, depth int, fen string) (games.Game, error) {
	registry, err := catalog(cmd, depth)
	if err != nil {
		return nil, err
	}

	entry, err := registry.Find(name)
	if err != nil {
		return nil, err
	}

	if fen == "" {
		return entry.Game, nil
	}

	game, found := findNative(entry.Key)
	if !found || !game.fen {
		return nil, fmt.Errorf("%s can't start from a fen", entry.Game.Name())
	}

	cfg, err := settings(cmd)
	if err != nil {
		return nil, err
	}

	return game.new(fen, pick(depth, cfg.DepthOf(game.key, 0)))
}

func pick(depth, configured int) int {
	if depth > 0 {
		return depth
	}

	return configured
}

func pluginKey(path string) string {
	return strings.ToLower(strings.TrimSuffix(filepath.Base(path), ".js"))
}

// expand resolves the ~ in configured plugin paths.
func expand(paths []string) []string {
	expanded := make([]string, len(paths))
	for i, path := range paths {
		if rest, found := strings.CutPrefix(path, "~/"); found {
			path = filepath.Join(xdg.Home, rest)
		}

		expanded[i] = path
	}

	return expanded
}
