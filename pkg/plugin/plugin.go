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

package plugin

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/djinn/pkg/games"
	"laptudirm.com/x/djinn/pkg/minimax"
)

// presentation is the set of methods every plugin game must implement.
var presentation = []string{
	"name", "thumbnail", "display", "display_size", "move_history",
	"win_state", "is_valid_move", "play_move", "reset",
}

// Plugin is a game implemented by a JavaScript plugin. Every method call is
// passed through to the plugin object.
//
// Methods of games.Game which cannot return an error record the first
// failed call instead, which is reported by Err. A Plugin must not be used
// from more than one goroutine at a time.
type Plugin struct {
	rt   *Runtime
	obj  *goja.Object
	path string

	// state is the plugin object seen as a position, if it implements the
	// state contract. It is searched when the plugin has no computer_move.
	state *State
	moves bool // has computer_move
	depth int

	err error
}

var _ games.Game = (*Plugin)(nil)

// Path returns the file the plugin was loaded from.
func (plugin *Plugin) Path() string { return plugin.path }

// Err returns the first error encountered by a method without an error
// result, or nil.
func (plugin *Plugin) Err() error { return plugin.err }

// SetDepth changes the depth the plugin's game is searched at when it has
// no computer_move. A non-positive depth searches the game to its end.
func (plugin *Plugin) SetDepth(depth int) {
	if depth <= 0 {
		depth = minimax.Unlimited
	}

	plugin.depth = depth
}

// State returns the plugin's game as a searchable position, if it is one.
func (plugin *Plugin) State() (*State, bool) {
	return plugin.state, plugin.state != nil
}

func query[T any](plugin *Plugin, convert func(goja.Value) (T, error), method string, args ...any) T {
	value, err := invoke(plugin.rt, false, convert, plugin.obj, method, args...)
	if err != nil && plugin.err == nil {
		logrus.WithError(err).WithField("plugin", plugin.path).Debug("plugin query failed")
		plugin.err = err
	}

	return value
}

func (plugin *Plugin) Name() string      { return query(plugin, asString, "name") }
func (plugin *Plugin) Thumbnail() string { return query(plugin, asString, "thumbnail") }
func (plugin *Plugin) Display() string   { return query(plugin, asString, "display") }

func (plugin *Plugin) DisplaySize() (width, height int) {
	size := query(plugin, asSize, "display_size")
	return size.width, size.height
}

func (plugin *Plugin) MoveHistory() []string {
	return query(plugin, asStrings, "move_history")
}

func (plugin *Plugin) WinState() games.WinState {
	return query(plugin, asWinState, "win_state")
}

func (plugin *Plugin) IsValidMove(move string) bool {
	return query(plugin, asBool, "is_valid_move", move)
}

func (plugin *Plugin) PlayMove(move string) error {
	valid, err := invoke(plugin.rt, false, asBool, plugin.obj, "is_valid_move", move)
	switch {
	case err != nil:
		return err
	case !valid:
		return fmt.Errorf("%w %s", games.ErrIllegalMove, move)
	}

	_, err = invoke(plugin.rt, false, ignore, plugin.obj, "play_move", move)
	return err
}

// ComputerMove returns the plugin's computer_move if it has one, and
// otherwise searches the plugin's game to the configured depth.
func (plugin *Plugin) ComputerMove() (string, error) {
	over, err := invoke(plugin.rt, false, asWinState, plugin.obj, "win_state")
	switch {
	case err != nil:
		return "", err
	case over != games.Ongoing:
		return "", games.ErrGameOver
	}

	if plugin.moves {
		return invoke(plugin.rt, false, asString, plugin.obj, "computer_move")
	}

	return BestMove(plugin.state, plugin.depth)
}

func (plugin *Plugin) Reset() error {
	_, err := invoke(plugin.rt, false, ignore, plugin.obj, "reset")
	return err
}
