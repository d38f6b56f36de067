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
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/djinn/pkg/games"
	"laptudirm.com/x/djinn/pkg/games/tictactoe"
	"laptudirm.com/x/djinn/pkg/minimax"
)

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func load(t *testing.T, loader *Loader, name string) *Plugin {
	t.Helper()

	plugin, err := loader.Load(fixture(name))
	require.NoError(t, err)
	return plugin
}

func TestEntryPoint(t *testing.T) {
	tests := map[string]string{
		"hex.js":               "Hex",
		"tic_tac_toe.js":       "TicTacToe",
		"/some/dir/my-game.js": "MyGame",
	}

	for path, class := range tests {
		assert.Equal(t, class, EntryPoint(path), path)
	}
}

func TestLoadErrors(t *testing.T) {
	loader := NewLoader(NewRuntime(), 0)

	tests := []struct {
		file string
		err  error
	}{
		{file: "syntax.js", err: ErrModule},
		{file: "top_level.js", err: ErrModule},
		{file: "no_entry.js", err: ErrNoEntryPoint},
		{file: "not_class.js", err: ErrBadEntryPoint},
		{file: "throws.js", err: ErrBadEntryPoint},
		{file: "incomplete.js", err: ErrContract},
		{file: "missing.js", err: fs.ErrNotExist},
	}

	for _, test := range tests {
		t.Run(test.file, func(t *testing.T) {
			_, err := loader.Load(fixture(test.file))

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, fixture(test.file), loadErr.Path)
			assert.ErrorIs(t, err, test.err)
		})
	}

	t.Run("runtime types stay inside", func(t *testing.T) {
		_, err := loader.Load(fixture("syntax.js"))
		require.ErrorIs(t, err, ErrModule)

		var syntaxErr *goja.CompilerSyntaxError
		assert.False(t, errors.As(err, &syntaxErr))

		_, err = loader.Load(fixture("top_level.js"))
		require.ErrorIs(t, err, ErrModule)

		var exception *goja.Exception
		assert.False(t, errors.As(err, &exception))
	})
}

func TestLoadErrorPositions(t *testing.T) {
	loader := NewLoader(NewRuntime(), 0)

	_, err := loader.Load(fixture("throws.js"))
	require.ErrorIs(t, err, ErrBadEntryPoint)
	assert.Contains(t, err.Error(), "throws.js:3:")

	_, err = loader.Load(fixture("top_level.js"))
	require.ErrorIs(t, err, ErrModule)
	assert.Contains(t, err.Error(), "top_level.js:2:")
}

func TestLoadAllSkipsBroken(t *testing.T) {
	loader := NewLoader(NewRuntime(), 0)

	plugins := loader.LoadAll([]string{
		fixture("tic_tac_toe.js"),
		fixture("incomplete.js"),
		fixture("nim.js"),
		fixture("syntax.js"),
	})

	require.Len(t, plugins, 2)
	assert.Equal(t, "Tic Tac Toe (plugin)", plugins[0].Name())
	assert.Equal(t, "Nim", plugins[1].Name())
}

func TestModulesAreIsolated(t *testing.T) {
	// both fixtures declare a different top level parse function
	loader := NewLoader(NewRuntime(), 0)
	ttt := load(t, loader, "tic_tac_toe.js")
	nim := load(t, loader, "nim.js")

	assert.True(t, ttt.IsValidMove("b2"))
	assert.False(t, ttt.IsValidMove("2"))
	assert.True(t, nim.IsValidMove("2"))
	assert.False(t, nim.IsValidMove("b2"))
	assert.NoError(t, ttt.Err())
	assert.NoError(t, nim.Err())
}

func TestPluginPassThrough(t *testing.T) {
	plugin := load(t, NewLoader(NewRuntime(), 0), "tic_tac_toe.js")

	assert.Equal(t, fixture("tic_tac_toe.js"), plugin.Path())
	assert.Equal(t, "X|O\n-+-\nO|X", plugin.Thumbnail())
	assert.Equal(t, games.Ongoing, plugin.WinState())

	width, height := plugin.DisplaySize()
	assert.Equal(t, 5, width)
	assert.Equal(t, 5, height)

	for _, move := range []string{"a1", "a2", "b1", "b2", "c1"} {
		require.NoError(t, plugin.PlayMove(move))
	}

	assert.ErrorIs(t, plugin.PlayMove("c3"), games.ErrIllegalMove)
	assert.Equal(t, []string{"a1", "a2", "b1", "b2", "c1"}, plugin.MoveHistory())
	assert.Equal(t, "X|X|X\n-+-+-\nO|O| \n-+-+-\n | | ", plugin.Display())
	assert.Equal(t, games.Decisive, plugin.WinState())

	_, err := plugin.ComputerMove()
	assert.ErrorIs(t, err, games.ErrGameOver)

	require.NoError(t, plugin.Reset())
	assert.Empty(t, plugin.MoveHistory())
	assert.NoError(t, plugin.Err())
}

func TestComputerMoveSearchesPlugin(t *testing.T) {
	plugin := load(t, NewLoader(NewRuntime(), 0), "tic_tac_toe.js")
	require.NoError(t, plugin.PlayMove("a1"))

	move, err := plugin.ComputerMove()
	require.NoError(t, err)
	assert.Equal(t, "b2", move)
}

func TestSetDepth(t *testing.T) {
	plugin := load(t, NewLoader(NewRuntime(), 0), "tic_tac_toe.js")
	plugin.SetDepth(1)

	for _, move := range []string{"a1", "a2", "b1", "b2"} {
		require.NoError(t, plugin.PlayMove(move))
	}

	move, err := plugin.ComputerMove()
	require.NoError(t, err)
	assert.Equal(t, "c1", move)
}

func TestComputerMoveFromPlugin(t *testing.T) {
	// Nim has its own computer_move which searches through djinn.best_move
	plugin := load(t, NewLoader(NewRuntime(), 0), "nim.js")

	move, err := plugin.ComputerMove()
	require.NoError(t, err)
	assert.Equal(t, "1", move)

	require.NoError(t, plugin.PlayMove(move))
	require.NoError(t, plugin.PlayMove("2"))

	move, err = plugin.ComputerMove()
	require.NoError(t, err)
	assert.Equal(t, "1", move)
}

func TestStateAlternativeMethods(t *testing.T) {
	plugin := load(t, NewLoader(NewRuntime(), 0), "nim.js")

	state, ok := plugin.State()
	require.True(t, ok)

	assert.Equal(t, minimax.Max, state.CurrentPlayer())
	assert.Equal(t, []string{"1", "2"}, state.Actions())

	next := state.Result("2")
	assert.Equal(t, minimax.Min, next.CurrentPlayer())
	assert.Equal(t, minimax.Max, state.CurrentPlayer(), "result must not mutate")

	value, err := Evaluate(state, minimax.Unlimited)
	require.NoError(t, err)
	assert.Equal(t, 1.0, value)

	value, err = Evaluate(next, minimax.Unlimited)
	require.NoError(t, err)
	assert.Equal(t, 1.0, value, "two stones left is a win for the side to move")
}

func TestCallErrors(t *testing.T) {
	plugin := load(t, NewLoader(NewRuntime(), 0), "faulty.js")

	width, height := plugin.DisplaySize()
	assert.Zero(t, width)
	assert.Zero(t, height)

	var callErr *CallError
	require.ErrorAs(t, plugin.Err(), &callErr)
	assert.Equal(t, "display_size", callErr.Method)

	// only the first failure is kept
	plugin.DisplaySize()
	_ = plugin.Name()
	assert.Same(t, callErr, plugin.Err())

	_, err := plugin.ComputerMove()
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "actions", callErr.Method)
	assert.Contains(t, err.Error(), "adapter call failed: actions, expected an array of strings")

	err = plugin.PlayMove("anything")
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "play_move", callErr.Method)
	assert.Contains(t, callErr.Reason, "no moves today")
}

func TestNewStateContract(t *testing.T) {
	rt := NewRuntime()
	plugin := load(t, NewLoader(rt, 0), "tic_tac_toe.js")

	state, err := rt.NewState(plugin.obj)
	require.NoError(t, err)
	assert.False(t, state.IsTerminal())

	rt.mu.Lock()
	obj := rt.vm.NewObject()
	rt.mu.Unlock()

	_, err = rt.NewState(obj)
	assert.ErrorIs(t, err, ErrContract)
}

// nativeState replays the moves on a native tic-tac-toe state.
func nativeState(t *testing.T, moves []string) tictactoe.State {
	t.Helper()

	state := tictactoe.NewState()
	for _, s := range moves {
		move, err := tictactoe.ParseMove(s)
		require.NoError(t, err)
		state = state.Result(move)
	}

	return state
}

func pluginState(start *State, moves []string) *State {
	state := start
	for _, move := range moves {
		state = state.Result(move)
	}

	return state
}

func TestMatchesNativeSearch(t *testing.T) {
	plugin := load(t, NewLoader(NewRuntime(), 0), "tic_tac_toe.js")
	start, ok := plugin.State()
	require.True(t, ok)

	check := func(moves []string, depth int) {
		t.Helper()

		native, err := minimax.BestMove[tictactoe.State, float64, tictactoe.Move](nativeState(t, moves), depth)
		require.NoError(t, err)

		foreign, err := BestMove(pluginState(start, moves), depth)
		require.NoError(t, err)

		assert.Equal(t, native.String(), foreign, "moves %v depth %d", moves, depth)
	}

	squares := []string{"a1", "a2", "a3", "b1", "b2", "b3", "c1", "c2", "c3"}
	for _, first := range squares {
		check([]string{first}, 2)

		for _, second := range squares {
			if second != first {
				check([]string{first, second}, 3)
			}
		}
	}

	check([]string{"a1", "b2"}, minimax.Unlimited)
	check([]string{"b2", "a1", "c3"}, minimax.Unlimited)
	check([]string{"a1", "a2", "b1", "b2"}, minimax.Unlimited)
}

func TestConcurrentSearches(t *testing.T) {
	plugin := load(t, NewLoader(NewRuntime(), 0), "tic_tac_toe.js")
	start, _ := plugin.State()
	state := pluginState(start, []string{"a1", "b2", "c3"})

	moves := make(chan string, 4)
	for i := 0; i < 4; i++ {
		go func() {
			move, err := BestMove(state, minimax.Unlimited)
			if err != nil {
				move = err.Error()
			}

			moves <- move
		}()
	}

	first := <-moves
	for i := 1; i < 4; i++ {
		assert.Equal(t, first, <-moves)
	}
}

func TestHexPlugin(t *testing.T) {
	plugin, err := NewLoader(NewRuntime(), 0).Load(filepath.Join("..", "..", "plugins", "hex.js"))
	require.NoError(t, err)

	assert.Equal(t, "Hex", plugin.Name())
	require.NoError(t, plugin.PlayMove("f6"))
	assert.False(t, plugin.IsValidMove("F6"))

	move, err := plugin.ComputerMove()
	require.NoError(t, err)
	assert.True(t, plugin.IsValidMove(move), move)
	require.NoError(t, plugin.PlayMove(move))

	assert.Len(t, plugin.MoveHistory(), 2)
	assert.Equal(t, games.Ongoing, plugin.WinState())
	assert.NoError(t, plugin.Err())
}
