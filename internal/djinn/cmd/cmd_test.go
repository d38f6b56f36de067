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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/djinn/pkg/games"
	"laptudirm.com/x/djinn/pkg/manager"
)

const hex = "../../../plugins/hex.js"

// cli runs djinn commands against a configuration and a plugin store of
// its own.
type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, dir: t.TempDir()}
}

func (cli *cli) config(yaml string) {
	require.NoError(cli.t, os.WriteFile(filepath.Join(cli.dir, "config.yaml"), []byte(yaml), 0644))
}

func (cli *cli) run(input string, args ...string) (string, error) {
	var out bytes.Buffer

	root := Root()
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args,
		"--config", filepath.Join(cli.dir, "config.yaml"),
		"--data", filepath.Join(cli.dir, "data"),
	))

	err := root.Execute()
	return out.String(), err
}

func fields(output string) [][]string {
	var lines [][]string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		lines = append(lines, strings.Fields(line))
	}

	return lines
}

func TestGames(t *testing.T) {
	out, err := newCLI(t).run("", "games")
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"#1", "ataxx", "Ataxx"},
		{"#2", "chess", "Chess"},
		{"#0", "tictactoe", "Tic", "Tac", "Toe"},
	}, fields(out))
}

func TestInstalledPluginsAreGames(t *testing.T) {
	cli := newCLI(t)

	out, err := cli.run("", "plugin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No Plugins Installed")

	out, err = cli.run("", "plugin", "install", hex)
	require.NoError(t, err)
	assert.Contains(t, out, "hex")

	out, err = cli.run("", "plugin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hex")

	out, err = cli.run("", "games")
	require.NoError(t, err)
	assert.Contains(t, fields(out), []string{"#3", "hex", "Hex"})

	_, err = cli.run("", "plugin", "remove", "hex")
	require.NoError(t, err)

	out, err = cli.run("", "games")
	require.NoError(t, err)
	assert.Len(t, fields(out), 3)

	_, err = cli.run("", "plugin", "remove", "hex")
	assert.ErrorIs(t, err, manager.ErrNotInstalled)
}

func TestConfiguredPlugins(t *testing.T) {
	cli := newCLI(t)

	path, err := filepath.Abs(hex)
	require.NoError(t, err)
	cli.config("plugins:\n  - " + path + "\n")

	out, err := cli.run("", "games")
	require.NoError(t, err)
	assert.Contains(t, fields(out), []string{"#3", "hex", "Hex"})
}

func TestMove(t *testing.T) {
	tests := []struct {
		args []string
		move string
	}{
		{[]string{"tictactoe", "a1"}, "b2"},
		{[]string{"#0", "a1", "a2", "b1", "b2"}, "c1"},
		{[]string{"chess", "--depth", "1", "f2f3", "e7e5", "g2g4"}, "d8h4"},
		{[]string{"chess", "--depth", "1", "--fen", "3qk3/8/8/8/8/8/8/3RK3 w - - 0 1"}, "d1d8"},
		{[]string{"ataxx", "--depth", "1", "--fen", "7/7/7/7/1x5/7/o6 x 0 1"}, "a2"},
	}

	for _, test := range tests {
		t.Run(strings.Join(test.args, " "), func(t *testing.T) {
			out, err := newCLI(t).run("", append([]string{"move"}, test.args...)...)
			require.NoError(t, err)
			assert.Equal(t, test.move+"\n", out)
		})
	}
}

func TestMoveErrors(t *testing.T) {
	cli := newCLI(t)

	_, err := cli.run("", "move", "go")
	assert.ErrorIs(t, err, games.ErrNotFound)

	_, err = cli.run("", "move", "tictactoe", "a1", "a1")
	assert.ErrorIs(t, err, games.ErrIllegalMove)

	_, err = cli.run("", "move", "tictactoe", "--fen", "x")
	assert.Error(t, err)

	_, err = cli.run("", "move", "ataxx", "--fen", "not a fen")
	assert.Error(t, err)

	_, err = cli.run("", "move", "tictactoe", "a1", "b1", "a2", "b2", "a3")
	assert.ErrorIs(t, err, games.ErrGameOver)
}

func TestConfiguredDepth(t *testing.T) {
	cli := newCLI(t)
	cli.config(heredoc.Doc(`
		depth:
		  chess: 1
	`))

	out, err := cli.run("", "move", "chess", "f2f3", "e7e5", "g2g4")
	require.NoError(t, err)
	assert.Equal(t, "d8h4\n", out)

	cli.config("depth: [1]\n")
	_, err = cli.run("", "games")
	assert.Error(t, err)
}

func TestPlay(t *testing.T) {
	out, err := newCLI(t).run("a1\n:history\nz9\n:bad\n:quit\n", "play", "tictactoe")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Tic Tac Toe\n"))
	assert.Contains(t, out, "computer plays b2")
	assert.Contains(t, out, "a1 b2\n")
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "unknown command :bad")
}

func TestPlayManual(t *testing.T) {
	input := "a1\n:history\n:hint\n:go\n:history\n:reset\n:history\n"
	out, err := newCLI(t).run(input, "play", "tictactoe", "--manual")
	require.NoError(t, err)

	assert.Contains(t, out, "hint: b2\n")
	assert.Contains(t, out, "computer plays b2")
	assert.Contains(t, out, "a1 b2\n")
}

func TestPlayComputerFirst(t *testing.T) {
	out, err := newCLI(t).run("", "play", "tictactoe", "--computer-first")
	require.NoError(t, err)
	assert.Contains(t, out, "computer plays a1")
}

func TestPlayGameOver(t *testing.T) {
	input := "a1\nb1\na2\nb2\na3\n:go\n"
	out, err := newCLI(t).run(input, "play", "tictactoe", "--manual")
	require.NoError(t, err)

	assert.Contains(t, out, "game over: decisive result")
	assert.Contains(t, out, "error: "+games.ErrGameOver.Error())
}

func TestDuel(t *testing.T) {
	args := []string{"duel", "tictactoe", "--depth-1", "0", "--depth-2", "0", "--pairs", "2", "--opening-plies", "0", "--seed", "1"}
	out, err := newCLI(t).run("", args...)
	require.NoError(t, err)

	assert.Contains(t, out, "tictactoe full depth")
	assert.Contains(t, out, "Games      4  W     0  L     0  D     4")

	_, err = newCLI(t).run("", "duel", "hex")
	assert.Error(t, err)
}

func TestDuelBook(t *testing.T) {
	book := filepath.Join(t.TempDir(), "openings.txt")
	require.NoError(t, os.WriteFile(book, []byte("# x wins\na1 a2\n"), 0644))

	args := []string{"duel", "tictactoe", "--depth-1", "0", "--depth-2", "0", "--pairs", "1", "--opening-plies", "0", "--book", book}
	out, err := newCLI(t).run("", args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Games      2  W     1  L     1  D     0")

	_, err = newCLI(t).run("", append(args, "--fen", "7/7/7/7/7/7/7 x 0 1")...)
	assert.Error(t, err)

	_, err = newCLI(t).run("", append(args, "--book-order", "shuffled")...)
	assert.Error(t, err)
}
