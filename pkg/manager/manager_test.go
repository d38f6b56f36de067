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

package manager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/djinn/pkg/manager"
)

const script = "class Plugin {}\n"

func write(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))
	return path
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		identifier string
		name       string
		url        string
		ref        string
	}{
		{"raklaptudirm/djinn-hex", "djinn-hex", "https://github.com/raklaptudirm/djinn-hex", ""},
		{"raklaptudirm/djinn-hex@v1.0.0", "djinn-hex", "https://github.com/raklaptudirm/djinn-hex", "v1.0.0"},
		{"https://gitlab.com/someone/Games.git", "games", "https://gitlab.com/someone/Games.git", ""},
		{"https://gitlab.com/someone/games/@main", "games", "https://gitlab.com/someone/games", "main"},
		{"git@github.com:someone/games.git", "games", "git@github.com:someone/games.git", ""},
	}

	for _, test := range tests {
		t.Run(test.identifier, func(t *testing.T) {
			source, err := manager.ParseSource(test.identifier)
			require.NoError(t, err)
			assert.False(t, source.IsLocal())
			assert.Equal(t, test.name, source.Name)
			assert.Equal(t, test.url, source.URL)
			assert.Equal(t, test.ref, source.Ref)
		})
	}
}

func TestParseSourceLocal(t *testing.T) {
	dir := t.TempDir()
	file := write(t, filepath.Join(dir, "hex.js"))

	source, err := manager.ParseSource(file)
	require.NoError(t, err)
	assert.True(t, source.IsLocal())
	assert.Equal(t, "hex", source.Name)
	assert.Equal(t, file, source.Path)
	assert.Equal(t, file, source.String())

	source, err = manager.ParseSource(dir)
	require.NoError(t, err)
	assert.True(t, source.IsLocal())

	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, nil, 0644))

	for _, identifier := range []string{other, filepath.Join(dir, "missing.js"), "hex"} {
		_, err := manager.ParseSource(identifier)
		assert.ErrorIs(t, err, manager.ErrBadSource, identifier)
	}
}

func TestInstallFile(t *testing.T) {
	store := manager.NewStore(t.TempDir())
	file := write(t, filepath.Join(t.TempDir(), "TicTacToe.js"))

	entries, err := store.Install(file)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	installed := filepath.Join(store.PluginDirectory(), "TicTacToe.js")
	assert.Equal(t, "tictactoe", entries[0].Name)
	assert.Equal(t, installed, entries[0].Path)
	assert.Equal(t, file, entries[0].Source)
	assert.FileExists(t, installed)

	list, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, entries, list)

	require.NoError(t, store.Remove("TICTACTOE"))
	assert.NoFileExists(t, installed)

	list, err = store.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, store.Remove("tictactoe"), manager.ErrNotInstalled)
}

func TestInstallDirectory(t *testing.T) {
	store := manager.NewStore(t.TempDir())

	dir := t.TempDir()
	write(t, filepath.Join(dir, "hex.js"))
	write(t, filepath.Join(dir, "nim10.js"))
	write(t, filepath.Join(dir, "nim2.js"))
	write(t, filepath.Join(dir, "nested", "ignored.js"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0644))

	_, err := store.Install(dir)
	require.NoError(t, err)

	list, err := store.List()
	require.NoError(t, err)

	var names []string
	for _, entry := range list {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"hex", "nim2", "nim10"}, names)

	paths, err := store.Paths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.PluginDirectory(), "nim10.js"), paths[2])

	_, err = store.Install(t.TempDir())
	assert.ErrorIs(t, err, manager.ErrNoPlugins)
}

func TestRemoveRepository(t *testing.T) {
	store := manager.NewStore(t.TempDir())

	repo := filepath.Join(store.SourceDirectory(), "games")
	first := write(t, filepath.Join(repo, "first.js"))
	second := write(t, filepath.Join(repo, "second.js"))

	lockfile := "" +
		"first:\n" +
		"    source: https://github.com/someone/games\n" +
		"    path: " + first + "\n" +
		"second:\n" +
		"    source: https://github.com/someone/games\n" +
		"    path: " + second + "\n"
	require.NoError(t, os.WriteFile(store.LockFile(), []byte(lockfile), 0644))

	list, err := store.Lockfile()
	require.NoError(t, err)
	assert.Equal(t, manager.Lockfile{
		"first":  {Source: "https://github.com/someone/games", Path: first},
		"second": {Source: "https://github.com/someone/games", Path: second},
	}, list)

	require.NoError(t, store.Remove("first"))
	assert.DirExists(t, repo)

	require.NoError(t, store.Remove("second"))
	assert.NoDirExists(t, repo)
}

func TestEmptyStore(t *testing.T) {
	store := manager.NewStore(filepath.Join(t.TempDir(), "missing"))

	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, os.MkdirAll(store.Directory, 0755))
	require.NoError(t, os.WriteFile(store.LockFile(), []byte("[not, a, map]"), 0644))

	_, err = store.Lockfile()
	assert.Error(t, err)
}
