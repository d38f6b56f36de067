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

package manager

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const Permissions = 0755

// Directory is the default home of the plugin store.
var Directory = filepath.Join(xdg.DataHome, "djinn")

// Store manages the plugins installed inside a directory. Plugins installed
// from local files are copied into its plugin directory, and plugins from
// git repositories are used from their checkouts in its source directory.
type Store struct {
	Directory string

	// Progress receives the output of git operations. It may be nil.
	Progress io.Writer
}

// NewStore returns a Store rooted at the given directory.
func NewStore(dir string) *Store {
	return &Store{Directory: dir}
}

// DefaultStore returns a Store rooted at the default directory.
func DefaultStore() *Store {
	return NewStore(Directory)
}

// PluginDirectory is where plugins installed from local files are kept.
func (store *Store) PluginDirectory() string {
	return filepath.Join(store.Directory, "plugins")
}

// SourceDirectory is where the git repositories of plugins are cloned.
func (store *Store) SourceDirectory() string {
	return filepath.Join(store.Directory, "src")
}

// LockFile is the path to the file which records the installed plugins.
func (store *Store) LockFile() string {
	return filepath.Join(store.Directory, "plugins.yaml")
}

func (store *Store) init() error {
	for _, dir := range []string{store.Directory, store.PluginDirectory(), store.SourceDirectory()} {
		if err := tryMkdir(dir); err != nil {
			return err
		}
	}

	return nil
}

func tryMkdir(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, Permissions)
	}

	return nil
}
