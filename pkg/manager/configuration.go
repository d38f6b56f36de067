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
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"laptudirm.com/x/djinn/internal/util"
)

// Info is the lockfile record of an installed plugin.
type Info struct {
	Source  string `yaml:"source"`
	Version string `yaml:"version,omitempty"`
	Path    string `yaml:"path"`
}

// Lockfile maps the names of installed plugins to their records.
type Lockfile map[string]Info

// Entry is an installed plugin as listed by the Store.
type Entry struct {
	Name string
	Info
}

// Lockfile reads the store's lockfile. A store without one has no plugins.
func (store *Store) Lockfile() (Lockfile, error) {
	list := make(Lockfile)

	data, err := os.ReadFile(store.LockFile())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return list, nil
	case err != nil:
		return nil, err
	}

	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("lockfile %s: %w", store.LockFile(), err)
	}

	if list == nil {
		list = make(Lockfile)
	}

	return list, nil
}

func (store *Store) dump(list Lockfile) error {
	data, err := yaml.Marshal(list)
	if err != nil {
		return err
	}

	return os.WriteFile(store.LockFile(), data, 0644)
}

// List returns the installed plugins ordered by their names.
func (store *Store) List() ([]Entry, error) {
	list, err := store.Lockfile()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(list))
	for name, info := range list {
		entries = append(entries, Entry{Name: name, Info: info})
	}

	sort.Slice(entries, func(i, j int) bool {
		return util.AlphanumCompare(entries[i].Name, entries[j].Name)
	})

	return entries, nil
}

// Paths returns the source files of the installed plugins, ready to be
// handed to a plugin loader.
func (store *Store) Paths() ([]string, error) {
	entries, err := store.List()
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = entry.Path
	}

	return paths, nil
}
