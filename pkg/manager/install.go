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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Install installs every plugin found at the given source identifier, see
// ParseSource for the formats, and returns the installed entries. Installing
// a plugin with the name of an already installed one replaces it.
func (store *Store) Install(identifier string) ([]Entry, error) {
	source, err := ParseSource(identifier)
	if err != nil {
		return nil, err
	}

	if err := store.init(); err != nil {
		return nil, err
	}

	var files []string
	if source.IsLocal() {
		files, err = store.copyLocal(source)
	} else {
		if _, err = store.fetch(source); err == nil {
			files, err = scripts(store.repository(source))
		}
	}

	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPlugins, source)
	}

	list, err := store.Lockfile()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(files))
	for i, file := range files {
		entries[i] = Entry{
			Name: strings.ToLower(strings.TrimSuffix(filepath.Base(file), ".js")),
			Info: Info{
				Source:  source.String(),
				Version: source.Ref,
				Path:    file,
			},
		}

		if old, found := list[entries[i].Name]; found && old.Source != entries[i].Source {
			logrus.Warnf("Replacing plugin %s from %s", entries[i].Name, old.Source)
		}

		list[entries[i].Name] = entries[i].Info
		logrus.WithField("path", file).Infof("Installed plugin %s", entries[i].Name)
	}

	return entries, store.dump(list)
}

// Remove uninstalls the plugin with the given name. Copied files are deleted,
// and so is a repository checkout once none of its plugins are installed.
func (store *Store) Remove(name string) error {
	list, err := store.Lockfile()
	if err != nil {
		return err
	}

	name = strings.ToLower(name)
	info, found := list[name]
	if !found {
		return fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}

	delete(list, name)
	if err := store.dump(list); err != nil {
		return err
	}

	dir := filepath.Dir(info.Path)
	switch {
	case dir == store.PluginDirectory():
		return os.Remove(info.Path)

	case filepath.Dir(dir) == store.SourceDirectory():
		for _, other := range list {
			if filepath.Dir(other.Path) == dir {
				return nil
			}
		}

		logrus.WithField("path", dir).Debug("Removing unused repository")
		return os.RemoveAll(dir)
	}

	return nil
}

// copyLocal copies a local plugin file, or the top-level plugin files of a
// local directory, into the plugin directory.
func (store *Store) copyLocal(source *Source) ([]string, error) {
	files := []string{source.Path}
	if info, err := os.Stat(source.Path); err != nil {
		return nil, err
	} else if info.IsDir() {
		if files, err = scripts(source.Path); err != nil {
			return nil, err
		}
	}

	copied := make([]string, len(files))
	for i, file := range files {
		copied[i] = filepath.Join(store.PluginDirectory(), filepath.Base(file))
		if err := copyFile(file, copied[i]); err != nil {
			return nil, err
		}
	}

	return copied, nil
}

// scripts lists the top-level .js files of the given directory.
func scripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && filepath.Ext(entry.Name()) == ".js" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
