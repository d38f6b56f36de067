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
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrBadSource    = errors.New("bad plugin source")
	ErrNoPlugins    = errors.New("no plugins found")
	ErrNotInstalled = errors.New("plugin not installed")
)

// Source is a place plugins can be installed from.
type Source struct {
	Name string // name of the repository, or the stem of a local file
	URL  string // remote repository url, empty for local sources
	Path string // local file or directory, empty for remote sources
	Ref  string // revision to check out, empty for the default branch
}

// IsLocal reports whether the source is a file or directory on disk.
func (source *Source) IsLocal() bool {
	return source.URL == ""
}

func (source *Source) String() string {
	var s string
	if source.IsLocal() {
		s = source.Path
	} else {
		s = source.URL
	}

	if source.Ref != "" {
		s += "@" + source.Ref
	}

	return s
}

// ParseSource parses a plugin source identifier. It has one of the following
// formats:
//
// 1. <path>                       - Local .js file or directory
// 2. <owner>/<repository>[@<ref>] - GitHub repository
// 3. <full-git-url>[@<ref>]       - Git repository
//
// Paths which exist on disk always take precedence over (2).
func ParseSource(identifier string) (*Source, error) {
	if info, err := os.Stat(identifier); err == nil {
		path, err := filepath.Abs(identifier)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() && filepath.Ext(path) != ".js" {
			return nil, fmt.Errorf("%w: %s is not a .js file", ErrBadSource, identifier)
		}

		return &Source{
			Name: strings.TrimSuffix(filepath.Base(path), ".js"),
			Path: path,
		}, nil
	}

	if strings.HasSuffix(identifier, ".js") {
		return nil, fmt.Errorf("%w: %s does not exist", ErrBadSource, identifier)
	}

	var source Source

	// A revision follows the last '@' after the last '/', which keeps scp-like
	// urls such as git@github.com:owner/repo intact.
	if at := strings.LastIndex(identifier, "@"); at > strings.LastIndex(identifier, "/") {
		identifier, source.Ref = identifier[:at], identifier[at+1:]
	}
	identifier = strings.TrimSuffix(identifier, "/")

	// Urls carry a scheme or a host separated by ':'. Otherwise (2) is told
	// apart by having exactly one '/'.
	switch {
	case strings.Contains(identifier, ":"):
		source.URL = identifier
	case strings.Count(identifier, "/") == 1:
		source.URL = "https://github.com/" + identifier
	default:
		return nil, fmt.Errorf("%w: %q is neither a path nor a repository", ErrBadSource, identifier)
	}

	source.Name = strings.ToLower(strings.TrimSuffix(filepath.Base(identifier), ".git"))
	if source.Name == "" || source.Name == "." {
		return nil, fmt.Errorf("%w: %q", ErrBadSource, identifier)
	}

	logrus.WithFields(logrus.Fields{
		"name": source.Name,
		"url":  source.URL,
		"ref":  source.Ref,
	}).Debug("Parsed plugin source")

	return &source, nil
}
