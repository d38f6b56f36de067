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
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dop251/goja"
	"github.com/iancoleman/strcase"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/djinn/pkg/minimax"
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Loader loads plugin games into a shared runtime.
type Loader struct {
	rt *Runtime

	// Depth is the search depth used by plugins without a computer_move.
	Depth int
}

// NewLoader returns a loader for the given runtime. A non-positive depth
// searches plugin games to their end.
func NewLoader(rt *Runtime, depth int) *Loader {
	if depth <= 0 {
		depth = minimax.Unlimited
	}

	return &Loader{rt: rt, Depth: depth}
}

// EntryPoint returns the name of the class a plugin file has to declare,
// which is the file's name in PascalCase: tic_tac_toe.js declares TicTacToe.
func EntryPoint(path string) string {
	base := filepath.Base(path)
	return strcase.ToCamel(strings.TrimSuffix(base, filepath.Ext(base)))
}

// module wraps a plugin's source in its own function scope, which returns
// the plugin's entry point. The source starts on the wrapper's first line so
// that positions in exceptions match the plugin file.
func module(src, class string) string {
	return fmt.Sprintf("(function() {%s\nreturn typeof %[2]s === \"undefined\" ? undefined : %[2]s;\n})", src, class)
}

// Load loads the plugin at the given path.
func (loader *Loader) Load(path string) (*Plugin, error) {
	plugin, err := loader.load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	logrus.WithField("plugin", path).Debug("loaded plugin")
	return plugin, nil
}

func (loader *Loader) load(path string) (*Plugin, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	class := EntryPoint(path)
	if !identifier.MatchString(class) {
		return nil, fmt.Errorf("%w: %q is not a class name", ErrNoEntryPoint, class)
	}

	program, err := goja.Compile(filepath.Base(path), module(string(src), class), false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModule, err)
	}

	rt := loader.rt
	rt.mu.Lock()
	defer rt.mu.Unlock()

	wrapper, err := rt.vm.RunProgram(program)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModule, err)
	}

	run, ok := goja.AssertFunction(wrapper)
	if !ok {
		return nil, fmt.Errorf("%w: module did not compile to a function", ErrBadEntryPoint)
	}

	entry, err := run(goja.Undefined())
	switch {
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrModule, err)
	case goja.IsUndefined(entry):
		return nil, fmt.Errorf("%w: class %s not declared", ErrNoEntryPoint, class)
	}

	if _, ok := goja.AssertConstructor(entry); !ok {
		return nil, fmt.Errorf("%w: %s is not a constructor", ErrBadEntryPoint, class)
	}

	obj, err := rt.vm.New(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEntryPoint, err)
	}

	var missing []string
	for _, method := range presentation {
		if !rt.hasMethod(obj, method) {
			missing = append(missing, method)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrContract, strings.Join(missing, ", "))
	}

	plugin := &Plugin{
		rt:    rt,
		obj:   obj,
		path:  path,
		moves: rt.hasMethod(obj, "computer_move"),
		depth: loader.Depth,
	}

	if b, err := rt.bind(obj); err == nil {
		plugin.state = &State{binding: b, obj: obj}
	} else if !plugin.moves {
		return nil, fmt.Errorf("no computer_move: %w", err)
	}

	return plugin, nil
}

// LoadAll loads every plugin in paths, logging and skipping the ones which
// fail to load.
func (loader *Loader) LoadAll(paths []string) []*Plugin {
	var plugins []*Plugin
	for _, path := range paths {
		plugin, err := loader.Load(path)
		if err != nil {
			logrus.WithError(err).Error("skipping broken plugin")
			continue
		}

		plugins = append(plugins, plugin)
	}

	return plugins
}
