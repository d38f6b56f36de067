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
	"fmt"
)

var (
	// ErrModule means that a plugin's source failed to compile or threw
	// while it was being evaluated.
	ErrModule = errors.New("module failed to load")

	// ErrNoEntryPoint means that a plugin's source does not declare a class
	// named after the plugin's file.
	ErrNoEntryPoint = errors.New("no entry point")

	// ErrBadEntryPoint means that the entry point is not a constructor or
	// that constructing it failed.
	ErrBadEntryPoint = errors.New("bad entry point")

	// ErrContract means that an object lacks methods the adapter needs.
	ErrContract = errors.New("method contract not satisfied")
)

// CallError is a failed call into a plugin: the method is missing, it threw
// an exception, or it returned a value of the wrong shape.
type CallError struct {
	Method string
	Reason string
}

func (err *CallError) Error() string {
	return fmt.Sprintf("adapter call failed: %s, %s", err.Method, err.Reason)
}

// LoadError is returned by Loader.Load when a plugin could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("load plugin %s: %v", err.Path, err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}
