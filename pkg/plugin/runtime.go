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
	"strings"
	"sync"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/djinn/pkg/minimax"
)

// Runtime is a JavaScript interpreter shared by all the plugins loaded into
// it. The interpreter can only run one call at a time, so every call into
// it, and the conversion of the call's result, happens under a single lock.
type Runtime struct {
	mu sync.Mutex
	vm *goja.Runtime
}

// NewRuntime creates a new interpreter with the globals plugins may use:
// console.log, which logs at debug level, and djinn.best_move and
// djinn.evaluate, which search plugin positions from inside a plugin.
func NewRuntime() *Runtime {
	rt := &Runtime{vm: goja.New()}

	console := rt.vm.NewObject()
	_ = console.Set("log", rt.log)
	_ = rt.vm.Set("console", console)

	djinn := rt.vm.NewObject()
	_ = djinn.Set("best_move", rt.bestMove)
	_ = djinn.Set("evaluate", rt.evaluate)
	_ = rt.vm.Set("djinn", djinn)

	return rt
}

func (rt *Runtime) log(call goja.FunctionCall) goja.Value {
	args := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		args[i] = arg.String()
	}

	logrus.WithField("source", "plugin").Debug(strings.Join(args, " "))
	return goja.Undefined()
}

// call calls the named method of obj. The lock must be held.
func (rt *Runtime) call(obj *goja.Object, method string, args ...any) (goja.Value, error) {
	logrus.WithField("method", method).Trace("calling plugin method")

	var fn goja.Callable
	var ok bool
	if ex := rt.vm.Try(func() { fn, ok = goja.AssertFunction(obj.Get(method)) }); ex != nil {
		return nil, &CallError{Method: method, Reason: ex.Error()}
	}

	if !ok {
		return nil, &CallError{Method: method, Reason: "no such method"}
	}

	values := make([]goja.Value, len(args))
	for i, arg := range args {
		values[i] = rt.vm.ToValue(arg)
	}

	result, err := fn(obj, values...)
	if err != nil {
		return nil, &CallError{Method: method, Reason: err.Error()}
	}

	return result, nil
}

// hasMethod reports whether obj has a method with the given name. The lock
// must be held.
func (rt *Runtime) hasMethod(obj *goja.Object, method string) bool {
	var ok bool
	rt.vm.Try(func() { _, ok = goja.AssertFunction(obj.Get(method)) })
	return ok
}

// invoke calls the named method of obj and converts its result. The lock
// is taken for the duration of the call unless held is set, which means
// that the caller is already running inside the interpreter.
func invoke[T any](rt *Runtime, held bool, convert func(goja.Value) (T, error), obj *goja.Object, method string, args ...any) (T, error) {
	if !held {
		rt.mu.Lock()
		defer rt.mu.Unlock()
	}

	var zero T
	result, err := rt.call(obj, method, args...)
	if err != nil {
		return zero, err
	}

	value, err := convert(result)
	if err != nil {
		return zero, &CallError{Method: method, Reason: err.Error()}
	}

	return value, nil
}

// searchArgs unpacks the (state, depth) arguments of the search globals
// into a State which is evaluated with the lock already held.
func (rt *Runtime) searchArgs(call goja.FunctionCall) (*State, int) {
	obj, ok := call.Argument(0).(*goja.Object)
	if !ok {
		panic(rt.vm.NewTypeError("djinn: expected a state object, got %s", describe(call.Argument(0))))
	}

	b, err := rt.bind(obj)
	if err != nil {
		panic(rt.vm.NewGoError(err))
	}

	depth := minimax.Unlimited
	if arg := call.Argument(1); !goja.IsUndefined(arg) {
		depth = int(arg.ToInteger())
	}

	return &State{binding: b, obj: obj, held: true}, depth
}

func (rt *Runtime) bestMove(call goja.FunctionCall) goja.Value {
	action, err := BestMove(rt.searchArgs(call))
	if err != nil {
		panic(rt.vm.NewGoError(err))
	}

	return rt.vm.ToValue(action)
}

func (rt *Runtime) evaluate(call goja.FunctionCall) goja.Value {
	value, err := Evaluate(rt.searchArgs(call))
	if err != nil {
		panic(rt.vm.NewGoError(err))
	}

	return rt.vm.ToValue(value)
}
