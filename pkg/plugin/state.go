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
	"strings"

	"github.com/dop251/goja"

	"laptudirm.com/x/djinn/pkg/minimax"
)

// binding records which of the alternative method names a plugin's state
// objects implement.
type binding struct {
	rt *Runtime

	evaluation string // heuristic_value or evaluation
	player     string // is_maximising_player or current_player
}

// bind checks that obj implements the state contract. The lock must be
// held.
func (rt *Runtime) bind(obj *goja.Object) (*binding, error) {
	b := &binding{rt: rt}

	var missing []string
	for _, method := range []string{"is_terminal", "actions", "result"} {
		if !rt.hasMethod(obj, method) {
			missing = append(missing, method)
		}
	}

	pick := func(field *string, names ...string) {
		for _, name := range names {
			if rt.hasMethod(obj, name) {
				*field = name
				return
			}
		}

		missing = append(missing, strings.Join(names, " or "))
	}

	pick(&b.evaluation, "heuristic_value", "evaluation")
	pick(&b.player, "is_maximising_player", "current_player")

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrContract, strings.Join(missing, ", "))
	}

	return b, nil
}

// State is a game position implemented by a plugin object. All the
// successors of a State share its plugin's binding and runtime.
//
// The methods of State panic with a *CallError when the plugin fails, so
// searches should be run through BestMove and Evaluate, which turn the
// panic back into an error.
type State struct {
	binding *binding
	obj     *goja.Object

	// held is set on states searched from inside the interpreter, whose
	// calls must not take the lock again.
	held bool
}

var _ minimax.Position[*State, float64, string] = (*State)(nil)

// NewState wraps a plugin object as a searchable position.
func (rt *Runtime) NewState(obj *goja.Object) (*State, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	b, err := rt.bind(obj)
	if err != nil {
		return nil, err
	}

	return &State{binding: b, obj: obj}, nil
}

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}

	return value
}

func (state *State) IsTerminal() bool {
	return must(invoke(state.binding.rt, state.held, asBool, state.obj, "is_terminal"))
}

func (state *State) Evaluation() float64 {
	return must(invoke(state.binding.rt, state.held, asNumber, state.obj, state.binding.evaluation))
}

func (state *State) CurrentPlayer() minimax.Player {
	return must(invoke(state.binding.rt, state.held, asPlayer, state.obj, state.binding.player))
}

func (state *State) Actions() []string {
	return must(invoke(state.binding.rt, state.held, asStrings, state.obj, "actions"))
}

func (state *State) Result(action string) *State {
	return &State{
		binding: state.binding,
		obj:     must(invoke(state.binding.rt, state.held, asObject, state.obj, "result", action)),
		held:    state.held,
	}
}

// recoverCall turns a plugin failure unwinding a search back into an error.
func recoverCall(err *error) {
	switch r := recover().(type) {
	case nil:
	case *CallError:
		*err = r
	case *minimax.ContractError:
		*err = fmt.Errorf("plugin: %s", r.Reason)
	default:
		panic(r)
	}
}

// BestMove returns the best action in the given plugin position, searching
// each successor to the given depth. Plugin failures during the search are
// returned as a *CallError.
func BestMove(state *State, depth int) (action string, err error) {
	defer recoverCall(&err)
	return minimax.BestMove[*State, float64, string](state, depth)
}

// Evaluate returns the minimax value of the given plugin position relative
// to its side to move.
func Evaluate(state *State, depth int) (value float64, err error) {
	defer recoverCall(&err)
	return minimax.Minimax[*State, float64, string](state, depth), nil
}
