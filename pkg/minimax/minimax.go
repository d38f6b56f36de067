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

// Package minimax implements a generic negamax search with alpha-beta
// pruning over any two-player zero-sum game which implements Position.
//
// The search never mutates a position: every move produces a new position
// through Result, so it is safe to search independent positions from
// multiple goroutines at the same time.
package minimax

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Position is the set of operations a game position has to provide to be
// searched. P is the position type itself, V the type of its evaluation,
// and A the type of the actions which transition between positions.
type Position[P any, V constraints.Float, A any] interface {
	// IsTerminal reports whether the game is over in the position.
	IsTerminal() bool

	// Evaluation returns the static evaluation of the position. It is
	// absolute: larger is better for Max irrespective of the side to move.
	Evaluation() V

	// CurrentPlayer returns the player who is to move in the position.
	CurrentPlayer() Player

	// Actions returns the legal actions in the position in a deterministic
	// order. It must be non-empty for every non-terminal position.
	Actions() []A

	// Result returns the position reached by playing the given legal
	// action. The receiver is left unchanged.
	Result(action A) P
}

// Unlimited is a depth which is never reached by any finite game.
const Unlimited = math.MaxInt32

// ErrNoActions is returned by BestMove if the position has no legal actions.
var ErrNoActions = errors.New("minimax: no actions available")

// ContractError is the panic value used when a Position breaks its contract
// in a way which leaves the search with no sensible value to return.
type ContractError struct {
	Position any
	Reason   string
}

func (err *ContractError) Error() string {
	return fmt.Sprintf("minimax: contract violation: %s (position %v)", err.Reason, err.Position)
}

// BestMove searches every action of the given position and returns the one
// which is best for the player to move. Each action's successor is searched
// to the given depth. Ties are resolved in favor of the action which comes
// first in the order returned by Actions.
func BestMove[P Position[P, V, A], V constraints.Float, A any](position P, depth int) (A, error) {
	// Max prefers larger absolute scores and Min prefers smaller ones.
	better := func(a, b V) bool { return a > b }
	if position.CurrentPlayer() == Min {
		better = func(a, b V) bool { return a < b }
	}

	var best A
	var bestKey V
	found := false

	for _, action := range position.Actions() {
		child := position.Result(action)

		// Minimax returns the score from the point of view of the child's
		// side to move, so bring it back into the absolute frame.
		key := Minimax(child, depth) * V(child.CurrentPlayer().sign())

		if !found || better(key, bestKey) {
			best, bestKey, found = action, key, true
		}
	}

	if !found {
		return best, ErrNoActions
	}

	return best, nil
}

// Minimax returns the value of the given position searched to the given
// depth, relative to the position's side to move.
func Minimax[P Position[P, V, A], V constraints.Float, A any](position P, depth int) V {
	return AlphaBeta(position, V(math.Inf(-1)), V(math.Inf(+1)), depth)
}

// AlphaBeta is a fail-soft negamax search of the given position inside the
// (alpha, beta) window. The returned value is relative to the position's
// side to move, so larger values are better for whoever is to move.
func AlphaBeta[P Position[P, V, A], V constraints.Float, A any](position P, alpha, beta V, depth int) V {
	if depth <= 0 || position.IsTerminal() {
		return position.Evaluation() * V(position.CurrentPlayer().sign())
	}

	actions := position.Actions()
	if len(actions) == 0 {
		panic(&ContractError{
			Position: position,
			Reason:   "no actions in a non-terminal position",
		})
	}

	best := V(math.Inf(-1))
	for _, action := range actions {
		value := -AlphaBeta(position.Result(action), -beta, -alpha, depth-1)

		best = max(best, value)
		alpha = max(alpha, value)

		// beta cutoff: the opponent will never allow this line
		if alpha >= beta {
			break
		}
	}

	return best
}
