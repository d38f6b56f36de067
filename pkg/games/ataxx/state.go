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

package ataxx

import (
	"math"

	"laptudirm.com/x/djinn/pkg/minimax"
)

// State is an immutable ataxx position which can be searched. Crosses are
// the maximizing player.
type State struct {
	pos     Position
	history []Move
}

var _ minimax.Position[State, float64, Move] = State{}

// NewState returns a state for the given position.
func NewState(pos Position) State {
	return State{pos: pos}
}

// StartState returns the standard starting position.
func StartState() State {
	pos, _ := ParseFEN(StartFEN)
	return NewState(pos)
}

func (state State) Position() Position { return state.pos }
func (state State) History() []Move    { return state.history }

func (state State) IsTerminal() bool {
	_, over := state.pos.Outcome()
	return over
}

// Evaluation is the difference in stone count on unfinished games, and
// infinite on decided ones.
func (state State) Evaluation() float64 {
	outcome, over := state.pos.Outcome()
	switch {
	case !over:
		return float64(state.pos.pieces[Cross].Count() - state.pos.pieces[Nought].Count())
	case outcome == CrossWins:
		return math.Inf(+1)
	case outcome == NoughtWins:
		return math.Inf(-1)
	default:
		return 0
	}
}

func (state State) CurrentPlayer() minimax.Player {
	if state.pos.SideToMove == Cross {
		return minimax.Max
	}

	return minimax.Min
}

func (state State) Actions() []Move {
	return state.pos.Moves()
}

func (state State) Result(move Move) State {
	if !state.pos.IsLegal(move) {
		panic(&minimax.ContractError{Position: state.pos.FEN(), Reason: "illegal move " + move.String()})
	}

	next := State{
		pos:     state.pos,
		history: append(state.history[:len(state.history):len(state.history)], move),
	}

	next.pos.MakeMove(move)
	return next
}
