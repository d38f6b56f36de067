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

// Package chess implements chess positions that can be searched by the
// minimax engine, backed by mess boards.
package chess

import (
	"math"
	"strings"
	"unicode"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/board/piece"
	"laptudirm.com/x/mess/pkg/formats/fen"

	"laptudirm.com/x/djinn/pkg/minimax"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var values = map[rune]float64{
	'p': 1, 'n': 3, 'b': 3, 'r': 5, 'q': 9,
}

// Material returns the material balance of a FEN placement field in pawns,
// positive when white is ahead.
func Material(placement string) float64 {
	var balance float64
	for _, c := range placement {
		value := values[unicode.ToLower(c)]
		if unicode.IsUpper(c) {
			balance += value
		} else {
			balance -= value
		}
	}

	return balance
}

// State is an immutable chess position. White is the maximizing player.
//
// A state only knows its own position, so repetitions are not detected
// inside a search; Game tracks them over the moves actually played.
type State struct {
	board *board.Board
	moves []move.Move
	fen   [6]string
}

var _ minimax.Position[State, float64, move.Move] = State{}

// NewState parses the given FEN into a state.
func NewState(fenstr string) State {
	return newState(board.New(board.FEN(fen.FromString(fenstr))))
}

func newState(b *board.Board) State {
	return State{
		board: b,
		moves: b.GenerateMoves(false),
		fen:   [6]string(b.FEN()),
	}
}

// FEN returns the state's position as a FEN string.
func (state State) FEN() string {
	return strings.Join(state.fen[:], " ")
}

// Checkmated reports whether the side to move has been checkmated.
func (state State) Checkmated() bool {
	return len(state.moves) == 0 && state.board.IsInCheck(state.board.SideToMove)
}

// Drawn reports whether the position is a draw by stalemate, the 50-move
// rule or insufficient material.
func (state State) Drawn() bool {
	switch {
	case len(state.moves) == 0:
		return !state.Checkmated()
	case state.board.DrawClock >= 100:
		return true
	default:
		return state.board.IsInsufficientMaterial()
	}
}

func (state State) IsTerminal() bool {
	return len(state.moves) == 0 || state.Drawn()
}

func (state State) Evaluation() float64 {
	switch {
	case state.Checkmated():
		if state.board.SideToMove == piece.White {
			return math.Inf(-1)
		}

		return math.Inf(+1)
	case state.Drawn():
		return 0
	default:
		return Material(state.fen[0])
	}
}

func (state State) CurrentPlayer() minimax.Player {
	if state.board.SideToMove == piece.White {
		return minimax.Max
	}

	return minimax.Min
}

func (state State) Actions() []move.Move {
	if state.IsTerminal() {
		return nil
	}

	return state.moves
}

// Find returns the legal move with the given UCI notation.
func (state State) Find(movstr string) (move.Move, bool) {
	for _, mov := range state.moves {
		if strings.EqualFold(mov.String(), movstr) {
			return mov, true
		}
	}

	var none move.Move
	return none, false
}

func (state State) Result(mov move.Move) State {
	if _, legal := state.Find(mov.String()); !legal || state.IsTerminal() {
		panic(&minimax.ContractError{Position: state.FEN(), Reason: "illegal move " + mov.String()})
	}

	next := board.New(board.FEN(fen.FromString(state.FEN())))
	next.MakeMove(next.NewMoveFromString(mov.String()))
	return newState(next)
}
