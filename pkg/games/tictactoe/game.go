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

package tictactoe

import (
	"fmt"
	"strings"

	"laptudirm.com/x/djinn/pkg/games"
	"laptudirm.com/x/djinn/pkg/minimax"
)

const thumbnail = ` X │ O │
───┼───┼───
   │ X │
───┼───┼───
 O │   │ X `

// Game is a game of tic-tac-toe against the computer.
type Game struct {
	state State
	depth int
}

var _ games.Game = (*Game)(nil)

// NewGame returns a new game whose computer player searches to the given
// depth. A non-positive depth searches the whole game tree.
func NewGame(depth int) *Game {
	if depth <= 0 {
		depth = minimax.Unlimited
	}

	return &Game{state: NewState(), depth: depth}
}

// State returns the current position of the game.
func (game *Game) State() State {
	return game.state
}

func (game *Game) Name() string      { return "Tic Tac Toe" }
func (game *Game) Thumbnail() string { return thumbnail }

func (game *Game) Display() string {
	return game.state.board.String()
}

func (game *Game) DisplaySize() (width, height int) {
	return games.TextSize(game.Display())
}

func (game *Game) MoveHistory() []string {
	history := make([]string, len(game.state.history))
	for i, move := range game.state.history {
		history[i] = move.String()
	}

	return history
}

func (game *Game) WinState() games.WinState {
	switch {
	case game.state.winner != Empty:
		return games.Decisive
	case game.state.draw:
		return games.Draw
	default:
		return games.Ongoing
	}
}

func (game *Game) IsValidMove(move string) bool {
	m, err := ParseMove(move)
	return err == nil && game.state.Legal(m)
}

func (game *Game) PlayMove(move string) error {
	m, err := ParseMove(move)
	if err != nil {
		return err
	}

	if !game.state.Legal(m) {
		return fmt.Errorf("tictactoe: %w %s", games.ErrIllegalMove, move)
	}

	game.state = game.state.Result(m)
	return nil
}

func (game *Game) ComputerMove() (string, error) {
	if game.state.IsTerminal() {
		return "", games.ErrGameOver
	}

	move, err := minimax.BestMove[State, float64, Move](game.state, game.depth)
	if err != nil {
		return "", err
	}

	return move.String(), nil
}

func (game *Game) Reset() error {
	game.state = NewState()
	return nil
}

// ParseState returns the state reached by playing the given space separated
// moves from the empty board.
func ParseState(moves string) (State, error) {
	state := NewState()
	for _, s := range strings.Fields(moves) {
		move, err := ParseMove(s)
		if err != nil {
			return state, err
		}

		if !state.Legal(move) {
			return state, fmt.Errorf("tictactoe: %w %s", games.ErrIllegalMove, s)
		}

		state = state.Result(move)
	}

	return state, nil
}
