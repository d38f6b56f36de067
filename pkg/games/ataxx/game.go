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
	"fmt"

	"laptudirm.com/x/djinn/pkg/games"
	"laptudirm.com/x/djinn/pkg/minimax"
)

// DefaultDepth is the search depth of the computer player when none is
// configured. Ataxx trees are too wide for deep searches.
const DefaultDepth = 3

const thumbnail = `x . . . o
. - . - .
. . x . .
. - . - .
o . . . x`

// Game is a game of ataxx against the computer.
type Game struct {
	start Position
	state State
	depth int
}

var _ games.Game = (*Game)(nil)

// NewGame returns a game starting from the given FEN. An empty FEN starts
// from the standard position and a non-positive depth uses DefaultDepth.
func NewGame(fen string, depth int) (*Game, error) {
	if fen == "" {
		fen = StartFEN
	}

	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	if depth <= 0 {
		depth = DefaultDepth
	}

	return &Game{start: pos, state: NewState(pos), depth: depth}, nil
}

func (game *Game) State() State { return game.state }

func (game *Game) Name() string      { return "Ataxx" }
func (game *Game) Thumbnail() string { return thumbnail }

func (game *Game) Display() string {
	return fmt.Sprintf("%s\n\n%s to move", game.state.pos, game.state.pos.SideToMove)
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
	outcome, over := game.state.pos.Outcome()
	switch {
	case !over:
		return games.Ongoing
	case outcome == Drawn:
		return games.Draw
	default:
		return games.Decisive
	}
}

func (game *Game) IsValidMove(move string) bool {
	m, err := ParseMove(move)
	return err == nil && game.state.pos.IsLegal(m)
}

func (game *Game) PlayMove(move string) error {
	m, err := ParseMove(move)
	if err != nil {
		return err
	}

	if !game.state.pos.IsLegal(m) {
		return fmt.Errorf("ataxx: %w %s", games.ErrIllegalMove, move)
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
	game.state = NewState(game.start)
	return nil
}
