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

package chess

import (
	"fmt"
	"strings"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/formats/fen"

	"laptudirm.com/x/djinn/pkg/games"
	"laptudirm.com/x/djinn/pkg/minimax"
)

// DefaultDepth is the search depth of the computer player when none is
// configured.
const DefaultDepth = 3

const thumbnail = `♜ ♞ ♝ ♛ ♚
♟ ♟ ♟ ♟ ♟
. . . . .
♙ ♙ ♙ ♙ ♙
♖ ♘ ♗ ♕ ♔`

// Game is a game of chess against the computer. Unlike a State, the game
// keeps a single board through all the moves played, so it can detect
// threefold repetitions.
type Game struct {
	start   string
	board   *board.Board
	moves   []move.Move
	history []string
	depth   int
}

var _ games.Game = (*Game)(nil)

// NewGame returns a game starting from the given FEN. An empty FEN starts
// from the standard position and a non-positive depth uses DefaultDepth.
func NewGame(fenstr string, depth int) *Game {
	if fenstr == "" {
		fenstr = StartFEN
	}

	if depth <= 0 {
		depth = DefaultDepth
	}

	game := &Game{start: fenstr, depth: depth}
	_ = game.Reset()
	return game
}

// State returns the searchable state of the current position.
func (game *Game) State() State {
	fen := [6]string(game.board.FEN())
	return NewState(strings.Join(fen[:], " "))
}

func (game *Game) Name() string      { return "Chess" }
func (game *Game) Thumbnail() string { return thumbnail }

func (game *Game) Display() string {
	fen := [6]string(game.board.FEN())

	var str strings.Builder
	for i, rank := range strings.Split(fen[0], "/") {
		fmt.Fprintf(&str, "%d ", 8-i)
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				str.WriteString(strings.Repeat(" .", int(c-'0')))
				continue
			}

			str.WriteByte(' ')
			str.WriteRune(c)
		}

		str.WriteByte('\n')
	}

	str.WriteString("   a b c d e f g h")
	return str.String()
}

func (game *Game) DisplaySize() (width, height int) {
	return games.TextSize(game.Display())
}

func (game *Game) MoveHistory() []string {
	return append([]string(nil), game.history...)
}

func (game *Game) WinState() games.WinState {
	switch {
	case len(game.moves) == 0:
		if game.board.IsInCheck(game.board.SideToMove) {
			return games.Decisive
		}

		return games.Draw
	case game.board.DrawClock >= 100,
		game.board.IsThreefoldRepetition(),
		game.board.IsInsufficientMaterial():
		return games.Draw
	default:
		return games.Ongoing
	}
}

func (game *Game) find(movstr string) (move.Move, bool) {
	for _, mov := range game.moves {
		if strings.EqualFold(mov.String(), movstr) {
			return mov, true
		}
	}

	var none move.Move
	return none, false
}

func (game *Game) IsValidMove(movstr string) bool {
	_, found := game.find(movstr)
	return found && game.WinState() == games.Ongoing
}

func (game *Game) PlayMove(movstr string) error {
	if game.WinState() != games.Ongoing {
		return games.ErrGameOver
	}

	mov, found := game.find(movstr)
	if !found {
		return fmt.Errorf("chess: %w %s", games.ErrIllegalMove, movstr)
	}

	game.board.MakeMove(mov)
	game.moves = game.board.GenerateMoves(false)
	game.history = append(game.history, mov.String())
	return nil
}

func (game *Game) ComputerMove() (string, error) {
	if game.WinState() != games.Ongoing {
		return "", games.ErrGameOver
	}

	mov, err := minimax.BestMove[State, float64, move.Move](game.State(), game.depth)
	if err != nil {
		return "", err
	}

	return mov.String(), nil
}

func (game *Game) Reset() error {
	game.board = board.New(board.FEN(fen.FromString(game.start)))
	game.moves = game.board.GenerateMoves(false)
	game.history = nil
	return nil
}
