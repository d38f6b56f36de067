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
	"errors"
	"fmt"
	"math"
	"strings"

	"laptudirm.com/x/djinn/pkg/minimax"
)

// Tile is the content of a single cell of the board.
type Tile uint8

const (
	Empty Tile = iota
	Cross
	Nought
)

func (tile Tile) String() string {
	switch tile {
	case Cross:
		return "X"
	case Nought:
		return "O"
	default:
		return " "
	}
}

// tileOf returns the tile placed by the given player. Crosses maximize.
func tileOf(player minimax.Player) Tile {
	if player == minimax.Max {
		return Cross
	}

	return Nought
}

// Move places the side to move's tile on the cell in column X and row Y.
// Moves are written as a column letter followed by a row digit, like "b2".
type Move struct {
	X, Y int
}

var ErrBadMove = errors.New("tictactoe: bad move string")

// ParseMove parses a move string like "a1" or "c3".
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(s)
	if len(s) != 2 {
		return Move{}, ErrBadMove
	}

	x, y := int(s[0]-'a'), int(s[1]-'1')
	if x < 0 || x > 2 || y < 0 || y > 2 {
		return Move{}, ErrBadMove
	}

	return Move{X: x, Y: y}, nil
}

func (move Move) String() string {
	return fmt.Sprintf("%c%c", 'a'+move.X, '1'+move.Y)
}

// Board is a 3x3 tic-tac-toe board indexed as [row][column].
type Board [3][3]Tile

// wins reports whether the given tile, just placed by move, completes a
// line on the board.
func (board *Board) wins(move Move, tile Tile) bool {
	row, column, diagonal, antiDiagonal := true, true, move.X == move.Y, move.X+move.Y == 2

	for i := 0; i < 3; i++ {
		row = row && board[move.Y][i] == tile
		column = column && board[i][move.X] == tile
		diagonal = diagonal && board[i][i] == tile
		antiDiagonal = antiDiagonal && board[i][2-i] == tile
	}

	return row || column || diagonal || antiDiagonal
}

func (board *Board) full() bool {
	for _, row := range board {
		for _, tile := range row {
			if tile == Empty {
				return false
			}
		}
	}

	return true
}

func (board Board) String() string {
	return fmt.Sprintf(`  ┌───┬───┬───┐
1 │ %s │ %s │ %s │
  ├───┼───┼───┤
2 │ %s │ %s │ %s │
  ├───┼───┼───┤
3 │ %s │ %s │ %s │
  └───┴───┴───┘
    a   b   c`,
		board[0][0], board[0][1], board[0][2],
		board[1][0], board[1][1], board[1][2],
		board[2][0], board[2][1], board[2][2],
	)
}

// State is an immutable tic-tac-toe position.
type State struct {
	board  Board
	player minimax.Player
	winner Tile
	draw   bool

	history []Move
}

// compile time check that State can be searched
var _ minimax.Position[State, float64, Move] = State{}

// NewState returns the empty board with crosses to move.
func NewState() State {
	return State{player: minimax.Max}
}

// Board returns the state's board.
func (state State) Board() Board {
	return state.board
}

// History returns the moves played to reach the state.
func (state State) History() []Move {
	return state.history
}

// Winner returns the tile of the player who won, or Empty.
func (state State) Winner() Tile {
	return state.winner
}

func (state State) IsTerminal() bool {
	return state.winner != Empty || state.draw
}

func (state State) Evaluation() float64 {
	switch state.winner {
	case Cross:
		return math.Inf(+1)
	case Nought:
		return math.Inf(-1)
	default:
		return 0
	}
}

func (state State) CurrentPlayer() minimax.Player {
	return state.player
}

// Actions returns the empty cells column by column: a1, a2, a3, b1, ...
func (state State) Actions() []Move {
	if state.IsTerminal() {
		return nil
	}

	actions := make([]Move, 0, 9)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if state.board[y][x] == Empty {
				actions = append(actions, Move{X: x, Y: y})
			}
		}
	}

	return actions
}

// Legal reports whether the given move can be played in the state.
func (state State) Legal(move Move) bool {
	return !state.IsTerminal() && state.board[move.Y][move.X] == Empty
}

func (state State) Result(move Move) State {
	if !state.Legal(move) {
		panic(&minimax.ContractError{Position: state.board, Reason: "illegal move " + move.String()})
	}

	tile := tileOf(state.player)

	next := State{
		board:  state.board,
		player: state.player.Opposite(),

		// full slice expression so that siblings never share a backing array
		history: append(state.history[:len(state.history):len(state.history)], move),
	}

	next.board[move.Y][move.X] = tile
	if next.board.wins(move, tile) {
		next.winner = tile
	} else {
		next.draw = next.board.full()
	}

	return next
}
