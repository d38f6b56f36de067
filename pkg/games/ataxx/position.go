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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Color is the color of a player's stones. Crosses move first.
type Color uint8

const (
	Cross Color = iota
	Nought
)

func (color Color) Other() Color { return color ^ 1 }

func (color Color) String() string {
	if color == Cross {
		return "x"
	}

	return "o"
}

// StartFEN is the standard starting position.
const StartFEN = "x5o/7/7/7/7/7/o5x x 0 1"

// Position is an ataxx position.
type Position struct {
	pieces [2]Bitboard
	gaps   Bitboard

	SideToMove Color
	HalfMoves  int
	FullMoves  int
}

var ErrBadFEN = errors.New("ataxx: bad fen")

// ParseFEN parses an ataxx FEN string. The move counters are optional.
func ParseFEN(fen string) (Position, error) {
	var pos Position

	fields := strings.Fields(fen)
	if len(fields) < 2 || len(fields) > 4 {
		return pos, fmt.Errorf("%w: %q", ErrBadFEN, fen)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 7 {
		return pos, fmt.Errorf("%w: %d ranks", ErrBadFEN, len(ranks))
	}

	for i, rank := range ranks {
		file := 0
		for _, c := range rank {
			if file >= 7 {
				return pos, fmt.Errorf("%w: rank %d too long", ErrBadFEN, 7-i)
			}

			sq := NewSquare(file, 6-i).Bitboard()
			switch {
			case c == 'x':
				pos.pieces[Cross] |= sq
			case c == 'o':
				pos.pieces[Nought] |= sq
			case c == '-':
				pos.gaps |= sq
			case c >= '1' && c <= '7':
				file += int(c-'1') + 1
				continue
			default:
				return pos, fmt.Errorf("%w: unexpected %q", ErrBadFEN, c)
			}

			file++
		}

		if file != 7 {
			return pos, fmt.Errorf("%w: rank %d has %d squares", ErrBadFEN, 7-i, file)
		}
	}

	switch fields[1] {
	case "x":
		pos.SideToMove = Cross
	case "o":
		pos.SideToMove = Nought
	default:
		return pos, fmt.Errorf("%w: side to move %q", ErrBadFEN, fields[1])
	}

	pos.FullMoves = 1
	counters := []*int{&pos.HalfMoves, &pos.FullMoves}
	for i, field := range fields[2:] {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return pos, fmt.Errorf("%w: move counter %q", ErrBadFEN, field)
		}

		*counters[i] = n
	}

	return pos, nil
}

// Piece returns the symbol of the piece on the square, which is one of
// 'x', 'o', '-' for a gap, or '.' for an empty square.
func (pos *Position) Piece(sq Square) byte {
	switch {
	case pos.pieces[Cross].Has(sq):
		return 'x'
	case pos.pieces[Nought].Has(sq):
		return 'o'
	case pos.gaps.Has(sq):
		return '-'
	default:
		return '.'
	}
}

// Pieces returns the stones of the given color.
func (pos *Position) Pieces(color Color) Bitboard {
	return pos.pieces[color]
}

func (pos *Position) empty() Bitboard {
	return Bitboard(all) &^ (pos.pieces[Cross] | pos.pieces[Nought] | pos.gaps)
}

func (pos *Position) FEN() string {
	var fen strings.Builder

	for rank := 6; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 7; file++ {
			piece := pos.Piece(NewSquare(file, rank))
			if piece == '.' {
				empty++
				continue
			}

			if empty > 0 {
				fen.WriteString(strconv.Itoa(empty))
				empty = 0
			}

			fen.WriteByte(piece)
		}

		if empty > 0 {
			fen.WriteString(strconv.Itoa(empty))
		}

		if rank > 0 {
			fen.WriteByte('/')
		}
	}

	fmt.Fprintf(&fen, " %s %d %d", pos.SideToMove, pos.HalfMoves, pos.FullMoves)
	return fen.String()
}

func (pos Position) String() string {
	var str strings.Builder

	for rank := 6; rank >= 0; rank-- {
		fmt.Fprintf(&str, "%d ", rank+1)
		for file := 0; file < 7; file++ {
			str.WriteByte(' ')
			str.WriteByte(pos.Piece(NewSquare(file, rank)))
		}

		str.WriteByte('\n')
	}

	str.WriteString("   a b c d e f g")
	return str.String()
}

// Move is an ataxx move. Single moves clone a stone and have equal from and
// to squares, double moves jump a stone two squares away.
type Move struct {
	From, To Square
}

// NullMove passes the turn. It is only legal when the side to move has no
// other move.
var NullMove = Move{NoSquare, NoSquare}

var ErrBadMove = errors.New("ataxx: bad move string")

// ParseMove parses a move like "b2", "a1c3" or "0000".
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(s)
	if s == "0000" {
		return NullMove, nil
	}

	square := func(s string) (Square, error) {
		file, rank := int(s[0])-'a', int(s[1])-'1'
		if file < 0 || file > 6 || rank < 0 || rank > 6 {
			return NoSquare, fmt.Errorf("%w: %q", ErrBadMove, s)
		}

		return NewSquare(file, rank), nil
	}

	switch len(s) {
	case 2:
		to, err := square(s)
		return Move{to, to}, err
	case 4:
		from, err := square(s[:2])
		if err != nil {
			return NullMove, err
		}

		to, err := square(s[2:])
		return Move{from, to}, err
	default:
		return NullMove, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
}

func (move Move) IsSingle() bool { return move.From == move.To && move != NullMove }

func (move Move) String() string {
	switch {
	case move == NullMove:
		return "0000"
	case move.IsSingle():
		return move.To.String()
	default:
		return move.From.String() + move.To.String()
	}
}

// Moves generates the legal moves of the side to move: every single move
// in ascending target order followed by the double moves in ascending
// source then target order. A blocked side has the null move only, unless
// the game is over.
func (pos *Position) Moves() []Move {
	if _, over := pos.Outcome(); over {
		return nil
	}

	us, empty := pos.pieces[pos.SideToMove], pos.empty()

	var moves []Move
	for singles := us.Singles() & empty; singles != 0; {
		to := singles.Pop()
		moves = append(moves, Move{to, to})
	}

	for sources := us; sources != 0; {
		from := sources.Pop()
		for doubles := from.Bitboard().Doubles() & empty; doubles != 0; {
			moves = append(moves, Move{from, doubles.Pop()})
		}
	}

	if len(moves) == 0 {
		moves = append(moves, NullMove)
	}

	return moves
}

// IsLegal reports whether the move is among the position's legal moves.
func (pos *Position) IsLegal(move Move) bool {
	if _, over := pos.Outcome(); over {
		return false
	}

	us, empty := pos.pieces[pos.SideToMove], pos.empty()
	switch {
	case move == NullMove:
		return (us.Singles()|us.Doubles())&empty == 0
	case move.From >= NoSquare || move.To >= NoSquare || !empty.Has(move.To):
		return false
	case move.IsSingle():
		return us.Singles().Has(move.To)
	default:
		return us.Has(move.From) && move.From.Bitboard().Doubles().Has(move.To)
	}
}

// MakeMove plays the move on the position. The move is assumed legal.
func (pos *Position) MakeMove(move Move) {
	us, them := pos.SideToMove, pos.SideToMove.Other()

	pos.SideToMove = them
	if them == Cross {
		pos.FullMoves++
	}

	if move == NullMove {
		return
	}

	to, from := move.To.Bitboard(), move.From.Bitboard()
	pos.pieces[us] ^= to | from // from == to for single moves

	captured := pos.pieces[them] & to.Singles()
	pos.pieces[us] ^= captured
	pos.pieces[them] ^= captured

	pos.HalfMoves++
	if captured != 0 || move.IsSingle() {
		pos.HalfMoves = 0
	}
}

// Outcome is the result of a finished game.
type Outcome uint8

const (
	CrossWins Outcome = iota
	NoughtWins
	Drawn
)

// Outcome reports whether the game is over and its result if so. A game
// ends on the 50-move rule, when one side has no stones left, or when
// neither side can move, in which case the side with more stones wins.
func (pos *Position) Outcome() (Outcome, bool) {
	crosses, noughts := pos.pieces[Cross].Count(), pos.pieces[Nought].Count()

	switch {
	case crosses == 0:
		return NoughtWins, true
	case noughts == 0:
		return CrossWins, true
	case pos.HalfMoves >= 100:
		return Drawn, true
	}

	both := pos.pieces[Cross] | pos.pieces[Nought]
	if (both.Singles()|both.Doubles())&pos.empty() != 0 {
		return Drawn, false
	}

	switch {
	case crosses > noughts:
		return CrossWins, true
	case noughts > crosses:
		return NoughtWins, true
	default:
		return Drawn, true
	}
}
