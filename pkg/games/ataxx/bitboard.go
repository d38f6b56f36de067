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

import "math/bits"

// The 7x7 board is packed into the low 49 bits of a uint64, square a1 being
// bit 0, b1 bit 1 and so on up to g7 which is bit 48.
const (
	all uint64 = 0x1FFFFFFFFFFFF

	fileA uint64 = 0x0040810204081
	fileB uint64 = 0x0081020408102
	fileF uint64 = 0x0810204081020
	fileG uint64 = 0x1020408102040

	notFileA  = all &^ fileA
	notFileG  = all &^ fileG
	notFileAB = all &^ (fileA | fileB)
	notFileFG = all &^ (fileF | fileG)
)

// Bitboard is a set of squares.
type Bitboard uint64

func (bb Bitboard) Has(sq Square) bool { return bb&sq.Bitboard() != 0 }
func (bb Bitboard) Count() int         { return bits.OnesCount64(uint64(bb)) }

// Pop removes the lowest square from the set and returns it.
func (bb *Bitboard) Pop() Square {
	sq := Square(bits.TrailingZeros64(uint64(*bb)))
	*bb &= *bb - 1
	return sq
}

// Singles returns the squares a single step away from any square in the set.
func (bb Bitboard) Singles() Bitboard {
	b := uint64(bb)
	return Bitboard(
		(b<<7)&all | b>>7 |
			(b<<1)&notFileA | (b>>1)&notFileG |
			(b<<8)&notFileA | (b<<6)&notFileG |
			(b>>6)&notFileA | (b>>8)&notFileG,
	)
}

// Doubles returns the squares exactly two steps away from any square in
// the set, which are the targets of jumping moves.
func (bb Bitboard) Doubles() Bitboard {
	b := uint64(bb)
	return Bitboard(
		(b<<12)&notFileFG | (b<<13)&notFileG | (b<<14)&all | (b<<15)&notFileA | (b<<16)&notFileAB |
			(b>>16)&notFileFG | (b>>15)&notFileG | b>>14 | (b>>13)&notFileA | (b>>12)&notFileAB |
			(b<<9)&notFileAB | (b<<2)&notFileAB | (b>>5)&notFileAB |
			(b<<5)&notFileFG | (b>>2)&notFileFG | (b>>9)&notFileFG,
	)
}

// Square is one of the 49 squares of the board.
type Square uint8

// NoSquare is the from and to square of the null move.
const NoSquare Square = 49

func NewSquare(file, rank int) Square {
	return Square(rank*7 + file)
}

func (sq Square) File() int { return int(sq) % 7 }
func (sq Square) Rank() int { return int(sq) / 7 }

func (sq Square) Bitboard() Bitboard {
	return Bitboard(1) << sq
}

func (sq Square) String() string {
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}
