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

package minimax

// Player represents one of the two sides of a zero-sum game. The Max player
// tries to maximize a position's evaluation while the Min player tries to
// minimize it.
type Player int8

const (
	Max Player = iota
	Min
)

// Opposite returns the other Player.
func (player Player) Opposite() Player {
	return player ^ 1
}

// sign is the multiplier which converts an absolute evaluation into one
// relative to the given player.
func (player Player) sign() float64 {
	if player == Max {
		return +1
	}

	return -1
}

// String returns a string representation of the given Player.
func (player Player) String() string {
	switch player {
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return "?"
	}
}
