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

package games

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Game is a playable game as seen by djinn's front end. Native games and
// plugin games both implement it.
type Game interface {
	Name() string
	Thumbnail() string

	// Display returns the current board drawn as text, which fits inside
	// the rectangle returned by DisplaySize.
	Display() string
	DisplaySize() (width, height int)

	MoveHistory() []string
	WinState() WinState

	IsValidMove(move string) bool
	PlayMove(move string) error

	// ComputerMove searches the current position and returns the move the
	// computer would play in it, without playing it.
	ComputerMove() (string, error)

	Reset() error
}

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

// WinState represents the state of a game's result.
type WinState uint8

const (
	Ongoing WinState = iota
	Decisive
	Draw
)

// String returns a string representation of the given WinState.
func (state WinState) String() string {
	switch state {
	case Ongoing:
		return "ongoing"
	case Decisive:
		return "decisive"
	case Draw:
		return "draw"
	default:
		return "?"
	}
}

// TextSize returns the width and height of the rectangle needed to show the
// given multi-line text.
func TextSize(text string) (width, height int) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	return width, len(lines)
}
