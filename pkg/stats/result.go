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

package stats

// Result is the result of a single game from player 1's point of view.
type Result int

const (
	Win  Result = +1
	Draw Result = 0
	Loss Result = -1
)

// String returns a string representation of the given Result.
func (result Result) String() string {
	switch result {
	case Win:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case Loss:
		return "0-1"
	default:
		return "?-?"
	}
}

// PairResult is the combined result of a game pair, where the two players
// swap colors between the games.
type PairResult int

const (
	LossLoss = PairResult(Loss + Loss) // player 2 double kills
	DrawLoss = PairResult(Draw + Loss) // player 2 wins and holds
	DrawDraw = PairResult(Draw + Draw) // win-loss or draw-draw
	WinDraw  = PairResult(Win + Draw)  // player 1 wins and holds
	WinWin   = PairResult(Win + Win)   // player 1 double kills
)

// PairOf returns the PairResult of a game pair with the given results.
func PairOf(first, second Result) PairResult {
	return PairResult(first + second)
}

// Score accumulates the results of game pairs between two players.
type Score struct {
	Wins, Draws, Losses int

	// Pairs counts the pairs of each PairResult, indexed by LossLoss + 2
	// through WinWin + 2.
	Pairs [5]int
}

// AddPair adds the results of the two games of a pair to the score.
func (score *Score) AddPair(first, second Result) {
	for _, result := range [2]Result{first, second} {
		switch result {
		case Win:
			score.Wins++
		case Draw:
			score.Draws++
		case Loss:
			score.Losses++
		}
	}

	score.Pairs[PairOf(first, second)+2]++
}

// Pair returns the number of pairs which ended with the given result.
func (score *Score) Pair(result PairResult) int {
	return score.Pairs[result+2]
}

// Games returns the number of games played.
func (score *Score) Games() int {
	return score.Wins + score.Draws + score.Losses
}

// Elo returns the trinomial elo estimate of player 1 and its error bounds.
func (score *Score) Elo() (lower, elo, upper float64) {
	return Elo(score.Wins, score.Draws, score.Losses)
}

// PentaElo returns the pentanomial elo estimate of player 1 and its error
// bounds.
func (score *Score) PentaElo() (lower, elo, upper float64) {
	return PentaElo(score.Pairs[0], score.Pairs[1], score.Pairs[2], score.Pairs[3], score.Pairs[4])
}
