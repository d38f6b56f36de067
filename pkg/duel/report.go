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

package duel

import (
	"fmt"
	"math"
	"strings"

	"laptudirm.com/x/djinn/pkg/stats"
)

// Report is the outcome of a duel, from player 1's point of view.
type Report struct {
	Players [2]Player
	Score   stats.Score

	// Errors is the number of pairs which could not be played.
	Errors int

	LLR      float64
	Decision stats.Decision
}

func (report *Report) String() string {
	var str strings.Builder

	lower, elo, upper := report.Score.Elo()
	plower, pelo, pupper := report.Score.PentaElo()

	fmt.Fprintln(&str, "╔════════════════════════════════════════════════╗")
	fmt.Fprintf(&str, "║ %-20s vs %-23s ║\n", report.Players[0].Name, report.Players[1].Name)
	fmt.Fprintln(&str, "╠════════════════════════════════════════════════╣")
	fmt.Fprintf(&str, "║ Games  %5d  W %5d  L %5d  D %5d       ║\n",
		report.Score.Games(), report.Score.Wins, report.Score.Losses, report.Score.Draws)
	fmt.Fprintf(&str, "║ Pairs  LL %4d  LD %4d  DD %4d  WD %4d  WW %4d ║\n",
		report.Score.Pair(stats.LossLoss), report.Score.Pair(stats.DrawLoss),
		report.Score.Pair(stats.DrawDraw), report.Score.Pair(stats.WinDraw),
		report.Score.Pair(stats.WinWin))
	fmt.Fprintf(&str, "║ Elo    %+7.1f ± %-6.1f  (penta %+7.1f ± %-6.1f) ║\n",
		elo, math.Max(upper-elo, elo-lower), pelo, math.Max(pupper-pelo, pelo-plower))

	if report.Decision != stats.Continue || report.LLR != 0 {
		fmt.Fprintf(&str, "║ LLR    %+7.2f  %-31s ║\n", report.LLR, report.Decision)
	}

	if report.Errors > 0 {
		fmt.Fprintf(&str, "║ Failed pairs %-33d ║\n", report.Errors)
	}

	fmt.Fprint(&str, "╚════════════════════════════════════════════════╝")
	return str.String()
}
