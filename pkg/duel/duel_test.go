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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/djinn/pkg/games/tictactoe"
	"laptudirm.com/x/djinn/pkg/minimax"
	"laptudirm.com/x/djinn/pkg/stats"
)

func config(pairs, plies int, depths ...int) Config {
	return Config{
		Players: [2]Player{
			{Name: "first", Depth: depths[0]},
			{Name: "second", Depth: depths[1]},
		},
		Pairs:        pairs,
		Concurrency:  2,
		OpeningPlies: plies,
		Seed:         42,
	}
}

func run(t *testing.T, config Config) *Report {
	t.Helper()

	report, err := Run[tictactoe.State, tictactoe.Move](context.Background(), config, tictactoe.NewState(), nil)
	require.NoError(t, err)
	return report
}

func TestPerfectPlayersDraw(t *testing.T) {
	report := run(t, config(3, 0, minimax.Unlimited, minimax.Unlimited))

	assert.Equal(t, 6, report.Score.Games())
	assert.Equal(t, 6, report.Score.Draws)
	assert.Equal(t, 3, report.Score.Pair(stats.DrawDraw))
	assert.Zero(t, report.Errors)
}

func TestSwappedColorsCancelOut(t *testing.T) {
	// both games of a pair start from the same opening, so equal players
	// get opposite results from it
	report := run(t, config(6, 2, minimax.Unlimited, minimax.Unlimited))

	assert.Equal(t, 12, report.Score.Games())
	assert.Equal(t, 6, report.Score.Pair(stats.DrawDraw))
	assert.Equal(t, report.Score.Wins, report.Score.Losses)
}

func TestStrongerPlayerNeverLoses(t *testing.T) {
	report := run(t, config(2, 0, minimax.Unlimited, 1))

	assert.Equal(t, 4, report.Score.Games())
	assert.Zero(t, report.Score.Losses)
}

func TestDeterministicOpenings(t *testing.T) {
	cfg := config(4, 3, minimax.Unlimited, 1)
	first := run(t, cfg)
	second := run(t, cfg)

	assert.Equal(t, first.Score, second.Score)
}

func TestOpening(t *testing.T) {
	cfg := config(1, 4, 1, 1)
	position := opening[tictactoe.State, tictactoe.Move](cfg, tictactoe.NewState(), 0)
	assert.Len(t, position.History(), 4)

	cfg.OpeningPlies = 0
	position = opening[tictactoe.State, tictactoe.Move](cfg, tictactoe.NewState(), 0)
	assert.Empty(t, position.History())
}

func TestMaxPliesAdjudicates(t *testing.T) {
	cfg := config(1, 0, 1, 1)
	cfg.MaxPlies = 3

	report := run(t, cfg)
	assert.Equal(t, 2, report.Score.Draws)
}

func TestSearchErrorsAreCounted(t *testing.T) {
	failing := func(tictactoe.State, int) (tictactoe.Move, error) {
		return tictactoe.Move{}, errors.New("search failed")
	}

	report, err := Run[tictactoe.State, tictactoe.Move](context.Background(), config(3, 0, 1, 1), tictactoe.NewState(), failing)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Errors)
	assert.Zero(t, report.Score.Games())
}

func TestPanicsAreCounted(t *testing.T) {
	panicking := func(tictactoe.State, int) (tictactoe.Move, error) {
		// an occupied cell breaks Result's contract
		return tictactoe.Move{}, nil
	}

	cfg := config(1, 0, 1, 1)
	cfg.OpeningPlies = 1
	cfg.Seed = 0

	report, err := Run[tictactoe.State, tictactoe.Move](context.Background(), cfg, tictactoe.NewState().Result(tictactoe.Move{}), panicking)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Errors)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run[tictactoe.State, tictactoe.Move](ctx, config(100, 0, 1, 1), tictactoe.NewState(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, report.Score.Games(), 200)
}

func TestSPRTStopsEarly(t *testing.T) {
	cfg := config(50, 0, minimax.Unlimited, minimax.Unlimited)
	cfg.Concurrency = 1
	cfg.SPRT = &stats.Test{Elo0: 0, Elo1: 400, Alpha: 0.25, Beta: 0.25}

	report := run(t, cfg)
	assert.Equal(t, stats.AcceptH0, report.Decision)
	assert.Less(t, report.Score.Games(), 100)
	assert.Contains(t, report.String(), "H0 accepted")
}
