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

// Package duel measures the difference in strength between two search
// configurations by playing game pairs between them.
package duel

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/djinn/pkg/minimax"
	"laptudirm.com/x/djinn/pkg/stats"
)

// Player is one of the two search configurations in a duel.
type Player struct {
	Name  string
	Depth int
}

// Config configures a duel.
type Config struct {
	Players [2]Player

	// Number of game pairs to play. Both games of a pair start from the same
	// random opening with the players' colors swapped.
	Pairs int

	// Number of games played at the same time.
	Concurrency int

	// Number of random plies played before the players take over.
	OpeningPlies int

	// Games still running after this many plies are adjudicated as draws.
	// Zero means no limit.
	MaxPlies int

	// Seed of the random openings.
	Seed int64

	// SPRT stops the duel as soon as it reaches a decision, if set.
	SPRT *stats.Test
}

// Searcher finds the move to play in a position at the given depth.
type Searcher[P, A any] func(position P, depth int) (A, error)

// Game is a finished game of a duel.
type Game struct {
	Pair, Number int

	// Max is the index of the player who played as Max.
	Max    int
	Result stats.Result // from player 1's point of view
	Reason string
	Plies  int
}

func (game Game) String() string {
	return fmt.Sprintf("Game #%d (pair %d): %s, %s after %d plies", game.Number, game.Pair, game.Result, game.Reason, game.Plies)
}

type pair struct {
	games [2]Game
	err   error
}

// Run plays the duel configured by config from the given starting position
// and returns its report. When search is nil the positions are searched
// with minimax.BestMove.
//
// Games which fail are logged and counted in the report's Errors. Run stops
// early when ctx is done, returning the report so far along with ctx's
// error.
func Run[P minimax.Position[P, float64, A], A any](ctx context.Context, config Config, start P, search Searcher[P, A]) (*Report, error) {
	return runFrom(ctx, config, func(int) P { return start }, search)
}

// runFrom plays a duel whose n-th pair starts from start(n).
func runFrom[P minimax.Position[P, float64, A], A any](ctx context.Context, config Config, start func(int) P, search Searcher[P, A]) (*Report, error) {
	if search == nil {
		search = minimax.BestMove[P, float64, A]
	}

	config.Concurrency = max(config.Concurrency, 1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := 0; i < config.Pairs; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make(chan pair)

	var wg sync.WaitGroup
	for i := 0; i < config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for number := range jobs {
				results <- playPair(config, start(number), search, number)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	report := &Report{Players: config.Players}
	for pair := range results {
		if pair.err != nil {
			logrus.WithError(pair.err).Error("game pair failed")
			report.Errors++
			continue
		}

		for _, game := range pair.games {
			logrus.Infof("\x1b[32mFinished\x1b[0m %s", game)
		}

		report.Score.AddPair(pair.games[0].Result, pair.games[1].Result)
		if config.SPRT != nil && report.Decision == stats.Continue {
			report.LLR, report.Decision = config.SPRT.Decide(&report.Score)
			if report.Decision != stats.Continue {
				cancel()
			}
		}
	}

	if err := ctx.Err(); err != nil && report.Decision == stats.Continue {
		return report, err
	}

	return report, nil
}

// opening plays random actions from the start position. The random source
// is derived from the pair number so that openings do not depend on the
// order in which pairs are scheduled.
func opening[P minimax.Position[P, float64, A], A any](config Config, start P, number int) P {
	rng := rand.New(rand.NewSource(config.Seed + int64(number)))

	position := start
	for ply := 0; ply < config.OpeningPlies && !position.IsTerminal(); ply++ {
		actions := position.Actions()
		position = position.Result(actions[rng.Intn(len(actions))])
	}

	return position
}

func playPair[P minimax.Position[P, float64, A], A any](config Config, start P, search Searcher[P, A], number int) (result pair) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				panic(r)
			}

			result.err = err
		}
	}()

	position := opening(config, start, number)
	for i := range result.games {
		// player 1 plays as Max in the first game and as Min in the second
		game := Game{Pair: number + 1, Number: 2*number + i + 1, Max: i}

		logrus.Debugf("\x1b[33mStarting\x1b[0m Game #%d: %s as max", game.Number, config.Players[i].Name)

		outcome, err := play(config, position, search, &game)
		if err != nil {
			return pair{err: err}
		}

		game.Result = outcome
		if i == 1 {
			game.Result = -outcome
		}

		result.games[i] = game
	}

	return result
}

// play plays out a game and returns its result from Max's point of view.
func play[P minimax.Position[P, float64, A], A any](config Config, position P, search Searcher[P, A], game *Game) (stats.Result, error) {
	for !position.IsTerminal() {
		if config.MaxPlies > 0 && game.Plies >= config.MaxPlies {
			game.Reason = "adjudication"
			return stats.Draw, nil
		}

		player := game.Max
		if position.CurrentPlayer() == minimax.Min {
			player ^= 1
		}

		action, err := search(position, config.Players[player].Depth)
		if err != nil {
			return stats.Draw, fmt.Errorf("game #%d: %s: %w", game.Number, config.Players[player].Name, err)
		}

		position = position.Result(action)
		game.Plies++
	}

	switch eval := position.Evaluation(); {
	case eval > 0:
		game.Reason = "max wins"
		return stats.Win, nil
	case eval < 0:
		game.Reason = "min wins"
		return stats.Loss, nil
	default:
		game.Reason = "draw"
		return stats.Draw, nil
	}
}
