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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/djinn/pkg/duel"
	"laptudirm.com/x/djinn/pkg/games/ataxx"
	"laptudirm.com/x/djinn/pkg/games/chess"
	"laptudirm.com/x/djinn/pkg/games/tictactoe"
	"laptudirm.com/x/djinn/pkg/minimax"
	"laptudirm.com/x/djinn/pkg/stats"
	"laptudirm.com/x/mess/pkg/board/move"
)

// djinn duel
func Duel() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duel game",
		Short: "Measure the strength difference of two search depths",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`duel plays pairs of games of a built-in game between two
			search depths, swapping colors inside each pair, and reports
			the Elo difference between them.

			Each pair starts from a few random plies, played from the
			start position or from the next position of the opening book
			given with --book. Tic tac toe books list moves, while ataxx
			and chess books list FENs.

			With --sprt the duel runs a sequential probability ratio test
			between the Elo hypotheses --elo0 and --elo1, and stops as
			soon as either of them is accepted.`),
		Example: heredoc.Doc(`
			$ djinn duel ataxx --depth-1 3 --depth-2 2 --pairs 100
			$ djinn duel chess --sprt --elo0 0 --elo1 50`),

		RunE: func(cmd *cobra.Command, args []string) error {
			game, found := findNative(args[0])
			if !found {
				return errors.New("duels are only supported for tictactoe, ataxx and chess")
			}

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			config := duel.Config{
				Pairs:        cfg.Duel.Pairs,
				Concurrency:  cfg.Duel.Concurrency,
				OpeningPlies: cfg.Duel.OpeningPlies,
				MaxPlies:     cfg.Duel.MaxPlies,
				Seed:         time.Now().UnixNano(),
			}

			for i, flag := range []string{"depth-1", "depth-2"} {
				depth, _ := flags.GetInt(flag)
				name := fmt.Sprintf("%s depth %d", game.key, depth)
				if depth <= 0 {
					depth, name = minimax.Unlimited, game.key+" full depth"
				}

				config.Players[i] = duel.Player{Name: name, Depth: depth}
			}

			override := func(flag string, value *int) {
				if flags.Changed(flag) {
					*value, _ = flags.GetInt(flag)
				}
			}

			override("pairs", &config.Pairs)
			override("concurrency", &config.Concurrency)
			override("opening-plies", &config.OpeningPlies)
			override("max-plies", &config.MaxPlies)

			if flags.Changed("seed") {
				config.Seed, _ = flags.GetInt64("seed")
			}

			if sprt, _ := flags.GetBool("sprt"); sprt {
				var test stats.Test
				test.Elo0, _ = flags.GetFloat64("elo0")
				test.Elo1, _ = flags.GetFloat64("elo1")
				test.Alpha, _ = flags.GetFloat64("alpha")
				test.Beta, _ = flags.GetFloat64("beta")
				config.SPRT = &test
			}

			fen, _ := flags.GetString("fen")

			var book *duel.Book
			if path, _ := flags.GetString("book"); path != "" {
				order, _ := flags.GetString("book-order")
				if book, err = duel.LoadBook(path, order); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logrus.WithFields(logrus.Fields{
				"pairs":       config.Pairs,
				"concurrency": config.Concurrency,
				"seed":        config.Seed,
			}).Infof("Starting duel: %s vs %s", config.Players[0].Name, config.Players[1].Name)

			report, err := runDuel(ctx, game.key, fen, book, config)
			if report != nil {
				fmt.Fprintln(cmd.OutOrStdout(), report)
			}

			if errors.Is(err, context.Canceled) {
				logrus.Warn("Duel interrupted")
				return nil
			}

			return err
		},
	}

	flags := cmd.Flags()
	flags.Int("depth-1", 2, "Search depth of the first player, 0 for full depth")
	flags.Int("depth-2", 1, "Search depth of the second player, 0 for full depth")
	flags.IntP("pairs", "n", 0, "Number of game pairs to play")
	flags.IntP("concurrency", "j", 0, "Number of games to play at the same time")
	flags.Int("opening-plies", 0, "Number of random plies which start each pair")
	flags.Int("max-plies", 0, "Adjudicate games longer than this as draws, 0 for no limit")
	flags.Int64("seed", 0, "Seed of the random openings")
	flags.String("fen", "", "Position the openings start from")
	flags.String("book", "", "Opening book with one starting position per line")
	flags.String("book-order", "sequential", "Order of the book's openings: sequential or random")

	flags.Bool("sprt", false, "Stop the duel with a sequential probability ratio test")
	flags.Float64("elo0", 0, "Elo difference of the null hypothesis")
	flags.Float64("elo1", 10, "Elo difference of the alternative hypothesis")
	flags.Float64("alpha", 0.05, "False positive rate of the test")
	flags.Float64("beta", 0.05, "False negative rate of the test")

	return cmd
}

func runDuel(ctx context.Context, key, fen string, book *duel.Book, config duel.Config) (*duel.Report, error) {
	if book != nil && fen != "" {
		return nil, errors.New("--fen and --book can't be used together")
	}

	switch key {
	case "tictactoe":
		if fen != "" {
			return nil, errors.New("tictactoe can't start from a fen")
		}

		if book != nil {
			return duel.RunBook[tictactoe.State, tictactoe.Move](ctx, config, book, tictactoe.ParseState, nil)
		}

		return duel.Run[tictactoe.State, tictactoe.Move](ctx, config, tictactoe.NewState(), nil)

	case "ataxx":
		parse := func(fen string) (ataxx.State, error) {
			pos, err := ataxx.ParseFEN(fen)
			return ataxx.NewState(pos), err
		}

		if book != nil {
			return duel.RunBook[ataxx.State, ataxx.Move](ctx, config, book, parse, nil)
		}

		if fen == "" {
			fen = ataxx.StartFEN
		}

		start, err := parse(fen)
		if err != nil {
			return nil, err
		}

		return duel.Run[ataxx.State, ataxx.Move](ctx, config, start, nil)

	case "chess":
		if book != nil {
			parse := func(fen string) (chess.State, error) { return chess.NewState(fen), nil }
			return duel.RunBook[chess.State, move.Move](ctx, config, book, parse, nil)
		}

		if fen == "" {
			fen = chess.StartFEN
		}

		return duel.Run[chess.State, move.Move](ctx, config, chess.NewState(fen), nil)
	}

	return nil, fmt.Errorf("no duel for %s", key)
}
