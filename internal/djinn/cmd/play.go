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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/djinn/internal/util"
	"laptudirm.com/x/djinn/pkg/games"
)

// djinn play
func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play game",
		Short: "Play a game against the computer",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`play starts an interactive game against the computer. Enter
			a move to play it, after which the computer replies unless
			--manual is given. Lines starting with ':' are commands:

			  :go       let the computer play a move
			  :hint     show the computer's move without playing it
			  :history  show the moves played so far
			  :reset    start the game over
			  :quit     leave the game`),

		RunE: func(cmd *cobra.Command, args []string) error {
			depth, _ := cmd.Flags().GetInt("depth")
			fen, _ := cmd.Flags().GetString("fen")

			game, err := open(cmd, args[0], depth, fen)
			if err != nil {
				return err
			}

			manual, _ := cmd.Flags().GetBool("manual")
			first, _ := cmd.Flags().GetBool("computer-first")

			session := &session{
				game: game,
				in:   bufio.NewScanner(cmd.InOrStdin()),
				out:  cmd.OutOrStdout(),
				auto: !manual,
			}

			return session.run(cmd.Context(), first)
		},
	}

	cmd.Flags().IntP("depth", "d", 0, "Search depth, overriding the configured one")
	cmd.Flags().String("fen", "", "Starting position of the game")
	cmd.Flags().BoolP("manual", "m", false, "Don't reply to moves automatically")
	cmd.Flags().BoolP("computer-first", "c", false, "Let the computer play the first move")

	return cmd
}

var errQuit = errors.New("quit")

// session is a line based game between a user and the computer.
type session struct {
	game games.Game
	in   *bufio.Scanner
	out  io.Writer
	auto bool // reply to the user's moves
}

func (session *session) run(ctx context.Context, computerFirst bool) error {
	fmt.Fprintf(session.out, "%s\n\n", session.game.Name())
	session.show()

	if computerFirst {
		if err := session.reply(ctx); err != nil {
			return err
		}
	}

	for session.prompt() {
		err := session.handle(ctx, strings.TrimSpace(session.in.Text()))
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(session.out, "\ninterrupted")
			return nil
		case err != nil:
			fmt.Fprintf(session.out, "error: %v\n", err)
		}
	}

	return session.in.Err()
}

func (session *session) prompt() bool {
	fmt.Fprint(session.out, "> ")
	return session.in.Scan()
}

func (session *session) handle(ctx context.Context, line string) error {
	switch line {
	case "":
		return nil
	case ":quit", ":q":
		return errQuit
	case ":go":
		return session.reply(ctx)
	case ":hint":
		move, err := session.think(ctx)
		if err == nil {
			fmt.Fprintf(session.out, "hint: %s\n", move)
		}
		return err
	case ":history":
		fmt.Fprintln(session.out, strings.Join(session.game.MoveHistory(), " "))
		return nil
	case ":reset":
		if err := session.game.Reset(); err != nil {
			return err
		}
		session.show()
		return nil
	}

	if strings.HasPrefix(line, ":") {
		return fmt.Errorf("unknown command %s", line)
	}

	if err := session.game.PlayMove(line); err != nil {
		return err
	}

	session.show()
	if session.auto && session.game.WinState() == games.Ongoing {
		return session.reply(ctx)
	}

	return nil
}

// reply lets the computer play a move.
func (session *session) reply(ctx context.Context) error {
	move, err := session.think(ctx)
	if err != nil {
		return err
	}

	if err := session.game.PlayMove(move); err != nil {
		return fmt.Errorf("computer played %s: %w", move, err)
	}

	fmt.Fprintf(session.out, "computer plays %s\n\n", move)
	session.show()
	return nil
}

// think searches for the computer's move on its own goroutine and waits for
// it, giving up when ctx is done or the user interrupts. A search which is
// given up on is left to finish in the background.
func (session *session) think(ctx context.Context) (string, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	type result struct {
		move string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		move, err := util.Spin(" thinking", session.game.ComputerMove)
		done <- result{move, err}
	}()

	select {
	case r := <-done:
		return r.move, r.err
	case <-ctx.Done():
		logrus.Debug("Search interrupted")
		return "", ctx.Err()
	}
}

func (session *session) show() {
	fmt.Fprintf(session.out, "%s\n\n", session.game.Display())

	switch session.game.WinState() {
	case games.Decisive:
		fmt.Fprintln(session.out, "game over: decisive result")
	case games.Draw:
		fmt.Fprintln(session.out, "game over: draw")
	}
}
