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
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/djinn/internal/util"
)

// djinn move
func Move() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move game [moves...]",
		Short: "Print the computer's move in a position",
		Args:  cobra.MinimumNArgs(1),
		Long: heredoc.Doc(`move plays the given moves from the starting position of
			the game, or from the position given with --fen, and prints
			the move the computer would play next.

			The game is named by its key or by its id as listed by
			'djinn games'.`),
		Example: heredoc.Doc(`
			$ djinn move tictactoe a1
			b2
			$ djinn move chess --depth 1 f2f3 e7e5 g2g4
			d8h4`),

		RunE: func(cmd *cobra.Command, args []string) error {
			depth, _ := cmd.Flags().GetInt("depth")
			fen, _ := cmd.Flags().GetString("fen")

			game, err := open(cmd, args[0], depth, fen)
			if err != nil {
				return err
			}

			for _, move := range args[1:] {
				if err := game.PlayMove(move); err != nil {
					return err
				}
			}

			move, err := util.Spin(" thinking", game.ComputerMove)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), move)
			return nil
		},
	}

	cmd.Flags().IntP("depth", "d", 0, "Search depth, overriding the configured one")
	cmd.Flags().String("fen", "", "Starting position of the game")

	return cmd
}
