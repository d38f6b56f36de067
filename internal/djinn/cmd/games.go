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

	"github.com/spf13/cobra"
)

func Games() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List the games which can be played",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := catalog(cmd, 0)
			if err != nil {
				return err
			}

			thumbnails, _ := cmd.Flags().GetBool("thumbnails")
			out := cmd.OutOrStdout()

			for _, entry := range registry.Entries() {
				fmt.Fprintf(out, "%-4s %-12s %s\n", entry.ID, entry.Key, entry.Game.Name())
				if thumbnails {
					fmt.Fprintf(out, "\n%s\n\n", entry.Game.Thumbnail())
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("thumbnails", false, "Show the thumbnail of each game")
	return cmd
}
