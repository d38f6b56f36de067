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
)

func Plugin() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage the installed plugin games",
	}

	cmd.AddCommand(pluginInstall())
	cmd.AddCommand(pluginRemove())
	cmd.AddCommand(pluginList())
	return cmd
}

// djinn plugin install
func pluginInstall() *cobra.Command {
	return &cobra.Command{
		Use:   "install { file directory owner/repo git-url }[@ref]",
		Short: "Install plugin games",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`install installs the plugin games found at the given source
			so that they show up in 'djinn games'.

			A local .js file is copied into the store, as are the
			top-level .js files of a local directory. Git repositories,
			given as <owner>/<repo> for GitHub or as a full url, are
			cloned into the store and every top-level .js file in them
			is installed. A tag, branch or commit to check out can be
			appended to a repository after an '@'.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := store(cmd).Install(args[0])
			if err != nil {
				return err
			}

			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "Installed plugin \x1b[92m%s\x1b[0m.\n", entry.Name)
			}

			return nil
		},
	}
}

// djinn plugin remove
func pluginRemove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove plugin",
		Short: "Uninstall the given plugin game",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store(cmd).Remove(args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uninstalled plugin \x1b[32m%s\x1b[0m.\n", args[0])
			return nil
		},
	}
}

// djinn plugin list
func pluginList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the installed plugin games",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := store(cmd).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "\x1b[31mNo Plugins Installed.\x1b[0m")
				return nil
			}

			fmt.Fprint(out, "\x1b[32mInstalled Plugins\x1b[0m:\n\n")
			for _, entry := range entries {
				fmt.Fprintf(out, "- %-20s %s\n", "\x1b[34m"+entry.Name+"\x1b[0m:", entry.Source)
			}

			return nil
		},
	}
}
