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
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/djinn/pkg/config"
	"laptudirm.com/x/djinn/pkg/manager"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "djinn",
		Short: "Play and analyse two-player games with a minimax search",
		Long: heredoc.Doc(`djinn plays two-player zero-sum games against you using a
			negamax search with alpha-beta pruning.

			Tic tac toe, ataxx and chess are built in, and any other game
			can be added as a JavaScript plugin: a .js file declaring a
			class named after the file, see 'djinn plugin install'.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Djinn's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().String("config", config.File, "Configuration file to use")
	root.PersistentFlags().String("data", manager.Directory, "Directory of the plugin store")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Games())
	root.AddCommand(Play())
	root.AddCommand(Move())
	root.AddCommand(Duel())
	root.AddCommand(Plugin())

	return root
}

// settings loads the configuration file named by the --config flag.
func settings(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// store returns the plugin store named by the --data flag.
func store(cmd *cobra.Command) *manager.Store {
	dir, _ := cmd.Flags().GetString("data")
	store := manager.NewStore(dir)
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		store.Progress = cmd.ErrOrStderr()
	}

	return store
}
