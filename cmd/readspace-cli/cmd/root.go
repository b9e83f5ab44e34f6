package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"readspace/internal/adapters/localstore"
	"readspace/internal/adapters/sqlite"
	"readspace/internal/config"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

var (
	dataDir  string
	store    *localstore.Store
	ws       *domain.Workspace
	activity *sqlite.Index
)

var rootCmd = &cobra.Command{
	Use:   "readspace-cli",
	Short: "CLI for the readspace reading workspace",
	Long: `readspace-cli manages a personal reading workspace: a registry of
markdown files, project trees that organize them, and per-day reading
statistics.

It provides commands to add, open, and organize files, manage projects
and folders, and import or export the whole workspace.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		store, err = localstore.New(dataDir, zap.NewNop())
		if err != nil {
			return err
		}
		ws, err = store.LoadState()
		if err != nil {
			return err
		}
		activity = sqlite.NewIndex()
		if err := activity.Open(dataDir); err != nil {
			activity = nil
		} else if activity.NeedsFullRebuild() {
			if err := activity.Rebuild(ws.Statistics); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if activity != nil {
			activity.Close()
		}
		if store != nil {
			store.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "D", config.DataDir(), "path to the data directory")
}

// activityPort avoids handing a typed nil to command constructors
func activityPort() ports.ActivityIndex {
	if activity == nil {
		return nil
	}
	return activity
}
