package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"readspace/internal/application/commands"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the workspace as a JSON document",
	Long: `Export the full workspace (files, projects, statistics) as a JSON
document to stdout or a file.

Examples:
  readspace-cli export > backup.json
  readspace-cli export -o backup.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		export := commands.NewExportCommand(ws)
		result, err := export.Execute(context.Background())
		if err != nil {
			return err
		}
		if exportOutput == "" {
			fmt.Println(string(result.Data))
			return nil
		}
		if err := os.WriteFile(exportOutput, result.Data, 0644); err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Merge an exported document into the workspace",
	Long: `Merge an exported workspace document. The merge never loses local
data: reading progress and open counts keep their maximum, non-empty
imported content wins, and imported projects are appended with fresh
IDs. Both the current and the legacy export schema are accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		confirm := confirmOnTerminal
		if importYes {
			confirm = nil
		}
		imp := commands.NewImportCommand(ws, store, data, confirm)
		result, err := imp.Execute(context.Background())
		if err != nil {
			return err
		}
		if activity != nil {
			if err := activity.Rebuild(ws.Statistics); err != nil {
				return err
			}
		}
		fmt.Println(result.Message)
		return nil
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all workspace state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes && !askYesNo("Discard all files, projects, and statistics?") {
			fmt.Println("Cancelled.")
			return nil
		}
		reset := commands.NewResetCommand(ws, store)
		if err := reset.Execute(context.Background()); err != nil {
			return err
		}
		if activity != nil {
			if err := activity.Rebuild(ws.Statistics); err != nil {
				return err
			}
		}
		fmt.Println("Workspace reset.")
		return nil
	},
}

func confirmOnTerminal(summary string) bool {
	return askYesNo(summary)
}

func askYesNo(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "merge without asking")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "reset without asking")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
}
