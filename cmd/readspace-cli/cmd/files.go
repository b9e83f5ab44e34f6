package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"readspace/internal/adapters/editor"
	"readspace/internal/adapters/filesystem"
	"readspace/internal/application/commands"
)

var addName string

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a file to the workspace registry",
	Long: `Add a file to the workspace registry, or refresh its content if it
is already registered. Reading history survives a re-upload.

Given a directory, every markdown and text document under it is added.

Examples:
  readspace-cli add notes.md
  readspace-cli add ~/Downloads/paper.md --name paper.md
  readspace-cli add ~/notes/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			return addDirectory(args[0])
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		name := addName
		if name == "" {
			name = filepath.Base(args[0])
		}

		ingest := commands.NewIngestFileCommand(ws, store, name, string(content))
		result, err := ingest.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func addDirectory(root string) error {
	docs, err := filesystem.NewScanner(root).Scan()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		ingest := commands.NewIngestFileCommand(ws, store, doc.Name, doc.Content)
		result, err := ingest.Execute(context.Background())
		if err != nil {
			return fmt.Errorf("%s: %w", doc.Name, err)
		}
		fmt.Println(result.Message)
	}
	fmt.Printf("Added %d files from %s\n", len(docs), root)
	return nil
}

var openCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Open a file: print its content and record the open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		open := commands.NewOpenFileCommand(ws, store, activityPort(), args[0], "")
		result, err := open.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Print(result.File.Content)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Open a file in your editor and save the result back",
	Long: `Open a registry file in $READSPACE_EDITOR (or $EDITOR) and write the
edited content back to the registry. Reading history is untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := ws.Files[args[0]]
		if file == nil {
			return fmt.Errorf("unknown file: %s", args[0])
		}
		edited, err := editor.NewOpener().EditContent(file.Name, file.Content)
		if err != nil {
			return err
		}
		if edited == file.Content {
			fmt.Println("No changes.")
			return nil
		}
		ingest := commands.NewIngestFileCommand(ws, store, file.Name, edited)
		result, err := ingest.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var listAll bool

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List registry files with progress and open counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		files := ws.VisibleFiles()
		if listAll {
			files = ws.AllFiles()
		}
		for _, f := range files {
			line := fmt.Sprintf("%s\t%d%%\t%d opens", f.Name, f.ReadProgress, f.OpenCount)
			if f.LastOpened != "" {
				line += "\tlast " + f.LastOpened
			}
			if f.HiddenFromSources {
				line += "\t(hidden)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <name> <percent>",
	Short: "Set a file's reading progress",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		percent, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid percent: %s", args[1])
		}
		set := commands.NewSetProgressCommand(ws, store, args[0], percent)
		if err := set.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("%s at %d%%\n", args[0], ws.Files[args[0]].ReadProgress)
		return nil
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide <name>",
	Short: "Hide a file from the sources panel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hide := commands.NewSetVisibilityCommand(ws, store, args[0], true)
		if err := hide.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Hidden %s\n", args[0])
		return nil
	},
}

var unhideCmd = &cobra.Command{
	Use:   "unhide <name>",
	Short: "Bring a hidden file back to the sources panel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unhide := commands.NewSetVisibilityCommand(ws, store, args[0], false)
		if err := unhide.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Visible %s\n", args[0])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "registry name (defaults to the file's base name)")
	filesCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include hidden files")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(unhideCmd)
}
