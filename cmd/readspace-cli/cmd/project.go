package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"readspace/internal/application/commands"
	"readspace/internal/domain"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long: `Manage projects and their trees.

Examples:
  readspace-cli project add "Research"
  readspace-cli project list
  readspace-cli project rename project_1 "Deep work"
  readspace-cli project delete project_1`,
}

var projectDescription string

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		add := commands.NewAddProjectCommand(ws, store, args[0], projectDescription)
		result, err := add.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in creation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range ws.ProjectsInOrder() {
			fmt.Printf("%s\t%s\t%d files\n", p.ID, p.Name, domain.CountFiles(p.Structure))
		}
		return nil
	},
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename <project-id> <new-name>",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rename := commands.NewRenameProjectCommand(ws, store, args[0], args[1])
		if err := rename.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Renamed %s to %s\n", args[0], args[1])
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project (files keep their registry records)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		del := commands.NewDeleteProjectCommand(ws, store, args[0])
		result, err := del.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var projectToggleCmd = &cobra.Command{
	Use:   "toggle <project-id>",
	Short: "Collapse or expand a project in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toggle := commands.NewToggleProjectCommand(ws, store, args[0])
		if err := toggle.Execute(context.Background()); err != nil {
			return err
		}
		p, err := ws.Project(args[0])
		if err != nil {
			return err
		}
		if p.Expanded {
			fmt.Printf("Expanded %s\n", p.Name)
		} else {
			fmt.Printf("Collapsed %s\n", p.Name)
		}
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print every project tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range ws.ProjectsInOrder() {
			fmt.Printf("%s  %s\n", p.ID, p.Name)
			printNodes(p.Structure, "  ")
		}
		return nil
	},
}

func printNodes(nodes []*domain.Node, indent string) {
	for _, node := range nodes {
		if node.Type == domain.NodeFolder {
			fmt.Printf("%s%s/\n", indent, node.Name)
			printNodes(node.Children, indent+"  ")
		} else {
			fmt.Printf("%s%s\n", indent, node.Name)
		}
	}
}

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders inside project trees",
	Long: `Manage folders inside project trees. Positions use dot-separated
index paths; "0.2" is the third child of the first root node.

Examples:
  readspace-cli folder add project_1 Papers
  readspace-cli folder add project_1 Archive --parent 0
  readspace-cli folder delete project_1 0`,
}

var folderParent string

var folderAddCmd = &cobra.Command{
	Use:   "add <project-id> <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		add := commands.NewAddFolderCommand(ws, store, args[0], folderParent, args[1])
		if err := add.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Created folder %s\n", args[1])
		return nil
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename <project-id> <path> <new-name>",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rename := commands.NewRenameFolderCommand(ws, store, args[0], args[1], args[2])
		if err := rename.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Renamed folder to %s\n", args[2])
		return nil
	},
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete <project-id> <path>",
	Short: "Delete a folder (direct files move up, subfolders are lost)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		del := commands.NewDeleteFolderCommand(ws, store, args[0], args[1])
		if err := del.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Println("Folder deleted")
		return nil
	},
}

var insertParent string
var insertIndex int

var insertCmd = &cobra.Command{
	Use:   "insert <project-id> <file-name>",
	Short: "Place a registry file into a project tree",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		insert := commands.NewInsertFileCommand(ws, store, args[0], args[1], insertParent, insertIndex)
		if err := insert.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Added %s to %s\n", args[1], args[0])
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <project-id> <path>",
	Short: "Remove a file node from a project tree",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remove := commands.NewRemoveFileCommand(ws, store, args[0], args[1])
		if err := remove.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Println("File removed from project")
		return nil
	},
}

var moveToParent string
var moveToIndex int

var moveCmd = &cobra.Command{
	Use:   "move <from-project-id> <from-path> <to-project-id>",
	Short: "Move a file node within or across projects",
	Long: `Move a file node within a project tree or to another project.

Examples:
  readspace-cli move project_1 0 project_1 --index 3
  readspace-cli move project_1 0.1 project_2 --parent 0 --index 0`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		move := commands.NewMoveFileCommand(ws, store, args[0], args[1], args[2], moveToParent, moveToIndex)
		if err := move.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Println("File moved")
		return nil
	},
}

func init() {
	projectAddCmd.Flags().StringVar(&projectDescription, "description", "", "project description")
	folderAddCmd.Flags().StringVar(&folderParent, "parent", "", "parent folder path (defaults to the project root)")
	insertCmd.Flags().StringVar(&insertParent, "parent", "", "parent folder path (defaults to the project root)")
	insertCmd.Flags().IntVar(&insertIndex, "index", -1, "insert position (out of range appends)")
	moveCmd.Flags().StringVar(&moveToParent, "parent", "", "destination folder path (defaults to the project root)")
	moveCmd.Flags().IntVar(&moveToIndex, "index", 0, "destination position")

	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectToggleCmd)

	rootCmd.AddCommand(treeCmd)

	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderRenameCmd)
	folderCmd.AddCommand(folderDeleteCmd)

	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(moveCmd)
}
