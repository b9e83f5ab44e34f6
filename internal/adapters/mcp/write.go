package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"readspace/internal/application/commands"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// RegisterWriteTools adds all mutating workspace tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, ws *domain.Workspace, store ports.StateStore, activity ports.ActivityIndex) {
	s.AddTool(addFileTool(), addFileHandler(ws, store))
	s.AddTool(openFileTool(), openFileHandler(ws, store, activity))
	s.AddTool(setProgressTool(), setProgressHandler(ws, store))
	s.AddTool(createProjectTool(), createProjectHandler(ws, store))
	s.AddTool(deleteProjectTool(), deleteProjectHandler(ws, store))
	s.AddTool(addToProjectTool(), addToProjectHandler(ws, store))
	s.AddTool(moveFileTool(), moveFileHandler(ws, store))
	s.AddTool(removeFromProjectTool(), removeFromProjectHandler(ws, store))
	s.AddTool(addFolderTool(), addFolderHandler(ws, store))
	s.AddTool(importTool(), importHandler(ws, store))
}

// --- add_file ---

func addFileTool() mcp.Tool {
	return mcp.NewTool("add_file",
		mcp.WithDescription("Add a file to the workspace registry, or refresh its content. Reading history survives a re-upload."),
		mcp.WithString("name",
			mcp.Description("File name (e.g. notes.md)"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("File content"),
			mcp.Required(),
		),
	)
}

func addFileHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewIngestFileCommand(ws, store,
			req.GetString("name", ""), req.GetString("content", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- open_file ---

func openFileTool() mcp.Tool {
	return mcp.NewTool("open_file",
		mcp.WithDescription("Record an open of a file: bumps the open counter and today's activity, and makes it the current file."),
		mcp.WithString("name",
			mcp.Description("File name"),
			mcp.Required(),
		),
	)
}

func openFileHandler(ws *domain.Workspace, store ports.StateStore, activity ports.ActivityIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewOpenFileCommand(ws, store, activity, req.GetString("name", ""), "")
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_progress ---

func setProgressTool() mcp.Tool {
	return mcp.NewTool("set_progress",
		mcp.WithDescription("Set a file's reading progress percentage (clamped to 0-100)."),
		mcp.WithString("name",
			mcp.Description("File name"),
			mcp.Required(),
		),
		mcp.WithNumber("percent",
			mcp.Description("Progress percentage"),
			mcp.Required(),
		),
	)
}

func setProgressHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetProgressCommand(ws, store,
			req.GetString("name", ""), req.GetInt("percent", 0))
		if err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Progress updated."), nil
	}
}

// --- create_project ---

func createProjectTool() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project with an empty tree."),
		mcp.WithString("name",
			mcp.Description("Project name"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("Optional project description"),
		),
	)
}

func createProjectHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddProjectCommand(ws, store,
			req.GetString("name", ""), req.GetString("description", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_project ---

func deleteProjectTool() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project. Files keep their registry records; a file losing its last project reappears in the sources panel."),
		mcp.WithString("project_id",
			mcp.Description("Project ID (e.g. project_3)"),
			mcp.Required(),
		),
	)
}

func deleteProjectHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeleteProjectCommand(ws, store, req.GetString("project_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_to_project ---

func addToProjectTool() mcp.Tool {
	return mcp.NewTool("add_to_project",
		mcp.WithDescription("Place a registry file into a project tree. A file may appear at most once per project."),
		mcp.WithString("project_id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("File name"),
			mcp.Required(),
		),
		mcp.WithString("parent_path",
			mcp.Description("Dot-separated folder path (e.g. 0.2). Omit for the project root."),
		),
		mcp.WithNumber("index",
			mcp.Description("Insert position among the parent's children. Out-of-range appends."),
		),
	)
}

func addToProjectHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewInsertFileCommand(ws, store,
			req.GetString("project_id", ""),
			req.GetString("name", ""),
			req.GetString("parent_path", ""),
			req.GetInt("index", -1))
		if err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("File added to project."), nil
	}
}

// --- move_file ---

func moveFileTool() mcp.Tool {
	return mcp.NewTool("move_file",
		mcp.WithDescription("Move a file node within a project tree or across projects."),
		mcp.WithString("from_project_id",
			mcp.Description("Source project ID"),
			mcp.Required(),
		),
		mcp.WithString("from_path",
			mcp.Description("Dot-separated path of the file node to move"),
			mcp.Required(),
		),
		mcp.WithString("to_project_id",
			mcp.Description("Destination project ID"),
			mcp.Required(),
		),
		mcp.WithString("to_parent_path",
			mcp.Description("Dot-separated destination folder path. Omit for the project root."),
		),
		mcp.WithNumber("to_index",
			mcp.Description("Insert position among the destination's children."),
		),
	)
}

func moveFileHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMoveFileCommand(ws, store,
			req.GetString("from_project_id", ""),
			req.GetString("from_path", ""),
			req.GetString("to_project_id", ""),
			req.GetString("to_parent_path", ""),
			req.GetInt("to_index", 0))
		if err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("File moved."), nil
	}
}

// --- remove_from_project ---

func removeFromProjectTool() mcp.Tool {
	return mcp.NewTool("remove_from_project",
		mcp.WithDescription("Remove a file node from a project tree. The registry record is untouched."),
		mcp.WithString("project_id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Dot-separated path of the file node"),
			mcp.Required(),
		),
	)
}

func removeFromProjectHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRemoveFileCommand(ws, store,
			req.GetString("project_id", ""), req.GetString("path", ""))
		if err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("File removed from project."), nil
	}
}

// --- add_folder ---

func addFolderTool() mcp.Tool {
	return mcp.NewTool("add_folder",
		mcp.WithDescription("Create a folder inside a project tree."),
		mcp.WithString("project_id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Folder name"),
			mcp.Required(),
		),
		mcp.WithString("parent_path",
			mcp.Description("Dot-separated parent folder path. Omit for the project root."),
		),
	)
}

func addFolderHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddFolderCommand(ws, store,
			req.GetString("project_id", ""),
			req.GetString("parent_path", ""),
			req.GetString("name", ""))
		if err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Folder created."), nil
	}
}

// --- import ---

func importTool() mcp.Tool {
	return mcp.NewTool("import",
		mcp.WithDescription("Merge an exported workspace document. The merge never loses local data: progress keeps its maximum, imported projects are appended."),
		mcp.WithString("data",
			mcp.Description("Exported JSON document"),
			mcp.Required(),
		),
	)
}

func importHandler(ws *domain.Workspace, store ports.StateStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewImportCommand(ws, store, []byte(req.GetString("data", "")), nil)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
