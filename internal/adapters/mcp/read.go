// Package mcp exposes the workspace to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"readspace/internal/application/commands"
	"readspace/internal/domain"
)

// RegisterReadTools adds all read-only workspace tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, ws *domain.Workspace) {
	s.AddTool(listFilesTool(), listFilesHandler(ws))
	s.AddTool(readFileTool(), readFileHandler(ws))
	s.AddTool(treeTool(), treeHandler(ws))
	s.AddTool(statsTool(), statsHandler(ws))
	s.AddTool(exportTool(), exportHandler(ws))
}

// --- list_files ---

func listFilesTool() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List files in the workspace registry with reading progress and open counts. By default lists only files visible in the sources panel."),
		mcp.WithBoolean("all",
			mcp.Description("Include files hidden from the sources panel."),
		),
	)
}

func listFilesHandler(ws *domain.Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		files := ws.VisibleFiles()
		if req.GetBool("all", false) {
			files = ws.AllFiles()
		}
		if len(files) == 0 {
			return mcp.NewToolResultText("No files."), nil
		}
		var sb strings.Builder
		for _, f := range files {
			fmt.Fprintf(&sb, "%s  %d%%  %d opens", f.Name, f.ReadProgress, f.OpenCount)
			if f.LastOpened != "" {
				fmt.Fprintf(&sb, "  last %s", f.LastOpened)
			}
			if f.HiddenFromSources {
				sb.WriteString("  (hidden)")
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_file ---

func readFileTool() mcp.Tool {
	return mcp.NewTool("read_file",
		mcp.WithDescription("Read a file's content from the workspace registry."),
		mcp.WithString("name",
			mcp.Description("File name (e.g. notes.md)"),
			mcp.Required(),
		),
	)
}

func readFileHandler(ws *domain.Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		if name == "" {
			return toolError(fmt.Errorf("name is required"))
		}
		file := ws.Files[name]
		if file == nil {
			return toolError(fmt.Errorf("unknown file: %s", name))
		}
		return mcp.NewToolResultText(file.Content), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display every project tree with its folders and files."),
	)
}

func treeHandler(ws *domain.Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects := ws.ProjectsInOrder()
		if len(projects) == 0 {
			return mcp.NewToolResultText("No projects."), nil
		}
		var sb strings.Builder
		for _, project := range projects {
			fmt.Fprintf(&sb, "%s  %s\n", project.ID, project.Name)
			renderTree(&sb, project.Structure, "  ")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, nodes []*domain.Node, prefix string) {
	for _, node := range nodes {
		if node.Type == domain.NodeFolder {
			fmt.Fprintf(sb, "%s%s/\n", prefix, node.Name)
			renderTree(sb, node.Children, prefix+"  ")
		} else {
			fmt.Fprintf(sb, "%s%s\n", prefix, node.Name)
		}
	}
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Show overall reading statistics, or per-file open counts for one date."),
		mcp.WithString("date",
			mcp.Description("Date in YYYY-MM-DD form. Omit for overall statistics."),
		),
	)
}

func statsHandler(ws *domain.Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := req.GetString("date", "")
		if date != "" {
			totals := ws.Statistics.FilesActiveOn(date)
			if len(totals) == 0 {
				return mcp.NewToolResultText("No activity on " + date + "."), nil
			}
			var sb strings.Builder
			for name, count := range totals {
				fmt.Fprintf(&sb, "%s  %d opens\n", name, count)
			}
			return mcp.NewToolResultText(sb.String()), nil
		}

		stats := ws.Stats()
		return mcp.NewToolResultText(fmt.Sprintf(
			"%d files, %d opens across %d active days, average progress %d%%",
			stats.FileCount, stats.TotalOpens, stats.ActiveDays, stats.AverageProgress,
		)), nil
	}
}

// --- export ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export",
		mcp.WithDescription("Export the full workspace as a JSON document."),
	)
}

func exportHandler(ws *domain.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewExportCommand(ws).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(result.Data)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
