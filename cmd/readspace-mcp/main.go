package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"readspace/internal/adapters/localstore"
	mcpadapter "readspace/internal/adapters/mcp"
	"readspace/internal/adapters/sqlite"
	"readspace/internal/config"
	"readspace/internal/ports"
)

func main() {
	dataFlag := flag.String("data", config.DataDir(), "path to the data directory")
	flag.Parse()

	store, err := localstore.New(*dataFlag, zap.NewNop())
	if err != nil {
		log.Fatalf("readspace-mcp: %v", err)
	}
	defer store.Close()

	ws, err := store.LoadState()
	if err != nil {
		log.Fatalf("readspace-mcp: %v", err)
	}

	var activity ports.ActivityIndex
	index := sqlite.NewIndex()
	if err := index.Open(*dataFlag); err == nil {
		defer index.Close()
		if index.NeedsFullRebuild() {
			if err := index.Rebuild(ws.Statistics); err != nil {
				log.Fatalf("readspace-mcp: %v", err)
			}
		}
		activity = index
	}

	mcpServer := server.NewMCPServer(
		"readspace-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, ws)
	mcpadapter.RegisterWriteTools(mcpServer, ws, store, activity)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("readspace-mcp: %v", err)
	}
}
