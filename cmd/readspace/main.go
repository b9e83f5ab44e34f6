package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"readspace/internal/adapters/editor"
	"readspace/internal/adapters/localstore"
	"readspace/internal/adapters/markdown"
	"readspace/internal/adapters/sqlite"
	"readspace/internal/adapters/tui"
	"readspace/internal/config"
	"readspace/internal/ports"
)

func main() {
	dataDir := config.DataDir()

	logger := newLogger(dataDir)
	defer logger.Sync()

	store, err := localstore.New(dataDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ws, err := store.LoadState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The activity index is optional; the ledger alone covers every
	// calendar query.
	activity := sqlite.NewIndex()
	if err := activity.Open(dataDir); err != nil {
		logger.Warn("activity index unavailable", zap.Error(err))
		activity = nil
	} else {
		defer activity.Close()
		if activity.NeedsFullRebuild() {
			if err := activity.Rebuild(ws.Statistics); err != nil {
				logger.Warn("activity index rebuild failed", zap.Error(err))
			}
		}
	}

	app := tui.NewApp(ws, store, activityPort(activity), markdown.NewRenderer(), editor.NewOpener())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// activityPort avoids handing a typed nil to the interface field
func activityPort(idx *sqlite.Index) ports.ActivityIndex {
	if idx == nil {
		return nil
	}
	return idx
}

// newLogger writes to a file inside the data dir; stderr would corrupt
// the alternate screen
func newLogger(dataDir string) *zap.Logger {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dataDir, "readspace.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
