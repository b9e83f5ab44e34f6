package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"readspace/internal/application"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// ExportResult carries the serialized snapshot
type ExportResult struct {
	Data    []byte
	Message string
}

// ExportCommand serializes the whole workspace into a portable document
type ExportCommand struct {
	ws  *domain.Workspace
	now func() time.Time
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(ws *domain.Workspace) *ExportCommand {
	return &ExportCommand{ws: ws, now: time.Now}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	doc := c.ws.Export(c.now())
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export workspace: %w", err)
	}
	return &ExportResult{
		Data:    data,
		Message: fmt.Sprintf("Exported %d files and %d projects", len(doc.Files), len(doc.Projects)),
	}, nil
}

// ImportResult reports what the merge changed
type ImportResult struct {
	Report  *domain.MergeReport
	Message string
}

// ConfirmFunc decides whether a parsed import should be merged. It
// receives a human-readable summary of the incoming document.
type ConfirmFunc func(summary string) bool

// ImportCommand parses an exported document and merges it into the
// workspace. The merge never loses local data: progress and counters
// keep their maximum, imported projects are always appended.
type ImportCommand struct {
	ws      *domain.Workspace
	store   ports.StateStore
	Data    []byte
	Confirm ConfirmFunc
}

// NewImportCommand creates a new ImportCommand. A nil confirm function
// merges without asking.
func NewImportCommand(ws *domain.Workspace, store ports.StateStore, data []byte, confirm ConfirmFunc) *ImportCommand {
	return &ImportCommand{ws: ws, store: store, Data: data, Confirm: confirm}
}

// Validate checks if the import payload is present
func (c *ImportCommand) Validate() error {
	if len(c.Data) == 0 {
		return &application.ValidationError{Field: "data", Message: "is required"}
	}
	return nil
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	doc, err := domain.ParseImport(c.Data)
	if err != nil {
		return nil, &application.ImportError{Reason: err.Error()}
	}
	if c.Confirm != nil {
		s := doc.Summary()
		prompt := fmt.Sprintf("Import %d projects and %d files (%d in project trees)?",
			s.ProjectCount, s.FileCount, s.FilesInProjects)
		if !c.Confirm(prompt) {
			return nil, application.ErrImportDeclined
		}
	}
	report := c.ws.MergeImport(doc)
	if err := persist(c.store, c.ws); err != nil {
		return nil, err
	}
	return &ImportResult{
		Report: report,
		Message: fmt.Sprintf("Imported %d new files, updated %d, added %d projects",
			report.FilesAdded, report.FilesUpdated, report.ProjectsAdded),
	}, nil
}

// ResetCommand discards all workspace state and starts over. The
// caller is expected to have confirmed the action.
type ResetCommand struct {
	ws    *domain.Workspace
	store ports.StateStore
}

// NewResetCommand creates a new ResetCommand
func NewResetCommand(ws *domain.Workspace, store ports.StateStore) *ResetCommand {
	return &ResetCommand{ws: ws, store: store}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context) error {
	c.ws.Reset()
	return persist(c.store, c.ws)
}
