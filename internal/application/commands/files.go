package commands

import (
	"context"
	"fmt"

	"readspace/internal/application"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// IngestFileResult contains the result of loading a document
type IngestFileResult struct {
	File    *domain.FileRecord
	Message string
}

// IngestFileCommand creates or refreshes a registry record. Re-uploading
// an existing file keeps its reading history.
type IngestFileCommand struct {
	ws      *domain.Workspace
	store   ports.StateStore
	Name    string
	Content string
}

// NewIngestFileCommand creates a new IngestFileCommand
func NewIngestFileCommand(ws *domain.Workspace, store ports.StateStore, name, content string) *IngestFileCommand {
	return &IngestFileCommand{ws: ws, store: store, Name: name, Content: content}
}

// Validate checks if the ingest operation is valid
func (c *IngestFileCommand) Validate() error {
	return application.ValidateRequired("fileName", c.Name)
}

// Execute runs the ingest command
func (c *IngestFileCommand) Execute(ctx context.Context) (*IngestFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	file, err := c.ws.Ingest(c.Name, c.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest file: %w", err)
	}
	if err := persist(c.store, c.ws); err != nil {
		return nil, err
	}
	return &IngestFileResult{
		File:    file,
		Message: fmt.Sprintf("Loaded %s (%d bytes)", file.Name, len(file.Content)),
	}, nil
}

// OpenFileResult contains the opened record and its content for display
type OpenFileResult struct {
	File    *domain.FileRecord
	Message string
}

// OpenFileCommand records a file open: bumps counters, appends to the
// statistics ledger, mirrors the event into the activity index, and makes
// the file current.
type OpenFileCommand struct {
	ws       *domain.Workspace
	store    ports.StateStore
	activity ports.ActivityIndex
	Name     string
	Date     string
}

// NewOpenFileCommand creates a new OpenFileCommand. The activity index
// may be nil when no index is attached.
func NewOpenFileCommand(ws *domain.Workspace, store ports.StateStore, activity ports.ActivityIndex, name, date string) *OpenFileCommand {
	if date == "" {
		date = domain.Today()
	}
	return &OpenFileCommand{ws: ws, store: store, activity: activity, Name: name, Date: date}
}

// Validate checks if the open operation is valid
func (c *OpenFileCommand) Validate() error {
	return application.ValidateRequired("fileName", c.Name)
}

// Execute runs the open command
func (c *OpenFileCommand) Execute(ctx context.Context) (*OpenFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.ws.OpenFile(c.Name, c.Date); err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if c.activity != nil {
		// Index lag is tolerable; the ledger stays the source of truth.
		_ = c.activity.RecordOpen(c.Date, c.Name)
	}
	if err := persist(c.store, c.ws); err != nil {
		return nil, err
	}
	file := c.ws.Files[c.Name]
	return &OpenFileResult{
		File:    file,
		Message: fmt.Sprintf("Opened %s (%d opens)", file.Name, file.OpenCount),
	}, nil
}

// SetProgressCommand stores a clamped read percentage, fed by whatever
// tracks the viewport scroll position
type SetProgressCommand struct {
	ws      *domain.Workspace
	store   ports.StateStore
	Name    string
	Percent int
}

// NewSetProgressCommand creates a new SetProgressCommand
func NewSetProgressCommand(ws *domain.Workspace, store ports.StateStore, name string, percent int) *SetProgressCommand {
	return &SetProgressCommand{ws: ws, store: store, Name: name, Percent: percent}
}

// Validate checks if the progress update is valid
func (c *SetProgressCommand) Validate() error {
	return application.ValidateRequired("fileName", c.Name)
}

// Execute runs the progress command
func (c *SetProgressCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.ws.SetReadProgress(c.Name, c.Percent); err != nil {
		return fmt.Errorf("failed to set progress: %w", err)
	}
	return persist(c.store, c.ws)
}

// SetVisibilityCommand hides a file from the sources list or brings it
// back. Hidden files remain addressable through project membership.
type SetVisibilityCommand struct {
	ws     *domain.Workspace
	store  ports.StateStore
	Name   string
	Hidden bool
}

// NewSetVisibilityCommand creates a new SetVisibilityCommand
func NewSetVisibilityCommand(ws *domain.Workspace, store ports.StateStore, name string, hidden bool) *SetVisibilityCommand {
	return &SetVisibilityCommand{ws: ws, store: store, Name: name, Hidden: hidden}
}

// Validate checks if the visibility change is valid
func (c *SetVisibilityCommand) Validate() error {
	return application.ValidateRequired("fileName", c.Name)
}

// Execute runs the visibility command
func (c *SetVisibilityCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	var err error
	if c.Hidden {
		err = c.ws.HideFile(c.Name)
	} else {
		err = c.ws.UnhideFile(c.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to change visibility: %w", err)
	}
	return persist(c.store, c.ws)
}
