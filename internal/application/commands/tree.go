package commands

import (
	"context"
	"errors"
	"fmt"

	"readspace/internal/application"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// InsertFileCommand places a registry file into a project tree at a
// specific position. A file may appear at most once per project.
type InsertFileCommand struct {
	ws         *domain.Workspace
	store      ports.StateStore
	ProjectID  string
	FileName   string
	ParentPath string
	Index      int
}

// NewInsertFileCommand creates a new InsertFileCommand
func NewInsertFileCommand(ws *domain.Workspace, store ports.StateStore, projectID, fileName, parentPath string, index int) *InsertFileCommand {
	return &InsertFileCommand{ws: ws, store: store, ProjectID: projectID, FileName: fileName, ParentPath: parentPath, Index: index}
}

// Validate checks if the insert is valid
func (c *InsertFileCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("fileName", c.FileName)
}

// Execute runs the insert command
func (c *InsertFileCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := parsePath(c.ParentPath)
	if err != nil {
		return err
	}
	if err := c.ws.InsertFile(c.ProjectID, path, c.Index, c.FileName); err != nil {
		if errors.Is(err, domain.ErrDuplicateFile) {
			return fmt.Errorf("%s is already in this project: %w", c.FileName, err)
		}
		return fmt.Errorf("failed to insert file: %w", err)
	}
	return persist(c.store, c.ws)
}

// RemoveFileCommand removes a file node from a project tree. The
// registry record is untouched; a file dropped from its last project
// becomes visible in the sources list again.
type RemoveFileCommand struct {
	ws        *domain.Workspace
	store     ports.StateStore
	ProjectID string
	Path      string
}

// NewRemoveFileCommand creates a new RemoveFileCommand
func NewRemoveFileCommand(ws *domain.Workspace, store ports.StateStore, projectID, path string) *RemoveFileCommand {
	return &RemoveFileCommand{ws: ws, store: store, ProjectID: projectID, Path: path}
}

// Validate checks if the removal is valid
func (c *RemoveFileCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the remove command
func (c *RemoveFileCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := parsePath(c.Path)
	if err != nil {
		return err
	}
	if err := c.ws.RemoveFile(c.ProjectID, path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return persist(c.store, c.ws)
}

// MoveFileCommand relocates a file node within a project or across
// projects. All positions are validated before anything is mutated.
type MoveFileCommand struct {
	ws            *domain.Workspace
	store         ports.StateStore
	FromProjectID string
	FromPath      string
	ToProjectID   string
	ToParentPath  string
	ToIndex       int
}

// NewMoveFileCommand creates a new MoveFileCommand
func NewMoveFileCommand(ws *domain.Workspace, store ports.StateStore, fromProjectID, fromPath, toProjectID, toParentPath string, toIndex int) *MoveFileCommand {
	return &MoveFileCommand{
		ws:            ws,
		store:         store,
		FromProjectID: fromProjectID,
		FromPath:      fromPath,
		ToProjectID:   toProjectID,
		ToParentPath:  toParentPath,
		ToIndex:       toIndex,
	}
}

// Validate checks if the move is valid
func (c *MoveFileCommand) Validate() error {
	if err := application.ValidateRequired("fromProjectID", c.FromProjectID); err != nil {
		return err
	}
	if err := application.ValidateRequired("fromPath", c.FromPath); err != nil {
		return err
	}
	return application.ValidateRequired("toProjectID", c.ToProjectID)
}

// Execute runs the move command
func (c *MoveFileCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	fromPath, err := parsePath(c.FromPath)
	if err != nil {
		return err
	}
	toPath, err := parsePath(c.ToParentPath)
	if err != nil {
		return err
	}
	if err := c.ws.MoveFile(c.FromProjectID, fromPath, c.ToProjectID, toPath, c.ToIndex); err != nil {
		return &application.MoveError{
			File:   c.FromPath,
			Source: c.FromProjectID,
			Dest:   c.ToProjectID,
			Reason: err,
		}
	}
	return persist(c.store, c.ws)
}
