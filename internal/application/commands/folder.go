package commands

import (
	"context"
	"fmt"

	"readspace/internal/application"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// AddFolderCommand creates an empty folder inside a project tree.
// An empty parent path targets the project root.
type AddFolderCommand struct {
	ws         *domain.Workspace
	store      ports.StateStore
	ProjectID  string
	ParentPath string
	Name       string
}

// NewAddFolderCommand creates a new AddFolderCommand
func NewAddFolderCommand(ws *domain.Workspace, store ports.StateStore, projectID, parentPath, name string) *AddFolderCommand {
	return &AddFolderCommand{ws: ws, store: store, ProjectID: projectID, ParentPath: parentPath, Name: name}
}

// Validate checks if the folder can be created
func (c *AddFolderCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("folderName", c.Name)
}

// Execute runs the add folder command
func (c *AddFolderCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := parsePath(c.ParentPath)
	if err != nil {
		return err
	}
	if err := c.ws.AddFolder(c.ProjectID, path, c.Name); err != nil {
		return fmt.Errorf("failed to add folder: %w", err)
	}
	return persist(c.store, c.ws)
}

// RenameFolderCommand changes a folder's name in place
type RenameFolderCommand struct {
	ws        *domain.Workspace
	store     ports.StateStore
	ProjectID string
	Path      string
	NewName   string
}

// NewRenameFolderCommand creates a new RenameFolderCommand
func NewRenameFolderCommand(ws *domain.Workspace, store ports.StateStore, projectID, path, newName string) *RenameFolderCommand {
	return &RenameFolderCommand{ws: ws, store: store, ProjectID: projectID, Path: path, NewName: newName}
}

// Validate checks if the rename is valid
func (c *RenameFolderCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return err
	}
	return application.ValidateRequired("newName", c.NewName)
}

// Execute runs the rename command
func (c *RenameFolderCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := parsePath(c.Path)
	if err != nil {
		return err
	}
	if err := c.ws.RenameFolder(c.ProjectID, path, c.NewName); err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}
	return persist(c.store, c.ws)
}

// DeleteFolderCommand removes a folder. Files directly inside it are
// spliced into the parent at the folder's position; deeper subtrees are
// discarded.
type DeleteFolderCommand struct {
	ws        *domain.Workspace
	store     ports.StateStore
	ProjectID string
	Path      string
}

// NewDeleteFolderCommand creates a new DeleteFolderCommand
func NewDeleteFolderCommand(ws *domain.Workspace, store ports.StateStore, projectID, path string) *DeleteFolderCommand {
	return &DeleteFolderCommand{ws: ws, store: store, ProjectID: projectID, Path: path}
}

// Validate checks if the delete is valid
func (c *DeleteFolderCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the delete command
func (c *DeleteFolderCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := parsePath(c.Path)
	if err != nil {
		return err
	}
	if err := c.ws.DeleteFolder(c.ProjectID, path); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return persist(c.store, c.ws)
}

// ToggleFolderCommand flips a folder's expanded flag
type ToggleFolderCommand struct {
	ws        *domain.Workspace
	store     ports.StateStore
	ProjectID string
	Path      string
}

// NewToggleFolderCommand creates a new ToggleFolderCommand
func NewToggleFolderCommand(ws *domain.Workspace, store ports.StateStore, projectID, path string) *ToggleFolderCommand {
	return &ToggleFolderCommand{ws: ws, store: store, ProjectID: projectID, Path: path}
}

// Validate checks if the toggle is valid
func (c *ToggleFolderCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the toggle command
func (c *ToggleFolderCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := parsePath(c.Path)
	if err != nil {
		return err
	}
	if err := c.ws.ToggleFolderExpanded(c.ProjectID, path); err != nil {
		return fmt.Errorf("failed to toggle folder: %w", err)
	}
	return persist(c.store, c.ws)
}

func parsePath(raw string) (domain.Path, error) {
	if raw == "" {
		return nil, nil
	}
	path, err := domain.ParsePath(raw)
	if err != nil {
		return nil, &application.ValidationError{Field: "path", Message: err.Error()}
	}
	return path, nil
}
