package commands

import (
	"context"
	"fmt"

	"readspace/internal/application"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// AddProjectResult contains the newly created project
type AddProjectResult struct {
	Project *domain.Project
	Message string
}

// AddProjectCommand creates a project with a generated sequential ID
type AddProjectCommand struct {
	ws          *domain.Workspace
	store       ports.StateStore
	Name        string
	Description string
}

// NewAddProjectCommand creates a new AddProjectCommand
func NewAddProjectCommand(ws *domain.Workspace, store ports.StateStore, name, description string) *AddProjectCommand {
	return &AddProjectCommand{ws: ws, store: store, Name: name, Description: description}
}

// Validate checks if the project can be created
func (c *AddProjectCommand) Validate() error {
	return application.ValidateRequired("projectName", c.Name)
}

// Execute runs the add project command
func (c *AddProjectCommand) Execute(ctx context.Context) (*AddProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	project, err := c.ws.AddProject(c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to add project: %w", err)
	}
	project.Description = c.Description
	if err := persist(c.store, c.ws); err != nil {
		return nil, err
	}
	return &AddProjectResult{
		Project: project,
		Message: fmt.Sprintf("Created project %s (%s)", project.Name, project.ID),
	}, nil
}

// RenameProjectCommand changes a project's display name
type RenameProjectCommand struct {
	ws        *domain.Workspace
	store     ports.StateStore
	ProjectID string
	NewName   string
}

// NewRenameProjectCommand creates a new RenameProjectCommand
func NewRenameProjectCommand(ws *domain.Workspace, store ports.StateStore, projectID, newName string) *RenameProjectCommand {
	return &RenameProjectCommand{ws: ws, store: store, ProjectID: projectID, NewName: newName}
}

// Validate checks if the rename is valid
func (c *RenameProjectCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("newName", c.NewName)
}

// Execute runs the rename command
func (c *RenameProjectCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.ws.RenameProject(c.ProjectID, c.NewName); err != nil {
		return fmt.Errorf("failed to rename project: %w", err)
	}
	return persist(c.store, c.ws)
}

// DeleteProjectResult reports which files became visible again
type DeleteProjectResult struct {
	Message string
}

// DeleteProjectCommand removes a project. Registry records survive; any
// file that loses its last project reference reappears in the sources
// list.
type DeleteProjectCommand struct {
	ws        *domain.Workspace
	store     ports.StateStore
	ProjectID string
}

// NewDeleteProjectCommand creates a new DeleteProjectCommand
func NewDeleteProjectCommand(ws *domain.Workspace, store ports.StateStore, projectID string) *DeleteProjectCommand {
	return &DeleteProjectCommand{ws: ws, store: store, ProjectID: projectID}
}

// Validate checks if the delete is valid
func (c *DeleteProjectCommand) Validate() error {
	return application.ValidateRequired("projectID", c.ProjectID)
}

// Execute runs the delete command
func (c *DeleteProjectCommand) Execute(ctx context.Context) (*DeleteProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	project, ok := c.ws.Projects[c.ProjectID]
	if !ok {
		return nil, fmt.Errorf("failed to delete project: %w", domain.ErrNotFound)
	}
	name := project.Name
	if err := c.ws.DeleteProject(c.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	if err := persist(c.store, c.ws); err != nil {
		return nil, err
	}
	return &DeleteProjectResult{Message: fmt.Sprintf("Deleted project %s", name)}, nil
}

// ToggleProjectCommand flips a project's expanded flag
type ToggleProjectCommand struct {
	ws        *domain.Workspace
	store     ports.StateStore
	ProjectID string
}

// NewToggleProjectCommand creates a new ToggleProjectCommand
func NewToggleProjectCommand(ws *domain.Workspace, store ports.StateStore, projectID string) *ToggleProjectCommand {
	return &ToggleProjectCommand{ws: ws, store: store, ProjectID: projectID}
}

// Validate checks if the toggle is valid
func (c *ToggleProjectCommand) Validate() error {
	return application.ValidateRequired("projectID", c.ProjectID)
}

// Execute runs the toggle command
func (c *ToggleProjectCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.ws.ToggleProjectExpanded(c.ProjectID); err != nil {
		return fmt.Errorf("failed to toggle project: %w", err)
	}
	return persist(c.store, c.ws)
}
