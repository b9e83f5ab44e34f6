// Package commands wraps workspace mutations in command objects with
// explicit validation and write-through persistence: every successful
// Execute re-serializes the full workspace to the state store.
package commands

import (
	"fmt"

	"readspace/internal/domain"
	"readspace/internal/ports"
)

// persist writes the full workspace snapshot after a mutation. A nil
// store is allowed so commands stay testable without persistence.
func persist(store ports.StateStore, ws *domain.Workspace) error {
	if store == nil {
		return nil
	}
	if err := store.SaveState(ws); err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	return nil
}
