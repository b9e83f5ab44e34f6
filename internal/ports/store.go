package ports

import "readspace/internal/domain"

// Keys of the persisted snapshot, one serialized document per key
const (
	KeyFiles            = "files"
	KeyCurrentFile      = "currentFile"
	KeyStatistics       = "statistics"
	KeyProjects         = "projects"
	KeyProjectIDCounter = "projectIdCounter"
)

// StateStore is the persistence gateway: it hydrates the workspace once
// at startup and receives a full snapshot after every mutation. Writes
// are wholesale, never incremental, so a crash between mutation and save
// loses at most one action and never corrupts structure.
type StateStore interface {
	// LoadState reads the persisted snapshot, returning a defaulted
	// workspace when nothing has been saved yet.
	LoadState() (*domain.Workspace, error)

	// SaveState overwrites the persisted snapshot with the workspace's
	// current state.
	SaveState(ws *domain.Workspace) error

	// Close releases any resources held by the store.
	Close() error
}
