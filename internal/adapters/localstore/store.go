// Package localstore persists the workspace as one JSON file per state
// key, mirroring the browser app's per-key storage layout.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"readspace/internal/domain"
	"readspace/internal/ports"
)

// Store implements ports.StateStore on a directory of JSON files.
// Writes go through a temp file and rename so a crash never leaves a
// half-written key behind.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger
}

// New creates a store rooted at dir, creating the directory if needed.
// A nil logger disables logging.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// LoadState reads every state key and assembles a workspace. Missing
// keys fall back to their empty defaults so a fresh directory yields a
// fresh workspace.
func (s *Store) LoadState() (*domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := domain.NewWorkspace()

	if err := s.readKey(ports.KeyFiles, &ws.Files); err != nil {
		return nil, err
	}
	if ws.Files == nil {
		ws.Files = map[string]*domain.FileRecord{}
	}
	for name, record := range ws.Files {
		if record != nil && record.Name == "" {
			record.Name = name
		}
	}

	var projects []*domain.Project
	if err := s.readKey(ports.KeyProjects, &projects); err != nil {
		return nil, err
	}
	for _, project := range projects {
		if project != nil && project.ID != "" {
			ws.Projects[project.ID] = project
		}
	}

	if err := s.readKey(ports.KeyStatistics, &ws.Statistics); err != nil {
		return nil, err
	}
	if ws.Statistics == nil {
		ws.Statistics = domain.NewLedger()
	}

	if err := s.readKey(ports.KeyCurrentFile, &ws.CurrentFile); err != nil {
		return nil, err
	}
	if ws.Files[ws.CurrentFile] == nil {
		ws.CurrentFile = ""
	}

	counter := 0
	if err := s.readKey(ports.KeyProjectIDCounter, &counter); err != nil {
		return nil, err
	}
	if counter > ws.ProjectIDCounter {
		ws.ProjectIDCounter = counter
	}

	s.logger.Debug("workspace loaded",
		zap.Int("files", len(ws.Files)),
		zap.Int("projects", len(ws.Projects)))
	return ws, nil
}

// SaveState writes the full workspace, one file per key.
func (s *Store) SaveState(ws *domain.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writes := []struct {
		key   string
		value any
	}{
		{ports.KeyFiles, ws.Files},
		{ports.KeyProjects, ws.ProjectsInOrder()},
		{ports.KeyStatistics, ws.Statistics},
		{ports.KeyCurrentFile, ws.CurrentFile},
		{ports.KeyProjectIDCounter, ws.ProjectIDCounter},
	}
	for _, w := range writes {
		if err := s.writeKey(w.key, w.value); err != nil {
			s.logger.Error("state write failed",
				zap.String("key", w.key),
				zap.Error(err))
			return err
		}
	}
	return nil
}

// Close is a no-op; every save is already flushed to disk.
func (s *Store) Close() error {
	return nil
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) readKey(key string, out any) error {
	content, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) writeKey(key string, value any) error {
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.keyPath(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}
