// Package filesystem finds documents on disk for ingestion into the
// registry.
package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is a readable file found by a scan
type Document struct {
	Name    string
	Path    string
	Content string
}

// Scanner locates markdown and plain-text documents under a root
// directory
type Scanner struct {
	root string
}

// NewScanner creates a scanner rooted at the given directory
func NewScanner(root string) *Scanner {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	return &Scanner{root: root}
}

// Scan walks the root and returns every readable document, sorted by
// name. Hidden directories are skipped.
func (s *Scanner) Scan() ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() != "." && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsDocument(entry.Name()) {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, Document{
			Name:    entry.Name(),
			Path:    path,
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.root, err)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Name < docs[j].Name
	})

	return docs, nil
}

// IsDocument reports whether a file name looks like an ingestible
// document
func IsDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".txt":
		return true
	default:
		return false
	}
}
