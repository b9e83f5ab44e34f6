package domain

import "errors"

// Sentinel errors for core operations. Tree mutations validate before
// touching the structure, so a returned error always means the workspace
// is exactly as it was.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPath     = errors.New("invalid path")
	ErrUnknownFile     = errors.New("unknown file")
	ErrDuplicateFile   = errors.New("file already in project")
	ErrEmptyName       = errors.New("empty name")
	ErrMalformedImport = errors.New("malformed import document")
)
