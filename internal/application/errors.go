package application

import (
	"errors"
	"fmt"

	"readspace/internal/domain"
)

// Sentinel errors for common conditions. The domain sentinels are
// re-exported so adapters only need this package.
var (
	ErrNotFound        = domain.ErrNotFound
	ErrUnknownFile     = domain.ErrUnknownFile
	ErrDuplicateFile   = domain.ErrDuplicateFile
	ErrMalformedImport = domain.ErrMalformedImport
	ErrImportDeclined  = errors.New("import declined")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MoveError represents a failed file move between tree positions
type MoveError struct {
	File   string
	Source string
	Dest   string
	Reason error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s from %s to %s: %v", e.File, e.Source, e.Dest, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return e.Reason
}

// ImportError represents a rejected import document
type ImportError struct {
	Reason string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("cannot import: %s", e.Reason)
}

func (e *ImportError) Is(target error) bool {
	return target == ErrMalformedImport
}
