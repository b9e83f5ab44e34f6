package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDirName is the directory under the user config dir that
// holds the workspace state files.
const DefaultDataDirName = "readspace"

// DataDir returns the data directory from the READSPACE_DATA env var,
// falling back to <user config dir>/readspace.
func DataDir() string {
	if env := os.Getenv("READSPACE_DATA"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return DefaultDataDirName
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, DefaultDataDirName)
}
