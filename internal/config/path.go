// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// DefaultDataDir returns the default directory for the database, uploads,
// and stored credentials.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".expenserule"
	}
	return filepath.Join(home, ".expenserule")
}

// EnsureDataDirs creates the data directory and its uploads subdirectory
// with owner-only permissions.
func EnsureDataDirs(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(dataDir, "uploads"), 0700)
}

// UploadsDir returns the directory where original uploaded files are kept.
func UploadsDir(dataDir string) string {
	return filepath.Join(dataDir, "uploads")
}

// DatabasePath returns the SQLite database path under the data directory.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, "expenses.db")
}
