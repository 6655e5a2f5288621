package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MemoryPath selects the in-memory store
const MemoryPath = ":memory:"

// Open picks a Provider from a --config value: ":memory:", a PostgreSQL
// URL, a path ending in .json, or otherwise a SQLite file. A leading "~/"
// expands to the home directory. The store is not initialized or loaded.
func Open(config string) (Provider, error) {
	switch {
	case config == MemoryPath:
		return NewMemoryStore(), nil
	case IsPostgresURL(config):
		if HasEmbeddedCredentials(config) {
			return nil, ErrEmbeddedCredentials
		}
		return NewPostgresStore(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return NewSQLiteStore(path), nil
}

// ExpandPath resolves a leading "~/" against the user's home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
