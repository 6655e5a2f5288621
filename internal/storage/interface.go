package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the key has never been written
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key-value blob store. Values are JSON documents owned by
// the caller; the store never inspects them.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by the SQL-backed stores
type Migrator interface {
	// Migrate applies pending schema migrations and reports how many ran
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion returns the current and latest known schema versions
	SchemaVersion() (current, latest int, err error)
}
