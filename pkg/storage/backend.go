package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("key not found")

// Backend is an ordered key-value store.
type Backend interface {
	Put(key, value []byte) error
	// Get returns a copy of the value stored under key or ErrNotFound.
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	// Scan calls fn for every key starting with prefix, in key order.
	// Returning an error from fn stops the scan and returns that error.
	Scan(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}

// Backend names accepted by Config.
const (
	BackendPebble = "pebble"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config selects and configures the storage backend.
type Config struct {
	Backend string // pebble, sqlite or memory
	DataDir string // directory holding the database files
	Logger  *slog.Logger
}

// OpenBackend opens the backend named in cfg.
func OpenBackend(cfg Config) (Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendPebble:
		return NewPebbleBackend(filepath.Join(cfg.DataDir, "pebble"))
	case BackendMemory:
		return NewMemoryBackend()
	case BackendSQLite:
		return NewSQLiteBackend(filepath.Join(cfg.DataDir, "cinedb.sqlite"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// prefixEnd returns the smallest key greater than every key starting with
// prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
