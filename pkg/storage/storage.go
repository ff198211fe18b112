package storage

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// PebbleBackend stores keys in a pebble database.
type PebbleBackend struct {
	db *pebble.DB
}

// NewPebbleBackend opens or creates a pebble database at path.
func NewPebbleBackend(path string) (*PebbleBackend, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	return &PebbleBackend{db: db}, nil
}

// NewMemoryBackend opens a pebble database that lives only in memory.
func NewMemoryBackend() (*PebbleBackend, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("open in-memory pebble: %w", err)
	}
	return &PebbleBackend{db: db}, nil
}

func (s *PebbleBackend) Put(key, value []byte) error {
	return s.db.Set(key, value, pebble.Sync)
}

func (s *PebbleBackend) Get(key []byte) ([]byte, error) {
	data, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return append([]byte(nil), data...), nil
}

func (s *PebbleBackend) Delete(key []byte) error {
	return s.db.Delete(key, pebble.Sync)
}

func (s *PebbleBackend) Scan(prefix []byte, fn func(key, value []byte) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return err
	}

	for iter.First(); iter.Valid(); iter.Next() {
		key := append([]byte(nil), iter.Key()...)
		value := append([]byte(nil), iter.Value()...)
		if err := fn(key, value); err != nil {
			iter.Close()
			return err
		}
	}
	return iter.Close()
}

func (s *PebbleBackend) Close() error {
	return s.db.Close()
}
