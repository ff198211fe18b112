package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ssargent/cinedb/pkg/frame"
)

const keySep = ":"

// Store keeps serialized records under kind:id keys. Every value is wrapped
// in a checksummed frame.
type Store struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
}

// Open opens the configured backend and wraps it in a Store.
func Open(cfg Config) (*Store, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}
	return New(backend, cfg.Logger), nil
}

// New wraps an open backend. A nil logger discards log output.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Logger returns the store's logger.
func (s *Store) Logger() *slog.Logger {
	return s.logger
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func makeKey(kind, id string) []byte {
	return []byte(kind + keySep + id)
}

func splitKey(key []byte) (kind, id string) {
	kind, id, _ = strings.Cut(string(key), keySep)
	return kind, id
}

// PutString stores the serialized record s under kind and id.
func (s *Store) PutString(kind, id, str string) error {
	if kind == "" || id == "" {
		return fmt.Errorf("kind and id are required")
	}
	if strings.Contains(kind, keySep) {
		return fmt.Errorf("kind %q can't contain %q", kind, keySep)
	}

	key := makeKey(kind, id)
	data, err := frame.Encode(key, str, s.now())
	if err != nil {
		return fmt.Errorf("frame %s: %w", key, err)
	}
	if err := s.backend.Put(key, data); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// GetString returns the serialized record stored under kind and id.
func (s *Store) GetString(kind, id string) (string, error) {
	key := makeKey(kind, id)
	data, err := s.backend.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return s.unframe(key, data)
}

func (s *Store) unframe(key, data []byte) (string, error) {
	f, err := frame.Decode(data)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	if string(f.Key) != string(key) {
		return "", fmt.Errorf("read %s: frame holds key %s", key, f.Key)
	}
	return f.String(), nil
}

// Delete removes the record stored under kind and id.
func (s *Store) Delete(kind, id string) error {
	key := makeKey(kind, id)
	if _, err := s.backend.Get(key); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
		}
		return fmt.Errorf("check %s: %w", key, err)
	}
	return s.backend.Delete(key)
}

// ScanStrings calls fn with every record of kind in key order. Records whose
// frame is damaged are logged and skipped.
func (s *Store) ScanStrings(kind string, fn func(id, str string) error) error {
	return s.backend.Scan(makeKey(kind, ""), func(key, value []byte) error {
		str, err := s.unframe(key, value)
		if err != nil {
			s.logger.Warn("skipping damaged record", "key", string(key), "error", err)
			return nil
		}
		_, id := splitKey(key)
		return fn(id, str)
	})
}
