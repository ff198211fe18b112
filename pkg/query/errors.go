package query

import (
	"errors"
	"fmt"

	"github.com/ssargent/cinedb/pkg/storage"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRating = errors.New("invalid rating")
	ErrInvalidLimit  = errors.New("limit must be positive")
	ErrInvalidFilter = errors.New("invalid filter")
)

func notFound(kind, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return err
}

func checkLimit(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	return nil
}
