package storage

import (
	"context"
	"fmt"
	"runtime"

	"github.com/segmentio/ksuid"
	"golang.org/x/sync/errgroup"

	"github.com/ssargent/cinedb/pkg/serial"
)

// Keyed is implemented by records that know their own storage id.
type Keyed interface {
	Key() string
	SetKey(key string)
}

// Entity is satisfied by *T when *T is a serial.Record with a storage id.
type Entity[T any] interface {
	serial.RecordPtr[T]
	Keyed
}

// Validator is implemented by records that check themselves before they are
// written.
type Validator interface {
	Validate() error
}

// Collection stores records of one type under one kind.
type Collection[T any, P Entity[T]] struct {
	store *Store
	kind  string
}

// NewCollection returns the collection of kind in store.
func NewCollection[T any, P Entity[T]](store *Store, kind string) *Collection[T, P] {
	return &Collection[T, P]{store: store, kind: kind}
}

// Create assigns a new id to r and stores it.
func (c *Collection[T, P]) Create(r *T) (string, error) {
	id := ksuid.New().String()
	P(r).SetKey(id)
	if err := c.Put(r); err != nil {
		P(r).SetKey("")
		return "", err
	}
	return id, nil
}

// Put stores r under its id, replacing any previous version.
func (c *Collection[T, P]) Put(r *T) error {
	p := P(r)
	if p.Key() == "" {
		return fmt.Errorf("%s has no id", c.kind)
	}
	if v, ok := any(p).(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return c.store.PutString(c.kind, p.Key(), p.FieldString())
}

// Get loads the record stored under id.
func (c *Collection[T, P]) Get(id string) (*T, error) {
	s, err := c.store.GetString(c.kind, id)
	if err != nil {
		return nil, err
	}
	r := new(T)
	if err := P(r).FromFieldString(s); err != nil {
		return nil, fmt.Errorf("decode %s %q: %w", c.kind, id, err)
	}
	return r, nil
}

// Raw returns the serialized form of the record stored under id.
func (c *Collection[T, P]) Raw(id string) (string, error) {
	return c.store.GetString(c.kind, id)
}

// Delete removes the record stored under id.
func (c *Collection[T, P]) Delete(id string) error {
	return c.store.Delete(c.kind, id)
}

// All loads every record in key order. Records are decoded in parallel;
// records that fail to decode are logged and left out.
func (c *Collection[T, P]) All(ctx context.Context) ([]*T, error) {
	type raw struct{ id, s string }
	var rows []raw
	err := c.store.ScanStrings(c.kind, func(id, s string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows = append(rows, raw{id, s})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", c.kind, err)
	}

	decoded := make([]*T, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := new(T)
			if err := P(r).FromFieldString(row.s); err != nil {
				c.store.logger.Warn("skipping undecodable record",
					"kind", c.kind, "id", row.id, "error", err)
				return nil
			}
			decoded[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(decoded))
	for _, r := range decoded {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}
