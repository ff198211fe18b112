package storage

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/cinedb/pkg/serial"
)

// note is a minimal keyed record for store tests.
type note struct {
	ID   string
	Body string
}

func (n *note) Key() string       { return n.ID }
func (n *note) SetKey(key string) { n.ID = key }

func (n *note) Validate() error {
	return serial.CheckText(n.Body)
}

func (n *note) FieldString() string {
	return serial.Join(
		serial.EncodeString(&n.ID, "id"),
		serial.EncodeString(&n.Body, "body"),
	)
}

func (n *note) FromFieldString(s string) error {
	fields, err := serial.Parse(s)
	if err != nil {
		return err
	}
	id, err := fields.Lookup("id")
	if err != nil {
		return err
	}
	body, err := fields.Lookup("body")
	if err != nil {
		return err
	}
	n.ID, n.Body = id, body
	return nil
}

func newTestStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	backend, err := NewMemoryBackend()
	require.NoError(t, err)

	var logs bytes.Buffer
	s := New(backend, slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { s.Close() })
	return s, &logs
}

func TestStore_Strings(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.PutString("note", "a", "id#a~body#x"))
	got, err := s.GetString("note", "a")
	require.NoError(t, err)
	assert.Equal(t, "id#a~body#x", got)

	_, err = s.GetString("note", "b")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, s.PutString("", "a", "x#1"))
	assert.Error(t, s.PutString("no:te", "a", "x#1"))

	require.NoError(t, s.Delete("note", "a"))
	assert.ErrorIs(t, s.Delete("note", "a"), ErrNotFound)
}

func TestStore_DamagedFrameIsSkipped(t *testing.T) {
	s, logs := newTestStore(t)

	require.NoError(t, s.PutString("note", "a", "id#a~body#ok"))
	require.NoError(t, s.backend.Put(makeKey("note", "b"), []byte("not a frame")))

	_, err := s.GetString("note", "b")
	assert.Error(t, err)

	var seen []string
	err = s.ScanStrings("note", func(id, str string) error {
		seen = append(seen, id)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, seen)
	assert.Contains(t, logs.String(), "skipping damaged record")
}

func TestCollection(t *testing.T) {
	s, logs := newTestStore(t)
	notes := NewCollection[note](s, "note")

	id, err := notes.Create(&note{Body: "first"})
	require.NoError(t, err)
	assert.Len(t, id, 27)

	got, err := notes.Get(id)
	require.NoError(t, err)
	assert.Equal(t, &note{ID: id, Body: "first"}, got)

	raw, err := notes.Raw(id)
	require.NoError(t, err)
	assert.Equal(t, "id#"+id+"~body#first", raw)

	t.Run("validation", func(t *testing.T) {
		bad := &note{Body: "a~b"}
		_, err := notes.Create(bad)
		assert.ErrorIs(t, err, serial.ErrReservedText)
		assert.Empty(t, bad.ID)

		assert.Error(t, notes.Put(&note{Body: "no id"}))
	})

	t.Run("all skips undecodable records", func(t *testing.T) {
		_, err := notes.Create(&note{Body: "second"})
		require.NoError(t, err)
		require.NoError(t, s.PutString("note", "zzz", "id#zzz~body"))

		all, err := notes.All(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.ElementsMatch(t, []string{"first", "second"}, []string{all[0].Body, all[1].Body})
		assert.Contains(t, logs.String(), "skipping undecodable record")
	})

	t.Run("all honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := notes.All(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, notes.Delete(id))
		_, err := notes.Get(id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("decode error", func(t *testing.T) {
		require.NoError(t, s.PutString("note", "broken", "id#broken~body#{"))
		_, err := notes.Get("broken")
		assert.ErrorIs(t, err, serial.ErrUnbalanced)
	})
}
