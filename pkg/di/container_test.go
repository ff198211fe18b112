package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/cinedb/pkg/api"
	"github.com/ssargent/cinedb/pkg/storage"
)

func TestNewContainerDefaults(t *testing.T) {
	c := NewContainer()

	require.NotNil(t, c.GetStoreOpener())
	assert.IsType(t, &api.DefaultServerFactory{}, c.GetServerFactory())

	store, err := c.GetStoreOpener()(storage.Config{Backend: storage.BackendMemory})
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestContainerOverrides(t *testing.T) {
	c := NewContainer()

	var opened storage.Config
	c.SetStoreOpener(func(cfg storage.Config) (*storage.Store, error) {
		opened = cfg
		return storage.Open(storage.Config{Backend: storage.BackendMemory})
	})
	factory := &api.DefaultServerFactory{}
	c.SetServerFactory(factory)

	store, err := c.GetStoreOpener()(storage.Config{Backend: storage.BackendSQLite, DataDir: "/tmp/x"})
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, storage.BackendSQLite, opened.Backend)
	assert.Same(t, factory, c.GetServerFactory())
}
