package api

import (
	"context"

	"github.com/ssargent/cinedb/pkg/storage"
)

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API for store until ctx is cancelled
	StartServer(ctx context.Context, store *storage.Store, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
