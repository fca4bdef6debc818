// Package api provides interfaces for dependency injection
package api

import (
	"context"
	"log/slog"

	"github.com/ssargent/ghostwriter/pkg/metrics"
)

// ArchiveStore is a GhostStore that owns resources
type ArchiveStore interface {
	GhostStore

	// Close releases the archive
	Close() error
}

// ArchiveFactory opens ghost archives
type ArchiveFactory interface {
	// OpenArchive opens or creates the archive in dir
	OpenArchive(dir string) (ArchiveStore, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context, store GhostStore, config ServerConfig, m *metrics.Metrics, logger *slog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
