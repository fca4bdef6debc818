// Package api provides factory implementations for dependency injection
package api

import (
	"context"
	"log/slog"

	"github.com/ssargent/ghostwriter/pkg/metrics"
	"github.com/ssargent/ghostwriter/pkg/storage"
)

// DefaultArchiveFactory opens pebble-backed archives
type DefaultArchiveFactory struct{}

// NewArchiveFactory creates a new archive factory
func NewArchiveFactory() ArchiveFactory {
	return &DefaultArchiveFactory{}
}

// OpenArchive opens or creates the archive in dir
func (f *DefaultArchiveFactory) OpenArchive(dir string) (ArchiveStore, error) {
	archive, err := storage.OpenArchive(dir)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer serves the API until ctx is cancelled
func (s *DefaultServerStarter) StartServer(
	ctx context.Context,
	store GhostStore,
	config ServerConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) error {
	return StartServer(ctx, store, config, m, logger)
}
