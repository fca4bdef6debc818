// Package api serves the ghost encoder over HTTP.
//
// Recordings are uploaded as CSV to /api/v1/ghosts, encoded, and kept in the
// ghost archive. Every /api/v1 route requires the X-API-Key header. The
// Prometheus endpoint at /metrics is left open for scraping.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ssargent/ghostwriter/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the HTTP handler with all routes configured
func NewRouter(store GhostStore, config ServerConfig, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	if m == nil {
		m = metrics.New()
	}
	server := NewServer(store, config, m, logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(config.APIKey))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Post("/ghosts", m.InstrumentHandler("POST", "/api/v1/ghosts", server.handleEncode))
		r.Get("/ghosts", m.InstrumentHandler("GET", "/api/v1/ghosts", server.handleListGhosts))
		r.Get("/ghosts/{id}", m.InstrumentHandler("GET", "/api/v1/ghosts/{id}", server.handleGetGhost))
		r.Delete("/ghosts/{id}", m.InstrumentHandler("DELETE", "/api/v1/ghosts/{id}", server.handleDeleteGhost))
	})

	return r
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, store GhostStore, config ServerConfig, m *metrics.Metrics, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if config.APIKey == "" {
		return errors.New("api key is required")
	}

	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(store, config, m, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting ghostwriter API server", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
