package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/ghostwriter/pkg/codec"
	"github.com/ssargent/ghostwriter/pkg/ghost"
	"github.com/ssargent/ghostwriter/pkg/logging"
	"github.com/ssargent/ghostwriter/pkg/metrics"
	"github.com/ssargent/ghostwriter/pkg/recording"
	"github.com/ssargent/ghostwriter/pkg/storage"
)

// Server holds the API server state
type Server struct {
	store   GhostStore
	codec   *codec.GhostCodec
	config  ServerConfig
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server
func NewServer(store GhostStore, config ServerConfig, m *metrics.Metrics, logger *slog.Logger) *Server {
	if m == nil {
		m = metrics.New()
	}
	return &Server{
		store:   store,
		codec:   codec.NewGhostCodec(),
		config:  config,
		metrics: m,
		logger:  logging.NewComponentLogger(logger, "api"),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleEncode encodes the CSV recording in the request body, archives the
// ghost and returns its id. Race metadata comes from the query string, with
// server defaults for missing parameters.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	meta, err := s.raceMetadata(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := s.config.MaxUploadBytes
	if limit <= 0 {
		limit = 1 << 20
	}
	frames, err := recording.Read(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		s.metrics.RecordEncode(nil, err, 0)
		sendEncodeError(w, err)
		return
	}

	start := time.Now()
	g, err := s.codec.EncodeGhost(frames, meta)
	s.metrics.RecordEncode(g, err, time.Since(start))
	if err != nil {
		s.logger.Info("encode rejected", slog.String("kind", ghost.Kind(err)), slog.Any("error", err))
		sendEncodeError(w, err)
		return
	}

	id, err := s.store.Put(g.Data)
	if err != nil {
		s.logger.Error("archive ghost failed", slog.Any("error", err))
		sendError(w, "Failed to archive ghost", http.StatusInternalServerError)
		return
	}

	s.logger.Info("ghost encoded",
		slog.String(logging.FieldGhostID, id.String()),
		slog.Int("frames", g.Frames),
		slog.Int("runs_buttons", len(g.Inputs.Buttons)),
		slog.Int("runs_direction", len(g.Inputs.Direction)),
		slog.Int("runs_trick", len(g.Inputs.Trick)),
	)

	sendSuccess(w, http.StatusCreated, EncodeResult{
		ID:       id.String(),
		Size:     len(g.Data),
		Frames:   g.Frames,
		Checksum: fmt.Sprintf("%08x", g.Checksum),
		Runs: RunCounts{
			Buttons:   len(g.Inputs.Buttons),
			Direction: len(g.Inputs.Direction),
			Trick:     len(g.Inputs.Trick),
		},
		Metadata: meta,
	})
}

func (s *Server) handleListGhosts(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List()
	if err != nil {
		s.logger.Error("list archive failed", slog.Any("error", err))
		sendError(w, "Failed to list ghosts", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []storage.Entry{}
	}
	s.metrics.SetArchivedGhosts(len(entries))
	sendSuccess(w, http.StatusOK, entries)
}

func (s *Server) handleGetGhost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseGhostID(w, r)
	if !ok {
		return
	}

	data, err := s.store.Get(id)
	if errors.Is(err, storage.ErrGhostNotFound) {
		sendError(w, "Ghost not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("read ghost failed", slog.String(logging.FieldGhostID, id.String()), slog.Any("error", err))
		sendError(w, "Failed to read ghost", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id.String()+".rkg"))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteGhost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseGhostID(w, r)
	if !ok {
		return
	}

	err := s.store.Delete(id)
	if errors.Is(err, storage.ErrGhostNotFound) {
		sendError(w, "Ghost not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("delete ghost failed", slog.String(logging.FieldGhostID, id.String()), slog.Any("error", err))
		sendError(w, "Failed to delete ghost", http.StatusInternalServerError)
		return
	}

	sendSuccess(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

func (s *Server) raceMetadata(r *http.Request) (ghost.RaceMetadata, error) {
	meta := s.config.DefaultRace
	query := r.URL.Query()

	ints := []struct {
		name string
		dst  *int
	}{
		{"track", &meta.TrackID},
		{"character", &meta.CharacterID},
		{"vehicle", &meta.VehicleID},
	}
	for _, p := range ints {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return meta, fmt.Errorf("invalid %s parameter %q", p.name, raw)
		}
		*p.dst = v
	}

	if raw := query.Get("manual_drift"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return meta, fmt.Errorf("invalid manual_drift parameter %q", raw)
		}
		meta.ManualDrift = v
	}

	return meta, nil
}

func parseGhostID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid ghost id %q", raw), http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}
