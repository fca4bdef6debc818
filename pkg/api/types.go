package api

import (
	"github.com/segmentio/ksuid"

	"github.com/ssargent/ghostwriter/pkg/ghost"
	"github.com/ssargent/ghostwriter/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Line    int         `json:"line,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind           string
	Port           int
	APIKey         string
	MaxUploadBytes int64
	DefaultRace    ghost.RaceMetadata
}

// RunCounts is the number of run-length entries per channel
type RunCounts struct {
	Buttons   int `json:"buttons"`
	Direction int `json:"direction"`
	Trick     int `json:"trick"`
}

// EncodeResult describes a ghost created from an uploaded recording
type EncodeResult struct {
	ID       string             `json:"id"`
	Size     int                `json:"size"`
	Frames   int                `json:"frames"`
	Checksum string             `json:"checksum"`
	Runs     RunCounts          `json:"runs"`
	Metadata ghost.RaceMetadata `json:"metadata"`
}

// GhostStore defines the archive operations the API needs
type GhostStore interface {
	Put(data []byte) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) ([]byte, error)
	Delete(id ksuid.KSUID) error
	List() ([]storage.Entry, error)
}
