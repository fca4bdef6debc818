// Package storage keeps encoded ghosts in a pebble database keyed by ksuid.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrGhostNotFound is returned when an archive has no ghost for an id.
var ErrGhostNotFound = errors.New("ghost not found")

// Entry describes one archived ghost.
type Entry struct {
	ID        ksuid.KSUID `json:"id"`
	Size      int         `json:"size"`
	CreatedAt time.Time   `json:"created_at"`
}

// GhostArchive stores encoded ghost files.
type GhostArchive struct {
	db *pebble.DB
}

// OpenArchive opens or creates the archive in dir.
func OpenArchive(dir string) (*GhostArchive, error) {
	return openArchive(dir, &pebble.Options{})
}

func openArchive(dir string, opts *pebble.Options) (*GhostArchive, error) {
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", dir, err)
	}
	return &GhostArchive{db: db}, nil
}

// Put stores data under a new id.
func (a *GhostArchive) Put(data []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := a.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("archive ghost: %w", err)
	}
	return id, nil
}

// Get returns a copy of the ghost stored under id.
func (a *GhostArchive) Get(id ksuid.KSUID) ([]byte, error) {
	value, closer, err := a.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGhostNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read ghost %s: %w", id, err)
	}
	defer closer.Close()

	data := make([]byte, len(value))
	copy(data, value)
	return data, nil
}

// Delete removes the ghost stored under id.
func (a *GhostArchive) Delete(id ksuid.KSUID) error {
	if _, err := a.Get(id); err != nil {
		return err
	}
	if err := a.db.Delete(id.Bytes(), pebble.Sync); err != nil {
		return fmt.Errorf("delete ghost %s: %w", id, err)
	}
	return nil
}

// List returns every archived ghost in id order, which follows creation time
// to the second.
func (a *GhostArchive) List() ([]Entry, error) {
	iter, err := a.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			_ = iter.Close()
			return nil, fmt.Errorf("list archive: bad key %x: %w", iter.Key(), err)
		}
		entries = append(entries, Entry{
			ID:        id,
			Size:      len(iter.Value()),
			CreatedAt: id.Time(),
		})
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	return entries, nil
}

// Close releases the database.
func (a *GhostArchive) Close() error {
	return a.db.Close()
}
