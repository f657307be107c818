// Package snapshot owns the single loaded stats snapshot and its load error.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pable/rivalstats/internal/model"
)

// ErrAlreadyLoaded is returned by Load once a load has been attempted.
var ErrAlreadyLoaded = errors.New("snapshot already loaded")

// LoadError records why the snapshot could not be obtained.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string { return "load snapshot: " + e.Reason }

func (e *LoadError) Unwrap() error { return e.Err }

// Store holds either a decoded snapshot or the error from the failed load,
// never both. Reads are safe for concurrent use.
type Store struct {
	src Source
	log zerolog.Logger

	mu        sync.RWMutex
	attempted bool
	snap      *model.Snapshot
	err       *LoadError
}

func NewStore(src Source, log zerolog.Logger) *Store {
	return &Store{src: src, log: log}
}

// Load fetches and decodes the snapshot. Only the first call does any work;
// later calls return ErrAlreadyLoaded. Use Reload to fetch again.
func (s *Store) Load(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	if s.attempted {
		s.mu.Unlock()
		return nil, ErrAlreadyLoaded
	}
	s.attempted = true
	s.mu.Unlock()
	return s.load(ctx)
}

// Reload discards any held state and fetches again.
func (s *Store) Reload(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	s.attempted = true
	s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*model.Snapshot, error) {
	s.log.Debug().Str("source", s.src.String()).Msg("loading snapshot")

	snap, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.snap = nil
		s.err = &LoadError{Reason: err.Error(), Err: err}
		s.log.Error().Err(err).Str("source", s.src.String()).Msg("snapshot load failed")
		return nil, s.err
	}
	s.snap = snap
	s.err = nil

	if verr := snap.Validate(); verr != nil {
		s.log.Warn().Err(verr).Msg("snapshot violates upstream invariants")
	}
	s.log.Info().
		Int("players", len(snap.Players)).
		Int("compositions", len(snap.Compositions)).
		Int("heroes", len(snap.HeroStats)).
		Msg("snapshot loaded")
	return snap, nil
}

func (s *Store) fetch(ctx context.Context) (*model.Snapshot, error) {
	rc, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var snap model.Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Current returns the loaded snapshot, if any.
func (s *Store) Current() (*model.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snap != nil
}

// Err returns the error from the most recent failed load, or nil.
func (s *Store) Err() *LoadError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
