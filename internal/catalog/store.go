// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
)

// Provider returns the full current catalog as an ordered sequence.
type Provider interface {
	FetchAll(ctx context.Context) ([]models.Restaurant, error)
}

// Listener is notified after a new snapshot has been swapped in.
type Listener func(snap *Snapshot)

// Store holds the current catalog snapshot. Readers call Current and keep
// the returned pointer for the duration of one operation; a refresh swaps in
// a whole new snapshot and never touches the old one.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	// mu serializes writers so versions are assigned in swap order.
	mu        sync.Mutex
	listeners []Listener

	logger zerolog.Logger
}

// NewStore creates an empty store. Current returns nil until the first
// successful Replace or Refresh.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Current returns the current snapshot, or nil before the first load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// OnReplace registers a listener called after every swap.
func (s *Store) OnReplace(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Replace builds a snapshot from records and makes it current. On error the
// previous snapshot stays in place.
func (s *Store) Replace(records []models.Restaurant) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := NewSnapshot(records, s.version.Load()+1)
	if err != nil {
		return nil, err
	}
	s.version.Store(snap.Version())
	s.current.Store(snap)

	metrics.UpdateCatalogSnapshot(snap.Len(), snap.Version())

	for _, l := range s.listeners {
		l(snap)
	}
	return snap, nil
}

// Refresh fetches the catalog from p and replaces the current snapshot.
func (s *Store) Refresh(ctx context.Context, p Provider) (*Snapshot, error) {
	start := time.Now()

	records, err := p.FetchAll(ctx)
	if err != nil {
		metrics.RecordCatalogRefresh(time.Since(start), err)
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	snap, err := s.Replace(records)
	metrics.RecordCatalogRefresh(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	s.logger.Info().
		Int("restaurants", snap.Len()).
		Uint64("version", snap.Version()).
		Dur("duration", time.Since(start)).
		Msg("catalog snapshot replaced")

	return snap, nil
}
