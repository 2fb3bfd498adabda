// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/forkcast/internal/models"
)

// ErrDuplicateID is returned when a catalog contains the same id twice.
var ErrDuplicateID = errors.New("duplicate restaurant id")

// Snapshot is an immutable, ordered view of the catalog. It is built once
// and shared by reference between concurrent readers; nothing mutates it
// after NewSnapshot returns.
type Snapshot struct {
	restaurants []models.Restaurant
	byID        map[int64]int
	version     uint64
	loadedAt    time.Time
}

// NewSnapshot copies records into a new snapshot. The order of records is
// preserved and ids must be unique.
func NewSnapshot(records []models.Restaurant, version uint64) (*Snapshot, error) {
	restaurants := make([]models.Restaurant, len(records))
	copy(restaurants, records)

	byID := make(map[int64]int, len(restaurants))
	for i := range restaurants {
		id := restaurants[i].ID
		if prev, dup := byID[id]; dup {
			return nil, fmt.Errorf("%w: id %d at rows %d and %d", ErrDuplicateID, id, prev, i)
		}
		byID[id] = i
	}

	return &Snapshot{
		restaurants: restaurants,
		byID:        byID,
		version:     version,
		loadedAt:    time.Now(),
	}, nil
}

// Restaurants returns the ordered records. The slice is shared and must be
// treated as read-only.
func (s *Snapshot) Restaurants() []models.Restaurant {
	return s.restaurants
}

// Get returns the record with the given id.
func (s *Snapshot) Get(id int64) (models.Restaurant, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Restaurant{}, false
	}
	return s.restaurants[i], true
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.restaurants)
}

// Version returns the snapshot version. Versions increase by one on every
// successful replacement within a process.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}
