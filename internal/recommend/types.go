// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tomtom215/forkcast/internal/models"
)

// DefaultMinRating is applied when a query leaves MinRating unset.
const DefaultMinRating = 3.5

// ErrEmptyQuery is returned when a query has no target cuisine.
var ErrEmptyQuery = errors.New("target cuisine must not be empty")

// ErrNoCatalog is returned when no catalog snapshot has been loaded yet.
var ErrNoCatalog = errors.New("catalog not loaded")

// Query is a content-based recommendation request.
type Query struct {
	// TargetCuisine is matched against each candidate's profile text.
	TargetCuisine string

	// PriceFilter restricts candidates to one price tier. Empty means any.
	PriceFilter string

	// MinRating is the inclusive rating floor. Nil means DefaultMinRating.
	MinRating *float64
}

// Normalize returns a copy of q with defaults applied and the cuisine
// trimmed.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (q Query) Normalize() Query {
	q.TargetCuisine = strings.TrimSpace(q.TargetCuisine)
	if q.MinRating == nil {
		v := DefaultMinRating
		q.MinRating = &v
	}
	return q
}

// Validate reports whether q can be ranked.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (q Query) Validate() error {
	if strings.TrimSpace(q.TargetCuisine) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// Rating returns the effective minimum rating.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (q Query) Rating() float64 {
	if q.MinRating == nil {
		return DefaultMinRating
	}
	return *q.MinRating
}

// cacheKey identifies a normalised query for response caching.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (q Query) cacheKey() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(q.TargetCuisine))
	b.WriteByte('|')
	b.WriteString(q.PriceFilter)
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(q.Rating(), 'g', -1, 64))
	return b.String()
}

// Scored pairs a candidate with its similarity to the query.
type Scored struct {
	Restaurant models.Restaurant
	Score      float64
}

// Ranked is the full ordered output of one ranking call.
type Ranked struct {
	Items           []Scored
	SnapshotVersion uint64
	Candidates      int
}

// Restaurants returns the records of the first limit items. A limit of zero
// or less returns all items.
func (r *Ranked) Restaurants(limit int) []models.Restaurant {
	n := len(r.Items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Restaurant, n)
	for i := 0; i < n; i++ {
		out[i] = r.Items[i].Restaurant
	}
	return out
}
