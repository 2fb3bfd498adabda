// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"errors"
	"testing"
)

func TestQuery_Normalize(t *testing.T) {
	t.Parallel()

	q := Query{TargetCuisine: "  Italian "}.Normalize()
	if q.TargetCuisine != "Italian" {
		t.Errorf("TargetCuisine = %q, want trimmed", q.TargetCuisine)
	}
	if q.MinRating == nil || *q.MinRating != DefaultMinRating {
		t.Errorf("MinRating = %v, want %v", q.MinRating, DefaultMinRating)
	}

	floor := 1.0
	q = Query{TargetCuisine: "thai", MinRating: &floor}.Normalize()
	if *q.MinRating != 1.0 {
		t.Errorf("explicit MinRating overwritten: %v", *q.MinRating)
	}
}

func TestQuery_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   Query
		wantErr error
	}{
		{name: "valid", query: Query{TargetCuisine: "italian"}},
		{name: "empty", query: Query{}, wantErr: ErrEmptyQuery},
		{name: "whitespace", query: Query{TargetCuisine: " \t"}, wantErr: ErrEmptyQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.query.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuery_CacheKeyIgnoresCase(t *testing.T) {
	t.Parallel()

	a := Query{TargetCuisine: "Italian", PriceFilter: "$$"}.Normalize()
	b := Query{TargetCuisine: "italian", PriceFilter: "$$"}.Normalize()
	if a.cacheKey() != b.cacheKey() {
		t.Errorf("cache keys differ: %q vs %q", a.cacheKey(), b.cacheKey())
	}

	c := Query{TargetCuisine: "italian", PriceFilter: "$"}.Normalize()
	if a.cacheKey() == c.cacheKey() {
		t.Error("different price filters share a cache key")
	}
}

func TestRanked_Restaurants(t *testing.T) {
	t.Parallel()

	r := &Ranked{Items: []Scored{
		{Restaurant: sampleCatalog()[0]},
		{Restaurant: sampleCatalog()[1]},
		{Restaurant: sampleCatalog()[2]},
	}}
	if got := r.Restaurants(2); !equalIDs(ids(got), []int64{1, 2}) {
		t.Errorf("Restaurants(2) = %v", ids(got))
	}
	if got := r.Restaurants(0); len(got) != 3 {
		t.Errorf("Restaurants(0) returned %d, want all", len(got))
	}
}
