// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

import (
	"fmt"
	"maps"

	"github.com/goccy/go-json"
)

// Core column names of a restaurant record. Every other catalog column is
// carried through Extra untouched.
const (
	FieldID         = "id"
	FieldCuisine    = "cuisine"
	FieldRegion     = "region"
	FieldPriceRange = "price_range"
	FieldRating     = "rating"
)

// Restaurant is one catalog record.
//
// The recommender only reads the five core fields. Extra holds any
// additional columns the catalog provides (name, address, phone, ...) and
// is serialized back flat next to the core fields, so API clients see the
// record exactly as the catalog stores it.
type Restaurant struct {
	// ID is the stable catalog key, unique within a snapshot.
	ID int64

	// Cuisine is a free-text label such as "italian".
	Cuisine string

	// Region is a free-text label such as "north".
	Region string

	// PriceRange is a symbolic tier such as "$" or "$$".
	PriceRange string

	// Rating is bounded to 0.0-5.0 by the catalog.
	Rating float64

	// Extra holds pass-through columns keyed by column name.
	Extra map[string]any
}

// Profile returns the textual profile used for content similarity:
// cuisine, region and price range joined by single spaces.
func (r *Restaurant) Profile() string {
	return r.Cuisine + " " + r.Region + " " + r.PriceRange
}

// Clone returns a copy whose Extra map can be modified independently.
//
//nolint:gocritic // Restaurant is small enough to copy
func (r Restaurant) Clone() Restaurant {
	if r.Extra != nil {
		r.Extra = maps.Clone(r.Extra)
	}
	return r
}

// MarshalJSON flattens Extra and the core fields into one object.
// Core fields take precedence over Extra keys with the same name.
//
//nolint:gocritic // value receiver so both values and pointers marshal flat
func (r Restaurant) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+5)
	for k, v := range r.Extra {
		out[k] = v
	}
	out[FieldID] = r.ID
	out[FieldCuisine] = r.Cuisine
	out[FieldRegion] = r.Region
	out[FieldPriceRange] = r.PriceRange
	out[FieldRating] = r.Rating
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat object, routing unknown keys into Extra.
func (r *Restaurant) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var decoded Restaurant
	fields := []struct {
		key string
		dst any
	}{
		{FieldID, &decoded.ID},
		{FieldCuisine, &decoded.Cuisine},
		{FieldRegion, &decoded.Region},
		{FieldPriceRange, &decoded.PriceRange},
		{FieldRating, &decoded.Rating},
	}
	for _, f := range fields {
		msg, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, f.dst); err != nil {
			return fmt.Errorf("restaurant field %q: %w", f.key, err)
		}
		delete(raw, f.key)
	}

	if len(raw) > 0 {
		decoded.Extra = make(map[string]any, len(raw))
		for k, msg := range raw {
			var v any
			if err := json.Unmarshal(msg, &v); err != nil {
				return fmt.Errorf("restaurant field %q: %w", k, err)
			}
			decoded.Extra[k] = v
		}
	}

	*r = decoded
	return nil
}
