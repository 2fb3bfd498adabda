// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkcast/internal/models"
)

// Classes maps each categorical feature to its sorted class list. A value's
// encoded index is its position in the list.
type Classes map[string][]string

// Scaler standardises each column as (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ParseClasses decodes an encoders file.
func ParseClasses(data []byte) (Classes, error) {
	var c Classes
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: decode encoders: %w", ErrInvalidArtifact, err)
	}
	return c, nil
}

// ParseScaler decodes a scaler file.
func ParseScaler(data []byte) (Scaler, error) {
	var s Scaler
	if err := json.Unmarshal(data, &s); err != nil {
		return Scaler{}, fmt.Errorf("%w: decode scaler: %w", ErrInvalidArtifact, err)
	}
	return s, nil
}

// Encoder turns a catalog record into a feature row using the stored label
// encoders and scaler. It is read-only after construction.
type Encoder struct {
	features []Feature
	index    map[string]map[string]int
	mean     []float64
	scale    []float64
}

// NewEncoder validates the encoder parts against the feature layout.
//
//nolint:gocritic // Scaler is copied once at construction
func NewEncoder(features []Feature, classes Classes, scaler Scaler) (*Encoder, error) {
	if len(scaler.Mean) != len(features) || len(scaler.Scale) != len(features) {
		return nil, fmt.Errorf("%w: scaler has %d means and %d scales for %d features",
			ErrInvalidArtifact, len(scaler.Mean), len(scaler.Scale), len(features))
	}

	e := &Encoder{
		features: slices.Clone(features),
		index:    make(map[string]map[string]int),
		mean:     slices.Clone(scaler.Mean),
		scale:    make([]float64, len(scaler.Scale)),
	}
	for i, s := range scaler.Scale {
		if math.IsNaN(s) || math.IsInf(s, 0) || math.IsNaN(e.mean[i]) || math.IsInf(e.mean[i], 0) {
			return nil, fmt.Errorf("%w: scaler column %d is not finite", ErrInvalidArtifact, i)
		}
		if s == 0 {
			s = 1
		}
		e.scale[i] = s
	}

	for _, f := range features {
		if f.Type != Categorical {
			continue
		}
		list, ok := classes[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: no encoder for categorical feature %q", ErrInvalidArtifact, f.Name)
		}
		idx := make(map[string]int, len(list))
		for i, c := range list {
			if _, dup := idx[c]; dup {
				return nil, fmt.Errorf("%w: encoder %q lists class %q twice", ErrInvalidArtifact, f.Name, c)
			}
			idx[c] = i
		}
		e.index[f.Name] = idx
	}
	return e, nil
}

// Features returns the column layout.
func (e *Encoder) Features() []Feature {
	return e.features
}

// Encode returns the scaled feature row for r. A categorical value missing
// from its encoder yields an error wrapping ErrUnseenCategory.
func (e *Encoder) Encode(r *models.Restaurant) ([]float64, error) {
	row := make([]float64, len(e.features))
	for i, f := range e.features {
		var x float64
		switch f.Type {
		case Categorical:
			v := categoricalValue(r, f.Name)
			pos, ok := e.index[f.Name][v]
			if !ok {
				return nil, fmt.Errorf("%w: %s=%q", ErrUnseenCategory, f.Name, v)
			}
			x = float64(pos)
		case Numeric:
			v, err := numericValue(r, f.Name)
			if err != nil {
				return nil, err
			}
			x = v
		}
		row[i] = (x - e.mean[i]) / e.scale[i]
	}
	return row, nil
}

func categoricalValue(r *models.Restaurant, name string) string {
	switch name {
	case models.FieldCuisine:
		return r.Cuisine
	case models.FieldRegion:
		return r.Region
	case models.FieldPriceRange:
		return r.PriceRange
	}
	if v, ok := r.Extra[name]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func numericValue(r *models.Restaurant, name string) (float64, error) {
	switch name {
	case models.FieldRating:
		return r.Rating, nil
	case models.FieldID:
		return float64(r.ID), nil
	}
	switch v := r.Extra[name].(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("feature %q: %w", name, err)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("feature %q: missing value", name)
	default:
		return 0, fmt.Errorf("feature %q: unsupported type %T", name, v)
	}
}
