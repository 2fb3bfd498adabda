// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"errors"
	"math"

	"github.com/tomtom215/forkcast/internal/catalog"
)

// DriftTolerance is the largest per-column difference between a frozen row
// and a freshly encoded row that still counts as unchanged.
const DriftTolerance = 1e-6

// DriftReport compares the frozen matrix with the live catalog.
type DriftReport struct {
	// Checked is the number of mapped rows whose record was re-encoded.
	Checked int
	// Missing counts mapped ids absent from the catalog.
	Missing int
	// Unseen counts records with a category value the encoders don't know.
	Unseen int
	// Drifted counts rows whose re-encoding differs from the frozen row.
	Drifted int
	// Unmapped counts catalog records with no matrix row.
	Unmapped int
}

// Clean reports whether the frozen index still matches the catalog.
//
//nolint:gocritic // small report struct
func (r DriftReport) Clean() bool {
	return r.Missing == 0 && r.Unseen == 0 && r.Drifted == 0
}

// CheckDrift re-encodes every mapped record of snap with the bundle's
// encoder and compares it with the frozen row. Lookups keep using the
// frozen rows whatever the report says.
func CheckDrift(b *Bundle, snap *catalog.Snapshot) DriftReport {
	var rep DriftReport
	for row, id := range b.IDs.IDs() {
		r, ok := snap.Get(id)
		if !ok {
			rep.Missing++
			continue
		}
		fresh, err := b.Encoder.Encode(&r)
		if errors.Is(err, ErrUnseenCategory) {
			rep.Unseen++
			continue
		}
		if err != nil {
			rep.Drifted++
			continue
		}
		rep.Checked++
		if maxAbsDiff(fresh, b.Matrix.Row(row)) > DriftTolerance {
			rep.Drifted++
		}
	}

	for _, r := range snap.Restaurants() {
		if _, ok := b.IDs.Row(r.ID); !ok {
			rep.Unmapped++
		}
	}
	return rep
}

func maxAbsDiff(a, b []float64) float64 {
	var m float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > m {
			m = d
		}
	}
	return m
}
