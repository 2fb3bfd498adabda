// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"github.com/tomtom215/forkcast/internal/catalog"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/recommend/artifact"
)

// NeighborLookup answers "restaurants similar to X" from a frozen
// neighbor-index bundle.
type NeighborLookup struct {
	bundle *artifact.Bundle
}

// NewNeighborLookup wraps b. A nil bundle makes every lookup fail with
// KindArtifactUnavailable.
func NewNeighborLookup(b *artifact.Bundle) *NeighborLookup {
	return &NeighborLookup{bundle: b}
}

// Available reports whether a bundle is loaded.
func (l *NeighborLookup) Available() bool {
	return l != nil && l.bundle != nil
}

// Similar returns up to n records nearest to id, closest first, resolved
// against snap. The queried restaurant is never part of the result. On any
// error the result is nil.
func (l *NeighborLookup) Similar(snap *catalog.Snapshot, id int64, n int) (out []models.Restaurant, err error) {
	if !l.Available() {
		return nil, &LookupError{Kind: KindArtifactUnavailable, ID: id}
	}
	if snap == nil {
		return nil, lookupErr(KindArtifactUnavailable, id, "%w", ErrNoCatalog)
	}

	b := l.bundle
	row, ok := b.IDs.Row(id)
	if !ok {
		return nil, &LookupError{Kind: KindUnknownID, ID: id}
	}
	if n <= 0 {
		return []models.Restaurant{}, nil
	}
	if row < 0 || row >= b.Matrix.Rows {
		return nil, lookupErr(KindArtifactMismatch, id, "row %d outside matrix of %d rows", row, b.Matrix.Rows)
	}

	hits, err := search(b.Index, b.Matrix.Row(row), n+1, id)
	if err != nil {
		return nil, err
	}

	rows := excludeSelf(hits, row, n)

	out = make([]models.Restaurant, 0, len(rows))
	for _, r := range rows {
		nid, ok := b.IDs.ID(r)
		if !ok {
			return nil, lookupErr(KindArtifactMismatch, id, "neighbor row %d has no id", r)
		}
		rec, ok := snap.Get(nid)
		if !ok {
			return nil, lookupErr(KindArtifactMismatch, id, "neighbor id %d not in catalog", nid)
		}
		out = append(out, rec)
	}
	return out, nil
}

// search runs the index query, converting errors and panics into
// KindIndexFault.
func search(idx artifact.Index, vec []float64, k int, id int64) (hits []artifact.Neighbor, err error) {
	defer func() {
		if r := recover(); r != nil {
			hits = nil
			err = lookupErr(KindIndexFault, id, "index panic: %v", r)
		}
	}()

	hits, err = idx.Search(vec, k)
	if err != nil {
		return nil, &LookupError{Kind: KindIndexFault, ID: id, Err: err}
	}
	return hits, nil
}

// excludeSelf drops self wherever it occurs. When self is absent the last
// hit is dropped instead, so at most n rows remain.
func excludeSelf(hits []artifact.Neighbor, self, n int) []int {
	rows := make([]int, 0, len(hits))
	for _, h := range hits {
		if h.Row != self {
			rows = append(rows, h.Row)
		}
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
