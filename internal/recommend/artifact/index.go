// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// Metric names a distance function over feature rows.
type Metric string

// Supported metrics.
const (
	MetricEuclidean Metric = "euclidean"
	MetricManhattan Metric = "manhattan"
	MetricCosine    Metric = "cosine"
)

// DistanceFunc returns the distance between two rows of equal length.
type DistanceFunc func(a, b []float64) float64

func (m Metric) distance() (DistanceFunc, error) {
	switch m {
	case MetricEuclidean:
		return euclidean, nil
	case MetricManhattan:
		return manhattan, nil
	case MetricCosine:
		return cosineDistance, nil
	default:
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidArtifact, m)
	}
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func cosineDistance(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// Neighbor is one search hit.
type Neighbor struct {
	Row      int
	Distance float64
}

// Index answers k-nearest-neighbor queries over matrix rows.
type Index interface {
	// Search returns up to k rows ordered by increasing distance, ties
	// broken by lower row index.
	Search(vec []float64, k int) ([]Neighbor, error)
}

// ExactIndex is a brute-force exact KNN index. It scans every row per
// query and keeps the best k in a bounded max-heap.
type ExactIndex struct {
	matrix *Matrix
	dist   DistanceFunc
}

// NewExactIndex builds an index over m using metric.
func NewExactIndex(m *Matrix, metric Metric) (*ExactIndex, error) {
	dist, err := metric.distance()
	if err != nil {
		return nil, err
	}
	return &ExactIndex{matrix: m, dist: dist}, nil
}

// Search implements Index.
func (x *ExactIndex) Search(vec []float64, k int) ([]Neighbor, error) {
	if len(vec) != x.matrix.Cols {
		return nil, fmt.Errorf("query has %d columns, index has %d", len(vec), x.matrix.Cols)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}
	if k > x.matrix.Rows {
		k = x.matrix.Rows
	}

	h := make(worstFirst, 0, k+1)
	for row := 0; row < x.matrix.Rows; row++ {
		n := Neighbor{Row: row, Distance: x.dist(vec, x.matrix.Row(row))}
		if len(h) < k {
			heap.Push(&h, n)
			continue
		}
		if closer(n, h[0]) {
			h[0] = n
			heap.Fix(&h, 0)
		}
	}

	out := []Neighbor(h)
	sort.Slice(out, func(i, j int) bool { return closer(out[i], out[j]) })
	return out, nil
}

// closer orders by distance then row.
func closer(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Row < b.Row
}

// worstFirst is a max-heap on (distance, row).
type worstFirst []Neighbor

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *worstFirst) Push(x any)        { *h = append(*h, x.(Neighbor)) } //nolint:errcheck,forcetypeassert // heap contract
func (h *worstFirst) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}
