// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/forkcast/internal/catalog"
	"github.com/tomtom215/forkcast/internal/models"
)

func testRecords() []models.Restaurant {
	return []models.Restaurant{
		{ID: 1, Cuisine: "italian", Region: "north", PriceRange: "$$", Rating: 4.2},
		{ID: 2, Cuisine: "italian", Region: "south", PriceRange: "$$", Rating: 4.5},
		{ID: 3, Cuisine: "mexican", Region: "north", PriceRange: "$", Rating: 4.8},
		{ID: 4, Cuisine: "thai", Region: "east", PriceRange: "$$$", Rating: 3.9},
	}
}

func testClasses() Classes {
	return Classes{
		"cuisine":     {"italian", "mexican", "thai"},
		"region":      {"east", "north", "south"},
		"price_range": {"$", "$$", "$$$"},
	}
}

func testScaler() Scaler {
	return Scaler{Mean: []float64{0, 0, 0, 4}, Scale: []float64{1, 1, 1, 0.5}}
}

func testSpec(t *testing.T) *BundleSpec {
	t.Helper()

	enc, err := NewEncoder(DefaultFeatures(), testClasses(), testScaler())
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	spec, err := SpecFromRecords("test-v1", MetricEuclidean, testClasses(), testScaler(), enc, testRecords())
	if err != nil {
		t.Fatalf("SpecFromRecords() error = %v", err)
	}
	return spec
}

func writeTestBundle(t *testing.T, spec *BundleSpec) string {
	t.Helper()

	dir := t.TempDir()
	if _, err := WriteDir(dir, spec); err != nil {
		t.Fatalf("WriteDir() error = %v", err)
	}
	return dir
}

// rewriteManifest edits the manifest of a written bundle in place.
func rewriteManifest(t *testing.T, dir string, edit func(m *Manifest)) {
	t.Helper()

	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	edit(&m)
	out, err := yaml.Marshal(&m)
	if err != nil {
		t.Fatalf("encode manifest: %v", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

// replaceFile overwrites a data file and records its new checksum.
func replaceFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	rewriteManifest(t, dir, func(m *Manifest) {
		m.Checksums[name] = Checksum(data)
	})
}

func TestLoad_ValidBundle(t *testing.T) {
	t.Parallel()

	for _, compress := range []bool{false, true} {
		compress := compress
		name := "plain"
		if compress {
			name = "zstd"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			spec := testSpec(t)
			spec.Compress = compress
			dir := writeTestBundle(t, spec)

			b, err := Load(context.Background(), DirSource{Root: dir})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if b.Manifest.Version != "test-v1" {
				t.Errorf("Version = %q, want test-v1", b.Manifest.Version)
			}
			if b.Matrix.Rows != 4 || b.Matrix.Cols != 4 {
				t.Errorf("matrix = %dx%d, want 4x4", b.Matrix.Rows, b.Matrix.Cols)
			}
			if row, ok := b.IDs.Row(3); !ok || row != 2 {
				t.Errorf("IDs.Row(3) = %d, %v, want 2, true", row, ok)
			}
			for i, want := range spec.Rows {
				got := b.Matrix.Row(i)
				for j := range want {
					if got[j] != want[j] {
						t.Fatalf("row %d = %v, want %v", i, got, want)
					}
				}
			}

			hits, err := b.Index.Search(b.Matrix.Row(0), 4)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			wantRows := []int{0, 1, 2, 3}
			for i, h := range hits {
				if h.Row != wantRows[i] {
					t.Errorf("hit %d row = %d, want %d", i, h.Row, wantRows[i])
				}
			}
		})
	}
}

func TestLoad_InvalidBundles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    func(s *BundleSpec)
		mutate  func(t *testing.T, dir string)
		wantErr error
	}{
		{
			name: "tampered matrix fails checksum",
			mutate: func(t *testing.T, dir string) {
				path := filepath.Join(dir, DefaultMatrixFile)
				data, err := os.ReadFile(path)
				if err != nil {
					t.Fatal(err)
				}
				data[len(data)-1] ^= 0xFF
				if err := os.WriteFile(path, data, 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrChecksumMismatch,
		},
		{
			name: "missing checksum",
			mutate: func(t *testing.T, dir string) {
				rewriteManifest(t, dir, func(m *Manifest) { delete(m.Checksums, DefaultIDsFile) })
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "empty version",
			mutate: func(t *testing.T, dir string) {
				rewriteManifest(t, dir, func(m *Manifest) { m.Version = "" })
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "manifest row count disagrees",
			mutate: func(t *testing.T, dir string) {
				rewriteManifest(t, dir, func(m *Manifest) { m.Rows = 5 })
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "id table shorter than matrix",
			mutate: func(t *testing.T, dir string) {
				replaceFile(t, dir, DefaultIDsFile, EncodeIDs([]int64{1, 2, 3}))
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "duplicate id",
			mutate: func(t *testing.T, dir string) {
				replaceFile(t, dir, DefaultIDsFile, EncodeIDs([]int64{1, 2, 2, 4}))
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "unknown metric",
			mutate: func(t *testing.T, dir string) {
				rewriteManifest(t, dir, func(m *Manifest) { m.Metric = "hamming" })
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "feature count disagrees with columns",
			mutate: func(t *testing.T, dir string) {
				rewriteManifest(t, dir, func(m *Manifest) { m.Features = m.Features[:3] })
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "categorical feature without encoder",
			spec: func(s *BundleSpec) {
				delete(s.Classes, "region")
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "scaler length disagrees",
			spec: func(s *BundleSpec) {
				s.Scaler = Scaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "non-finite matrix value",
			spec: func(s *BundleSpec) {
				s.Rows[1] = []float64{0, 2, 1, math.NaN()}
			},
			wantErr: ErrInvalidArtifact,
		},
		{
			name: "manifest missing",
			mutate: func(t *testing.T, dir string) {
				if err := os.Remove(filepath.Join(dir, ManifestFile)); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec := testSpec(t)
			if tt.spec != nil {
				tt.spec(spec)
			}
			dir := writeTestBundle(t, spec)
			if tt.mutate != nil {
				tt.mutate(t, dir)
			}

			b, err := Load(context.Background(), DirSource{Root: dir})
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if b != nil {
				t.Error("Load() returned a bundle alongside an error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ChecksumErrorIsInvalidArtifact(t *testing.T) {
	t.Parallel()

	dir := writeTestBundle(t, testSpec(t))
	if err := os.WriteFile(filepath.Join(dir, DefaultScalerFile), []byte(`{"mean":[0,0,0,0],"scale":[1,1,1,1]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), DirSource{Root: dir})
	if !errors.Is(err, ErrChecksumMismatch) || !errors.Is(err, ErrInvalidArtifact) {
		t.Errorf("Load() error = %v, want both ErrChecksumMismatch and ErrInvalidArtifact", err)
	}
}

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		scaler  Scaler
		record  models.Restaurant
		want    []float64
		wantErr error
	}{
		{
			name:   "label encodes and scales",
			scaler: testScaler(),
			record: models.Restaurant{Cuisine: "mexican", Region: "south", PriceRange: "$$$", Rating: 5},
			want:   []float64{1, 2, 2, 2},
		},
		{
			name:   "zero scale treated as one",
			scaler: Scaler{Mean: []float64{0, 0, 0, 1}, Scale: []float64{0, 0, 0, 0}},
			record: models.Restaurant{Cuisine: "thai", Region: "east", PriceRange: "$", Rating: 3},
			want:   []float64{2, 0, 0, 2},
		},
		{
			name:    "unseen cuisine",
			scaler:  testScaler(),
			record:  models.Restaurant{Cuisine: "greek", Region: "east", PriceRange: "$"},
			wantErr: ErrUnseenCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			enc, err := NewEncoder(DefaultFeatures(), testClasses(), tt.scaler)
			if err != nil {
				t.Fatalf("NewEncoder() error = %v", err)
			}
			got, err := enc.Encode(&tt.record)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Encode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Fatalf("Encode() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestExactIndex_Search(t *testing.T) {
	t.Parallel()

	m, err := NewMatrix([][]float64{{0}, {1}, {1}, {0}, {3}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		metric Metric
		query  []float64
		k      int
		want   []int
	}{
		{name: "ties broken by lower row", metric: MetricEuclidean, query: []float64{0}, k: 5, want: []int{0, 3, 1, 2, 4}},
		{name: "k bounds result", metric: MetricEuclidean, query: []float64{0}, k: 3, want: []int{0, 3, 1}},
		{name: "k larger than rows", metric: MetricManhattan, query: []float64{3}, k: 10, want: []int{4, 1, 2, 0, 3}},
		{name: "zero k", metric: MetricEuclidean, query: []float64{0}, k: 0, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx, err := NewExactIndex(m, tt.metric)
			if err != nil {
				t.Fatal(err)
			}
			hits, err := idx.Search(tt.query, tt.k)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(hits) != len(tt.want) {
				t.Fatalf("Search() returned %d hits, want %d", len(hits), len(tt.want))
			}
			for i := range hits {
				if hits[i].Row != tt.want[i] {
					t.Errorf("hit %d = row %d, want %d", i, hits[i].Row, tt.want[i])
				}
				if i > 0 && hits[i].Distance < hits[i-1].Distance {
					t.Errorf("distances not ascending at %d", i)
				}
			}
		})
	}

	t.Run("column mismatch", func(t *testing.T) {
		t.Parallel()

		idx, _ := NewExactIndex(m, MetricEuclidean)
		if _, err := idx.Search([]float64{0, 1}, 1); err == nil {
			t.Error("Search() error = nil, want column mismatch")
		}
	})
}

func TestCosineDistance(t *testing.T) {
	t.Parallel()

	if d := cosineDistance([]float64{1, 0}, []float64{2, 0}); math.Abs(d) > 1e-12 {
		t.Errorf("parallel vectors distance = %v, want 0", d)
	}
	if d := cosineDistance([]float64{1, 0}, []float64{0, 1}); math.Abs(d-1) > 1e-12 {
		t.Errorf("orthogonal vectors distance = %v, want 1", d)
	}
	if d := cosineDistance([]float64{0, 0}, []float64{0, 1}); d != 1 {
		t.Errorf("zero vector distance = %v, want 1", d)
	}
}

func TestDecodeMatrix_Malformed(t *testing.T) {
	t.Parallel()

	valid, err := EncodeMatrix(&Matrix{Rows: 1, Cols: 2, Data: []float64{1, 2}}, DefaultMatrixFile)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "bad magic", data: append([]byte("XXXX"), valid[4:]...)},
		{name: "truncated payload", data: valid[:len(valid)-3]},
		{name: "header only", data: valid[:6]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := DecodeMatrix(tt.data, DefaultMatrixFile); !errors.Is(err, ErrInvalidArtifact) {
				t.Errorf("DecodeMatrix() error = %v, want ErrInvalidArtifact", err)
			}
		})
	}
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    []int64
	}{
		{name: "valid", input: "db_id\n10\n20\n30\n", want: []int64{10, 20, 30}},
		{name: "empty table", input: "db_id\n", want: nil},
		{name: "wrong header", input: "id\n1\n", wantErr: true},
		{name: "non-integer id", input: "db_id\nabc\n", wantErr: true},
		{name: "extra column", input: "db_id\n1,2\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := ParseIDs([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIDs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if m.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", m.Len(), len(tt.want))
			}
			for row, id := range tt.want {
				if got, _ := m.ID(row); got != id {
					t.Errorf("ID(%d) = %d, want %d", row, got, id)
				}
			}
		})
	}
}

func TestDirSource_NotFound(t *testing.T) {
	t.Parallel()

	_, err := DirSource{Root: t.TempDir()}.Open(context.Background(), "missing.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestCheckDrift(t *testing.T) {
	t.Parallel()

	dir := writeTestBundle(t, testSpec(t))
	b, err := Load(context.Background(), DirSource{Root: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name    string
		records func() []models.Restaurant
		verify  func(t *testing.T, r DriftReport)
	}{
		{
			name:    "unchanged catalog is clean",
			records: testRecords,
			verify: func(t *testing.T, r DriftReport) {
				if !r.Clean() || r.Checked != 4 {
					t.Errorf("report = %+v, want clean with 4 checked", r)
				}
			},
		},
		{
			name: "changed rating drifts",
			records: func() []models.Restaurant {
				recs := testRecords()
				recs[0].Rating = 3.0
				return recs
			},
			verify: func(t *testing.T, r DriftReport) {
				if r.Drifted != 1 || r.Clean() {
					t.Errorf("report = %+v, want 1 drifted", r)
				}
			},
		},
		{
			name: "missing and unseen records",
			records: func() []models.Restaurant {
				recs := testRecords()
				recs[1].Cuisine = "greek"
				recs = append(recs[:3:3], models.Restaurant{ID: 99, Cuisine: "thai", Region: "east", PriceRange: "$", Rating: 4})
				return recs
			},
			verify: func(t *testing.T, r DriftReport) {
				if r.Unseen != 1 {
					t.Errorf("Unseen = %d, want 1", r.Unseen)
				}
				if r.Missing != 1 {
					t.Errorf("Missing = %d, want 1", r.Missing)
				}
				if r.Unmapped != 1 {
					t.Errorf("Unmapped = %d, want 1", r.Unmapped)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snap, err := catalog.NewSnapshot(tt.records(), 1)
			if err != nil {
				t.Fatal(err)
			}
			tt.verify(t, CheckDrift(b, snap))
		})
	}
}
