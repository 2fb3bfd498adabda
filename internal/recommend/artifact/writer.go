// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/forkcast/internal/models"
)

// BundleSpec is everything needed to write a bundle.
type BundleSpec struct {
	Version  string
	Metric   Metric
	Features []Feature
	Classes  Classes
	Scaler   Scaler
	Rows     [][]float64
	IDs      []int64

	// Compress writes the matrix zstd-compressed.
	Compress bool
}

// SpecFromRecords encodes records with enc into a spec. Row order follows
// records.
func SpecFromRecords(version string, metric Metric, classes Classes, scaler Scaler, enc *Encoder, records []models.Restaurant) (*BundleSpec, error) { //nolint:gocritic // Scaler copied once
	spec := &BundleSpec{
		Version:  version,
		Metric:   metric,
		Features: enc.Features(),
		Classes:  classes,
		Scaler:   scaler,
		Rows:     make([][]float64, 0, len(records)),
		IDs:      make([]int64, 0, len(records)),
	}
	for i := range records {
		row, err := enc.Encode(&records[i])
		if err != nil {
			return nil, fmt.Errorf("encode restaurant %d: %w", records[i].ID, err)
		}
		spec.Rows = append(spec.Rows, row)
		spec.IDs = append(spec.IDs, records[i].ID)
	}
	return spec, nil
}

// WriteDir writes spec as a bundle into dir with a checksummed manifest.
func WriteDir(dir string, spec *BundleSpec) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create bundle dir: %w", err)
	}

	matrix, err := NewMatrix(spec.Rows)
	if err != nil {
		return nil, err
	}
	if matrix.Rows == 0 {
		matrix.Cols = len(spec.Features)
	}

	m := &Manifest{
		Version:  spec.Version,
		Rows:     matrix.Rows,
		Metric:   spec.Metric,
		Features: spec.Features,
		Files: Files{
			Encoders: DefaultEncodersFile,
			Scaler:   DefaultScalerFile,
			Matrix:   DefaultMatrixFile,
			IDs:      DefaultIDsFile,
		},
		Checksums: make(map[string]string, 4),
	}
	if m.Metric == "" {
		m.Metric = MetricEuclidean
	}
	if spec.Compress {
		m.Files.Matrix += compressedSuffix
	}

	encoders, err := json.Marshal(spec.Classes)
	if err != nil {
		return nil, fmt.Errorf("encode classes: %w", err)
	}
	scaler, err := json.Marshal(spec.Scaler)
	if err != nil {
		return nil, fmt.Errorf("encode scaler: %w", err)
	}
	matrixBytes, err := EncodeMatrix(matrix, m.Files.Matrix)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data []byte
	}{
		{m.Files.Encoders, encoders},
		{m.Files.Scaler, scaler},
		{m.Files.Matrix, matrixBytes},
		{m.Files.IDs, EncodeIDs(spec.IDs)},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), f.data, 0o600); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		m.Checksums[f.name] = Checksum(f.data)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	manifest, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), manifest, 0o600); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	return m, nil
}
