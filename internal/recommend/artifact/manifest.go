// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the fixed name of the manifest inside a bundle.
const ManifestFile = "manifest.yaml"

// Default file names written by WriteDir.
const (
	DefaultEncodersFile = "encoders.json"
	DefaultScalerFile   = "scaler.json"
	DefaultMatrixFile   = "features.fcmx"
	DefaultIDsFile      = "restaurant_ids.csv"
)

// Sentinel errors for bundle validation.
var (
	ErrInvalidArtifact  = errors.New("invalid artifact")
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")
	ErrUnseenCategory   = errors.New("unseen category")
)

// FeatureType tells the encoder how to turn a column into a number.
type FeatureType string

const (
	// Categorical features are label-encoded against a class list.
	Categorical FeatureType = "categorical"
	// Numeric features are taken verbatim.
	Numeric FeatureType = "numeric"
)

// Feature is one column of the frozen feature matrix.
type Feature struct {
	Name string      `yaml:"name"`
	Type FeatureType `yaml:"type"`
}

// Files names the data files of a bundle, relative to the bundle root.
type Files struct {
	Encoders string `yaml:"encoders"`
	Scaler   string `yaml:"scaler"`
	Matrix   string `yaml:"matrix"`
	IDs      string `yaml:"ids"`
}

// Manifest describes a neighbor-index bundle.
type Manifest struct {
	Version   string            `yaml:"version"`
	Rows      int               `yaml:"rows"`
	Metric    Metric            `yaml:"metric"`
	Features  []Feature         `yaml:"features"`
	Files     Files             `yaml:"files"`
	Checksums map[string]string `yaml:"checksums"`
}

// DefaultFeatures is the layout the bundled model was fitted on.
func DefaultFeatures() []Feature {
	return []Feature{
		{Name: "cuisine", Type: Categorical},
		{Name: "region", Type: Categorical},
		{Name: "price_range", Type: Categorical},
		{Name: "rating", Type: Numeric},
	}
}

// ParseManifest decodes and validates a manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode manifest: %w", ErrInvalidArtifact, err)
	}
	if m.Metric == "" {
		m.Metric = MetricEuclidean
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for internal consistency.
func (m *Manifest) Validate() error {
	if m.Version == "" {
		return fmt.Errorf("%w: manifest version is empty", ErrInvalidArtifact)
	}
	if m.Rows < 0 {
		return fmt.Errorf("%w: manifest rows %d is negative", ErrInvalidArtifact, m.Rows)
	}
	if len(m.Features) == 0 {
		return fmt.Errorf("%w: manifest lists no features", ErrInvalidArtifact)
	}
	if _, err := m.Metric.distance(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(m.Features))
	for _, f := range m.Features {
		if f.Name == "" {
			return fmt.Errorf("%w: feature with empty name", ErrInvalidArtifact)
		}
		if f.Type != Categorical && f.Type != Numeric {
			return fmt.Errorf("%w: feature %q has unknown type %q", ErrInvalidArtifact, f.Name, f.Type)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: feature %q listed twice", ErrInvalidArtifact, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	for field, name := range map[string]string{
		"encoders": m.Files.Encoders,
		"scaler":   m.Files.Scaler,
		"matrix":   m.Files.Matrix,
		"ids":      m.Files.IDs,
	} {
		if name == "" {
			return fmt.Errorf("%w: manifest files.%s is empty", ErrInvalidArtifact, field)
		}
	}
	return nil
}

// verify compares data against the manifest checksum for name. Every data
// file must have a recorded checksum.
func (m *Manifest) verify(name string, data []byte) error {
	want, ok := m.Checksums[name]
	if !ok {
		return fmt.Errorf("%w: no checksum recorded for %s", ErrInvalidArtifact, name)
	}
	if got := Checksum(data); got != want {
		return fmt.Errorf("%w: %w: %s: got %s, want %s", ErrInvalidArtifact, ErrChecksumMismatch, name, got, want)
	}
	return nil
}

// Checksum returns the hex sha256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
