// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/forkcast/internal/metrics"
)

// Bundle is a loaded, validated neighbor-index artifact. All parts are
// read-only after Load returns.
type Bundle struct {
	Manifest *Manifest
	Encoder  *Encoder
	Matrix   *Matrix
	IDs      *IDMap
	Index    Index
}

// Load reads the manifest from src, then the four data files concurrently,
// and validates the assembled bundle.
func Load(ctx context.Context, src Source) (*Bundle, error) {
	start := time.Now()

	raw, err := readAll(ctx, src, ManifestFile)
	if err != nil {
		return nil, err
	}
	manifest, err := ParseManifest(raw)
	if err != nil {
		return nil, err
	}

	var (
		classes Classes
		scaler  Scaler
		matrix  *Matrix
		ids     *IDMap
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := readVerified(gctx, src, manifest, manifest.Files.Encoders)
		if err != nil {
			return err
		}
		classes, err = ParseClasses(data)
		return err
	})
	g.Go(func() error {
		data, err := readVerified(gctx, src, manifest, manifest.Files.Scaler)
		if err != nil {
			return err
		}
		scaler, err = ParseScaler(data)
		return err
	})
	g.Go(func() error {
		data, err := readVerified(gctx, src, manifest, manifest.Files.Matrix)
		if err != nil {
			return err
		}
		matrix, err = DecodeMatrix(data, manifest.Files.Matrix)
		return err
	})
	g.Go(func() error {
		data, err := readVerified(gctx, src, manifest, manifest.Files.IDs)
		if err != nil {
			return err
		}
		ids, err = ParseIDs(data)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b, err := assemble(manifest, classes, scaler, matrix, ids)
	if err != nil {
		return nil, err
	}

	metrics.RecordArtifactLoad(manifest.Version, matrix.Rows, time.Since(start))
	return b, nil
}

// assemble cross-checks the parts and builds the index.
//
//nolint:gocritic // Scaler is copied once per load
func assemble(m *Manifest, classes Classes, scaler Scaler, matrix *Matrix, ids *IDMap) (*Bundle, error) {
	if matrix.Rows != ids.Len() {
		return nil, fmt.Errorf("%w: matrix has %d rows, id table has %d", ErrInvalidArtifact, matrix.Rows, ids.Len())
	}
	if matrix.Rows != m.Rows {
		return nil, fmt.Errorf("%w: matrix has %d rows, manifest says %d", ErrInvalidArtifact, matrix.Rows, m.Rows)
	}
	if matrix.Cols != len(m.Features) {
		return nil, fmt.Errorf("%w: matrix has %d columns, manifest lists %d features", ErrInvalidArtifact, matrix.Cols, len(m.Features))
	}
	if err := matrix.checkFinite(); err != nil {
		return nil, err
	}

	enc, err := NewEncoder(m.Features, classes, scaler)
	if err != nil {
		return nil, err
	}
	idx, err := NewExactIndex(matrix, m.Metric)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Manifest: m,
		Encoder:  enc,
		Matrix:   matrix,
		IDs:      ids,
		Index:    idx,
	}, nil
}

func readVerified(ctx context.Context, src Source, m *Manifest, name string) ([]byte, error) {
	data, err := readAll(ctx, src, name)
	if err != nil {
		return nil, err
	}
	if err := m.verify(name, data); err != nil {
		return nil, err
	}
	return data, nil
}

func readAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s from %s: %w", name, src, err)
	}
	return data, nil
}
