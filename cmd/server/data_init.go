// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/forkcast/internal/catalog"
	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/database"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/recommend/artifact"
)

// newCatalogProvider returns the configured provider and a function that
// releases its resources.
func newCatalogProvider(ctx context.Context, cfg *config.Config) (catalog.Provider, func(), error) {
	if cfg.Catalog.Source == config.CatalogSourceFile {
		logging.Info().Str("file", cfg.Catalog.File).Msg("Using file catalog")
		return catalog.NewFileProvider(cfg.Catalog.File), func() {}, nil
	}

	db, err := database.Open(ctx, cfg.Database, logging.WithComponent("database"))
	if err != nil {
		return nil, nil, err
	}
	logging.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Msg("Database connected")

	closeDB := func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}
	return database.NewCatalogProvider(db), closeDB, nil
}

// newArtifactSource builds the configured bundle source.
func newArtifactSource(cfg *config.ArtifactConfig) (artifact.Source, error) {
	if cfg.Source == config.ArtifactSourceS3 {
		src, err := artifact.NewS3Source(artifact.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("artifact source: %w", err)
		}
		return src, nil
	}
	return artifact.DirSource{Root: cfg.Dir}, nil
}

// loadData loads the first catalog snapshot and the artifact bundle in
// parallel. The returned bundle is nil when loading failed and the bundle
// is optional.
func loadData(ctx context.Context, cfg *config.Config, store *catalog.Store, provider catalog.Provider) (*artifact.Bundle, error) {
	src, err := newArtifactSource(&cfg.Artifact)
	if err != nil {
		return nil, err
	}

	var bundle *artifact.Bundle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		snap, err := store.Refresh(gctx, provider)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		logging.Info().
			Int("restaurants", snap.Len()).
			Uint64("version", snap.Version()).
			Msg("Catalog loaded")
		return nil
	})

	g.Go(func() error {
		b, err := artifact.Load(gctx, src)
		if err != nil {
			if cfg.Artifact.Required {
				return fmt.Errorf("load artifact bundle from %v: %w", src, err)
			}
			logging.Error().Err(err).Msg("Artifact bundle unavailable, similar lookups disabled")
			return nil
		}
		logging.Info().
			Str("version", b.Manifest.Version).
			Int("rows", b.Manifest.Rows).
			Str("metric", string(b.Manifest.Metric)).
			Msg("Artifact bundle loaded")
		bundle = b
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// watchDrift compares every new snapshot with the frozen bundle rows.
func watchDrift(store *catalog.Store, bundle *artifact.Bundle) {
	check := func(snap *catalog.Snapshot) {
		report := artifact.CheckDrift(bundle, snap)
		metrics.UpdateArtifactDrift(report.Checked, report.Missing, report.Unseen, report.Drifted, report.Unmapped)
		if report.Clean() {
			return
		}
		logging.Warn().
			Uint64("catalog_version", snap.Version()).
			Str("artifact_version", bundle.Manifest.Version).
			Int("missing", report.Missing).
			Int("unseen", report.Unseen).
			Int("drifted", report.Drifted).
			Int("unmapped", report.Unmapped).
			Msg("Artifact bundle drifted from catalog, rebuild recommended")
	}

	store.OnReplace(check)
	if snap := store.Current(); snap != nil {
		check(snap)
	}
}
