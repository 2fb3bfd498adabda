// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Command artifactpack builds a neighbor bundle directory from a catalog
// export and an encoding fitted offline.
//
// Usage:
//
//	artifactpack -catalog restaurants.json -encoders encoders.json \
//	    -scaler scaler.json -out ./artifacts -version 2026-10-01 [-metric euclidean] [-zstd]
//
// Rows are written in catalog order and the ID table is written from the
// same slice, so row i always belongs to the i-th restaurant.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tomtom215/forkcast/internal/catalog"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/recommend/artifact"
)

type options struct {
	catalog  string
	encoders string
	scaler   string
	out      string
	version  string
	metric   string
	compress bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logging.Fatal().Err(err).Msg("artifactpack failed")
	}
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("artifactpack", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &options{}
	fs.StringVar(&opts.catalog, "catalog", "", "catalog JSON file (array of restaurants)")
	fs.StringVar(&opts.encoders, "encoders", "", "encoders JSON: feature name to ordered class list")
	fs.StringVar(&opts.scaler, "scaler", "", "scaler JSON: {mean, scale}")
	fs.StringVar(&opts.out, "out", "", "output bundle directory")
	fs.StringVar(&opts.version, "version", "", "bundle version recorded in the manifest")
	fs.StringVar(&opts.metric, "metric", string(artifact.MetricEuclidean), "distance metric: euclidean, manhattan or cosine")
	fs.BoolVar(&opts.compress, "zstd", false, "write the feature matrix zstd-compressed")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	for _, req := range []struct{ name, value string }{
		{"catalog", opts.catalog},
		{"encoders", opts.encoders},
		{"scaler", opts.scaler},
		{"out", opts.out},
		{"version", opts.version},
	} {
		if req.value == "" {
			return nil, fmt.Errorf("-%s is required", req.name)
		}
	}
	return opts, nil
}

func run(ctx context.Context, args []string, output io.Writer) error {
	opts, err := parseFlags(args, output)
	if err != nil {
		return err
	}

	records, err := catalog.NewFileProvider(opts.catalog).FetchAll(ctx)
	if err != nil {
		return err
	}
	// reject duplicate ids before anything is written
	if _, err := catalog.NewSnapshot(records, 0); err != nil {
		return err
	}

	classesData, err := os.ReadFile(opts.encoders)
	if err != nil {
		return fmt.Errorf("read encoders: %w", err)
	}
	classes, err := artifact.ParseClasses(classesData)
	if err != nil {
		return err
	}

	scalerData, err := os.ReadFile(opts.scaler)
	if err != nil {
		return fmt.Errorf("read scaler: %w", err)
	}
	scaler, err := artifact.ParseScaler(scalerData)
	if err != nil {
		return err
	}

	enc, err := artifact.NewEncoder(artifact.DefaultFeatures(), classes, scaler)
	if err != nil {
		return err
	}

	spec, err := artifact.SpecFromRecords(opts.version, artifact.Metric(opts.metric), classes, scaler, enc, records)
	if err != nil {
		return err
	}
	spec.Compress = opts.compress

	manifest, err := artifact.WriteDir(opts.out, spec)
	if err != nil {
		return err
	}

	logging.Info().
		Str("dir", opts.out).
		Str("version", manifest.Version).
		Int("rows", manifest.Rows).
		Str("metric", string(manifest.Metric)).
		Str("matrix", manifest.Files.Matrix).
		Msg("Bundle written")
	return nil
}
