// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package artifact loads the pre-trained neighbor-index bundle.
//
// A bundle is a directory (or object-store prefix) holding:
//
//	manifest.yaml       version, row count, feature layout, metric, file names, sha256 checksums
//	encoders.json       sorted class list per categorical feature
//	scaler.json         {"mean": [...], "scale": [...]}
//	features.fcmx[.zst] frozen feature matrix, optionally zstd-compressed
//	restaurant_ids.csv  db_id per matrix row
//
// The matrix file is "FCMX", uint32 rows, uint32 cols, then rows*cols
// little-endian float64 values.
//
// Load validates every part against the manifest and fails with an error
// wrapping ErrInvalidArtifact when anything disagrees. The returned Bundle
// is immutable and is shared by concurrent lookups.
//
// CheckDrift compares the frozen rows with a live catalog snapshot. It only
// reports; neighbor lookups always use the frozen rows.
package artifact
