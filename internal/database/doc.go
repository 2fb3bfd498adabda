// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package database reads the restaurant catalog from PostgreSQL.
//
// Open connects with lib/pq and retries while the database starts up;
// CatalogProvider turns the restaurants table into catalog records. Every
// column beyond the core recommender fields is passed through untouched, so
// the table can grow display columns without code changes.
//
// Reads go through a sony/gobreaker circuit breaker named "catalog-db" whose
// state is exported as circuit_breaker_* metrics.
package database
