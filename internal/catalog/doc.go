// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package catalog holds the in-memory restaurant catalog.
//
// A Snapshot is an immutable ordered view with an id index. The Store keeps
// the current snapshot behind an atomic pointer and replaces it wholesale on
// refresh, so readers never observe a partially updated catalog and need no
// locks.
//
// # Providers
//
// Provider is the read side of wherever the catalog lives. The Postgres
// implementation is in internal/database; FileProvider and StaticProvider
// serve JSON files and fixed lists.
package catalog
