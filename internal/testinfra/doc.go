// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package testinfra starts real backing services for integration tests with
// testcontainers-go.
//
// Three containers are provided:
//   - Postgres for the catalog provider and connection retry
//   - Redis for the shared response cache
//   - MinIO for the S3 artifact source
//
// Example:
//
//	func TestCatalog(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    pg, err := testinfra.NewPostgresContainer(ctx, testinfra.WithInitSQL(schema))
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    t.Cleanup(func() { testinfra.CleanupContainer(t, pg) })
//
//	    db, err := database.Open(ctx, pg.Config, logger)
//	    // ...
//	}
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/testinfra/...
//
// Tests skip when Docker is not reachable. The first run pulls images.
package testinfra
