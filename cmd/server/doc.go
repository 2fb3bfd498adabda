// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package main is the entry point for the Forkcast server.

Forkcast ranks restaurants by cuisine similarity and serves nearest-neighbor
lookups over a prebuilt feature bundle.

# Application Architecture

Services run under a Suture v4 supervisor tree:

	RootSupervisor ("forkcast")
	├── DataSupervisor ("data-layer")
	│   └── Catalog refresh (when CATALOG_REFRESH_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: .env, then Koanf v2 defaults, YAML file, environment
 2. Logging: zerolog with JSON or console output
 3. Catalog provider: Postgres (with connection retry) or a JSON file
 4. Catalog snapshot and artifact bundle, loaded concurrently
 5. Drift check between the bundle and the catalog
 6. Engine, response cache, handlers and Chi router
 7. Supervisor tree

A catalog that cannot be loaded is fatal. A bundle that cannot be loaded is
fatal only when ARTIFACT_REQUIRED is true; otherwise /similar answers with
empty lists and /health/ready reports the bundle as missing.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
the supervisor shutdown timeout, then the database pool and the Redis
client are closed.
*/
package main
