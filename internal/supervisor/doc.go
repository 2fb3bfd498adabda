// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package supervisor runs the long-lived parts of Forkcast under suture v4.

	RootSupervisor ("forkcast")
	├── DataSupervisor ("data-layer")
	│   └── CatalogRefreshService (when catalog.refresh_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are logged
through sutureslog, bridged to zerolog by logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("supervisor")
	}
	tree.AddDataService(services.NewCatalogRefreshService(store, provider, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}
*/
package supervisor
