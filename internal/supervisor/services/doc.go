// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package services provides suture.Service wrappers for Forkcast components.

Each wrapper implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so suture can name it in events.

HTTPServerService:
  - wraps *http.Server, translating ListenAndServe into Serve
  - shuts down gracefully with a configurable timeout

CatalogRefreshService:
  - reloads the catalog store on a ticker
  - logs and skips failed refreshes; the previous snapshot stays current
  - returns suture.ErrDoNotRestart when the interval is zero, so a
    load-once deployment needs no special casing
*/
package services
