// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package models defines the data structures shared across Forkcast.

Key Components:

  - Restaurant: a catalog record with five core fields and pass-through columns
  - APIResponse: envelope for operational endpoints
  - ErrorBody, StatusBody: bare bodies of the recommendation routes

Restaurant marshals flat: extra catalog columns appear next to id, cuisine,
region, price_range and rating, so a record read from the catalog is
returned to clients unchanged.
*/
package models
