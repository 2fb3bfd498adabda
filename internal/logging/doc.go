// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package logging provides centralized zerolog-based logging for Forkcast.
//
// A single global logger is configured at startup with Init. Components
// derive child loggers with a component field, and request handlers log
// through Ctx so the request_id and correlation_id set by the HTTP
// middleware appear on every line.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Int64("restaurant_id", id).Msg("unknown restaurant")
//
// Components that hold their own logger call Enrich to attach the request
// identifiers without losing their fields:
//
//	logging.Enrich(ctx, e.logger).Error().Err(err).Msg("similar lookup failed")
//
// # slog bridge
//
// NewSlogLogger returns a *slog.Logger backed by zerolog. The supervisor tree
// hands it to sutureslog so supervisor events share the same output.
//
// # Untrusted values
//
// Values copied from request input into log fields go through SanitizeValue,
// which replaces control characters and truncates long strings.
package logging
