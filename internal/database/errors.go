// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package database

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// ErrNotConnected is returned by operations on a closed or never-opened DB.
var ErrNotConnected = errors.New("database not connected")

// closeWithLog closes a resource and logs any error.
// Use this for cleanup where the error should be seen but must not fail the operation.
func closeWithLog(closer io.Closer, logger *zerolog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil && logger != nil {
		logger.Warn().Str("type", resourceType).Err(err).Msg("failed to close resource")
	}
}

// closeQuietly closes a resource and ignores the error. Used in error paths
// where a Close failure is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
