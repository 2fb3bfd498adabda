// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"errors"
	"fmt"
)

// Kind classifies a neighbor lookup failure.
type Kind string

// Lookup failure kinds. The string values are used as metric labels.
const (
	KindUnknownID           Kind = "unknown_id"
	KindArtifactMismatch    Kind = "artifact_mismatch"
	KindIndexFault          Kind = "index_fault"
	KindArtifactUnavailable Kind = "artifact_unavailable"
)

// LookupError is returned by NeighborLookup.Similar.
type LookupError struct {
	Kind Kind
	ID   int64
	Err  error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("similar %d: %s", e.ID, e.Kind)
	}
	return fmt.Sprintf("similar %d: %s: %v", e.ID, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// KindOf returns the lookup kind carried by err.
func KindOf(err error) (Kind, bool) {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}

func lookupErr(kind Kind, id int64, format string, args ...any) *LookupError {
	return &LookupError{Kind: kind, ID: id, Err: fmt.Errorf(format, args...)}
}
