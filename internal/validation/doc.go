// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so request types should be validated through ValidateStruct
// rather than a fresh validator.
//
// Messages use the json field name:
//
//	type RecommendRequest struct {
//	    Cuisine string `json:"cuisine" validate:"required,notblank,max=200"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    // err.Error() == "cuisine is required"
//	}
//
// Custom tags:
//   - notblank: string is non-empty after trimming whitespace
package validation
