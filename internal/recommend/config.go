// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import "fmt"

// Config contains the tunables of the recommendation engine.
type Config struct {
	// TopK is the number of records Recommend returns when no limit is given.
	// Default: 10.
	TopK int `json:"top_k"`

	// DefaultMinRating applies to queries without a rating floor.
	// Default: 3.5.
	DefaultMinRating float64 `json:"default_min_rating"`

	// DefaultSimilarN is the neighbor count used when a caller passes none.
	// Default: 10.
	DefaultSimilarN int `json:"default_similar_n"`

	// MaxSimilarN caps the neighbor count a caller may request.
	// Default: 50.
	MaxSimilarN int `json:"max_similar_n"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		TopK:             10,
		DefaultMinRating: DefaultMinRating,
		DefaultSimilarN:  10,
		MaxSimilarN:      50,
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.DefaultMinRating < 0 || c.DefaultMinRating > 5 {
		return fmt.Errorf("default_min_rating must be within 0..5, got %v", c.DefaultMinRating)
	}
	if c.DefaultSimilarN <= 0 {
		return fmt.Errorf("default_similar_n must be positive, got %d", c.DefaultSimilarN)
	}
	if c.MaxSimilarN < c.DefaultSimilarN {
		return fmt.Errorf("max_similar_n (%d) must be >= default_similar_n (%d)", c.MaxSimilarN, c.DefaultSimilarN)
	}
	return nil
}
