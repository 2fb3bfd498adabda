// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkcast/internal/models"
)

// FileProvider reads the catalog from a JSON array of records. It is used
// for local development and seeded test environments.
type FileProvider struct {
	Path string
}

// NewFileProvider creates a provider for the JSON file at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// FetchAll implements Provider.
func (p *FileProvider) FetchAll(ctx context.Context) ([]models.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var records []models.Restaurant
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", p.Path, err)
	}
	return records, nil
}

// StaticProvider serves a fixed record list.
type StaticProvider []models.Restaurant

// FetchAll implements Provider.
func (p StaticProvider) FetchAll(ctx context.Context) ([]models.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Restaurant, len(p))
	copy(out, p)
	return out, nil
}
