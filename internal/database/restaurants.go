// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/forkcast/internal/catalog"
	"github.com/tomtom215/forkcast/internal/models"
)

const selectRestaurants = `SELECT * FROM restaurants ORDER BY id`

// ErrMissingID is returned when a catalog row has no usable id column.
var ErrMissingID = errors.New("restaurant row has no id")

// rowSource is the subset of *sql.Rows used for scanning.
type rowSource interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// CatalogProvider loads the restaurant table as a catalog.
type CatalogProvider struct {
	db      *DB
	breaker *Breaker
}

var _ catalog.Provider = (*CatalogProvider)(nil)

// NewCatalogProvider creates a provider reading through db. Reads go through
// the catalog-db circuit breaker.
func NewCatalogProvider(db *DB) *CatalogProvider {
	return &CatalogProvider{db: db, breaker: NewBreaker("catalog-db", &db.logger)}
}

// FetchAll implements catalog.Provider.
func (p *CatalogProvider) FetchAll(ctx context.Context) ([]models.Restaurant, error) {
	return p.breaker.Fetch(func() ([]models.Restaurant, error) {
		return p.fetch(ctx)
	})
}

func (p *CatalogProvider) fetch(ctx context.Context) ([]models.Restaurant, error) {
	if p.db == nil || p.db.conn == nil {
		return nil, ErrNotConnected
	}

	timeout := p.db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rows, err := p.db.conn.QueryContext(ctx, selectRestaurants)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer closeWithLog(rows, &p.db.logger, "rows")

	return scanRestaurants(rows)
}

// scanRestaurants reads every row into a record. Columns are discovered at
// run time so the table can carry any number of display columns.
func scanRestaurants(rows rowSource) ([]models.Restaurant, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	var out []models.Restaurant
	for rows.Next() {
		for i := range values {
			values[i] = nil
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan restaurant row %d: %w", len(out)+1, err)
		}
		r, err := recordFromRow(columns, values)
		if err != nil {
			return nil, fmt.Errorf("restaurant row %d: %w", len(out)+1, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return out, nil
}

// recordFromRow maps one row to a record. Core columns are coerced to their
// model types; everything else lands in Extra.
func recordFromRow(columns []string, values []any) (models.Restaurant, error) {
	var r models.Restaurant
	hasID := false

	for i, col := range columns {
		v := values[i]
		switch strings.ToLower(col) {
		case models.FieldID:
			id, err := coerceInt(v)
			if err != nil {
				return r, fmt.Errorf("column %s: %w", col, err)
			}
			r.ID = id
			hasID = true
		case models.FieldCuisine:
			r.Cuisine = coerceString(v)
		case models.FieldRegion:
			r.Region = coerceString(v)
		case models.FieldPriceRange:
			r.PriceRange = coerceString(v)
		case models.FieldRating:
			rating, err := coerceFloat(v)
			if err != nil {
				return r, fmt.Errorf("column %s: %w", col, err)
			}
			r.Rating = rating
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]any)
			}
			r.Extra[col] = passThrough(v)
		}
	}

	if !hasID {
		return r, ErrMissingID
	}
	return r, nil
}

func coerceInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int:
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("non-integral id %v", x)
		}
		return int64(x), nil
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	case nil:
		return 0, ErrMissingID
	default:
		return 0, fmt.Errorf("unsupported id type %T", v)
	}
}

// coerceFloat accepts float, integer and numeric text. A NULL rating is 0.
func coerceFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported rating type %T", v)
	}
}

// coerceString renders text columns. NULL becomes "".
func coerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// passThrough makes driver values JSON friendly.
func passThrough(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
