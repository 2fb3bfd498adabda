// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/cache"
	"github.com/tomtom215/forkcast/internal/catalog"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
)

// SnapshotSource supplies the current catalog snapshot.
type SnapshotSource interface {
	Current() *catalog.Snapshot
}

// Engine composes the catalog filter, content ranker and neighbor lookup
// over the current catalog snapshot. It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	catalog SnapshotSource
	ranker  ContentRanker

	neighbors atomic.Pointer[NeighborLookup]
	cache     cache.Store
}

// NewEngine creates an engine. The neighbor lookup starts unavailable until
// SetNeighbors is called.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, src SnapshotSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if src == nil {
		return nil, errors.New("snapshot source is required")
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: src,
		cache:   cache.Nop{},
	}
	e.neighbors.Store(NewNeighborLookup(nil))
	return e, nil
}

// SetCache installs a response cache for Recommend.
func (e *Engine) SetCache(c cache.Store) {
	if c == nil {
		c = cache.Nop{}
	}
	e.cache = c
}

// SetNeighbors installs the neighbor lookup.
func (e *Engine) SetNeighbors(l *NeighborLookup) {
	if l == nil {
		l = NewNeighborLookup(nil)
	}
	e.neighbors.Store(l)
}

// NeighborsAvailable reports whether a neighbor bundle is loaded.
func (e *Engine) NeighborsAvailable() bool {
	return e.neighbors.Load().Available()
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Rank filters the current snapshot by q and returns every candidate in
// descending similarity order.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Rank(ctx context.Context, q Query) (*Ranked, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	snap := e.catalog.Current()
	if snap == nil {
		return nil, ErrNoCatalog
	}
	return e.rank(ctx, snap, e.normalize(q))
}

func (e *Engine) rank(ctx context.Context, snap *catalog.Snapshot, q Query) (*Ranked, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	candidates := Filter(snap.Restaurants(), q.PriceFilter, q.Rating())
	items := e.ranker.Rank(q.TargetCuisine, candidates)
	metrics.RecordRecommend(len(candidates), time.Since(start))

	return &Ranked{
		Items:           items,
		SnapshotVersion: snap.Version(),
		Candidates:      len(candidates),
	}, nil
}

// Recommend returns the top limit records for q. A limit of zero or less
// uses Config.TopK. Results are cached per snapshot version, so a cached
// answer is always the answer the current snapshot would produce.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, q Query, limit int) ([]models.Restaurant, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = e.config.TopK
	}
	snap := e.catalog.Current()
	if snap == nil {
		return nil, ErrNoCatalog
	}
	q = e.normalize(q)

	key := recommendKey(snap.Version(), limit, q)
	if out, ok := e.cached(ctx, snap, key); ok {
		return out, nil
	}

	ranked, err := e.rank(ctx, snap, q)
	if err != nil {
		return nil, err
	}
	out := ranked.Restaurants(limit)
	e.store(ctx, key, out)
	return out, nil
}

// Similar returns up to n records similar to id. It never fails: any lookup
// error is logged with its kind and collapsed to an empty result. A
// non-positive n yields an empty result. Request defaults and the
// Config.MaxSimilarN cap are applied by the HTTP layer, not here.
func (e *Engine) Similar(ctx context.Context, id int64, n int) []models.Restaurant {
	out, err := e.SimilarErr(ctx, id, n)
	if err != nil {
		kind, _ := KindOf(err)
		metrics.RecordSimilar(string(kind))

		log := logging.Enrich(ctx, e.logger)
		ev := log.Error()
		if kind == KindUnknownID {
			ev = log.Warn()
		}
		ev.Err(err).
			Str("kind", string(kind)).
			Int64("restaurant_id", id).
			Int("n", n).
			Msg("similar lookup failed")
		return []models.Restaurant{}
	}

	metrics.RecordSimilar("ok")
	return out
}

// SimilarErr is Similar without the error collapse. n is used verbatim.
func (e *Engine) SimilarErr(_ context.Context, id int64, n int) ([]models.Restaurant, error) {
	return e.neighbors.Load().Similar(e.catalog.Current(), id, n)
}

// Restaurant returns the catalog record for id.
func (e *Engine) Restaurant(id int64) (models.Restaurant, bool) {
	snap := e.catalog.Current()
	if snap == nil {
		return models.Restaurant{}, false
	}
	return snap.Get(id)
}

//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) normalize(q Query) Query {
	if q.MinRating == nil {
		v := e.config.DefaultMinRating
		q.MinRating = &v
	}
	return q.Normalize()
}

//nolint:gocritic // hugeParam: q passed by value for immutability
func recommendKey(version uint64, limit int, q Query) string {
	return "recommend:" + strconv.FormatUint(version, 10) + ":" + strconv.Itoa(limit) + ":" + q.cacheKey()
}

// cached re-hydrates a cached id list from snap. Any id that no longer
// resolves is treated as a miss.
func (e *Engine) cached(ctx context.Context, snap *catalog.Snapshot, key string) ([]models.Restaurant, bool) {
	data, ok := e.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false
	}
	out := make([]models.Restaurant, 0, len(ids))
	for _, id := range ids {
		r, ok := snap.Get(id)
		if !ok {
			return nil, false
		}
		out = append(out, r)
	}
	return out, true
}

func (e *Engine) store(ctx context.Context, key string, out []models.Restaurant) {
	ids := make([]int64, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return
	}
	e.cache.Set(ctx, key, data)
}
