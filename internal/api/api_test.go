// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/catalog"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/recommend"
	"github.com/tomtom215/forkcast/internal/recommend/artifact"
)

func testCatalog() []models.Restaurant {
	return []models.Restaurant{
		{ID: 1, Cuisine: "italian", Region: "north", PriceRange: "$$", Rating: 4.2, Extra: map[string]any{"name": "Luigi's"}},
		{ID: 2, Cuisine: "italian", Region: "south", PriceRange: "$$", Rating: 3.0},
		{ID: 3, Cuisine: "mexican", Region: "north", PriceRange: "$", Rating: 4.8},
		{ID: 4, Cuisine: "thai", Region: "east", PriceRange: "$", Rating: 4.0},
	}
}

type fixture struct {
	handler *Handler
	engine  *recommend.Engine
	store   *catalog.Store
}

func newFixture(t *testing.T, load, withBundle, artifactRequired bool) *fixture {
	t.Helper()

	store := catalog.NewStore(zerolog.Nop())
	if load {
		if _, err := store.Replace(testCatalog()); err != nil {
			t.Fatal(err)
		}
	}
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if withBundle {
		engine.SetNeighbors(recommend.NewNeighborLookup(testBundle(t)))
	}
	h := NewHandler(engine, store, nil, Options{RequestTimeout: time.Second, ArtifactRequired: artifactRequired})
	return &fixture{handler: h, engine: engine, store: store}
}

// testBundle places ids 1..4 on a line at x = 0, 1, 5, 6.
func testBundle(t *testing.T) *artifact.Bundle {
	t.Helper()

	m, err := artifact.NewMatrix([][]float64{{0}, {1}, {5}, {6}})
	if err != nil {
		t.Fatal(err)
	}
	ids, err := artifact.NewIDMap([]int64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	idx, err := artifact.NewExactIndex(m, artifact.MetricEuclidean)
	if err != nil {
		t.Fatal(err)
	}
	return &artifact.Bundle{Matrix: m, IDs: ids, Index: idx}
}

func (f *fixture) router() http.Handler {
	return NewRouter(f.handler, NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type"},
		RateLimitDisabled:  true,
	})).SetupChi()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body models.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true, false, false)

	tests := []struct {
		name   string
		body   string
		status int
		verify func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "reference query",
			body:   `{"cuisine":"italian","price_range":"$$","rating":3.5}`,
			status: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := decodeList(t, rec)
				if len(got) != 1 || got[0]["id"] != float64(1) {
					t.Errorf("got %v, want only id 1", got)
				}
				if got[0]["name"] != "Luigi's" {
					t.Errorf("extra column lost: %v", got[0])
				}
			},
		},
		{
			name:   "default rating floor",
			body:   `{"cuisine":"italian"}`,
			status: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := decodeList(t, rec)
				if len(got) != 3 || got[0]["id"] != float64(1) {
					t.Errorf("got %v", got)
				}
			},
		},
		{
			name:   "rating as text",
			body:   `{"cuisine":"thai","rating":"4.5"}`,
			status: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := decodeList(t, rec)
				if len(got) != 1 || got[0]["id"] != float64(3) {
					t.Errorf("got %v, want only id 3", got)
				}
			},
		},
		{
			name:   "no candidates",
			body:   `{"cuisine":"italian","price_range":"$$$$"}`,
			status: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				if strings.TrimSpace(rec.Body.String()) != "[]" {
					t.Errorf("body = %q, want []", rec.Body.String())
				}
			},
		},
		{
			name:   "missing cuisine",
			body:   `{"rating":4}`,
			status: http.StatusBadRequest,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				if msg := decodeError(t, rec); msg != "cuisine is required" {
					t.Errorf("error = %q", msg)
				}
			},
		},
		{
			name:   "blank cuisine",
			body:   `{"cuisine":"   "}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "rating out of range",
			body:   `{"cuisine":"thai","rating":7}`,
			status: http.StatusBadRequest,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				if msg := decodeError(t, rec); !strings.Contains(msg, "rating") {
					t.Errorf("error = %q", msg)
				}
			},
		},
		{
			name:   "malformed json",
			body:   `{"cuisine":`,
			status: http.StatusBadRequest,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				if msg := decodeError(t, rec); msg != msgInvalidJSON {
					t.Errorf("error = %q", msg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			f.handler.Recommend(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if tt.verify != nil {
				tt.verify(t, rec)
			}
		})
	}
}

func TestRecommend_NoCatalogIsInternalError(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false, false, false)
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(`{"cuisine":"thai"}`))
	rec := httptest.NewRecorder()
	f.handler.Recommend(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != msgInternal {
		t.Errorf("error = %q, internal detail leaked", msg)
	}
}

func TestSimilar(t *testing.T) {
	t.Parallel()

	withBundle := newFixture(t, true, true, false)
	noBundle := newFixture(t, true, false, false)

	tests := []struct {
		name   string
		f      *fixture
		id     string
		query  string
		status int
		want   []int64
	}{
		{name: "nearest first", f: withBundle, id: "1", query: "?n=2", status: http.StatusOK, want: []int64{2, 3}},
		{name: "default n", f: withBundle, id: "4", status: http.StatusOK, want: []int64{3, 2, 1}},
		{name: "unknown id is empty", f: withBundle, id: "99", status: http.StatusOK, want: []int64{}},
		{name: "no bundle is empty", f: noBundle, id: "1", status: http.StatusOK, want: []int64{}},
		{name: "non integer id", f: withBundle, id: "abc", status: http.StatusBadRequest},
		{name: "n zero", f: withBundle, id: "1", query: "?n=0", status: http.StatusBadRequest},
		{name: "n above max", f: withBundle, id: "1", query: "?n=51", status: http.StatusBadRequest},
		{name: "n not a number", f: withBundle, id: "1", query: "?n=x", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := withID(httptest.NewRequest(http.MethodGet, "/similar/"+tt.id+tt.query, nil), tt.id)
			rec := httptest.NewRecorder()
			tt.f.handler.Similar(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			got := decodeList(t, rec)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %v", len(got), tt.want)
			}
			for i, id := range tt.want {
				if got[i]["id"] != float64(id) {
					t.Errorf("result[%d] = %v, want id %d", i, got[i]["id"], id)
				}
			}
		})
	}
}

func TestRestaurant(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true, false, false)

	rec := httptest.NewRecorder()
	f.handler.Restaurant(rec, withID(httptest.NewRequest(http.MethodGet, "/restaurant/1", nil), "1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["cuisine"] != "italian" || got["name"] != "Luigi's" {
		t.Errorf("record = %v", got)
	}

	rec = httptest.NewRecorder()
	f.handler.Restaurant(rec, withID(httptest.NewRequest(http.MethodGet, "/restaurant/99", nil), "99"))
	if rec.Code != http.StatusNotFound || decodeError(t, rec) != msgNotFound {
		t.Errorf("missing = %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	f.handler.Restaurant(rec, withID(httptest.NewRequest(http.MethodGet, "/restaurant/x", nil), "x"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rec.Code)
	}
}

func TestTrackClick(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true, false, false)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "ok", body: `{"id":3}`, status: http.StatusOK},
		{name: "missing id", body: `{}`, status: http.StatusBadRequest},
		{name: "empty body", body: ``, status: http.StatusBadRequest},
		{name: "string id", body: `{"id":"three"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			f.handler.TrackClick(rec, httptest.NewRequest(http.MethodPost, "/track-click", strings.NewReader(tt.body)))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status == http.StatusOK && strings.TrimSpace(rec.Body.String()) != `{"status":"success"}` {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		f      *fixture
		status int
	}{
		{name: "no catalog", f: newFixture(t, false, false, false), status: http.StatusServiceUnavailable},
		{name: "catalog only", f: newFixture(t, true, false, false), status: http.StatusOK},
		{name: "artifact required but missing", f: newFixture(t, true, false, true), status: http.StatusServiceUnavailable},
		{name: "artifact required and loaded", f: newFixture(t, true, true, true), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			tt.f.handler.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var resp models.APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if tt.status == http.StatusOK && resp.Status != "ready" {
				t.Errorf("status field = %q", resp.Status)
			}
			if tt.status != http.StatusOK && (resp.Error == nil || resp.Error.Code != "NOT_READY") {
				t.Errorf("error = %+v", resp.Error)
			}

			live := httptest.NewRecorder()
			tt.f.handler.HealthLive(live, httptest.NewRequest(http.MethodGet, "/health/live", nil))
			if live.Code != http.StatusOK {
				t.Errorf("live status = %d", live.Code)
			}
		})
	}
}

func TestRouter(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true, true, false)
	h := f.router()

	t.Run("routes", func(t *testing.T) {
		t.Parallel()

		if rec := do(t, h, http.MethodPost, "/recommend", `{"cuisine":"italian"}`); rec.Code != http.StatusOK {
			t.Errorf("/recommend = %d", rec.Code)
		}
		if rec := do(t, h, http.MethodGet, "/similar/1?n=1", ""); rec.Code != http.StatusOK || len(decodeList(t, rec)) != 1 {
			t.Errorf("/similar = %d %s", rec.Code, rec.Body.String())
		}
		if rec := do(t, h, http.MethodGet, "/restaurant/2", ""); rec.Code != http.StatusOK {
			t.Errorf("/restaurant = %d", rec.Code)
		}
		if rec := do(t, h, http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "api_requests_total") {
			t.Errorf("/metrics = %d", rec.Code)
		}
	})

	t.Run("request id header", func(t *testing.T) {
		t.Parallel()

		rec := do(t, h, http.MethodGet, "/health/live", "")
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
	})

	t.Run("not found and method", func(t *testing.T) {
		t.Parallel()

		if rec := do(t, h, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound || decodeError(t, rec) != msgRouteNotFound {
			t.Errorf("/nope = %d %s", rec.Code, rec.Body.String())
		}
		if rec := do(t, h, http.MethodGet, "/recommend", ""); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET /recommend = %d", rec.Code)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/recommend", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Allow-Origin = %q", got)
		}
	})

	t.Run("cors unknown origin", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/restaurant/1", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q for unknown origin", got)
		}
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true, false, false)
	h := NewRouter(f.handler, NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})).SetupChi()

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = do(t, h, http.MethodGet, "/restaurant/1", "").Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	if rec := do(t, h, http.MethodGet, "/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health rate limited: %d", rec.Code)
	}
}

func TestParseN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 10, false},
		{"1", 1, false},
		{"50", 50, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"51", 0, true},
		{"2.5", 0, true},
	}
	for _, tt := range tests {
		got, err := parseN(tt.raw, 10, 50)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseN(%q) = %d, %v", tt.raw, got, err)
		}
	}
}
