// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skyfold/exoatlas/internal/cache"
	"github.com/skyfold/exoatlas/internal/catalog"
	"github.com/skyfold/exoatlas/internal/store"
)

func sp(v string) *string   { return &v }
func ip(v int) *int         { return &v }
func fp(v float64) *float64 { return &v }

func seedPlanets() []catalog.Planet {
	fetched := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return []catalog.Planet{
		{
			Name: "Kepler-22 b", Host: sp("Kepler-22"),
			DiscoveryMethod: sp("Transit"), DiscYear: ip(2011),
			RadiusEarth: fp(2.4), EqTempK: fp(262), OrbitalPeriodDays: fp(289.9),
			DistancePC:        fp(190),
			HabitabilityScore: 65, PlanetType: "Mini-Neptune",
			DiscoveryEra: sp("2010-2015"), DistanceCategory: sp("Moderate (100-500pc)"),
			FetchedAt: fetched,
		},
		{
			Name: "TRAPPIST-1 e", Host: sp("TRAPPIST-1"),
			DiscoveryMethod: sp("Transit"), DiscYear: ip(2017),
			RadiusEarth: fp(0.92), EqTempK: fp(251), OrbitalPeriodDays: fp(6.1),
			DistancePC:        fp(12.4),
			HabitabilityScore: 75, PlanetType: "Rocky (Earth-like)",
			DiscoveryEra: sp("2015-2020"), DistanceCategory: sp("Very Close (<50pc)"),
			FetchedAt: fetched,
		},
		{
			Name: "TRAPPIST-1 f", Host: sp("TRAPPIST-1"),
			DiscoveryMethod: sp("Transit"), DiscYear: ip(2017),
			RadiusEarth: fp(1.045), EqTempK: fp(219), OrbitalPeriodDays: fp(9.2),
			DistancePC:        fp(12.4),
			HabitabilityScore: 75, PlanetType: "Rocky (Earth-like)",
			DiscoveryEra: sp("2015-2020"), DistanceCategory: sp("Very Close (<50pc)"),
			FetchedAt: fetched,
		},
		{
			Name: "51 Peg b", Host: sp("51 Peg"),
			DiscoveryMethod: sp("Radial Velocity"), DiscYear: ip(1995),
			RadiusEarth: fp(13.0), EqTempK: fp(1260), OrbitalPeriodDays: fp(4.2),
			DistancePC:        fp(15.5),
			HabitabilityScore: 0, PlanetType: "Jupiter-like",
			DiscoveryEra: sp("Pre-2000"), DistanceCategory: sp("Very Close (<50pc)"),
			FetchedAt: fetched,
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"), store.DefaultConfig())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := st.Load(ctx, seedPlanets()); err != nil {
		t.Fatalf("load: %v", err)
	}

	mem := cache.NewMemory(0)
	t.Cleanup(mem.Close)

	srv, err := New(st, mem, Options{
		ListenAddr: "127.0.0.1:0",
		CacheTTL:   time.Minute,
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestDashboardPage(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Confirmed planets", "Discoveries over time", "ExoAtlas"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("CSP header not set")
	}
}

func TestExplorerFiltersByMethod(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/explorer?method=Radial+Velocity")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "51 Peg b") {
		t.Error("filtered explorer missing 51 Peg b")
	}
	if strings.Contains(body, "Kepler-22 b") {
		t.Error("filtered explorer still lists transit planet")
	}
}

func TestExplorerFormKeepsFilterState(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/explorer?method=Transit&radius_min=0.5&temp_min=100")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<option value="Transit" selected>`) {
		t.Error("applied method filter not marked selected")
	}
	if !strings.Contains(body, `name="radius_min" type="number" step="0.1" value="0.5"`) {
		t.Error("radius_min input does not echo the applied value")
	}
	if !strings.Contains(body, `name="temp_min" type="number" value="100"`) {
		t.Error("temp_min input does not echo the applied value")
	}
}

func TestAPIStats(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/v1/stats")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Totals.Planets != 4 {
		t.Errorf("planets = %d, want 4", resp.Totals.Planets)
	}
	if resp.Totals.HostStars != 3 {
		t.Errorf("host stars = %d, want 3", resp.Totals.HostStars)
	}
	if resp.Totals.Habitable != 3 {
		t.Errorf("habitable = %d, want 3", resp.Totals.Habitable)
	}
	if resp.Totals.LatestYear == nil || *resp.Totals.LatestYear != 2017 {
		t.Errorf("latest year = %v, want 2017", resp.Totals.LatestYear)
	}
}

func TestAPITimeline(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/v1/timeline")

	var points []store.YearCount
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 1995, 2011 and 2017 are in range.
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}
	if points[2].Year != 2017 || points[2].Count != 2 {
		t.Errorf("last point = %+v, want 2017/2", points[2])
	}
}

func TestAPITopRejectsUnknownRank(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/v1/top/weirdest")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAPITopHottest(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/v1/top/hottest?limit=1")

	var rows []store.PlanetSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "51 Peg b" {
		t.Errorf("hottest = %+v, want 51 Peg b", rows)
	}
}

func TestAPIExplore(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/v1/explore?min_score=50")

	var resp exploreResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("count = %d, want 3", resp.Count)
	}
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/export.csv")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Errorf("Content-Disposition = %q", got)
	}

	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 5 { // header + 4 planets
		t.Fatalf("csv rows = %d, want 5", len(records))
	}
	if records[0][0] != "pl_name" {
		t.Errorf("csv header = %v", records[0])
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Database != "ok" {
		t.Errorf("health = %+v", resp)
	}
	if resp.Planets != 4 {
		t.Errorf("planets = %d, want 4", resp.Planets)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "exoatlas_") {
		t.Error("metrics output missing exoatlas collectors")
	}
}

func TestFetchCachedAvoidsSecondFill(t *testing.T) {
	mem := cache.NewMemory(0)
	defer mem.Close()

	calls := 0
	fill := func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		v, err := fetchCached(ctx, mem, "k", time.Minute, fill)
		if err != nil {
			t.Fatalf("fetchCached: %v", err)
		}
		if v != 42 {
			t.Fatalf("value = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("fill calls = %d, want 1", calls)
	}
}

func TestParseFilterSwapsInvertedBounds(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?year_min=2020&year_max=2000", nil)
	f := parseFilter(req.URL.Query())
	if f.YearMin != 2000 || f.YearMax != 2020 {
		t.Errorf("years = %d..%d, want 2000..2020", f.YearMin, f.YearMax)
	}
}

func TestWatchDBClearsCache(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "catalog.db")
	if err := os.WriteFile(dbPath, []byte("init"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	mem := cache.NewMemory(0)
	defer mem.Close()
	mem.Set("k", []byte("v"), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- WatchDB(ctx, dbPath, mem) }()

	// Let the watcher register before touching the file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(dbPath, []byte("changed"), 0o644); err != nil {
		t.Fatalf("touch file: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, ok := mem.Get("k"); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("cache not cleared after database write")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("WatchDB: %v", err)
	}
}
