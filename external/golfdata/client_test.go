package golfdata

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/parfive/fantasy-golf/internal/platform/logging"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL: serverURL,
		Token:   "test-token",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
}

func TestClient_FetchLeaderboard(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/tournaments/t-1/leaderboard") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_token") != "test-token" {
			t.Errorf("expected api token on request, got %q", r.URL.RawQuery)
		}
		hits.Add(1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tournament_id": "t-1",
			"version": 7,
			"results": [
				{"golfer_id": "g-1", "round": 1, "score": -3, "recorded_at": 1775000000},
				{"golfer_id": "g-1", "round": 2, "score": 1, "recorded_at": 1775090000},
				{"golfer_id": "g-2", "round": 1, "score": 0, "recorded_at": 1775000000}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	set, err := client.FetchLeaderboard(t.Context(), "t-1")
	if err != nil {
		t.Fatalf("fetch leaderboard failed: %v", err)
	}
	if set.Version != 7 {
		t.Fatalf("expected version 7, got %d", set.Version)
	}
	if len(set.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(set.Results))
	}
	totals := set.PerGolferTotals()
	if totals["g-1"] != -2 || totals["g-2"] != 0 {
		t.Fatalf("unexpected per-golfer totals: %v", totals)
	}

	// The snapshot cache absorbs an immediate second fetch.
	if _, err := client.FetchLeaderboard(t.Context(), "t-1"); err != nil {
		t.Fatalf("cached fetch failed: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one upstream hit, got %d", got)
	}
}

func TestClient_FetchFieldMapsGolfers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tournament_id": "t-1",
			"golfers": [
				{"id": "g-1", "name": "Test Golfer", "world_ranking": 12, "salary": 8400, "image_url": ""}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	golfers, err := client.FetchField(t.Context(), "t-1")
	if err != nil {
		t.Fatalf("fetch field failed: %v", err)
	}
	if len(golfers) != 1 {
		t.Fatalf("expected 1 golfer, got %d", len(golfers))
	}
	if golfers[0].TournamentID != "t-1" || golfers[0].Salary != 8400 {
		t.Fatalf("unexpected golfer mapping: %+v", golfers[0])
	}
	if golfers[0].WorldRanking == nil || *golfers[0].WorldRanking != 12 {
		t.Fatalf("expected world ranking 12, got %v", golfers[0].WorldRanking)
	}
}

func TestClient_NonRetryableStatusFailsFast(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.maxRetries = 3

	if _, err := client.FetchField(t.Context(), "missing"); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected no retries on 404, got %d hits", got)
	}
}
