package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/user"
	"github.com/parfive/fantasy-golf/internal/infrastructure/repository/memory"
	"github.com/parfive/fantasy-golf/internal/usecase"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) (http.Handler, *memory.EntryRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	timingRules := competition.DefaultTimingRules()

	tournamentRepo := memory.NewTournamentRepository(memory.SeedTournaments())
	golferRepo := memory.NewGolferRepository(memory.SeedGolfers())
	competitionRepo := memory.NewCompetitionRepository(memory.SeedCompetitions(timingRules))
	entryRepo := memory.NewEntryRepository()
	resultsRepo := memory.NewResultsRepository()
	settlementRepo := memory.NewSettlementRepository()

	tournamentService := usecase.NewTournamentService(tournamentRepo, golferRepo, logger)
	competitionService := usecase.NewCompetitionService(competitionRepo, tournamentRepo, entryRepo, timingRules, nil, logger)
	entryService := usecase.NewEntryService(competitionRepo, golferRepo, entryRepo, entry.DefaultRosterRules(), nil, logger)
	scoringService := usecase.NewScoringService(competitionRepo, entryRepo, resultsRepo, logger)
	settlementService := usecase.NewSettlementService(competitionRepo, entryRepo, settlementRepo, logger)
	sweepService := usecase.NewSweepService(competitionRepo, entryRepo, logger)

	handler := NewHandler(tournamentService, competitionService, entryService, scoringService, settlementService, sweepService, nil, logger)
	verifier := staticVerifier{token: "tok-1", principal: user.Principal{UserID: "user-1"}}
	router := NewRouter(handler, verifier, logger, []string{"*"}, testJobToken)

	return router, entryRepo
}

func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var decoded map[string]any
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return decoded
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_PublicCatalog(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/tournaments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	items, ok := envelope["data"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 tournaments, got %v", envelope["data"])
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/tournaments/"+memory.TournamentIDAugustaInvitational+"/golfers", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	envelope = decodeEnvelope(t, rec.Body.Bytes())
	golfers, ok := envelope["data"].([]any)
	if !ok || len(golfers) != 12 {
		t.Fatalf("expected 12 golfers, got %d", len(golfers))
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/tournaments/nope/golfers", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown tournament, got %d", rec.Code)
	}
}

func TestRouter_EntryRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/competitions/"+memory.CompetitionIDAugustaH2H+"/entries", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without bearer token, got %d", rec.Code)
	}
}

func TestRouter_GetMyEntry(t *testing.T) {
	router, entryRepo := newTestRouter(t)

	now := time.Date(2026, time.April, 5, 10, 0, 0, 0, time.UTC)
	seeded := entry.Entry{
		ID:            "e-router-1",
		CompetitionID: memory.CompetitionIDAugustaH2H,
		UserID:        "user-1",
		Status:        entry.StatusDraft,
		Picks: []entry.Pick{
			{GolferID: "aug-g04", SlotPosition: 1, SalaryAtSelection: 8900, IsCaptain: true},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entryRepo.Upsert(context.Background(), seeded); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/competitions/"+memory.CompetitionIDAugustaH2H+"/entries/me", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected entry object, got %v", envelope["data"])
	}
	if got, _ := data["id"].(string); got != "e-router-1" {
		t.Fatalf("expected entry e-router-1, got %v", data["id"])
	}
}

func TestRouter_IngestAndLeaderboard(t *testing.T) {
	router, entryRepo := newTestRouter(t)

	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	lockedAt := now
	locked := entry.Entry{
		ID:            "e-router-2",
		CompetitionID: memory.CompetitionIDAugustaField,
		UserID:        "user-1",
		Status:        entry.StatusLocked,
		Picks: []entry.Pick{
			{GolferID: "aug-g04", SlotPosition: 1, SalaryAtSelection: 8900, IsCaptain: true},
			{GolferID: "aug-g06", SlotPosition: 2, SalaryAtSelection: 8300},
		},
		TotalSalary: 17200,
		LockedAt:    &lockedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := entryRepo.Upsert(context.Background(), locked); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	payload := `{
		"tournament_id": "` + memory.TournamentIDAugustaInvitational + `",
		"version": 1,
		"results": [
			{"golfer_id": "aug-g04", "round": 1, "score": -3},
			{"golfer_id": "aug-g06", "round": 1, "score": 2}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/ingest-results", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 from ingest, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/competitions/"+memory.CompetitionIDAugustaField+"/leaderboard", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 from leaderboard, got %d: %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	totals, ok := envelope["data"].([]any)
	if !ok || len(totals) != 1 {
		t.Fatalf("expected 1 leaderboard row, got %v", envelope["data"])
	}
	row := totals[0].(map[string]any)
	// Captain (-3) doubles to -6, plus 2 for the second pick.
	if got, _ := row["total"].(float64); got != -4 {
		t.Fatalf("expected total -4, got %v", row["total"])
	}
}

func TestRouter_JobRoutesRejectMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sweep", strings.NewReader(`{"competition_id":"c-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without job token, got %d", rec.Code)
	}
}
