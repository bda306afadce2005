package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
	"github.com/parfive/fantasy-golf/internal/infrastructure/repository/memory"
)

func newCompetitionServiceForTest() (*CompetitionService, *memory.CompetitionRepository, *memory.EntryRepository) {
	competitionRepo := memory.NewCompetitionRepository(memory.SeedCompetitions(competition.DefaultTimingRules()))
	entryRepo := memory.NewEntryRepository()

	service := NewCompetitionService(
		competitionRepo,
		memory.NewTournamentRepository(memory.SeedTournaments()),
		entryRepo,
		competition.DefaultTimingRules(),
		&sequenceIDGenerator{prefix: "comp"},
		discardLogger(),
	)

	return service, competitionRepo, entryRepo
}

func TestCompetitionService_CreateDerivesRegistrationWindow(t *testing.T) {
	service, _, _ := newCompetitionServiceForTest()
	service.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	created, err := service.Create(t.Context(), CreateCompetitionInput{
		TournamentID:    memory.TournamentIDAugustaInvitational,
		Name:            "Augusta Degenerates",
		Format:          competition.FormatHeadToHead,
		ScoreDirection:  competition.LowerScoreWins,
		EntryFeePennies: 500,
		EntrantsCap:     2,
		AdminFeePercent: 10,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	round1 := time.Date(2026, 4, 9, 8, 0, 0, 0, time.UTC)
	if !created.RegistrationOpenAt.Equal(round1.Add(-5 * 24 * time.Hour)) {
		t.Fatalf("expected open 5 days before round 1, got %v", created.RegistrationOpenAt)
	}
	if !created.RegistrationCloseAt.Equal(round1.Add(-15 * time.Minute)) {
		t.Fatalf("expected close 15 minutes before round 1, got %v", created.RegistrationCloseAt)
	}
	if created.ComputedStatus != competition.StatusUpcoming {
		t.Fatalf("expected upcoming before the window opens, got %s", created.ComputedStatus)
	}
}

func TestCompetitionService_CreateRejectsBadChronology(t *testing.T) {
	tournamentRepo := memory.NewTournamentRepository(nil)
	if err := tournamentRepo.Upsert(t.Context(), tournament.Tournament{
		ID:   "bad-chronology",
		Name: "Out Of Order Open",
		RoundTeeTimes: []time.Time{
			time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC),
			time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
		},
	}); err != nil {
		t.Fatalf("seed tournament failed: %v", err)
	}

	service := NewCompetitionService(
		memory.NewCompetitionRepository(nil),
		tournamentRepo,
		memory.NewEntryRepository(),
		competition.DefaultTimingRules(),
		&sequenceIDGenerator{prefix: "comp"},
		discardLogger(),
	)

	_, err := service.Create(t.Context(), CreateCompetitionInput{
		TournamentID:   "bad-chronology",
		Name:           "Broken",
		Format:         competition.FormatField,
		ScoreDirection: competition.LowerScoreWins,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, competition.ErrChronology) {
		t.Fatalf("expected chronology cause, got %v", err)
	}
}

func TestCompetitionService_RefreshStatusFollowsClock(t *testing.T) {
	service, _, _ := newCompetitionServiceForTest()

	steps := []struct {
		now  time.Time
		want competition.Status
	}{
		{time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), competition.StatusUpcoming},
		{time.Date(2026, 4, 5, 12, 0, 0, 0, time.UTC), competition.StatusRegistrationOpen},
		{time.Date(2026, 4, 9, 7, 50, 0, 0, time.UTC), competition.StatusRegistrationClosed},
		{time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC), competition.StatusLive},
		{time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC), competition.StatusCompleted},
	}

	for _, step := range steps {
		service.now = func() time.Time { return step.now }
		refreshed, err := service.RefreshStatus(t.Context(), memory.CompetitionIDAugustaH2H)
		if err != nil {
			t.Fatalf("refresh at %v failed: %v", step.now, err)
		}
		if refreshed.EffectiveStatus() != step.want {
			t.Fatalf("at %v expected %s, got %s", step.now, step.want, refreshed.EffectiveStatus())
		}
	}
}

func TestCompetitionService_ManualStatusOverridesDerived(t *testing.T) {
	service, _, _ := newCompetitionServiceForTest()
	service.now = func() time.Time { return time.Date(2026, 4, 5, 12, 0, 0, 0, time.UTC) }

	pinned, err := service.SetManualStatus(t.Context(), memory.CompetitionIDAugustaH2H, competition.StatusRegistrationClosed)
	if err != nil {
		t.Fatalf("set manual status failed: %v", err)
	}
	if pinned.EffectiveStatus() != competition.StatusRegistrationClosed {
		t.Fatalf("expected pinned status, got %s", pinned.EffectiveStatus())
	}

	// The clock says registration is open; the override still wins.
	refreshed, err := service.RefreshStatus(t.Context(), memory.CompetitionIDAugustaH2H)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.ComputedStatus != competition.StatusRegistrationOpen {
		t.Fatalf("expected derived registration_open, got %s", refreshed.ComputedStatus)
	}
	if refreshed.EffectiveStatus() != competition.StatusRegistrationClosed {
		t.Fatalf("expected override to win, got %s", refreshed.EffectiveStatus())
	}

	cleared, err := service.ClearManualStatus(t.Context(), memory.CompetitionIDAugustaH2H)
	if err != nil {
		t.Fatalf("clear manual status failed: %v", err)
	}
	if cleared.EffectiveStatus() != competition.StatusRegistrationOpen {
		t.Fatalf("expected derived status after clear, got %s", cleared.EffectiveStatus())
	}
}

func TestCompetitionService_SetManualStatusRejectsUnknown(t *testing.T) {
	service, _, _ := newCompetitionServiceForTest()

	_, err := service.SetManualStatus(t.Context(), memory.CompetitionIDAugustaH2H, competition.Status("paused"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCompetitionService_CancelVoidsEntries(t *testing.T) {
	service, competitionRepo, entryRepo := newCompetitionServiceForTest()
	service.now = func() time.Time { return time.Date(2026, 4, 8, 12, 0, 0, 0, time.UTC) }

	seedSweepEntries(t, entryRepo)

	result, err := service.Cancel(t.Context(), memory.CompetitionIDAugustaH2H)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if result.VoidedEntries != 3 {
		t.Fatalf("expected 3 voided entries, got %d", result.VoidedEntries)
	}

	comp, _, err := competitionRepo.GetByID(t.Context(), memory.CompetitionIDAugustaH2H)
	if err != nil {
		t.Fatalf("get competition failed: %v", err)
	}
	if !comp.IsVoided() {
		t.Fatalf("expected competition voided, got %s", comp.EffectiveStatus())
	}

	entries, err := entryRepo.ListByCompetition(t.Context(), memory.CompetitionIDAugustaH2H)
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	for _, item := range entries {
		if item.Status != entry.StatusVoid {
			t.Fatalf("expected every entry void, got %s for %s", item.Status, item.ID)
		}
	}

	// Cancel replays cleanly with nothing left to void.
	again, err := service.Cancel(t.Context(), memory.CompetitionIDAugustaH2H)
	if err != nil {
		t.Fatalf("replay cancel failed: %v", err)
	}
	if again.VoidedEntries != 0 {
		t.Fatalf("expected no additional voids on replay, got %d", again.VoidedEntries)
	}
}
