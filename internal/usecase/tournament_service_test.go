package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/parfive/fantasy-golf/internal/infrastructure/repository/memory"
)

func newTournamentServiceForTest() *TournamentService {
	tournamentRepo := memory.NewTournamentRepository(memory.SeedTournaments())
	golferRepo := memory.NewGolferRepository(memory.SeedGolfers())
	return NewTournamentService(tournamentRepo, golferRepo, discardLogger())
}

func TestTournamentService_GetUnknownIsNotFound(t *testing.T) {
	service := newTournamentServiceForTest()

	if _, err := service.Get(context.Background(), "missing-event"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Get(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}

func TestTournamentService_ListGolfers(t *testing.T) {
	service := newTournamentServiceForTest()

	golfers, err := service.ListGolfers(context.Background(), memory.TournamentIDAugustaInvitational)
	if err != nil {
		t.Fatalf("list golfers: %v", err)
	}
	if len(golfers) != 12 {
		t.Fatalf("expected 12 golfers in the seeded field, got %d", len(golfers))
	}

	if _, err := service.ListGolfers(context.Background(), "missing-event"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown tournament, got %v", err)
	}
}
