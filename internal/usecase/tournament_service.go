package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/parfive/fantasy-golf/internal/domain/golfer"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
)

// TournamentService serves the read side of the tournament catalog: the
// events competitions attach to and the golfer fields players pick from.
type TournamentService struct {
	tournamentRepo tournament.Repository
	golferRepo     golfer.Repository
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	golferRepo golfer.Repository,
	logger *slog.Logger,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TournamentService{
		tournamentRepo: tournamentRepo,
		golferRepo:     golferRepo,
		logger:         logger,
	}
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, found, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !found {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament %s", ErrNotFound, tournamentID)
	}
	return item, nil
}

// ListGolfers returns a tournament's selectable field. The tournament must
// exist so a mistyped id reads as not-found instead of an empty field.
func (s *TournamentService) ListGolfers(ctx context.Context, tournamentID string) ([]golfer.Golfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListGolfers")
	defer span.End()

	if _, err := s.Get(ctx, tournamentID); err != nil {
		return nil, err
	}

	items, err := s.golferRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list golfers: %w", err)
	}
	return items, nil
}
