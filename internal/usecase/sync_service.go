package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/parfive/fantasy-golf/internal/domain/golfer"
	"github.com/parfive/fantasy-golf/internal/domain/scoring"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
)

// ResultsFeed is the upstream golf data provider boundary.
type ResultsFeed interface {
	FetchSchedule(ctx context.Context) ([]tournament.Tournament, error)
	FetchField(ctx context.Context, tournamentID string) ([]golfer.Golfer, error)
	FetchLeaderboard(ctx context.Context, tournamentID string) (scoring.ResultSet, error)
}

// SyncService pulls provider data into local storage: the tournament
// schedule, per-tournament golfer fields and versioned round results.
type SyncService struct {
	feed           ResultsFeed
	tournamentRepo tournament.Repository
	golferRepo     golfer.Repository
	scoringService *ScoringService
	logger         *slog.Logger
}

func NewSyncService(
	feed ResultsFeed,
	tournamentRepo tournament.Repository,
	golferRepo golfer.Repository,
	scoringService *ScoringService,
	logger *slog.Logger,
) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SyncService{
		feed:           feed,
		tournamentRepo: tournamentRepo,
		golferRepo:     golferRepo,
		scoringService: scoringService,
		logger:         logger,
	}
}

// ScheduleSyncResult summarizes one schedule pull.
type ScheduleSyncResult struct {
	FetchedCount  int `json:"fetched_count"`
	UpsertedCount int `json:"upserted_count"`
	SkippedCount  int `json:"skipped_count"`
}

// SyncSchedule upserts the provider's tournament calendar. Entries that
// fail validation are skipped and logged rather than failing the run.
func (s *SyncService) SyncSchedule(ctx context.Context) (ScheduleSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncSchedule")
	defer span.End()

	items, err := s.feed.FetchSchedule(ctx)
	if err != nil {
		return ScheduleSyncResult{}, fmt.Errorf("fetch schedule: %w", err)
	}

	result := ScheduleSyncResult{FetchedCount: len(items)}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skipping invalid tournament from feed", "tournament_id", item.ID, "error", err)
			result.SkippedCount++
			continue
		}
		if err := s.tournamentRepo.Upsert(ctx, item); err != nil {
			return result, fmt.Errorf("upsert tournament %s: %w", item.ID, err)
		}
		result.UpsertedCount++
	}

	s.logger.InfoContext(ctx, "schedule sync completed",
		"fetched", result.FetchedCount,
		"upserted", result.UpsertedCount,
		"skipped", result.SkippedCount,
	)
	return result, nil
}

// FieldSyncResult summarizes one golfer field pull.
type FieldSyncResult struct {
	TournamentID  string `json:"tournament_id"`
	FetchedCount  int    `json:"fetched_count"`
	UpsertedCount int    `json:"upserted_count"`
}

// SyncField replaces a tournament's golfer pool with the provider field.
// The tournament must already be known locally.
func (s *SyncService) SyncField(ctx context.Context, tournamentID string) (FieldSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncField")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return FieldSyncResult{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if _, found, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return FieldSyncResult{}, fmt.Errorf("get tournament: %w", err)
	} else if !found {
		return FieldSyncResult{}, fmt.Errorf("%w: tournament %s", ErrNotFound, tournamentID)
	}

	items, err := s.feed.FetchField(ctx, tournamentID)
	if err != nil {
		return FieldSyncResult{}, fmt.Errorf("fetch field: %w", err)
	}

	valid := items[:0:0]
	for _, item := range items {
		if err := item.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skipping invalid golfer from feed", "golfer_id", item.ID, "error", err)
			continue
		}
		valid = append(valid, item)
	}

	if err := s.golferRepo.UpsertGolfers(ctx, valid); err != nil {
		return FieldSyncResult{}, fmt.Errorf("upsert golfers: %w", err)
	}

	result := FieldSyncResult{
		TournamentID:  tournamentID,
		FetchedCount:  len(items),
		UpsertedCount: len(valid),
	}
	s.logger.InfoContext(ctx, "field sync completed",
		"tournament_id", tournamentID,
		"fetched", result.FetchedCount,
		"upserted", result.UpsertedCount,
	)
	return result, nil
}

// SyncLeaderboard pulls the tournament's current result snapshot and hands
// it to scoring ingestion, which enforces version monotonicity.
func (s *SyncService) SyncLeaderboard(ctx context.Context, tournamentID string) (scoring.ResultSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncLeaderboard")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return scoring.ResultSet{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	set, err := s.feed.FetchLeaderboard(ctx, tournamentID)
	if err != nil {
		return scoring.ResultSet{}, fmt.Errorf("fetch leaderboard: %w", err)
	}

	if err := s.scoringService.IngestResults(ctx, set); err != nil {
		return scoring.ResultSet{}, err
	}
	return set, nil
}
