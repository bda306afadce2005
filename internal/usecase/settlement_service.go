package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/prize"
	"github.com/parfive/fantasy-golf/internal/domain/settlement"
)

// SettlementService resolves finished head-to-head competitions and
// computes prize breakdowns.
type SettlementService struct {
	competitionRepo competition.Repository
	entryRepo       entry.Repository
	settlementRepo  settlement.Repository
	logger          *slog.Logger
}

func NewSettlementService(
	competitionRepo competition.Repository,
	entryRepo entry.Repository,
	settlementRepo settlement.Repository,
	logger *slog.Logger,
) *SettlementService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SettlementService{
		competitionRepo: competitionRepo,
		entryRepo:       entryRepo,
		settlementRepo:  settlementRepo,
		logger:          logger,
	}
}

// SettleHeadToHead settles a two-entry competition. Replaying the call after
// a stored result exists returns the stored result unchanged.
func (s *SettlementService) SettleHeadToHead(ctx context.Context, competitionID string) (settlement.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleHeadToHead")
	defer span.End()

	comp, err := s.settleableCompetition(ctx, competitionID)
	if err != nil {
		return settlement.Result{}, err
	}

	if stored, exists, err := s.settlementRepo.GetByCompetition(ctx, comp.ID); err != nil {
		return settlement.Result{}, fmt.Errorf("get stored settlement: %w", err)
	} else if exists {
		return stored, nil
	}

	entries, err := s.entryRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return settlement.Result{}, fmt.Errorf("list entries for settlement: %w", err)
	}

	active := entries[:0:0]
	for _, item := range entries {
		if item.Status != entry.StatusVoid {
			active = append(active, item)
		}
	}
	if len(active) != 2 {
		return settlement.Result{}, fmt.Errorf("%w: head-to-head needs exactly two active entries, found %d",
			settlement.ErrNotReadyToSettle, len(active))
	}

	result, err := settlement.Settle(active[0], active[1], comp.ScoreDirection)
	if err != nil {
		return settlement.Result{}, err
	}

	if err := s.settlementRepo.Upsert(ctx, result); err != nil {
		return settlement.Result{}, fmt.Errorf("persist settlement: %w", err)
	}

	s.logger.InfoContext(ctx, "competition settled",
		"competition_id", comp.ID,
		"winner_entry_id", result.WinnerEntryID,
		"tie", result.Tie,
		"margin", result.Margin,
	)

	return result, nil
}

// PrizeBreakdown computes the pool for a competition from its fee, active
// entrant count and per-competition overrides.
func (s *SettlementService) PrizeBreakdown(ctx context.Context, competitionID string) (prize.Breakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.PrizeBreakdown")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return prize.Breakdown{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return prize.Breakdown{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return prize.Breakdown{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	entries, err := s.entryRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return prize.Breakdown{}, fmt.Errorf("list entries for prize breakdown: %w", err)
	}

	entrants := 0
	for _, item := range entries {
		if item.Status != entry.StatusVoid && item.Status != entry.StatusDraft {
			entrants++
		}
	}

	breakdown, err := prize.Compute(prize.Config{
		EntryFeePennies:       comp.EntryFeePennies,
		EntrantsCount:         entrants,
		AdminFeePercent:       comp.AdminFeePercent,
		GuaranteedPoolPennies: comp.GuaranteedPoolPennies,
		FirstPlacePennies:     comp.FirstPlacePennies,
	})
	if err != nil {
		return prize.Breakdown{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return breakdown, nil
}

func (s *SettlementService) settleableCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	if comp.IsVoided() {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrCompetitionVoided, competitionID)
	}
	if comp.Format != competition.FormatHeadToHead {
		return competition.Competition{}, fmt.Errorf("%w: competition %s is %s, not head-to-head",
			ErrInvalidInput, comp.ID, comp.Format)
	}
	if comp.EffectiveStatus() != competition.StatusCompleted {
		return competition.Competition{}, fmt.Errorf("%w: competition %s is %s, not completed",
			settlement.ErrNotReadyToSettle, comp.ID, comp.EffectiveStatus())
	}

	return comp, nil
}
