package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
)

// SweepService runs the registration-close sweep: submitted entries lock,
// stragglers still in draft go void. The sweep is driven by an external
// scheduler, so every transition here is idempotent and safe to re-run
// concurrently.
type SweepService struct {
	competitionRepo competition.Repository
	entryRepo       entry.Repository
	logger          *slog.Logger
	now             func() time.Time
}

const defaultSweepWorkers = 8

func NewSweepService(
	competitionRepo competition.Repository,
	entryRepo entry.Repository,
	logger *slog.Logger,
) *SweepService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SweepService{
		competitionRepo: competitionRepo,
		entryRepo:       entryRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	CompetitionID string `json:"competition_id"`
	EntryCount    int    `json:"entry_count"`
	LockedCount   int    `json:"locked_count"`
	VoidedCount   int    `json:"voided_count"`
	SkippedCount  int    `json:"skipped_count"`
	FailedCount   int    `json:"failed_count"`
	Swept         bool   `json:"swept"`
}

// SweepCompetition locks or voids the competition's entries once its
// registration window has closed. Before the close moment it is a no-op.
func (s *SweepService) SweepCompetition(ctx context.Context, competitionID string, maxWorkers int) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.SweepCompetition")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return SweepResult{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return SweepResult{}, fmt.Errorf("get competition for sweep: %w", err)
	}
	if !exists {
		return SweepResult{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	result := SweepResult{CompetitionID: competitionID}
	now := s.now().UTC()
	if comp.RegistrationCloseAt.IsZero() || now.Before(comp.RegistrationCloseAt) {
		return result, nil
	}
	result.Swept = true

	entries, err := s.entryRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list entries for sweep: %w", err)
	}
	result.EntryCount = len(entries)
	if len(entries) == 0 {
		return result, nil
	}

	workers := maxWorkers
	if workers < 1 {
		workers = defaultSweepWorkers
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create sweep worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, item := range entries {
		item := item
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			outcome, err := s.sweepEntry(ctx, item, now)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.FailedCount++
				s.logger.WarnContext(ctx, "sweep entry failed",
					"competition_id", competitionID,
					"entry_id", item.ID,
					"error", err,
				)
			case outcome == entry.StatusLocked:
				result.LockedCount++
			case outcome == entry.StatusVoid:
				result.VoidedCount++
			default:
				result.SkippedCount++
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			result.FailedCount++
			mu.Unlock()
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "registration sweep finished",
		"competition_id", competitionID,
		"entries", result.EntryCount,
		"locked", result.LockedCount,
		"voided", result.VoidedCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

// SweepTournament sweeps every competition attached to a tournament.
func (s *SweepService) SweepTournament(ctx context.Context, tournamentID string, maxWorkers int) ([]SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.SweepTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	comps, err := s.competitionRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list competitions for sweep: %w", err)
	}

	results := make([]SweepResult, 0, len(comps))
	for _, comp := range comps {
		result, err := s.SweepCompetition(ctx, comp.ID, maxWorkers)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// sweepEntry applies the close-time transition for one entry and reports
// the status it ended in (zero value means untouched).
func (s *SweepService) sweepEntry(ctx context.Context, item entry.Entry, now time.Time) (entry.Status, error) {
	switch item.Status {
	case entry.StatusSubmitted:
		locked, err := entry.Lock(item, now)
		if err != nil {
			return "", err
		}
		if err := s.entryRepo.Upsert(ctx, locked); err != nil {
			return "", fmt.Errorf("upsert locked entry: %w", err)
		}
		return entry.StatusLocked, nil
	case entry.StatusDraft:
		voided, err := entry.VoidExpiredDraft(item, now)
		if err != nil {
			return "", err
		}
		if err := s.entryRepo.Upsert(ctx, voided); err != nil {
			return "", fmt.Errorf("upsert voided entry: %w", err)
		}
		return entry.StatusVoid, nil
	default:
		// locked/scored/void entries are already past the sweep.
		return "", nil
	}
}
