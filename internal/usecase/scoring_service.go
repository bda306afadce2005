package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/scoring"
	"github.com/parfive/fantasy-golf/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

// ScoringService recomputes entry totals from the latest result snapshot.
// Totals are a pure projection of picks and results, so recomputation is
// safe to run repeatedly; persisted totals are last-writer-wins on the
// feed's results version.
type ScoringService struct {
	competitionRepo competition.Repository
	entryRepo       entry.Repository
	resultsRepo     scoring.Repository
	logger          *slog.Logger
	now             func() time.Time
	finalizeFlight  resilience.SingleFlight
}

const defaultScoringWorkers = 8

func NewScoringService(
	competitionRepo competition.Repository,
	entryRepo entry.Repository,
	resultsRepo scoring.Repository,
	logger *slog.Logger,
) *ScoringService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScoringService{
		competitionRepo: competitionRepo,
		entryRepo:       entryRepo,
		resultsRepo:     resultsRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// EntryTotal is one entry's aggregate at the time of computation.
type EntryTotal struct {
	EntryID string `json:"entry_id"`
	UserID  string `json:"user_id"`
	Total   int    `json:"total"`
}

// LiveTotals computes current totals for every submitted-or-later entry
// without persisting anything. Partial round coverage is fine.
func (s *ScoringService) LiveTotals(ctx context.Context, competitionID string) ([]EntryTotal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.LiveTotals")
	defer span.End()

	comp, resultSet, err := s.loadScoringInputs(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("list entries for live totals: %w", err)
	}

	perGolfer := resultSet.PerGolferTotals()
	totals := make([]EntryTotal, 0, len(entries))
	for _, item := range entries {
		switch item.Status {
		case entry.StatusSubmitted, entry.StatusLocked, entry.StatusScored:
		default:
			continue
		}

		total, err := scoring.ComputeTotal(item.Picks, perGolfer)
		if err != nil {
			return nil, fmt.Errorf("compute total entry=%s: %w", item.ID, err)
		}
		totals = append(totals, EntryTotal{EntryID: item.ID, UserID: item.UserID, Total: total})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			if comp.ScoreDirection == competition.HigherScoreWins {
				return totals[i].Total > totals[j].Total
			}
			return totals[i].Total < totals[j].Total
		}
		return totals[i].EntryID < totals[j].EntryID
	})

	return totals, nil
}

// FinalizeResult summarizes one finalize run.
type FinalizeResult struct {
	CompetitionID  string `json:"competition_id"`
	ResultsVersion int64  `json:"results_version"`
	ScoredCount    int    `json:"scored_count"`
	SkippedCount   int    `json:"skipped_count"`
}

// FinalizeCompetition transitions locked entries to scored with their final
// totals once the competition has completed. Deduplicated per competition
// and idempotent: stale result versions never overwrite newer totals.
func (s *ScoringService) FinalizeCompetition(ctx context.Context, competitionID string) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.FinalizeCompetition")
	defer span.End()

	value, err, _ := s.finalizeFlight.Do("scoring:finalize:"+competitionID, func() (any, error) {
		return s.finalizeCompetitionOnce(ctx, competitionID)
	})
	if err != nil {
		return FinalizeResult{}, err
	}

	return value.(FinalizeResult), nil
}

func (s *ScoringService) finalizeCompetitionOnce(ctx context.Context, competitionID string) (FinalizeResult, error) {
	comp, resultSet, err := s.loadScoringInputs(ctx, competitionID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if comp.EffectiveStatus() != competition.StatusCompleted {
		return FinalizeResult{}, fmt.Errorf("%w: competition %s is %s, not completed",
			ErrInvalidInput, comp.ID, comp.EffectiveStatus())
	}

	entries, err := s.entryRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("list entries for finalize: %w", err)
	}

	perGolfer := resultSet.PerGolferTotals()
	now := s.now().UTC()
	result := FinalizeResult{CompetitionID: comp.ID, ResultsVersion: resultSet.Version}

	var mu sync.Mutex
	workers := pool.New().WithErrors().WithMaxGoroutines(defaultScoringWorkers)
	for _, item := range entries {
		item := item
		workers.Go(func() error {
			switch item.Status {
			case entry.StatusLocked, entry.StatusScored:
			default:
				mu.Lock()
				result.SkippedCount++
				mu.Unlock()
				return nil
			}

			total, err := scoring.ComputeTotal(item.Picks, perGolfer)
			if err != nil {
				return fmt.Errorf("compute total entry=%s: %w", item.ID, err)
			}

			scored, err := entry.MarkScored(item, total, resultSet.Version, now)
			if err != nil {
				return fmt.Errorf("mark scored entry=%s: %w", item.ID, err)
			}
			if err := s.entryRepo.Upsert(ctx, scored); err != nil {
				return fmt.Errorf("upsert scored entry=%s: %w", item.ID, err)
			}

			mu.Lock()
			result.ScoredCount++
			mu.Unlock()
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return FinalizeResult{}, err
	}

	s.logger.InfoContext(ctx, "competition scoring finalized",
		"competition_id", comp.ID,
		"results_version", resultSet.Version,
		"scored", result.ScoredCount,
		"skipped", result.SkippedCount,
	)

	return result, nil
}

// IngestResults stores a new result snapshot for a tournament. Snapshots
// with a version at or below the stored one are dropped, which makes
// delivery order irrelevant.
func (s *ScoringService) IngestResults(ctx context.Context, set scoring.ResultSet) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.IngestResults")
	defer span.End()

	if strings.TrimSpace(set.TournamentID) == "" {
		return fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if set.Version <= 0 {
		return fmt.Errorf("%w: results version must be positive", ErrInvalidInput)
	}
	for _, result := range set.Results {
		if strings.TrimSpace(result.GolferID) == "" {
			return fmt.Errorf("%w: result golfer id is required", ErrInvalidInput)
		}
		if result.Round < 1 || result.Round > 4 {
			return fmt.Errorf("%w: round %d out of range", ErrInvalidInput, result.Round)
		}
	}

	existing, exists, err := s.resultsRepo.GetResultSet(ctx, set.TournamentID)
	if err != nil {
		return fmt.Errorf("get existing result set: %w", err)
	}
	if exists && set.Version <= existing.Version {
		s.logger.InfoContext(ctx, "stale result snapshot dropped",
			"tournament_id", set.TournamentID,
			"incoming_version", set.Version,
			"stored_version", existing.Version,
		)
		return nil
	}

	if err := s.resultsRepo.UpsertResultSet(ctx, set); err != nil {
		return fmt.Errorf("upsert result set: %w", err)
	}

	return nil
}

func (s *ScoringService) loadScoringInputs(ctx context.Context, competitionID string) (competition.Competition, scoring.ResultSet, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, scoring.ResultSet{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, scoring.ResultSet{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, scoring.ResultSet{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	if comp.IsVoided() {
		return competition.Competition{}, scoring.ResultSet{}, fmt.Errorf("%w: competition=%s", ErrCompetitionVoided, competitionID)
	}

	resultSet, exists, err := s.resultsRepo.GetResultSet(ctx, comp.TournamentID)
	if err != nil {
		return competition.Competition{}, scoring.ResultSet{}, fmt.Errorf("get result set: %w", err)
	}
	if !exists {
		return competition.Competition{}, scoring.ResultSet{}, fmt.Errorf("%w: no results for tournament=%s", ErrNotFound, comp.TournamentID)
	}

	return comp, resultSet, nil
}
