package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
	idgen "github.com/parfive/fantasy-golf/internal/platform/id"
)

// CompetitionService manages competition setup, status derivation and the
// operator override controls.
type CompetitionService struct {
	competitionRepo competition.Repository
	tournamentRepo  tournament.Repository
	entryRepo       entry.Repository
	timingRules     competition.TimingRules
	idGen           idgen.Generator
	logger          *slog.Logger
	now             func() time.Time
}

func NewCompetitionService(
	competitionRepo competition.Repository,
	tournamentRepo tournament.Repository,
	entryRepo entry.Repository,
	timingRules competition.TimingRules,
	idGen idgen.Generator,
	logger *slog.Logger,
) *CompetitionService {
	if logger == nil {
		logger = slog.Default()
	}
	if idGen == nil {
		idGen = idgen.NewRandomGenerator()
	}

	return &CompetitionService{
		competitionRepo: competitionRepo,
		tournamentRepo:  tournamentRepo,
		entryRepo:       entryRepo,
		timingRules:     timingRules,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateCompetitionInput carries the operator-supplied fields for a new
// competition. Timing is always derived from the tournament schedule.
type CreateCompetitionInput struct {
	TournamentID   string
	Name           string
	Format         competition.Format
	ScoreDirection competition.ScoreDirection

	EntryFeePennies       int64
	EntrantsCap           int
	AdminFeePercent       int
	GuaranteedPoolPennies *int64
	FirstPlacePennies     *int64
}

// Create validates the tournament chronology, derives the registration
// window from the Round 1 tee time and stores the competition.
func (s *CompetitionService) Create(ctx context.Context, input CreateCompetitionInput) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Create")
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.Name = strings.TrimSpace(input.Name)

	tourn, exists, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, input.TournamentID)
	}

	if err := competition.ValidateChronology(tourn.RoundTeeTimes, tourn.EndDate); err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	schedule, err := competition.BuildSchedule(s.timingRules, tourn.RoundTeeTimes, tourn.StartDate, tourn.EndDate)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	competitionID, err := s.idGen.NewID()
	if err != nil {
		return competition.Competition{}, fmt.Errorf("generate competition id: %w", err)
	}

	now := s.now().UTC()
	item := competition.Competition{
		ID:             competitionID,
		TournamentID:   tourn.ID,
		Name:           input.Name,
		Format:         input.Format,
		ScoreDirection: input.ScoreDirection,

		EntryFeePennies:       input.EntryFeePennies,
		EntrantsCap:           input.EntrantsCap,
		AdminFeePercent:       input.AdminFeePercent,
		GuaranteedPoolPennies: input.GuaranteedPoolPennies,
		FirstPlacePennies:     input.FirstPlacePennies,

		RegistrationOpenAt:  schedule.RegistrationOpenAt,
		RegistrationCloseAt: schedule.RegistrationCloseAt,
		StartAt:             schedule.StartAt,
		EndAt:               schedule.EndAt,

		ComputedStatus: competition.DeriveStatus(now, schedule),

		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.competitionRepo.Upsert(ctx, item); err != nil {
		return competition.Competition{}, fmt.Errorf("persist competition: %w", err)
	}

	s.logger.InfoContext(ctx, "competition created",
		"competition_id", item.ID,
		"tournament_id", item.TournamentID,
		"registration_open_at", item.RegistrationOpenAt,
		"registration_close_at", item.RegistrationCloseAt,
	)

	return item, nil
}

// Get returns one competition by id.
func (s *CompetitionService) Get(ctx context.Context, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Get")
	defer span.End()

	return s.getCompetition(ctx, competitionID)
}

// ListByTournament returns every competition attached to a tournament.
func (s *CompetitionService) ListByTournament(ctx context.Context, tournamentID string) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListByTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	items, err := s.competitionRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

// RefreshStatus re-derives the computed status from the stored schedule.
// Manual overrides survive the refresh untouched; clearing one is an
// explicit operator action, never a timer side effect.
func (s *CompetitionService) RefreshStatus(ctx context.Context, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.RefreshStatus")
	defer span.End()

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, err
	}

	schedule := competition.Schedule{
		RegistrationOpenAt:  comp.RegistrationOpenAt,
		RegistrationCloseAt: comp.RegistrationCloseAt,
		StartAt:             comp.StartAt,
		EndAt:               comp.EndAt,
	}
	derived := competition.DeriveStatus(s.now().UTC(), schedule)
	if derived == comp.ComputedStatus {
		return comp, nil
	}

	comp.ComputedStatus = derived
	comp.UpdatedAt = s.now().UTC()
	if err := s.competitionRepo.Upsert(ctx, comp); err != nil {
		return competition.Competition{}, fmt.Errorf("persist status refresh: %w", err)
	}

	s.logger.InfoContext(ctx, "competition status refreshed",
		"competition_id", comp.ID,
		"computed_status", comp.ComputedStatus,
		"effective_status", comp.EffectiveStatus(),
	)

	return comp, nil
}

// SetManualStatus pins the competition to an operator-chosen status. The
// override takes precedence over anything the schedule derives until
// ClearManualStatus removes it.
func (s *CompetitionService) SetManualStatus(ctx context.Context, competitionID string, status competition.Status) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.SetManualStatus")
	defer span.End()

	if _, ok := competition.AllStatuses[status]; !ok {
		return competition.Competition{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, err
	}

	comp.ManualStatus = &status
	comp.UpdatedAt = s.now().UTC()
	if err := s.competitionRepo.Upsert(ctx, comp); err != nil {
		return competition.Competition{}, fmt.Errorf("persist manual status: %w", err)
	}

	s.logger.InfoContext(ctx, "manual status set",
		"competition_id", comp.ID,
		"manual_status", status,
	)

	return comp, nil
}

// ClearManualStatus removes the operator override and falls back to the
// derived status.
func (s *CompetitionService) ClearManualStatus(ctx context.Context, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ClearManualStatus")
	defer span.End()

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, err
	}
	if comp.ManualStatus == nil {
		return comp, nil
	}

	comp.ManualStatus = nil
	comp.UpdatedAt = s.now().UTC()
	if err := s.competitionRepo.Upsert(ctx, comp); err != nil {
		return competition.Competition{}, fmt.Errorf("persist override clear: %w", err)
	}

	return comp, nil
}

// CancelResult reports the void cascade of a cancellation.
type CancelResult struct {
	CompetitionID string `json:"competition_id"`
	VoidedEntries int    `json:"voided_entries"`
}

// Cancel voids a competition and every entry in it. Already-void entries
// pass through unchanged, so replays are safe.
func (s *CompetitionService) Cancel(ctx context.Context, competitionID string) (CancelResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Cancel")
	defer span.End()

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return CancelResult{}, err
	}

	now := s.now().UTC()
	if !comp.IsVoided() {
		cancelled := competition.StatusCancelled
		comp.ManualStatus = &cancelled
		comp.UpdatedAt = now
		if err := s.competitionRepo.Upsert(ctx, comp); err != nil {
			return CancelResult{}, fmt.Errorf("persist cancellation: %w", err)
		}
	}

	entries, err := s.entryRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return CancelResult{}, fmt.Errorf("list entries for cancel: %w", err)
	}

	result := CancelResult{CompetitionID: comp.ID}
	for _, item := range entries {
		if item.Status == entry.StatusVoid {
			continue
		}
		voided := entry.Cancel(item, now)
		if err := s.entryRepo.Upsert(ctx, voided); err != nil {
			return CancelResult{}, fmt.Errorf("void entry=%s: %w", item.ID, err)
		}
		result.VoidedEntries++
	}

	s.logger.InfoContext(ctx, "competition cancelled",
		"competition_id", comp.ID,
		"voided_entries", result.VoidedEntries,
	)

	return result, nil
}

func (s *CompetitionService) getCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
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

	return comp, nil
}
