package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/golfer"
	idgen "github.com/parfive/fantasy-golf/internal/platform/id"
)

// EntryService drives one player's entry through its lifecycle: draft
// creation, pick mutation with live warnings, and the submission gate.
type EntryService struct {
	competitionRepo competition.Repository
	golferRepo      golfer.Repository
	entryRepo       entry.Repository
	rules           entry.RosterRules
	idGen           idgen.Generator
	logger          *slog.Logger
	now             func() time.Time
}

func NewEntryService(
	competitionRepo competition.Repository,
	golferRepo golfer.Repository,
	entryRepo entry.Repository,
	rules entry.RosterRules,
	idGen idgen.Generator,
	logger *slog.Logger,
) *EntryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &EntryService{
		competitionRepo: competitionRepo,
		golferRepo:      golferRepo,
		entryRepo:       entryRepo,
		rules:           rules,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

// AddPickInput is the incoming payload for adding one golfer to a draft.
type AddPickInput struct {
	UserID        string
	CompetitionID string
	GolferID      string
	SlotPosition  int
	AsCaptain     bool
}

// PickFeedback pairs the updated entry with non-fatal roster warnings so
// the caller can render live feedback without blocking interaction.
type PickFeedback struct {
	Entry    entry.Entry
	Warnings []entry.Warning
}

func (s *EntryService) CreateDraft(ctx context.Context, userID, competitionID string) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.CreateDraft")
	defer span.End()

	userID = strings.TrimSpace(userID)
	competitionID = strings.TrimSpace(competitionID)
	if userID == "" || competitionID == "" {
		return entry.Entry{}, fmt.Errorf("%w: user_id and competition_id are required", ErrInvalidInput)
	}

	comp, err := s.draftableCompetition(ctx, competitionID)
	if err != nil {
		return entry.Entry{}, err
	}

	existing, exists, err := s.entryRepo.GetByUserAndCompetition(ctx, userID, competitionID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get existing entry: %w", err)
	}
	if exists && existing.Status != entry.StatusVoid {
		// Retry-friendly: the persistence layer enforces at most one active
		// entry per (user, competition), so hand the caller the one it has.
		return existing, nil
	}

	if comp.EntrantsCap > 0 {
		others, err := s.entryRepo.ListByCompetition(ctx, competitionID)
		if err != nil {
			return entry.Entry{}, fmt.Errorf("list entries for cap check: %w", err)
		}
		active := 0
		for _, item := range others {
			if item.Status != entry.StatusVoid {
				active++
			}
		}
		if active >= comp.EntrantsCap {
			return entry.Entry{}, fmt.Errorf("%w: cap=%d", entry.ErrCompetitionFull, comp.EntrantsCap)
		}
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	now := s.now().UTC()
	draft := entry.Entry{
		ID:            entryID,
		CompetitionID: comp.ID,
		UserID:        userID,
		Status:        entry.StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.entryRepo.Upsert(ctx, draft); err != nil {
		return entry.Entry{}, fmt.Errorf("upsert draft entry: %w", err)
	}

	s.logger.InfoContext(ctx, "draft entry created",
		"user_id", userID,
		"competition_id", competitionID,
		"entry_id", draft.ID,
	)

	return draft, nil
}

func (s *EntryService) AddPick(ctx context.Context, input AddPickInput) (PickFeedback, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.AddPick")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.CompetitionID = strings.TrimSpace(input.CompetitionID)
	input.GolferID = strings.TrimSpace(input.GolferID)
	if input.UserID == "" || input.CompetitionID == "" {
		return PickFeedback{}, fmt.Errorf("%w: user_id and competition_id are required", ErrInvalidInput)
	}
	if input.GolferID == "" {
		return PickFeedback{}, fmt.Errorf("%w: golfer id is required", ErrInvalidInput)
	}

	comp, err := s.draftableCompetition(ctx, input.CompetitionID)
	if err != nil {
		return PickFeedback{}, err
	}

	current, err := s.draftEntry(ctx, input.UserID, input.CompetitionID)
	if err != nil {
		return PickFeedback{}, err
	}

	golfers, err := s.golferRepo.GetByIDs(ctx, comp.TournamentID, []string{input.GolferID})
	if err != nil {
		return PickFeedback{}, fmt.Errorf("get golfer for pick: %w", err)
	}
	if len(golfers) == 0 {
		return PickFeedback{}, fmt.Errorf("%w: golfer=%s", ErrNotFound, input.GolferID)
	}

	pick := entry.Pick{
		GolferID:          golfers[0].ID,
		SlotPosition:      input.SlotPosition,
		SalaryAtSelection: golfers[0].Salary,
		IsCaptain:         input.AsCaptain,
	}
	picks, warnings := entry.AddPick(current.Picks, pick, s.rules)

	updated, err := entry.MutatePicks(current, picks, s.now().UTC())
	if err != nil {
		return PickFeedback{}, err
	}
	if err := s.entryRepo.Upsert(ctx, updated); err != nil {
		return PickFeedback{}, fmt.Errorf("upsert entry picks: %w", err)
	}

	return PickFeedback{Entry: updated, Warnings: warnings}, nil
}

func (s *EntryService) RemovePick(ctx context.Context, userID, competitionID, golferID string) (PickFeedback, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.RemovePick")
	defer span.End()

	userID = strings.TrimSpace(userID)
	competitionID = strings.TrimSpace(competitionID)
	golferID = strings.TrimSpace(golferID)
	if userID == "" || competitionID == "" || golferID == "" {
		return PickFeedback{}, fmt.Errorf("%w: user_id, competition_id and golfer_id are required", ErrInvalidInput)
	}

	if _, err := s.draftableCompetition(ctx, competitionID); err != nil {
		return PickFeedback{}, err
	}

	current, err := s.draftEntry(ctx, userID, competitionID)
	if err != nil {
		return PickFeedback{}, err
	}

	picks, warnings := entry.RemovePick(current.Picks, golferID, s.rules)

	updated, err := entry.MutatePicks(current, picks, s.now().UTC())
	if err != nil {
		return PickFeedback{}, err
	}
	if err := s.entryRepo.Upsert(ctx, updated); err != nil {
		return PickFeedback{}, fmt.Errorf("upsert entry picks: %w", err)
	}

	return PickFeedback{Entry: updated, Warnings: warnings}, nil
}

// SetCaptain moves the captain flag to the named golfer, which must already
// be picked.
func (s *EntryService) SetCaptain(ctx context.Context, userID, competitionID, golferID string) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.SetCaptain")
	defer span.End()

	userID = strings.TrimSpace(userID)
	competitionID = strings.TrimSpace(competitionID)
	golferID = strings.TrimSpace(golferID)
	if userID == "" || competitionID == "" || golferID == "" {
		return entry.Entry{}, fmt.Errorf("%w: user_id, competition_id and golfer_id are required", ErrInvalidInput)
	}

	if _, err := s.draftableCompetition(ctx, competitionID); err != nil {
		return entry.Entry{}, err
	}

	current, err := s.draftEntry(ctx, userID, competitionID)
	if err != nil {
		return entry.Entry{}, err
	}

	found := false
	picks := append([]entry.Pick(nil), current.Picks...)
	for i := range picks {
		picks[i].IsCaptain = picks[i].GolferID == golferID
		if picks[i].IsCaptain {
			found = true
		}
	}
	if !found {
		return entry.Entry{}, fmt.Errorf("%w: golfer %s is not picked", ErrInvalidInput, golferID)
	}

	updated, err := entry.MutatePicks(current, picks, s.now().UTC())
	if err != nil {
		return entry.Entry{}, err
	}
	if err := s.entryRepo.Upsert(ctx, updated); err != nil {
		return entry.Entry{}, fmt.Errorf("upsert entry captain: %w", err)
	}

	return updated, nil
}

// Submit applies the roster hard gate and the registration window, then
// freezes the entry as submitted.
func (s *EntryService) Submit(ctx context.Context, userID, competitionID string) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Submit")
	defer span.End()

	userID = strings.TrimSpace(userID)
	competitionID = strings.TrimSpace(competitionID)
	if userID == "" || competitionID == "" {
		return entry.Entry{}, fmt.Errorf("%w: user_id and competition_id are required", ErrInvalidInput)
	}

	comp, err := s.openCompetition(ctx, competitionID)
	if err != nil {
		return entry.Entry{}, err
	}

	current, exists, err := s.entryRepo.GetByUserAndCompetition(ctx, userID, competitionID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get entry for submit: %w", err)
	}
	if !exists {
		return entry.Entry{}, fmt.Errorf("%w: entry not found", ErrNotFound)
	}
	if current.Status == entry.StatusSubmitted {
		// Submitting twice is a retry, not an error.
		return current, nil
	}

	submitted, err := entry.Submit(current, s.rules, s.now().UTC(), comp.RegistrationCloseAt)
	if err != nil {
		return entry.Entry{}, err
	}
	if err := s.entryRepo.Upsert(ctx, submitted); err != nil {
		return entry.Entry{}, fmt.Errorf("upsert submitted entry: %w", err)
	}

	s.logger.InfoContext(ctx, "entry submitted",
		"user_id", userID,
		"competition_id", competitionID,
		"entry_id", submitted.ID,
		"total_salary", submitted.TotalSalary,
	)

	return submitted, nil
}

func (s *EntryService) GetEntry(ctx context.Context, userID, competitionID string) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.GetEntry")
	defer span.End()

	userID = strings.TrimSpace(userID)
	competitionID = strings.TrimSpace(competitionID)
	if userID == "" || competitionID == "" {
		return entry.Entry{}, fmt.Errorf("%w: user_id and competition_id are required", ErrInvalidInput)
	}

	item, exists, err := s.entryRepo.GetByUserAndCompetition(ctx, userID, competitionID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get entry: %w", err)
	}
	if !exists {
		return entry.Entry{}, fmt.Errorf("%w: entry not found", ErrNotFound)
	}

	return item, nil
}

func (s *EntryService) openCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
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

	return comp, nil
}

// draftableCompetition additionally closes draft creation and pick mutation
// once registration has closed, so the window between close and the sweep
// accepts no further edits. Submit keeps its own window check inside the
// lifecycle transition.
func (s *EntryService) draftableCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	comp, err := s.openCompetition(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, err
	}
	if !comp.RegistrationCloseAt.IsZero() && !s.now().UTC().Before(comp.RegistrationCloseAt) {
		return competition.Competition{}, fmt.Errorf("%w: closed at %s",
			entry.ErrRegistrationClosed, comp.RegistrationCloseAt.Format(time.RFC3339))
	}

	return comp, nil
}

func (s *EntryService) draftEntry(ctx context.Context, userID, competitionID string) (entry.Entry, error) {
	current, exists, err := s.entryRepo.GetByUserAndCompetition(ctx, userID, competitionID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get entry: %w", err)
	}
	if !exists {
		return entry.Entry{}, fmt.Errorf("%w: entry not found", ErrNotFound)
	}
	if current.Status != entry.StatusDraft {
		return entry.Entry{}, fmt.Errorf("%w: entry status is %s", entry.ErrEntryLocked, current.Status)
	}

	return current, nil
}
