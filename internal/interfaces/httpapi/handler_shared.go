package httpapi

import (
	"context"
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/golfer"
	"github.com/parfive/fantasy-golf/internal/domain/prize"
	"github.com/parfive/fantasy-golf/internal/domain/settlement"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
)

type createCompetitionRequest struct {
	TournamentID   string `json:"tournament_id" validate:"required"`
	Name           string `json:"name" validate:"required,max=200"`
	Format         string `json:"format" validate:"required,oneof=head_to_head field"`
	ScoreDirection string `json:"score_direction" validate:"required,oneof=lower_wins higher_wins"`

	EntryFeePennies       int64  `json:"entry_fee_pennies" validate:"gte=0"`
	EntrantsCap           int    `json:"entrants_cap" validate:"gte=0"`
	AdminFeePercent       int    `json:"admin_fee_percent" validate:"gte=0,lte=100"`
	GuaranteedPoolPennies *int64 `json:"guaranteed_pool_pennies" validate:"omitempty,gte=0"`
	FirstPlacePennies     *int64 `json:"first_place_pennies" validate:"omitempty,gte=0"`
}

type addPickRequest struct {
	GolferID     string `json:"golfer_id" validate:"required"`
	SlotPosition int    `json:"slot_position" validate:"required,gte=1"`
	AsCaptain    bool   `json:"as_captain"`
}

type setCaptainRequest struct {
	GolferID string `json:"golfer_id" validate:"required"`
}

type setManualStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ingestResultsRequest struct {
	TournamentID string                `json:"tournament_id" validate:"required"`
	Version      int64                 `json:"version" validate:"required,gt=0"`
	Results      []ingestResultPayload `json:"results" validate:"required,dive"`
}

type ingestResultPayload struct {
	GolferID string `json:"golfer_id" validate:"required"`
	Round    int    `json:"round" validate:"required,gte=1,lte=4"`
	Score    int    `json:"score"`
}

type sweepJobRequest struct {
	CompetitionID string `json:"competition_id" validate:"omitempty"`
	TournamentID  string `json:"tournament_id" validate:"omitempty"`
	MaxWorkers    int    `json:"max_workers" validate:"gte=0"`
}

type tournamentDTO struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	CourseName    string      `json:"course_name,omitempty"`
	RoundTeeTimes []time.Time `json:"round_tee_times,omitempty"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       time.Time   `json:"end_date"`
	Status        string      `json:"status"`
	CurrentRound  int         `json:"current_round,omitempty"`
}

type golferDTO struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournament_id"`
	Name         string `json:"name"`
	WorldRanking *int   `json:"world_ranking,omitempty"`
	Salary       int64  `json:"salary"`
	ImageURL     string `json:"image_url,omitempty"`
}

type competitionDTO struct {
	ID             string `json:"id"`
	TournamentID   string `json:"tournament_id"`
	Name           string `json:"name"`
	Format         string `json:"format"`
	ScoreDirection string `json:"score_direction"`

	EntryFeePennies       int64  `json:"entry_fee_pennies"`
	EntrantsCap           int    `json:"entrants_cap"`
	AdminFeePercent       int    `json:"admin_fee_percent"`
	GuaranteedPoolPennies *int64 `json:"guaranteed_pool_pennies,omitempty"`
	FirstPlacePennies     *int64 `json:"first_place_pennies,omitempty"`

	RegistrationOpenAt  time.Time `json:"registration_open_at"`
	RegistrationCloseAt time.Time `json:"registration_close_at"`
	StartAt             time.Time `json:"start_at"`
	EndAt               time.Time `json:"end_at"`

	Status         string  `json:"status"`
	ComputedStatus string  `json:"computed_status"`
	ManualStatus   *string `json:"manual_status,omitempty"`
}

type pickDTO struct {
	GolferID          string `json:"golfer_id"`
	SlotPosition      int    `json:"slot_position"`
	SalaryAtSelection int64  `json:"salary_at_selection"`
	IsCaptain         bool   `json:"is_captain"`
}

type entryDTO struct {
	ID            string     `json:"id"`
	CompetitionID string     `json:"competition_id"`
	UserID        string     `json:"user_id"`
	Status        string     `json:"status"`
	Picks         []pickDTO  `json:"picks"`
	TotalSalary   int64      `json:"total_salary"`
	TotalScore    *int       `json:"total_score,omitempty"`
	ScoredVersion int64      `json:"scored_version,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	LockedAt      *time.Time `json:"locked_at,omitempty"`
}

type rosterWarningDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type pickFeedbackDTO struct {
	Entry    entryDTO           `json:"entry"`
	Warnings []rosterWarningDTO `json:"warnings,omitempty"`
}

type prizeBreakdownDTO struct {
	GrossPennies      int64 `json:"gross_pennies"`
	AdminFeePennies   int64 `json:"admin_fee_pennies"`
	NetPoolPennies    int64 `json:"net_pool_pennies"`
	FirstPlacePennies int64 `json:"first_place_pennies"`
}

type settlementResultDTO struct {
	CompetitionID string `json:"competition_id"`
	WinnerEntryID string `json:"winner_entry_id,omitempty"`
	LoserEntryID  string `json:"loser_entry_id,omitempty"`
	Tie           bool   `json:"tie"`
	Margin        int    `json:"margin"`
}

func tournamentToDTO(ctx context.Context, v tournament.Tournament) tournamentDTO {
	ctx, span := startSpan(ctx, "httpapi.tournamentToDTO")
	defer span.End()

	return tournamentDTO{
		ID:            v.ID,
		Name:          v.Name,
		CourseName:    v.CourseName,
		RoundTeeTimes: v.RoundTeeTimes,
		StartDate:     v.StartDate,
		EndDate:       v.EndDate,
		Status:        v.Status,
		CurrentRound:  v.CurrentRound,
	}
}

func golferToDTO(ctx context.Context, v golfer.Golfer) golferDTO {
	ctx, span := startSpan(ctx, "httpapi.golferToDTO")
	defer span.End()

	return golferDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Name:         v.Name,
		WorldRanking: v.WorldRanking,
		Salary:       v.Salary,
		ImageURL:     v.ImageURL,
	}
}

func competitionToDTO(ctx context.Context, v competition.Competition) competitionDTO {
	ctx, span := startSpan(ctx, "httpapi.competitionToDTO")
	defer span.End()

	var manual *string
	if v.ManualStatus != nil {
		value := string(*v.ManualStatus)
		manual = &value
	}

	return competitionDTO{
		ID:                    v.ID,
		TournamentID:          v.TournamentID,
		Name:                  v.Name,
		Format:                string(v.Format),
		ScoreDirection:        string(v.ScoreDirection),
		EntryFeePennies:       v.EntryFeePennies,
		EntrantsCap:           v.EntrantsCap,
		AdminFeePercent:       v.AdminFeePercent,
		GuaranteedPoolPennies: v.GuaranteedPoolPennies,
		FirstPlacePennies:     v.FirstPlacePennies,
		RegistrationOpenAt:    v.RegistrationOpenAt,
		RegistrationCloseAt:   v.RegistrationCloseAt,
		StartAt:               v.StartAt,
		EndAt:                 v.EndAt,
		Status:                string(v.EffectiveStatus()),
		ComputedStatus:        string(v.ComputedStatus),
		ManualStatus:          manual,
	}
}

func entryToDTO(ctx context.Context, v entry.Entry) entryDTO {
	ctx, span := startSpan(ctx, "httpapi.entryToDTO")
	defer span.End()

	picks := make([]pickDTO, 0, len(v.Picks))
	for _, pick := range v.Picks {
		picks = append(picks, pickDTO{
			GolferID:          pick.GolferID,
			SlotPosition:      pick.SlotPosition,
			SalaryAtSelection: pick.SalaryAtSelection,
			IsCaptain:         pick.IsCaptain,
		})
	}

	return entryDTO{
		ID:            v.ID,
		CompetitionID: v.CompetitionID,
		UserID:        v.UserID,
		Status:        string(v.Status),
		Picks:         picks,
		TotalSalary:   v.TotalSalary,
		TotalScore:    v.TotalScore,
		ScoredVersion: v.ScoredVersion,
		SubmittedAt:   v.SubmittedAt,
		LockedAt:      v.LockedAt,
	}
}

func pickFeedbackToDTO(ctx context.Context, item entry.Entry, warnings []entry.Warning) pickFeedbackDTO {
	ctx, span := startSpan(ctx, "httpapi.pickFeedbackToDTO")
	defer span.End()

	dto := pickFeedbackDTO{Entry: entryToDTO(ctx, item)}
	for _, warning := range warnings {
		dto.Warnings = append(dto.Warnings, rosterWarningDTO{
			Kind:    warning.Kind,
			Message: warning.Message,
		})
	}
	return dto
}

func prizeBreakdownToDTO(ctx context.Context, v prize.Breakdown) prizeBreakdownDTO {
	ctx, span := startSpan(ctx, "httpapi.prizeBreakdownToDTO")
	defer span.End()

	return prizeBreakdownDTO{
		GrossPennies:      v.Gross,
		AdminFeePennies:   v.AdminFee,
		NetPoolPennies:    v.NetPool,
		FirstPlacePennies: v.FirstPlace,
	}
}

func settlementResultToDTO(ctx context.Context, v settlement.Result) settlementResultDTO {
	ctx, span := startSpan(ctx, "httpapi.settlementResultToDTO")
	defer span.End()

	return settlementResultDTO{
		CompetitionID: v.CompetitionID,
		WinnerEntryID: v.WinnerEntryID,
		LoserEntryID:  v.LoserEntryID,
		Tie:           v.Tie,
		Margin:        v.Margin,
	}
}
