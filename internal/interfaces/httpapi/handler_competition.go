package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/usecase"
)

func (h *Handler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCompetition")
	defer span.End()

	var req createCompetitionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.competitionService.Create(ctx, usecase.CreateCompetitionInput{
		TournamentID:          req.TournamentID,
		Name:                  req.Name,
		Format:                competition.Format(req.Format),
		ScoreDirection:        competition.ScoreDirection(req.ScoreDirection),
		EntryFeePennies:       req.EntryFeePennies,
		EntrantsCap:           req.EntrantsCap,
		AdminFeePercent:       req.AdminFeePercent,
		GuaranteedPoolPennies: req.GuaranteedPoolPennies,
		FirstPlacePennies:     req.FirstPlacePennies,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create competition failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, competitionToDTO(ctx, created))
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	item, err := h.competitionService.Get(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(ctx, item))
}

func (h *Handler) GetCompetitionLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitionLeaderboard")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	totals, err := h.scoringService.LiveTotals(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition leaderboard failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, totals)
}

func (h *Handler) GetCompetitionPrizes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitionPrizes")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	breakdown, err := h.settlementService.PrizeBreakdown(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition prizes failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, prizeBreakdownToDTO(ctx, breakdown))
}

func (h *Handler) GetCompetitionSettlement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitionSettlement")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	result, err := h.settlementService.SettleHeadToHead(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition settlement failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementResultToDTO(ctx, result))
}
