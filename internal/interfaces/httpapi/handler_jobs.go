package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/scoring"
	"github.com/parfive/fantasy-golf/internal/usecase"
)

type competitionJobRequest struct {
	CompetitionID string `json:"competition_id" validate:"required"`
}

type tournamentJobRequest struct {
	TournamentID string `json:"tournament_id" validate:"required"`
}

func (h *Handler) RunSweepJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSweepJob")
	defer span.End()

	var req sweepJobRequest
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

	switch {
	case req.CompetitionID != "" && req.TournamentID != "":
		writeError(ctx, w, fmt.Errorf("%w: competition_id and tournament_id are mutually exclusive", usecase.ErrInvalidInput))
		return
	case req.CompetitionID != "":
		result, err := h.sweepService.SweepCompetition(ctx, req.CompetitionID, req.MaxWorkers)
		if err != nil {
			h.logger.WarnContext(ctx, "sweep competition job failed", "competition_id", req.CompetitionID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, result)
	case req.TournamentID != "":
		results, err := h.sweepService.SweepTournament(ctx, req.TournamentID, req.MaxWorkers)
		if err != nil {
			h.logger.WarnContext(ctx, "sweep tournament job failed", "tournament_id", req.TournamentID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, results)
	default:
		writeError(ctx, w, fmt.Errorf("%w: competition_id or tournament_id is required", usecase.ErrInvalidInput))
	}
}

func (h *Handler) RunFinalizeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFinalizeJob")
	defer span.End()

	req, err := h.decodeCompetitionJobRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.FinalizeCompetition(ctx, req.CompetitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "finalize job failed", "competition_id", req.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSettleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSettleJob")
	defer span.End()

	req, err := h.decodeCompetitionJobRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.settlementService.SettleHeadToHead(ctx, req.CompetitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "settle job failed", "competition_id", req.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementResultToDTO(ctx, result))
}

func (h *Handler) RunIngestResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestResultsJob")
	defer span.End()

	var req ingestResultsRequest
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

	now := time.Now().UTC()
	set := scoring.ResultSet{
		TournamentID: req.TournamentID,
		Version:      req.Version,
		Results:      make([]scoring.RoundResult, 0, len(req.Results)),
	}
	for _, result := range req.Results {
		set.Results = append(set.Results, scoring.RoundResult{
			TournamentID: req.TournamentID,
			GolferID:     result.GolferID,
			Round:        result.Round,
			Score:        result.Score,
			RecordedAt:   now,
		})
	}

	if err := h.scoringService.IngestResults(ctx, set); err != nil {
		h.logger.WarnContext(ctx, "ingest results job failed", "tournament_id", req.TournamentID, "version", req.Version, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"tournament_id": req.TournamentID,
		"version":       req.Version,
		"result_count":  len(req.Results),
	})
}

func (h *Handler) RunSyncScheduleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncScheduleJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: results feed is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.syncService.SyncSchedule(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sync schedule job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncFieldJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFieldJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: results feed is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := h.decodeTournamentJobRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncField(ctx, req.TournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "sync field job failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncLeaderboardJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLeaderboardJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: results feed is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := h.decodeTournamentJobRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	set, err := h.syncService.SyncLeaderboard(ctx, req.TournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "sync leaderboard job failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"tournament_id": set.TournamentID,
		"version":       set.Version,
		"result_count":  len(set.Results),
	})
}

func (h *Handler) RefreshCompetitionStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshCompetitionStatus")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	updated, err := h.competitionService.RefreshStatus(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh competition status failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(ctx, updated))
}

func (h *Handler) SetCompetitionManualStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCompetitionManualStatus")
	defer span.End()

	var req setManualStatusRequest
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

	competitionID := r.PathValue("competitionID")
	updated, err := h.competitionService.SetManualStatus(ctx, competitionID, competition.Status(req.Status))
	if err != nil {
		h.logger.WarnContext(ctx, "set manual status failed", "competition_id", competitionID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(ctx, updated))
}

func (h *Handler) ClearCompetitionManualStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCompetitionManualStatus")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	updated, err := h.competitionService.ClearManualStatus(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "clear manual status failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(ctx, updated))
}

func (h *Handler) CancelCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	result, err := h.competitionService.Cancel(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) decodeCompetitionJobRequest(ctx context.Context, r *http.Request) (competitionJobRequest, error) {
	var req competitionJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return competitionJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return competitionJobRequest{}, err
	}
	return req, nil
}

func (h *Handler) decodeTournamentJobRequest(ctx context.Context, r *http.Request) (tournamentJobRequest, error) {
	var req tournamentJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return tournamentJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return tournamentJobRequest{}, err
	}
	return req, nil
}
