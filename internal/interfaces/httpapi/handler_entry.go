package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/parfive/fantasy-golf/internal/usecase"
)

func (h *Handler) CreateDraftEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraftEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	competitionID := r.PathValue("competitionID")
	draft, err := h.entryService.CreateDraft(ctx, principal.UserID, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "create draft entry failed", "user_id", principal.UserID, "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(ctx, draft))
}

func (h *Handler) GetMyEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	competitionID := r.PathValue("competitionID")
	item, err := h.entryService.GetEntry(ctx, principal.UserID, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my entry failed", "user_id", principal.UserID, "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryToDTO(ctx, item))
}

func (h *Handler) AddEntryPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddEntryPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req addPickRequest
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
	feedback, err := h.entryService.AddPick(ctx, usecase.AddPickInput{
		UserID:        principal.UserID,
		CompetitionID: competitionID,
		GolferID:      req.GolferID,
		SlotPosition:  req.SlotPosition,
		AsCaptain:     req.AsCaptain,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add entry pick failed", "user_id", principal.UserID, "competition_id", competitionID, "golfer_id", req.GolferID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickFeedbackToDTO(ctx, feedback.Entry, feedback.Warnings))
}

func (h *Handler) RemoveEntryPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveEntryPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	competitionID := r.PathValue("competitionID")
	golferID := r.PathValue("golferID")
	feedback, err := h.entryService.RemovePick(ctx, principal.UserID, competitionID, golferID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove entry pick failed", "user_id", principal.UserID, "competition_id", competitionID, "golfer_id", golferID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickFeedbackToDTO(ctx, feedback.Entry, feedback.Warnings))
}

func (h *Handler) SetEntryCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetEntryCaptain")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req setCaptainRequest
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
	updated, err := h.entryService.SetCaptain(ctx, principal.UserID, competitionID, req.GolferID)
	if err != nil {
		h.logger.WarnContext(ctx, "set entry captain failed", "user_id", principal.UserID, "competition_id", competitionID, "golfer_id", req.GolferID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryToDTO(ctx, updated))
}

func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	competitionID := r.PathValue("competitionID")
	submitted, err := h.entryService.Submit(ctx, principal.UserID, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "submit entry failed", "user_id", principal.UserID, "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryToDTO(ctx, submitted))
}
