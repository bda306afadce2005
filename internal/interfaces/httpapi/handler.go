package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/parfive/fantasy-golf/internal/usecase"
)

type Handler struct {
	tournamentService  *usecase.TournamentService
	competitionService *usecase.CompetitionService
	entryService       *usecase.EntryService
	scoringService     *usecase.ScoringService
	settlementService  *usecase.SettlementService
	sweepService       *usecase.SweepService
	syncService        *usecase.SyncService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	competitionService *usecase.CompetitionService,
	entryService *usecase.EntryService,
	scoringService *usecase.ScoringService,
	settlementService *usecase.SettlementService,
	sweepService *usecase.SweepService,
	syncService *usecase.SyncService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tournamentService:  tournamentService,
		competitionService: competitionService,
		entryService:       entryService,
		scoringService:     scoringService,
		settlementService:  settlementService,
		sweepService:       sweepService,
		syncService:        syncService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
