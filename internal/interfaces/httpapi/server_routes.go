package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/golfers", handler.ListTournamentGolfers)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/competitions", handler.ListTournamentCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/leaderboard", handler.GetCompetitionLeaderboard)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/prizes", handler.GetCompetitionPrizes)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/competitions/{competitionID}/entries", RequireAuth(verifier, http.HandlerFunc(handler.CreateDraftEntry)))
	mux.Handle("GET /v1/competitions/{competitionID}/entries/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyEntry)))
	mux.Handle("POST /v1/competitions/{competitionID}/entries/me/picks", RequireAuth(verifier, http.HandlerFunc(handler.AddEntryPick)))
	mux.Handle("DELETE /v1/competitions/{competitionID}/entries/me/picks/{golferID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveEntryPick)))
	mux.Handle("PUT /v1/competitions/{competitionID}/entries/me/captain", RequireAuth(verifier, http.HandlerFunc(handler.SetEntryCaptain)))
	mux.Handle("POST /v1/competitions/{competitionID}/entries/me/submit", RequireAuth(verifier, http.HandlerFunc(handler.SubmitEntry)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/competitions", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CreateCompetition)))
	mux.Handle("GET /v1/internal/competitions/{competitionID}/settlement", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetCompetitionSettlement)))
	mux.Handle("POST /v1/internal/competitions/{competitionID}/refresh-status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RefreshCompetitionStatus)))
	mux.Handle("PUT /v1/internal/competitions/{competitionID}/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SetCompetitionManualStatus)))
	mux.Handle("DELETE /v1/internal/competitions/{competitionID}/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ClearCompetitionManualStatus)))
	mux.Handle("POST /v1/internal/competitions/{competitionID}/cancel", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CancelCompetition)))
	mux.Handle("POST /v1/internal/jobs/sweep", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSweepJob)))
	mux.Handle("POST /v1/internal/jobs/finalize", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFinalizeJob)))
	mux.Handle("POST /v1/internal/jobs/settle", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSettleJob)))
	mux.Handle("POST /v1/internal/jobs/ingest-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunIngestResultsJob)))
	mux.Handle("POST /v1/internal/jobs/sync-schedule", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncScheduleJob)))
	mux.Handle("POST /v1/internal/jobs/sync-field", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncFieldJob)))
	mux.Handle("POST /v1/internal/jobs/sync-leaderboard", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLeaderboardJob)))
}
