package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/scores", handler.ListTeamScores)
	mux.HandleFunc("GET /v1/riders", handler.ListRiders)
	mux.HandleFunc("GET /v1/races", handler.ListCalendar)
	mux.HandleFunc("GET /v1/races/{raceID}", handler.GetRace)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("PUT /v1/leagues/{leagueID}/lock", RequireAuth(verifier, http.HandlerFunc(handler.LockTeams)))
	mux.Handle("POST /v1/leagues/{leagueID}/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PUT /v1/teams/{teamID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.SaveRoster)))
	mux.Handle("PUT /v1/teams/{teamID}/lineups/{raceID}", RequireAuth(verifier, http.HandlerFunc(handler.SubmitLineup)))
	mux.Handle("GET /v1/teams/{teamID}/lineups/{raceID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLineup)))
	mux.Handle("GET /v1/teams/{teamID}/lineups/{raceID}/effective", RequireAuth(verifier, http.HandlerFunc(handler.GetEffectiveLineup)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestResults)))
	mux.Handle("POST /v1/internal/jobs/recompute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-season", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeSeasonJob)))
	mux.Handle("POST /v1/internal/jobs/sync-season", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncSeasonJob)))
	mux.Handle("POST /v1/internal/jobs/season-reset", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ResetSeason)))
}
