package httpapi

import (
	"net/http"

	"github.com/paddockleague/fantasy-motogp/internal/usecase"
)

type ingestResultRequest struct {
	RiderID  string `json:"riderId" validate:"required"`
	Category string `json:"category" validate:"required"`
	Position int    `json:"position"`
	Status   string `json:"status"`
}

type ingestResultsRequest struct {
	RaceID  string                `json:"raceId" validate:"required"`
	Session string                `json:"session" validate:"required"`
	Results []ingestResultRequest `json:"results" validate:"required,min=1,dive"`
}

// IngestResults replaces one session's classification and kicks off
// recomputes for every league in the race's season.
func (h *Handler) IngestResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestResults")
	defer span.End()

	var req ingestResultsRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	results := make([]usecase.ResultInput, 0, len(req.Results))
	for _, row := range req.Results {
		results = append(results, usecase.ResultInput{
			RiderID:  row.RiderID,
			Category: row.Category,
			Position: row.Position,
			Status:   row.Status,
		})
	}

	err := h.scoringService.IngestResults(ctx, usecase.IngestResultsInput{
		RaceID:  req.RaceID,
		Session: req.Session,
		Results: results,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

type recomputeJobRequest struct {
	LeagueID string `json:"leagueId" validate:"required"`
	RaceID   string `json:"raceId" validate:"required"`
}

// RunRecomputeJob is the QStash callback target for a single
// league/race recompute.
func (h *Handler) RunRecomputeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeJob")
	defer span.End()

	var req recomputeJobRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.RecomputeRace(ctx, req.LeagueID, req.RaceID); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "done"})
}

type recomputeSeasonJobRequest struct {
	LeagueID string `json:"leagueId" validate:"required"`
}

func (h *Handler) RunRecomputeSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeSeasonJob")
	defer span.End()

	var req recomputeSeasonJobRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.RecomputeSeason(ctx, req.LeagueID); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "done"})
}

type syncSeasonJobRequest struct {
	Season int `json:"season" validate:"required,gt=0"`
}

type syncSeasonJobResponse struct {
	Season int `json:"season"`
	Races  int `json:"races"`
	Riders int `json:"riders"`
}

func (h *Handler) RunSyncSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncSeasonJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, usecase.ErrDependencyUnavailable)
		return
	}

	var req syncSeasonJobRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.syncService.SyncSeason(ctx, req.Season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, syncSeasonJobResponse{
		Season: report.Season,
		Races:  report.Races,
		Riders: report.Riders,
	})
}

type seasonResetRequest struct {
	LeagueID string `json:"leagueId" validate:"required"`
	Season   int    `json:"season" validate:"required,gt=0"`
}

func (h *Handler) ResetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetSeason")
	defer span.End()

	var req seasonResetRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.seasonService.ResetLeague(ctx, req.LeagueID, req.Season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated))
}
