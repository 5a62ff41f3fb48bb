package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/paddockleague/fantasy-motogp/internal/usecase"
)

type createLeagueRequest struct {
	Name                 string `json:"name" validate:"required"`
	Season               int    `json:"season" validate:"required,gt=0"`
	Budget               int    `json:"budget" validate:"required,gt=0"`
	MaxTeams             int    `json:"maxTeams" validate:"omitempty,gte=0"`
	CaptainMultiplier    int    `json:"captainMultiplier" validate:"omitempty,gt=0"`
	MissedRacePolicy     string `json:"missedRacePolicy" validate:"omitempty,oneof=NO_SCORE MAX_PENALTY"`
	SprintScoringEnabled *bool  `json:"sprintScoringEnabled"`
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	var req createLeagueRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		Name:                 req.Name,
		Season:               req.Season,
		Budget:               req.Budget,
		MaxTeams:             req.MaxTeams,
		CaptainMultiplier:    req.CaptainMultiplier,
		MissedRacePolicy:     req.MissedRacePolicy,
		SprintScoringEnabled: req.SprintScoringEnabled,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(created))
}

type lockTeamsRequest struct {
	Locked bool `json:"locked"`
}

func (h *Handler) LockTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockTeams")
	defer span.End()

	var req lockTeamsRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.leagueService.SetTeamsLocked(ctx, r.PathValue("leagueID"), req.Locked)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	season, err := seasonQueryParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagues, err := h.leagueService.ListLeagues(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]leagueDTO, 0, len(leagues))
	for _, entry := range leagues {
		out = append(out, leagueToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	entry, err := h.leagueService.GetLeague(ctx, r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(entry))
}

func (h *Handler) ListRiders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRiders")
	defer span.End()

	season, err := seasonQueryParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	riders, err := h.leagueService.ListRiders(ctx, season, r.URL.Query().Get("category"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]riderDTO, 0, len(riders))
	for _, entry := range riders {
		out = append(out, riderToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	table, err := h.standingsService.GetStandings(ctx, r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]standingDTO, 0, len(table))
	for _, entry := range table {
		out = append(out, standingToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func seasonQueryParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("season"))
	if raw == "" {
		return 0, fmt.Errorf("%w: season query parameter is required", usecase.ErrInvalidInput)
	}
	season, err := strconv.Atoi(raw)
	if err != nil || season <= 0 {
		return 0, fmt.Errorf("%w: invalid season %q", usecase.ErrInvalidInput, raw)
	}
	return season, nil
}
