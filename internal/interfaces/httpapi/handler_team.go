package httpapi

import (
	"fmt"
	"net/http"

	"github.com/paddockleague/fantasy-motogp/internal/usecase"
)

type createTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req createTeamRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.rosterService.CreateTeam(ctx, usecase.CreateTeamInput{
		LeagueID: r.PathValue("leagueID"),
		OwnerID:  principal.UserID,
		Name:     req.Name,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

type saveRosterRequest struct {
	RiderIDs []string `json:"riderIds" validate:"required,min=1,dive,required"`
}

type saveRosterResponse struct {
	Team     teamDTO `json:"team"`
	Complete bool    `json:"complete"`
	Value    int     `json:"value"`
}

func (h *Handler) SaveRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req saveRosterRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.rosterService.SaveRoster(ctx, usecase.SaveRosterInput{
		TeamID:   r.PathValue("teamID"),
		OwnerID:  principal.UserID,
		RiderIDs: req.RiderIDs,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveRosterResponse{
		Team:     teamToDTO(saved.Team),
		Complete: saved.Complete,
		Value:    saved.Value,
	})
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	entry, err := h.rosterService.GetTeam(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(entry))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.rosterService.ListTeams(ctx, r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(teams))
	for _, entry := range teams {
		out = append(out, teamToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeamScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamScores")
	defer span.End()

	scores, err := h.scoringService.ListTeamScores(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamScoreDTO, 0, len(scores))
	for _, entry := range scores {
		out = append(out, teamScoreToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
