package httpapi

import (
	"fmt"
	"net/http"

	"github.com/paddockleague/fantasy-motogp/internal/usecase"
)

type lineupPickRequest struct {
	RiderID           string `json:"riderId" validate:"required"`
	PredictedPosition int    `json:"predictedPosition" validate:"required,gt=0"`
	Captain           bool   `json:"captain"`
}

type submitLineupRequest struct {
	Picks []lineupPickRequest `json:"picks" validate:"required,min=1,dive"`
}

func (h *Handler) SubmitLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitLineup")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req submitLineupRequest
	if err := decodeBody(h, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make([]usecase.LineupPickInput, 0, len(req.Picks))
	for _, pick := range req.Picks {
		picks = append(picks, usecase.LineupPickInput{
			RiderID:           pick.RiderID,
			PredictedPosition: pick.PredictedPosition,
			Captain:           pick.Captain,
		})
	}

	saved, err := h.lineupService.SubmitLineup(ctx, usecase.SubmitLineupInput{
		TeamID:  r.PathValue("teamID"),
		OwnerID: principal.UserID,
		RaceID:  r.PathValue("raceID"),
		Picks:   picks,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(saved))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	entry, err := h.lineupService.GetLineup(ctx, r.PathValue("teamID"), r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(entry))
}

func (h *Handler) GetEffectiveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEffectiveLineup")
	defer span.End()

	resolved, err := h.lineupService.GetEffectiveLineup(ctx, r.PathValue("teamID"), r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, effectiveLineupDTO{
		Lineup: lineupToDTO(resolved.Lineup),
		Source: string(resolved.Source),
	})
}
