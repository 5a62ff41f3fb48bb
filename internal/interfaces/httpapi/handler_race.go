package httpapi

import (
	"net/http"
)

func (h *Handler) ListCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCalendar")
	defer span.End()

	season, err := seasonQueryParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	races, err := h.raceService.ListCalendar(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]raceDTO, 0, len(races))
	for _, entry := range races {
		out = append(out, raceToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRace")
	defer span.End()

	entry, err := h.raceService.GetRace(ctx, r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, raceToDTO(entry))
}
