package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
	"github.com/paddockleague/fantasy-motogp/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	rosterService    *usecase.RosterService
	lineupService    *usecase.LineupService
	raceService      *usecase.RaceService
	scoringService   *usecase.ScoringService
	standingsService *usecase.StandingsService
	seasonService    *usecase.SeasonService
	syncService      *usecase.CalendarSyncService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	rosterService *usecase.RosterService,
	lineupService *usecase.LineupService,
	raceService *usecase.RaceService,
	scoringService *usecase.ScoringService,
	standingsService *usecase.StandingsService,
	seasonService *usecase.SeasonService,
	syncService *usecase.CalendarSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		rosterService:    rosterService,
		lineupService:    lineupService,
		raceService:      raceService,
		scoringService:   scoringService,
		standingsService: standingsService,
		seasonService:    seasonService,
		syncService:      syncService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody unmarshals and validates a request payload. Unknown
// fields are rejected so typos surface as 400s instead of silently
// dropped settings.
func decodeBody[T any](h *Handler, r *http.Request, dst *T) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
