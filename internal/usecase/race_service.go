package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

type RaceService struct {
	raceRepo race.Repository
	logger   *logging.Logger
}

func NewRaceService(raceRepo race.Repository, logger *logging.Logger) *RaceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RaceService{raceRepo: raceRepo, logger: logger}
}

func (s *RaceService) GetRace(ctx context.Context, raceID string) (race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "RaceService.GetRace")
	defer span.End()

	raceID = strings.TrimSpace(raceID)
	if raceID == "" {
		return race.Race{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	entry, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		if errors.Is(err, race.ErrNotFound) {
			return race.Race{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
		}
		return race.Race{}, fmt.Errorf("get race: %w", err)
	}
	return *entry, nil
}

func (s *RaceService) ListCalendar(ctx context.Context, season int) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "RaceService.ListCalendar")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	calendar, err := s.raceRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list calendar: %w", err)
	}
	return calendar, nil
}
