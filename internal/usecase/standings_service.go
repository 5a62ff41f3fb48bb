package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	"github.com/paddockleague/fantasy-motogp/internal/domain/standings"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
	"github.com/paddockleague/fantasy-motogp/internal/platform/cache"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

type StandingsService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	raceRepo   race.Repository
	scoreRepo  scoring.Repository
	cache      *cache.Store
	logger     *logging.Logger
}

func NewStandingsService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	raceRepo race.Repository,
	scoreRepo scoring.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		raceRepo:   raceRepo,
		scoreRepo:  scoreRepo,
		cache:      store,
		logger:     logger,
	}
}

// GetStandings returns the league table, lowest total first. The table
// is cached until the next recompute invalidates it or the TTL runs
// out.
func (s *StandingsService) GetStandings(ctx context.Context, leagueID string) ([]standings.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.GetStandings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if s.cache == nil {
		return s.buildStandings(ctx, leagueID)
	}

	value, err := s.cache.GetOrLoad(ctx, "standings:"+leagueID, func(ctx context.Context) (any, error) {
		return s.buildStandings(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	table, ok := value.([]standings.Standing)
	if !ok {
		return s.buildStandings(ctx, leagueID)
	}
	return table, nil
}

func (s *StandingsService) buildStandings(ctx context.Context, leagueID string) ([]standings.Standing, error) {
	owningLeague, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return nil, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
		}
		return nil, fmt.Errorf("get league: %w", err)
	}

	scores, err := s.scoreRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league scores: %w", err)
	}
	if len(scores) == 0 {
		return nil, nil
	}

	calendar, err := s.raceRepo.ListBySeason(ctx, owningLeague.Season)
	if err != nil {
		return nil, fmt.Errorf("list season races: %w", err)
	}
	raceOrder := make([]string, 0, len(calendar))
	for _, event := range calendar {
		raceOrder = append(raceOrder, event.ID)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}
	createdAt := make(map[string]time.Time, len(teams))
	for _, entry := range teams {
		createdAt[entry.ID] = entry.CreatedAt
	}

	return standings.Build(scores, raceOrder, createdAt), nil
}
