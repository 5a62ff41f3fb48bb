package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
	"github.com/paddockleague/fantasy-motogp/internal/platform/cache"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

// SeasonService handles the hard cutover between seasons: rosters,
// lineups, and scores are wiped so the league starts the new calendar
// clean. Teams themselves survive.
type SeasonService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	lineupRepo lineup.Repository
	scoreRepo  scoring.Repository
	cache      *cache.Store
	logger     *logging.Logger
	now        func() time.Time
}

func NewSeasonService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	lineupRepo lineup.Repository,
	scoreRepo scoring.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		lineupRepo: lineupRepo,
		scoreRepo:  scoreRepo,
		cache:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// ResetLeague moves the league to a new season and clears everything
// tied to the old one.
func (s *SeasonService) ResetLeague(ctx context.Context, leagueID string, newSeason int) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.ResetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if newSeason <= 0 {
		return league.League{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	entry, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
		}
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if newSeason <= entry.Season {
		return league.League{}, fmt.Errorf("%w: season %d does not follow %d", ErrInvalidInput, newSeason, entry.Season)
	}

	if err := s.scoreRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return league.League{}, fmt.Errorf("clear scores: %w", err)
	}
	if err := s.lineupRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return league.League{}, fmt.Errorf("clear lineups: %w", err)
	}
	if err := s.teamRepo.ClearRostersByLeague(ctx, leagueID); err != nil {
		return league.League{}, fmt.Errorf("clear rosters: %w", err)
	}

	entry.Season = newSeason
	entry.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, entry); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "standings:"+leagueID)
	}

	s.logger.InfoContext(ctx, "league reset for new season",
		"league_id", leagueID, "season", newSeason)
	return *entry, nil
}
