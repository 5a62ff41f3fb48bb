package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	idgen "github.com/paddockleague/fantasy-motogp/internal/platform/id"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

// CreateLeagueInput opens a new league for a season. Zero scoring
// fields fall back to the defaults.
type CreateLeagueInput struct {
	Name                 string
	Season               int
	Budget               int
	MaxTeams             int
	CaptainMultiplier    int
	MissedRacePolicy     string
	SprintScoringEnabled *bool
}

type LeagueService struct {
	leagueRepo league.Repository
	riderRepo  rider.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	riderRepo rider.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		riderRepo:  riderRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.CreateLeague")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.Season <= 0 {
		return league.League{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if input.Budget <= 0 {
		return league.League{}, fmt.Errorf("%w: budget must be positive", ErrInvalidInput)
	}
	if input.MaxTeams < 0 {
		return league.League{}, fmt.Errorf("%w: max teams cannot be negative", ErrInvalidInput)
	}

	params := league.DefaultScoringParams()
	if input.CaptainMultiplier > 0 {
		params.CaptainMultiplier = input.CaptainMultiplier
	}
	if policy := strings.TrimSpace(input.MissedRacePolicy); policy != "" {
		parsed := league.MissedRacePolicy(strings.ToUpper(policy))
		if !parsed.Valid() {
			return league.League{}, fmt.Errorf("%w: unknown missed race policy %q", ErrInvalidInput, policy)
		}
		params.MissedRacePolicy = parsed
	}
	if input.SprintScoringEnabled != nil {
		params.SprintScoringEnabled = *input.SprintScoringEnabled
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	entry := league.League{
		ID:        leagueID,
		Name:      input.Name,
		Season:    input.Season,
		Budget:    input.Budget,
		MaxTeams:  input.MaxTeams,
		Scoring:   params,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.leagueRepo.Create(ctx, &entry); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created", "league_id", entry.ID, "season", entry.Season)
	return entry, nil
}

// SetTeamsLocked flips the flag gating team creation and roster edits,
// typically once the season is underway.
func (s *LeagueService) SetTeamsLocked(ctx context.Context, leagueID string, locked bool) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.SetTeamsLocked")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	entry, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
		}
		return league.League{}, fmt.Errorf("get league: %w", err)
	}

	entry.TeamsLocked = locked
	entry.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, entry); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	s.logger.InfoContext(ctx, "league lock updated", "league_id", entry.ID, "locked", locked)
	return *entry, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	entry, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
		}
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	return *entry, nil
}

func (s *LeagueService) ListLeagues(ctx context.Context, season int) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.ListLeagues")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	leagues, err := s.leagueRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return leagues, nil
}

// ListRiders exposes the season rider catalog, optionally narrowed to
// one category.
func (s *LeagueService) ListRiders(ctx context.Context, season int, category string) ([]rider.Rider, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.ListRiders")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if category = strings.TrimSpace(category); category != "" {
		parsed := rider.Category(strings.ToUpper(category))
		if !parsed.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
		}
		riders, err := s.riderRepo.ListByCategory(ctx, season, parsed)
		if err != nil {
			return nil, fmt.Errorf("list riders: %w", err)
		}
		return riders, nil
	}

	riders, err := s.riderRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	return riders, nil
}
