package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
	idgen "github.com/paddockleague/fantasy-motogp/internal/platform/id"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

// LineupPickInput is one requested lineup slot.
type LineupPickInput struct {
	RiderID           string
	PredictedPosition int
	Captain           bool
}

// SubmitLineupInput replaces the team's lineup for one race.
type SubmitLineupInput struct {
	TeamID  string
	OwnerID string
	RaceID  string
	Picks   []LineupPickInput
}

// EffectiveLineup is the lineup a race will actually score for a team,
// which may be an earlier race's lineup carried forward.
type EffectiveLineup struct {
	Lineup lineup.Lineup
	Source scoring.Source
}

type LineupService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	raceRepo   race.Repository
	lineupRepo lineup.Repository
	fallback   *FallbackResolver
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewLineupService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	raceRepo race.Repository,
	lineupRepo lineup.Repository,
	fallback *FallbackResolver,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		raceRepo:   raceRepo,
		lineupRepo: lineupRepo,
		fallback:   fallback,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitLineup validates and stores the lineup, replacing any earlier
// submission for the same race. Rule failures come back as
// lineup.Violations wrapped in ErrInvalidInput.
func (s *LineupService) SubmitLineup(ctx context.Context, input SubmitLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.SubmitLineup")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.RaceID = strings.TrimSpace(input.RaceID)

	if input.TeamID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.RaceID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	if len(input.Picks) == 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: picks are required", ErrInvalidInput)
	}

	entry, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			return lineup.Lineup{}, fmt.Errorf("%w: team %s", ErrNotFound, input.TeamID)
		}
		return lineup.Lineup{}, fmt.Errorf("get team: %w", err)
	}
	if input.OwnerID != "" && entry.OwnerID != input.OwnerID {
		return lineup.Lineup{}, fmt.Errorf("%w: team %s belongs to another owner", ErrUnauthorized, entry.ID)
	}
	roster := entry.RosterCategories()
	if len(roster) == 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: team %s has no roster", ErrInvalidInput, entry.ID)
	}

	event, err := s.raceRepo.GetByID(ctx, input.RaceID)
	if err != nil {
		if errors.Is(err, race.ErrNotFound) {
			return lineup.Lineup{}, fmt.Errorf("%w: race %s", ErrNotFound, input.RaceID)
		}
		return lineup.Lineup{}, fmt.Errorf("get race: %w", err)
	}

	owningLeague, err := s.leagueRepo.GetByID(ctx, entry.LeagueID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get league: %w", err)
	}
	if event.Season != owningLeague.Season {
		return lineup.Lineup{}, fmt.Errorf("%w: race %s is not part of season %d", ErrInvalidInput, event.ID, owningLeague.Season)
	}

	picks := make([]lineup.Pick, 0, len(input.Picks))
	for _, pick := range input.Picks {
		riderID := strings.TrimSpace(pick.RiderID)
		picks = append(picks, lineup.Pick{
			RiderID:           riderID,
			Category:          roster[riderID],
			PredictedPosition: pick.PredictedPosition,
			Captain:           pick.Captain,
		})
	}

	rules := lineup.Rules{
		Deadline:     event.Deadline(),
		Roster:       roster,
		MaxFieldSize: maxFieldSizes(owningLeague.Scoring),
	}
	if violations := rules.Validate(picks, s.now().UTC()); len(violations) > 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: %w", ErrInvalidInput, violations)
	}

	lineupID, err := s.idGen.NewID()
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("generate lineup id: %w", err)
	}

	now := s.now().UTC()
	saved := lineup.Lineup{
		ID:        lineupID,
		TeamID:    entry.ID,
		LeagueID:  entry.LeagueID,
		RaceID:    event.ID,
		Picks:     picks,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := s.lineupRepo.GetByTeamRace(ctx, entry.ID, event.ID); err == nil {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, lineup.ErrNotFound) {
		return lineup.Lineup{}, fmt.Errorf("get existing lineup: %w", err)
	}

	if err := s.lineupRepo.Upsert(ctx, &saved); err != nil {
		return lineup.Lineup{}, fmt.Errorf("save lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup submitted",
		"team_id", entry.ID,
		"race_id", event.ID,
		"picks", len(picks),
	)
	return saved, nil
}

func (s *LineupService) GetLineup(ctx context.Context, teamID, raceID string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.GetLineup")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	raceID = strings.TrimSpace(raceID)
	if teamID == "" || raceID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: team id and race id are required", ErrInvalidInput)
	}

	entry, err := s.lineupRepo.GetByTeamRace(ctx, teamID, raceID)
	if err != nil {
		if errors.Is(err, lineup.ErrNotFound) {
			return lineup.Lineup{}, fmt.Errorf("%w: lineup for team %s race %s", ErrNotFound, teamID, raceID)
		}
		return lineup.Lineup{}, fmt.Errorf("get lineup: %w", err)
	}
	return *entry, nil
}

// GetEffectiveLineup resolves the lineup the race will score, applying
// the fallback to the most recent earlier submission when the team has
// none for this race.
func (s *LineupService) GetEffectiveLineup(ctx context.Context, teamID, raceID string) (EffectiveLineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.GetEffectiveLineup")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	raceID = strings.TrimSpace(raceID)
	if teamID == "" || raceID == "" {
		return EffectiveLineup{}, fmt.Errorf("%w: team id and race id are required", ErrInvalidInput)
	}

	event, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		if errors.Is(err, race.ErrNotFound) {
			return EffectiveLineup{}, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
		}
		return EffectiveLineup{}, fmt.Errorf("get race: %w", err)
	}

	resolved, source, ok, err := s.fallback.Resolve(ctx, teamID, *event)
	if err != nil {
		return EffectiveLineup{}, err
	}
	if !ok {
		return EffectiveLineup{}, fmt.Errorf("%w: no usable lineup for team %s race %s", ErrNotFound, teamID, raceID)
	}
	return EffectiveLineup{Lineup: resolved, Source: source}, nil
}

func maxFieldSizes(params league.ScoringParams) map[rider.Category]int {
	out := make(map[rider.Category]int, len(rider.Categories()))
	for _, category := range rider.Categories() {
		out[category] = params.MaxFieldSize(category)
	}
	return out
}
