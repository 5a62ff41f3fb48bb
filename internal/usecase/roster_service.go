package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/domain/roster"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
	idgen "github.com/paddockleague/fantasy-motogp/internal/platform/id"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

// CreateTeamInput registers a manager's entry in a league.
type CreateTeamInput struct {
	LeagueID string
	OwnerID  string
	Name     string
}

// SaveRosterInput replaces a team's roster in full.
type SaveRosterInput struct {
	TeamID   string
	OwnerID  string
	RiderIDs []string
}

// SaveRosterOutput reports the saved team along with whether the
// roster fills every category quota.
type SaveRosterOutput struct {
	Team     team.Team
	Complete bool
	Value    int
}

type RosterService struct {
	leagueRepo league.Repository
	riderRepo  rider.Repository
	teamRepo   team.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	leagueRepo league.Repository,
	riderRepo rider.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		leagueRepo: leagueRepo,
		riderRepo:  riderRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RosterService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.CreateTeam")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.Name = strings.TrimSpace(input.Name)

	if input.LeagueID == "" {
		return team.Team{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.OwnerID == "" {
		return team.Team{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	owningLeague, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return team.Team{}, fmt.Errorf("%w: league %s", ErrNotFound, input.LeagueID)
		}
		return team.Team{}, fmt.Errorf("get league: %w", err)
	}
	if owningLeague.TeamsLocked {
		return team.Team{}, fmt.Errorf("%w: league %s is locked", ErrInvalidInput, owningLeague.ID)
	}
	if owningLeague.MaxTeams > 0 {
		existing, err := s.teamRepo.ListByLeague(ctx, input.LeagueID)
		if err != nil {
			return team.Team{}, fmt.Errorf("list league teams: %w", err)
		}
		if len(existing) >= owningLeague.MaxTeams {
			return team.Team{}, fmt.Errorf("%w: league %s is full (%d teams)", ErrInvalidInput, owningLeague.ID, owningLeague.MaxTeams)
		}
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	entry := team.Team{
		ID:        teamID,
		LeagueID:  input.LeagueID,
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.teamRepo.Create(ctx, &entry); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", entry.ID, "league_id", entry.LeagueID)
	return entry, nil
}

// SaveRoster validates and replaces the team's roster in one shot.
// Constraint failures come back as roster.Violations wrapped in
// ErrInvalidInput, with every failed rule listed.
func (s *RosterService) SaveRoster(ctx context.Context, input SaveRosterInput) (SaveRosterOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.SaveRoster")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.OwnerID = strings.TrimSpace(input.OwnerID)
	if input.TeamID == "" {
		return SaveRosterOutput{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if len(input.RiderIDs) == 0 {
		return SaveRosterOutput{}, fmt.Errorf("%w: rider ids are required", ErrInvalidInput)
	}

	entry, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			return SaveRosterOutput{}, fmt.Errorf("%w: team %s", ErrNotFound, input.TeamID)
		}
		return SaveRosterOutput{}, fmt.Errorf("get team: %w", err)
	}
	if input.OwnerID != "" && entry.OwnerID != input.OwnerID {
		return SaveRosterOutput{}, fmt.Errorf("%w: team %s belongs to another owner", ErrUnauthorized, entry.ID)
	}

	owningLeague, err := s.leagueRepo.GetByID(ctx, entry.LeagueID)
	if err != nil {
		return SaveRosterOutput{}, fmt.Errorf("get league: %w", err)
	}
	if owningLeague.TeamsLocked {
		return SaveRosterOutput{}, fmt.Errorf("%w: league %s rosters are locked", ErrInvalidInput, owningLeague.ID)
	}

	catalog, err := s.riderCatalog(ctx, owningLeague.Season)
	if err != nil {
		return SaveRosterOutput{}, err
	}
	claimed, err := s.claimedRiders(ctx, entry.LeagueID, entry.ID)
	if err != nil {
		return SaveRosterOutput{}, err
	}

	picks := make([]roster.Pick, 0, len(input.RiderIDs))
	for _, riderID := range input.RiderIDs {
		picks = append(picks, roster.Pick{RiderID: strings.TrimSpace(riderID)})
	}

	rules := roster.Rules{Budget: owningLeague.Budget, Claimed: claimed, Catalog: catalog}
	result := rules.Validate(picks)
	if !result.OK() {
		return SaveRosterOutput{}, fmt.Errorf("%w: %w", ErrInvalidInput, result.Violations)
	}

	rosterPicks := make([]team.RosterPick, 0, len(picks))
	for _, pick := range picks {
		entry := catalog[pick.RiderID]
		rosterPicks = append(rosterPicks, team.RosterPick{
			RiderID:  entry.ID,
			Category: entry.Category,
			Value:    entry.Value,
		})
	}

	if err := s.teamRepo.ReplaceRoster(ctx, entry.ID, rosterPicks); err != nil {
		if errors.Is(err, team.ErrRiderClaimed) {
			return SaveRosterOutput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return SaveRosterOutput{}, fmt.Errorf("replace roster: %w", err)
	}

	entry.Roster = rosterPicks
	entry.UpdatedAt = s.now().UTC()

	s.logger.InfoContext(ctx, "roster saved",
		"team_id", entry.ID,
		"league_id", entry.LeagueID,
		"riders", len(rosterPicks),
		"value", result.TotalValue,
		"complete", result.Complete,
	)
	return SaveRosterOutput{Team: *entry, Complete: result.Complete, Value: result.TotalValue}, nil
}

func (s *RosterService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	entry, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
		}
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	return *entry, nil
}

func (s *RosterService) ListTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ListTeams")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *RosterService) riderCatalog(ctx context.Context, season int) (map[string]rider.Rider, error) {
	riders, err := s.riderRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	catalog := make(map[string]rider.Rider, len(riders))
	for _, entry := range riders {
		catalog[entry.ID] = entry
	}
	return catalog, nil
}

func (s *RosterService) claimedRiders(ctx context.Context, leagueID, excludeTeamID string) (map[string]string, error) {
	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}
	claimed := make(map[string]string)
	for _, other := range teams {
		if other.ID == excludeTeamID {
			continue
		}
		for _, pick := range other.Roster {
			claimed[pick.RiderID] = other.ID
		}
	}
	return claimed, nil
}
