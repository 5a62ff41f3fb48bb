package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/repository/memory"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

func newLeagueService(repos seededRepos) *LeagueService {
	return NewLeagueService(
		repos.leagues,
		repos.riders,
		&staticIDGenerator{prefix: "league"},
		logging.NewNop(),
	)
}

func TestLeagueService_CreateLeague_Defaults(t *testing.T) {
	repos := newSeededRepos(t)
	service := newLeagueService(repos)
	service.now = func() time.Time { return time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC) }

	created, err := service.CreateLeague(t.Context(), CreateLeagueInput{
		Name: "  Privateers Cup  ", Season: 2026, Budget: 1200,
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if created.ID != "league-001" {
		t.Fatalf("unexpected id %q", created.ID)
	}
	if created.Name != "Privateers Cup" {
		t.Fatalf("name must be trimmed, got %q", created.Name)
	}
	defaults := league.DefaultScoringParams()
	if created.Scoring.CaptainMultiplier != defaults.CaptainMultiplier {
		t.Fatalf("want default captain multiplier, got %d", created.Scoring.CaptainMultiplier)
	}
	if created.Scoring.MissedRacePolicy != league.MissedRaceNoScore {
		t.Fatalf("want NO_SCORE default, got %s", created.Scoring.MissedRacePolicy)
	}

	stored, err := repos.leagues.GetByID(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("league must be persisted: %v", err)
	}
	if stored.Budget != 1200 {
		t.Fatalf("unexpected stored budget %d", stored.Budget)
	}
}

func TestLeagueService_CreateLeague_Overrides(t *testing.T) {
	repos := newSeededRepos(t)
	service := newLeagueService(repos)

	sprint := false
	created, err := service.CreateLeague(t.Context(), CreateLeagueInput{
		Name:                 "Penalty Box",
		Season:               2026,
		Budget:               900,
		MaxTeams:             8,
		CaptainMultiplier:    3,
		MissedRacePolicy:     "max_penalty",
		SprintScoringEnabled: &sprint,
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if created.Scoring.CaptainMultiplier != 3 {
		t.Fatalf("want multiplier 3, got %d", created.Scoring.CaptainMultiplier)
	}
	if created.Scoring.MissedRacePolicy != league.MissedRaceMaxPenalty {
		t.Fatalf("policy must be upcased, got %s", created.Scoring.MissedRacePolicy)
	}
	if created.Scoring.SprintScoringEnabled {
		t.Fatal("sprint scoring must be disabled")
	}
	if created.MaxTeams != 8 {
		t.Fatalf("want team cap 8, got %d", created.MaxTeams)
	}
	if created.TeamsLocked {
		t.Fatal("new leagues must start unlocked")
	}
}

func TestLeagueService_SetTeamsLocked(t *testing.T) {
	repos := newSeededRepos(t)
	service := newLeagueService(repos)
	service.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	locked, err := service.SetTeamsLocked(t.Context(), memory.SeedLeagueID, true)
	if err != nil {
		t.Fatalf("lock league: %v", err)
	}
	if !locked.TeamsLocked {
		t.Fatal("league must be locked")
	}
	stored, err := repos.leagues.GetByID(t.Context(), memory.SeedLeagueID)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if !stored.TeamsLocked {
		t.Fatal("lock must be persisted")
	}

	if _, err := service.SetTeamsLocked(t.Context(), "league-ghost", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestLeagueService_CreateLeague_Validation(t *testing.T) {
	repos := newSeededRepos(t)
	service := newLeagueService(repos)

	cases := []struct {
		name  string
		input CreateLeagueInput
	}{
		{"missing name", CreateLeagueInput{Season: 2026, Budget: 1000}},
		{"missing season", CreateLeagueInput{Name: "X", Budget: 1000}},
		{"zero budget", CreateLeagueInput{Name: "X", Season: 2026}},
		{"bad policy", CreateLeagueInput{Name: "X", Season: 2026, Budget: 1000, MissedRacePolicy: "FORFEIT"}},
		{"negative team cap", CreateLeagueInput{Name: "X", Season: 2026, Budget: 1000, MaxTeams: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.CreateLeague(t.Context(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLeagueService_ListLeagues(t *testing.T) {
	repos := newSeededRepos(t)
	service := newLeagueService(repos)

	leagues, err := service.ListLeagues(t.Context(), memory.SeedSeason)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(leagues) != 1 || leagues[0].ID != memory.SeedLeagueID {
		t.Fatalf("want the seed league, got %v", leagues)
	}
}

func TestLeagueService_ListRiders_CategoryFilter(t *testing.T) {
	repos := newSeededRepos(t)
	service := newLeagueService(repos)

	premier, err := service.ListRiders(t.Context(), memory.SeedSeason, "motogp")
	if err != nil {
		t.Fatalf("list riders: %v", err)
	}
	if len(premier) == 0 {
		t.Fatal("want premier class riders")
	}
	for _, r := range premier {
		if r.Category != rider.CategoryMotoGP {
			t.Fatalf("filter leaked %s rider %s", r.Category, r.ID)
		}
	}

	if _, err := service.ListRiders(t.Context(), memory.SeedSeason, "MOTO4"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for unknown category, got %v", err)
	}
}
