package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/repository/memory"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

func newSeasonService(repos seededRepos) *SeasonService {
	return NewSeasonService(
		repos.leagues,
		repos.teams,
		repos.lineups,
		repos.scores,
		nil,
		logging.NewNop(),
	)
}

func TestSeasonService_ResetLeague(t *testing.T) {
	repos := newSeededRepos(t)
	entry := rosteredTeam(t, repos)
	submitRoundLineup(t, repos, entry, "race-losail", beforeLosail)

	scoringSvc := newScoringService(repos, nil, nil)
	if err := scoringSvc.IngestResults(t.Context(), IngestResultsInput{
		RaceID: "race-losail", Session: "RACE", Results: termasResults(),
	}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	service := newSeasonService(repos)
	resetAt := time.Date(2026, 11, 20, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return resetAt }

	updated, err := service.ResetLeague(t.Context(), memory.SeedLeagueID, memory.SeedSeason+1)
	if err != nil {
		t.Fatalf("reset league: %v", err)
	}
	if updated.Season != memory.SeedSeason+1 {
		t.Fatalf("want season %d, got %d", memory.SeedSeason+1, updated.Season)
	}
	if !updated.UpdatedAt.Equal(resetAt) {
		t.Fatalf("want updated at %v, got %v", resetAt, updated.UpdatedAt)
	}

	scores, err := repos.scores.ListByLeague(t.Context(), memory.SeedLeagueID)
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("scores must be wiped, got %d", len(scores))
	}

	lineups, err := repos.lineups.ListByTeam(t.Context(), entry.ID)
	if err != nil {
		t.Fatalf("list lineups: %v", err)
	}
	if len(lineups) != 0 {
		t.Fatalf("lineups must be wiped, got %d", len(lineups))
	}

	kept, err := repos.teams.GetByID(t.Context(), entry.ID)
	if err != nil {
		t.Fatalf("team must survive the reset: %v", err)
	}
	if len(kept.Roster) != 0 {
		t.Fatalf("roster must be cleared, got %d riders", len(kept.Roster))
	}
}

func TestSeasonService_ResetRejectsNonAdvancingSeason(t *testing.T) {
	repos := newSeededRepos(t)
	service := newSeasonService(repos)

	for _, season := range []int{memory.SeedSeason, memory.SeedSeason - 1} {
		if _, err := service.ResetLeague(t.Context(), memory.SeedLeagueID, season); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("season %d: want ErrInvalidInput, got %v", season, err)
		}
	}
}

func TestSeasonService_ResetUnknownLeague(t *testing.T) {
	repos := newSeededRepos(t)
	service := newSeasonService(repos)

	if _, err := service.ResetLeague(t.Context(), "league-ghost", memory.SeedSeason+1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
