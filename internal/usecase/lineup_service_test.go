package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/repository/memory"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

// beforeLosail is comfortably ahead of the round 1 sprint deadline.
var beforeLosail = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newLineupService(repos seededRepos) *LineupService {
	fallback := NewFallbackResolver(repos.races, repos.lineups)
	return NewLineupService(
		repos.leagues,
		repos.teams,
		repos.races,
		repos.lineups,
		fallback,
		&staticIDGenerator{prefix: "lineup"},
		logging.NewNop(),
	)
}

func rosteredTeam(t *testing.T, repos seededRepos) team.Team {
	t.Helper()

	service := newRosterService(repos)
	created, err := service.CreateTeam(t.Context(), CreateTeamInput{
		LeagueID: memory.SeedLeagueID, OwnerID: "user-1", Name: "Apex",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	out, err := service.SaveRoster(t.Context(), SaveRosterInput{
		TeamID: created.ID, OwnerID: "user-1", RiderIDs: completeRosterIDs,
	})
	if err != nil {
		t.Fatalf("save roster: %v", err)
	}
	return out.Team
}

func sixLineupPicks() []LineupPickInput {
	return []LineupPickInput{
		{RiderID: "mgp-falworth", PredictedPosition: 2, Captain: true},
		{RiderID: "mgp-brandao", PredictedPosition: 6},
		{RiderID: "m2-costelo", PredictedPosition: 1},
		{RiderID: "m2-duboeuf", PredictedPosition: 4},
		{RiderID: "m3-paredes", PredictedPosition: 3},
		{RiderID: "m3-unwin", PredictedPosition: 8},
	}
}

func TestLineupService_SubmitLineup(t *testing.T) {
	repos := newSeededRepos(t)
	entry := rosteredTeam(t, repos)

	service := newLineupService(repos)
	service.now = func() time.Time { return beforeLosail }

	saved, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: entry.ID, OwnerID: "user-1", RaceID: "race-losail", Picks: sixLineupPicks(),
	})
	if err != nil {
		t.Fatalf("submit lineup: %v", err)
	}
	if len(saved.Picks) != 6 {
		t.Fatalf("want 6 picks, got %d", len(saved.Picks))
	}
	if captain, ok := saved.Captain(); !ok || captain.RiderID != "mgp-falworth" {
		t.Fatalf("unexpected captain: %+v", captain)
	}
}

func TestLineupService_SubmitLineup_ResubmitReplacesAndKeepsIdentity(t *testing.T) {
	repos := newSeededRepos(t)
	entry := rosteredTeam(t, repos)

	service := newLineupService(repos)
	service.now = func() time.Time { return beforeLosail }

	first, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: entry.ID, OwnerID: "user-1", RaceID: "race-losail", Picks: sixLineupPicks(),
	})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	picks := sixLineupPicks()
	picks[0].PredictedPosition = 9
	second, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: entry.ID, OwnerID: "user-1", RaceID: "race-losail", Picks: picks,
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("resubmit must keep the lineup id: %s vs %s", second.ID, first.ID)
	}
	if second.Picks[0].PredictedPosition != 9 {
		t.Fatal("resubmit must replace the picks")
	}
}

func TestLineupService_SubmitLineup_AfterDeadline(t *testing.T) {
	repos := newSeededRepos(t)
	entry := rosteredTeam(t, repos)

	service := newLineupService(repos)
	// Round 1 sprint starts 2026-03-07 14:00 UTC.
	service.now = func() time.Time { return time.Date(2026, 3, 7, 14, 0, 0, 0, time.UTC) }

	_, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: entry.ID, OwnerID: "user-1", RaceID: "race-losail", Picks: sixLineupPicks(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	var violations lineup.Violations
	if !errors.As(err, &violations) || !hasViolation(violations, lineup.KindDeadlinePassed) {
		t.Fatalf("want DEADLINE_PASSED, got %v", err)
	}
}

func TestLineupService_SubmitLineup_UnrosteredRider(t *testing.T) {
	repos := newSeededRepos(t)
	entry := rosteredTeam(t, repos)

	service := newLineupService(repos)
	service.now = func() time.Time { return beforeLosail }

	picks := sixLineupPicks()
	picks[1].RiderID = "mgp-vautrin" // in the season, not on this roster

	_, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: entry.ID, OwnerID: "user-1", RaceID: "race-losail", Picks: picks,
	})
	var violations lineup.Violations
	if !errors.As(err, &violations) || !hasViolation(violations, lineup.KindRiderNotInRoster) {
		t.Fatalf("want RIDER_NOT_IN_ROSTER, got %v", err)
	}
}

func TestLineupService_SubmitLineup_NoRoster(t *testing.T) {
	repos := newSeededRepos(t)
	rosterSvc := newRosterService(repos)
	created, _ := rosterSvc.CreateTeam(t.Context(), CreateTeamInput{
		LeagueID: memory.SeedLeagueID, OwnerID: "user-1", Name: "Empty",
	})

	service := newLineupService(repos)
	service.now = func() time.Time { return beforeLosail }

	_, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: created.ID, OwnerID: "user-1", RaceID: "race-losail", Picks: sixLineupPicks(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("lineup without roster must fail, got %v", err)
	}
}

func TestLineupService_GetEffectiveLineup_Fallback(t *testing.T) {
	repos := newSeededRepos(t)
	entry := rosteredTeam(t, repos)

	service := newLineupService(repos)
	service.now = func() time.Time { return beforeLosail }

	submitted, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: entry.ID, OwnerID: "user-1", RaceID: "race-losail", Picks: sixLineupPicks(),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Race 1 has its own lineup.
	direct, err := service.GetEffectiveLineup(t.Context(), entry.ID, "race-losail")
	if err != nil {
		t.Fatalf("effective for submitted race: %v", err)
	}
	if direct.Source != scoring.SourceLineup || direct.Lineup.ID != submitted.ID {
		t.Fatalf("want the submitted lineup, got %+v", direct)
	}

	// Race 3 falls back to the round 1 submission.
	carried, err := service.GetEffectiveLineup(t.Context(), entry.ID, "race-jerez")
	if err != nil {
		t.Fatalf("effective with fallback: %v", err)
	}
	if carried.Source != scoring.SourceFallback || carried.Lineup.ID != submitted.ID {
		t.Fatalf("want round 1 lineup as fallback, got %+v", carried)
	}
}

func TestLineupService_GetEffectiveLineup_NoneAtAll(t *testing.T) {
	repos := newSeededRepos(t)
	entry := rosteredTeam(t, repos)

	service := newLineupService(repos)

	_, err := service.GetEffectiveLineup(t.Context(), entry.ID, "race-losail")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("team with no lineups has nothing to score, got %v", err)
	}
}

func TestFallbackResolver_PicksLatestPriorRound(t *testing.T) {
	repos := newSeededRepos(t)
	entry := rosteredTeam(t, repos)

	service := newLineupService(repos)
	service.now = func() time.Time { return beforeLosail }

	first, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: entry.ID, OwnerID: "user-1", RaceID: "race-losail", Picks: sixLineupPicks(),
	})
	if err != nil {
		t.Fatalf("submit round 1: %v", err)
	}

	service.now = func() time.Time { return time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC) }
	second, err := service.SubmitLineup(t.Context(), SubmitLineupInput{
		TeamID: entry.ID, OwnerID: "user-1", RaceID: "race-termas", Picks: sixLineupPicks(),
	})
	if err != nil {
		t.Fatalf("submit round 2: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("different races must get different lineups")
	}

	carried, err := service.GetEffectiveLineup(t.Context(), entry.ID, "race-mugello")
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if carried.Lineup.ID != second.ID {
		t.Fatalf("fallback must pick the most recent prior round, got %s want %s", carried.Lineup.ID, second.ID)
	}
}

func hasViolation(vs lineup.Violations, kind lineup.Kind) bool {
	for _, v := range vs {
		if v.Kind == kind {
			return true
		}
	}
	return false
}
