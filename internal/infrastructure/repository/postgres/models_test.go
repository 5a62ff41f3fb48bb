package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

func TestLeagueFromRow_EmptyScoringFallsBackToDefaults(t *testing.T) {
	got, err := leagueFromRow(leagueRow{
		ID:     "league-1",
		Name:   "Grandstand Open",
		Season: 2026,
		Budget: 1500,
	})
	if err != nil {
		t.Fatalf("league from row: %v", err)
	}

	defaults := league.DefaultScoringParams()
	if got.Scoring.CaptainMultiplier != defaults.CaptainMultiplier {
		t.Fatalf("unexpected captain multiplier: %d", got.Scoring.CaptainMultiplier)
	}
	if got.Scoring.MissedRacePolicy != defaults.MissedRacePolicy {
		t.Fatalf("unexpected missed race policy: %s", got.Scoring.MissedRacePolicy)
	}
	if got.Scoring.MaxPenaltyByCategory[rider.CategoryMotoGP] != defaults.MaxPenaltyByCategory[rider.CategoryMotoGP] {
		t.Fatalf("unexpected premier penalty: %d", got.Scoring.MaxPenaltyByCategory[rider.CategoryMotoGP])
	}
}

func TestLeagueScoringParams_EncodeDecode(t *testing.T) {
	params := league.DefaultScoringParams()
	params.CaptainMultiplier = 3
	params.MissedRacePolicy = league.MissedRaceMaxPenalty
	params.SprintScoringEnabled = false
	params.MaxPenaltyByCategory[rider.CategoryMoto3] = 31

	encoded, err := encodeScoringParams(params)
	if err != nil {
		t.Fatalf("encode scoring params: %v", err)
	}

	got, err := leagueFromRow(leagueRow{ID: "league-1", Scoring: encoded})
	if err != nil {
		t.Fatalf("league from row: %v", err)
	}
	if got.Scoring.CaptainMultiplier != 3 {
		t.Fatalf("unexpected captain multiplier: %d", got.Scoring.CaptainMultiplier)
	}
	if got.Scoring.MissedRacePolicy != league.MissedRaceMaxPenalty {
		t.Fatalf("unexpected policy: %s", got.Scoring.MissedRacePolicy)
	}
	if got.Scoring.SprintScoringEnabled {
		t.Fatal("sprint scoring must stay disabled")
	}
	if got.Scoring.MaxPenaltyByCategory[rider.CategoryMoto3] != 31 {
		t.Fatalf("unexpected moto3 penalty: %d", got.Scoring.MaxPenaltyByCategory[rider.CategoryMoto3])
	}
}

func TestLeagueFromRow_UnknownPolicyFallsBackToDefault(t *testing.T) {
	got, err := leagueFromRow(leagueRow{
		ID:      "league-1",
		Scoring: []byte(`{"missedRacePolicy":"FORFEIT","sprintScoringEnabled":true}`),
	})
	if err != nil {
		t.Fatalf("league from row: %v", err)
	}
	if got.Scoring.MissedRacePolicy != league.DefaultScoringParams().MissedRacePolicy {
		t.Fatalf("unexpected policy: %s", got.Scoring.MissedRacePolicy)
	}
}

func TestLineupFromRow_CorruptPicksFail(t *testing.T) {
	if _, err := lineupFromRow(lineupRow{ID: "lu-1", Picks: []byte(`{not json`)}); err == nil {
		t.Fatal("corrupt picks document must fail")
	}
}

func TestTeamScoreFromRow_EmptyBreakdown(t *testing.T) {
	got, err := teamScoreFromRow(teamScoreRow{
		ID:     "score-1",
		Points: 46,
		Source: "PENALTY",
	})
	if err != nil {
		t.Fatalf("team score from row: %v", err)
	}
	if len(got.Breakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %d rows", len(got.Breakdown))
	}
	if string(got.Source) != "PENALTY" {
		t.Fatalf("unexpected source: %s", got.Source)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows must map to not found")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatal("unrelated error must not map to not found")
	}
}
