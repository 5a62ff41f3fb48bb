package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/raceresult"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

func finished(riderID string, position int) raceresult.Result {
	return raceresult.Result{
		RiderID:  riderID,
		Category: rider.CategoryMotoGP,
		Position: position,
		Status:   raceresult.StatusFinished,
	}
}

func TestScoreRider_PredictionMiss(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()

	cases := []struct {
		name      string
		predicted int
		actual    int
		want      int
	}{
		{"perfect call on winner", 1, 1, 1},
		{"perfect call mid field", 7, 7, 7},
		{"optimistic miss", 3, 9, 15},
		{"pessimistic miss", 9, 3, 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pick := lineup.Pick{RiderID: "r1", Category: rider.CategoryMotoGP, PredictedPosition: tc.predicted}
			got := ScoreRider(pick, finished("r1", tc.actual), params)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestScoreRider_NonFinisherTakesCategoryPenalty(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()

	for _, status := range []raceresult.Status{raceresult.StatusDNF, raceresult.StatusDNS, raceresult.StatusDisqualified} {
		pick := lineup.Pick{RiderID: "r1", Category: rider.CategoryMoto3, PredictedPosition: 1}
		result := raceresult.Result{RiderID: "r1", Category: rider.CategoryMoto3, Status: status}
		require.Equal(t, params.MaxPenalty(rider.CategoryMoto3), ScoreRider(pick, result, params), "status %s", status)
	}
}

func TestScoreRider_NonFinisherDominatesWorstFinish(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()

	// Not finishing must never beat finishing. The worst finished
	// outcome is the back marker under a maximally wrong prediction,
	// so the configured penalty has to be at least that score.
	for _, category := range rider.Categories() {
		fieldSize := params.MaxFieldSize(category)
		worstFinished := 0
		for predicted := 1; predicted <= fieldSize; predicted++ {
			for actual := 1; actual <= fieldSize; actual++ {
				pick := lineup.Pick{RiderID: "r1", Category: category, PredictedPosition: predicted}
				result := raceresult.Result{RiderID: "r1", Category: category, Position: actual, Status: raceresult.StatusFinished}
				if got := ScoreRider(pick, result, params); got > worstFinished {
					worstFinished = got
				}
			}
		}
		require.GreaterOrEqual(t, params.MaxPenalty(category), worstFinished, "category %s", category)
	}
}

func TestScoreRider_CaptainMultiplier(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()
	pick := lineup.Pick{RiderID: "r1", Category: rider.CategoryMotoGP, PredictedPosition: 2, Captain: true}

	require.Equal(t, 2*(3+1), ScoreRider(pick, finished("r1", 3), params))

	// The multiplier also applies to the DNF penalty.
	dnf := raceresult.Result{RiderID: "r1", Category: rider.CategoryMotoGP, Status: raceresult.StatusDNF}
	require.Equal(t, 2*params.MaxPenalty(rider.CategoryMotoGP), ScoreRider(pick, dnf, params))
}

func sixPicks() lineup.Lineup {
	return lineup.Lineup{
		ID:     "l1",
		TeamID: "t1",
		RaceID: "race-1",
		Picks: []lineup.Pick{
			{RiderID: "mgp-1", Category: rider.CategoryMotoGP, PredictedPosition: 1, Captain: true},
			{RiderID: "mgp-2", Category: rider.CategoryMotoGP, PredictedPosition: 4},
			{RiderID: "m2-1", Category: rider.CategoryMoto2, PredictedPosition: 2},
			{RiderID: "m2-2", Category: rider.CategoryMoto2, PredictedPosition: 6},
			{RiderID: "m3-1", Category: rider.CategoryMoto3, PredictedPosition: 3},
			{RiderID: "m3-2", Category: rider.CategoryMoto3, PredictedPosition: 5},
		},
	}
}

func raceClassification() map[string]raceresult.Result {
	return map[string]raceresult.Result{
		"mgp-1": finished("mgp-1", 1),
		"mgp-2": finished("mgp-2", 6),
		"m2-1":  finished("m2-1", 2),
		"m2-2":  finished("m2-2", 6),
		"m3-1":  finished("m3-1", 4),
		"m3-2":  finished("m3-2", 5),
	}
}

func TestScoreLineup_TotalsAndBreakdown(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()
	breakdown, total, err := ScoreLineup(sixPicks(), raceClassification(), nil, params)
	require.NoError(t, err)
	require.Len(t, breakdown, 6)

	// captain 1+0 doubled, then 6+2, 2+0, 6+0, 4+1, 5+0.
	require.Equal(t, 2+8+2+6+5+5, total)

	for _, rs := range breakdown {
		require.Equal(t, raceresult.SessionRace, rs.Session)
	}
}

func TestScoreLineup_MissingResultFailsWholeLineup(t *testing.T) {
	t.Parallel()

	results := raceClassification()
	delete(results, "m3-2")

	_, _, err := ScoreLineup(sixPicks(), results, nil, league.DefaultScoringParams())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingResult))
}

func TestScoreLineup_SprintAddsPremierClassOnly(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()
	sprint := map[string]raceresult.Result{
		"mgp-1": finished("mgp-1", 2),
		// m2-1 accidentally present; must be ignored as non-premier.
		"m2-1": finished("m2-1", 1),
	}

	breakdown, total, err := ScoreLineup(sixPicks(), raceClassification(), sprint, params)
	require.NoError(t, err)
	require.Len(t, breakdown, 7)

	_, raceTotal, err := ScoreLineup(sixPicks(), raceClassification(), nil, params)
	require.NoError(t, err)

	// captain sprint: (2+1) doubled.
	require.Equal(t, raceTotal+6, total)
}

func TestScoreLineup_SprintSkippedWhenDisabled(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()
	params.SprintScoringEnabled = false

	sprint := map[string]raceresult.Result{"mgp-1": finished("mgp-1", 2)}
	breakdown, _, err := ScoreLineup(sixPicks(), raceClassification(), sprint, params)
	require.NoError(t, err)
	require.Len(t, breakdown, 6)
}

func TestScoreLineup_SprintSkipsAbsentRiders(t *testing.T) {
	t.Parallel()

	// Only one premier-class pick appears in the sprint map; the other
	// scores nothing extra rather than failing the lineup.
	sprint := map[string]raceresult.Result{"mgp-2": finished("mgp-2", 8)}
	breakdown, _, err := ScoreLineup(sixPicks(), raceClassification(), sprint, league.DefaultScoringParams())
	require.NoError(t, err)
	require.Len(t, breakdown, 7)
}

func TestScoreLineup_Deterministic(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()
	_, first, err := ScoreLineup(sixPicks(), raceClassification(), nil, params)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, again, err := ScoreLineup(sixPicks(), raceClassification(), nil, params)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestMissedRaceScore(t *testing.T) {
	t.Parallel()

	params := league.DefaultScoringParams()
	want := 2*params.MaxPenalty(rider.CategoryMotoGP) +
		2*params.MaxPenalty(rider.CategoryMoto2) +
		2*params.MaxPenalty(rider.CategoryMoto3)
	require.Equal(t, want, MissedRaceScore(params))
}
