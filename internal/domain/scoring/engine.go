package scoring

import (
	"errors"
	"fmt"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/raceresult"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

// ErrMissingResult is returned when a fielded rider has no RACE result.
// Scoring is all-or-nothing per race: a partial classification means
// the recompute waits for the full one.
var ErrMissingResult = errors.New("missing race result for fielded rider")

// ScoreRider scores one pick against one session result. Finishers
// score their actual position plus the prediction miss, so a perfect
// call on the winner scores 1 and lower always wins. Non-finishers
// score the category's fixed penalty regardless of the prediction.
func ScoreRider(pick lineup.Pick, result raceresult.Result, params league.ScoringParams) int {
	var points int
	if result.Status.Finished() {
		miss := pick.PredictedPosition - result.Position
		if miss < 0 {
			miss = -miss
		}
		points = result.Position + miss
	} else {
		points = params.MaxPenalty(pick.Category)
	}

	if pick.Captain {
		points *= params.CaptainMultiplier
	}
	return points
}

// ScoreLineup scores a full lineup against the race classification.
// Every pick needs a RACE result; sprint results are optional and only
// score the premier-class picks that appear in them.
func ScoreLineup(l lineup.Lineup, raceResults, sprintResults map[string]raceresult.Result, params league.ScoringParams) ([]RiderScore, int, error) {
	breakdown := make([]RiderScore, 0, len(l.Picks)+lineup.RidersPerCategory)
	total := 0

	for _, pick := range l.Picks {
		result, ok := raceResults[pick.RiderID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrMissingResult, pick.RiderID)
		}
		points := ScoreRider(pick, result, params)
		total += points
		breakdown = append(breakdown, RiderScore{
			RiderID:           pick.RiderID,
			Category:          pick.Category,
			Session:           raceresult.SessionRace,
			PredictedPosition: pick.PredictedPosition,
			ActualPosition:    result.Position,
			Status:            result.Status,
			Captain:           pick.Captain,
			Points:            points,
		})
	}

	if params.SprintScoringEnabled && len(sprintResults) > 0 {
		for _, pick := range l.Picks {
			if pick.Category != rider.CategoryMotoGP {
				continue
			}
			result, ok := sprintResults[pick.RiderID]
			if !ok {
				continue
			}
			points := ScoreRider(pick, result, params)
			total += points
			breakdown = append(breakdown, RiderScore{
				RiderID:           pick.RiderID,
				Category:          pick.Category,
				Session:           raceresult.SessionSprint,
				PredictedPosition: pick.PredictedPosition,
				ActualPosition:    result.Position,
				Status:            result.Status,
				Captain:           pick.Captain,
				Points:            points,
			})
		}
	}

	return breakdown, total, nil
}

// MissedRaceScore is what a team without any usable lineup scores under
// the max penalty policy: a full lineup of non-finishers, no captain.
func MissedRaceScore(params league.ScoringParams) int {
	total := 0
	for _, category := range rider.Categories() {
		total += lineup.RidersPerCategory * params.MaxPenalty(category)
	}
	return total
}
