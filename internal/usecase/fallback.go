package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
)

// FallbackResolver finds the lineup a race scores for a team. A team
// that misses a deadline keeps racing on its most recent earlier
// lineup from the same season. Fallbacks never cross a season
// boundary.
type FallbackResolver struct {
	raceRepo   race.Repository
	lineupRepo lineup.Repository
}

func NewFallbackResolver(raceRepo race.Repository, lineupRepo lineup.Repository) *FallbackResolver {
	return &FallbackResolver{raceRepo: raceRepo, lineupRepo: lineupRepo}
}

// Resolve returns the effective lineup for the team and race, tagged
// with its source. ok is false when the team has no usable lineup at
// all, which callers handle per the league's missed race policy.
func (r *FallbackResolver) Resolve(ctx context.Context, teamID string, event race.Race) (lineup.Lineup, scoring.Source, bool, error) {
	submitted, err := r.lineupRepo.GetByTeamRace(ctx, teamID, event.ID)
	if err == nil {
		return *submitted, scoring.SourceLineup, true, nil
	}
	if !errors.Is(err, lineup.ErrNotFound) {
		return lineup.Lineup{}, "", false, fmt.Errorf("get lineup: %w", err)
	}

	calendar, err := r.raceRepo.ListBySeason(ctx, event.Season)
	if err != nil {
		return lineup.Lineup{}, "", false, fmt.Errorf("list season races: %w", err)
	}
	roundOf := make(map[string]int, len(calendar))
	for _, prior := range calendar {
		roundOf[prior.ID] = prior.Round
	}

	lineups, err := r.lineupRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return lineup.Lineup{}, "", false, fmt.Errorf("list team lineups: %w", err)
	}

	var best *lineup.Lineup
	bestRound := 0
	for i, candidate := range lineups {
		round, ok := roundOf[candidate.RaceID]
		if !ok || round >= event.Round {
			continue
		}
		if best == nil || round > bestRound {
			best = &lineups[i]
			bestRound = round
		}
	}
	if best == nil {
		return lineup.Lineup{}, "", false, nil
	}
	return *best, scoring.SourceFallback, true, nil
}
