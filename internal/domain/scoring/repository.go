package scoring

import "context"

type Repository interface {
	// ReplaceByLeagueRace swaps every team score for one league and
	// race. Recomputes are idempotent full replacements.
	ReplaceByLeagueRace(ctx context.Context, leagueID, raceID string, scores []TeamScore) error
	ListByLeague(ctx context.Context, leagueID string) ([]TeamScore, error)
	ListByTeam(ctx context.Context, teamID string) ([]TeamScore, error)
	DeleteByLeague(ctx context.Context, leagueID string) error
}
