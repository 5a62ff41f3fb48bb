package raceresult

import "context"

type Repository interface {
	// ReplaceByRaceSession swaps the full classification for one
	// session. Corrections from stewards arrive as complete re-ingests,
	// never as partial updates.
	ReplaceByRaceSession(ctx context.Context, raceID string, session Session, results []Result) error
	ListByRaceSession(ctx context.Context, raceID string, session Session) ([]Result, error)
	ListByRace(ctx context.Context, raceID string) ([]Result, error)
}
