package lineup

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("lineup not found")

type Repository interface {
	GetByTeamRace(ctx context.Context, teamID, raceID string) (*Lineup, error)
	ListByRace(ctx context.Context, leagueID, raceID string) ([]Lineup, error)
	ListByTeam(ctx context.Context, teamID string) ([]Lineup, error)
	// Upsert replaces the team's lineup for the race in full. There is
	// no partial edit of a submitted lineup.
	Upsert(ctx context.Context, l *Lineup) error
	DeleteByLeague(ctx context.Context, leagueID string) error
}
