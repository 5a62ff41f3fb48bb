package team

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("team not found")
	// ErrRiderClaimed is returned by ReplaceRoster when another team in
	// the same league already holds one of the requested riders.
	ErrRiderClaimed = errors.New("rider already claimed in league")
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Team, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	Create(ctx context.Context, t *Team) error
	// ReplaceRoster swaps the team's roster atomically. The claim check
	// against other rosters in the league happens under the same lock
	// or transaction, so two teams can never end up sharing a rider.
	ReplaceRoster(ctx context.Context, teamID string, picks []RosterPick) error
	// ClearRostersByLeague empties every roster in the league. Used by
	// the season reset.
	ClearRostersByLeague(ctx context.Context, leagueID string) error
}
