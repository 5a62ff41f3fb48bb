package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{teams: make(map[string]team.Team)}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (*team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.teams[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", team.ErrNotFound, id)
	}
	clone := cloneTeam(entry)
	return &clone, nil
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []team.Team
	for _, entry := range r.teams {
		if entry.LeagueID == leagueID {
			out = append(out, cloneTeam(entry))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, entry *team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[entry.ID]; exists {
		return fmt.Errorf("team %s already exists", entry.ID)
	}
	r.teams[entry.ID] = cloneTeam(*entry)
	return nil
}

// ReplaceRoster re-checks the league claim under the write lock so two
// concurrent saves cannot both take the same rider.
func (r *TeamRepository) ReplaceRoster(_ context.Context, teamID string, picks []team.RosterPick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.teams[teamID]
	if !ok {
		return fmt.Errorf("%w: %s", team.ErrNotFound, teamID)
	}

	requested := make(map[string]bool, len(picks))
	for _, pick := range picks {
		requested[pick.RiderID] = true
	}
	for _, other := range r.teams {
		if other.ID == teamID || other.LeagueID != entry.LeagueID {
			continue
		}
		for _, pick := range other.Roster {
			if requested[pick.RiderID] {
				return fmt.Errorf("%w: rider %s held by team %s", team.ErrRiderClaimed, pick.RiderID, other.ID)
			}
		}
	}

	entry.Roster = append([]team.RosterPick(nil), picks...)
	r.teams[teamID] = entry
	return nil
}

func (r *TeamRepository) ClearRostersByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.teams {
		if entry.LeagueID != leagueID {
			continue
		}
		entry.Roster = nil
		r.teams[id] = entry
	}
	return nil
}

func cloneTeam(entry team.Team) team.Team {
	clone := entry
	clone.Roster = append([]team.RosterPick(nil), entry.Roster...)
	return clone
}
