package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
)

type LineupRepository struct {
	mu      sync.RWMutex
	lineups map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{lineups: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) GetByTeamRace(_ context.Context, teamID, raceID string) (*lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.lineups {
		if entry.TeamID == teamID && entry.RaceID == raceID {
			clone := cloneLineup(entry)
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: team %s race %s", lineup.ErrNotFound, teamID, raceID)
}

func (r *LineupRepository) ListByRace(_ context.Context, leagueID, raceID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []lineup.Lineup
	for _, entry := range r.lineups {
		if entry.LeagueID == leagueID && entry.RaceID == raceID {
			out = append(out, cloneLineup(entry))
		}
	}
	sortLineups(out)
	return out, nil
}

func (r *LineupRepository) ListByTeam(_ context.Context, teamID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []lineup.Lineup
	for _, entry := range r.lineups {
		if entry.TeamID == teamID {
			out = append(out, cloneLineup(entry))
		}
	}
	sortLineups(out)
	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, entry *lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lineups[entry.ID] = cloneLineup(*entry)
	return nil
}

func (r *LineupRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.lineups {
		if entry.LeagueID == leagueID {
			delete(r.lineups, id)
		}
	}
	return nil
}

func cloneLineup(entry lineup.Lineup) lineup.Lineup {
	clone := entry
	clone.Picks = append([]lineup.Pick(nil), entry.Picks...)
	return clone
}

func sortLineups(lineups []lineup.Lineup) {
	sort.Slice(lineups, func(i, j int) bool {
		if lineups[i].TeamID != lineups[j].TeamID {
			return lineups[i].TeamID < lineups[j].TeamID
		}
		return lineups[i].RaceID < lineups[j].RaceID
	})
}
