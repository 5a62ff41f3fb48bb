package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	leagues map[string]league.League
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{leagues: make(map[string]league.League)}
}

func (r *LeagueRepository) GetByID(_ context.Context, id string) (*league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.leagues[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", league.ErrNotFound, id)
	}
	clone := cloneLeague(entry)
	return &clone, nil
}

func (r *LeagueRepository) ListBySeason(_ context.Context, season int) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.leagues))
	for _, entry := range r.leagues {
		if entry.Season == season {
			out = append(out, cloneLeague(entry))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *LeagueRepository) Create(_ context.Context, entry *league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leagues[entry.ID]; exists {
		return fmt.Errorf("league %s already exists", entry.ID)
	}
	r.leagues[entry.ID] = cloneLeague(*entry)
	return nil
}

func (r *LeagueRepository) Update(_ context.Context, entry *league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leagues[entry.ID]; !exists {
		return fmt.Errorf("%w: %s", league.ErrNotFound, entry.ID)
	}
	r.leagues[entry.ID] = cloneLeague(*entry)
	return nil
}

// cloneLeague deep-copies the scoring maps so callers cannot mutate
// stored state.
func cloneLeague(entry league.League) league.League {
	clone := entry
	clone.Scoring.MaxPenaltyByCategory = cloneCategoryMap(entry.Scoring.MaxPenaltyByCategory)
	clone.Scoring.MaxFieldSizeByCategory = cloneCategoryMap(entry.Scoring.MaxFieldSizeByCategory)
	return clone
}

func cloneCategoryMap(in map[rider.Category]int) map[rider.Category]int {
	if in == nil {
		return nil
	}
	out := make(map[rider.Category]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
