package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
)

type RaceRepository struct {
	mu    sync.RWMutex
	races map[string]race.Race
}

func NewRaceRepository() *RaceRepository {
	return &RaceRepository{races: make(map[string]race.Race)}
}

func (r *RaceRepository) GetByID(_ context.Context, id string) (*race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.races[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", race.ErrNotFound, id)
	}
	clone := cloneRace(entry)
	return &clone, nil
}

func (r *RaceRepository) ListBySeason(_ context.Context, season int) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []race.Race
	for _, entry := range r.races {
		if entry.Season == season {
			out = append(out, cloneRace(entry))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out, nil
}

func (r *RaceRepository) Upsert(_ context.Context, entry *race.Race) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.races[entry.ID]; ok {
		entry.CreatedAt = existing.CreatedAt
	}
	r.races[entry.ID] = cloneRace(*entry)
	return nil
}

func cloneRace(entry race.Race) race.Race {
	clone := entry
	if entry.SprintDate != nil {
		sprint := *entry.SprintDate
		clone.SprintDate = &sprint
	}
	return clone
}
