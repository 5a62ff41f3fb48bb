package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

type RiderRepository struct {
	mu     sync.RWMutex
	riders map[string]rider.Rider
}

func NewRiderRepository() *RiderRepository {
	return &RiderRepository{riders: make(map[string]rider.Rider)}
}

func (r *RiderRepository) GetByID(_ context.Context, id string) (*rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.riders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", rider.ErrNotFound, id)
	}
	return &entry, nil
}

func (r *RiderRepository) ListBySeason(_ context.Context, season int) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.Rider, 0, len(r.riders))
	for _, entry := range r.riders {
		if entry.Season == season {
			out = append(out, entry)
		}
	}
	sortRiders(out)
	return out, nil
}

func (r *RiderRepository) ListByCategory(_ context.Context, season int, category rider.Category) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []rider.Rider
	for _, entry := range r.riders {
		if entry.Season == season && entry.Category == category {
			out = append(out, entry)
		}
	}
	sortRiders(out)
	return out, nil
}

func (r *RiderRepository) Upsert(_ context.Context, entry *rider.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.riders[entry.ID]; ok {
		entry.CreatedAt = existing.CreatedAt
	}
	r.riders[entry.ID] = *entry
	return nil
}

func sortRiders(riders []rider.Rider) {
	sort.Slice(riders, func(i, j int) bool {
		if riders[i].Category != riders[j].Category {
			return riders[i].Category < riders[j].Category
		}
		return riders[i].Number < riders[j].Number
	})
}
