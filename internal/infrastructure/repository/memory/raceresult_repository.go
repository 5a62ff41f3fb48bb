package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/paddockleague/fantasy-motogp/internal/domain/raceresult"
)

type sessionKey struct {
	raceID  string
	session raceresult.Session
}

type RaceResultRepository struct {
	mu      sync.RWMutex
	results map[sessionKey][]raceresult.Result
}

func NewRaceResultRepository() *RaceResultRepository {
	return &RaceResultRepository{results: make(map[sessionKey][]raceresult.Result)}
}

func (r *RaceResultRepository) ReplaceByRaceSession(_ context.Context, raceID string, session raceresult.Session, results []raceresult.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[sessionKey{raceID: raceID, session: session}] = append([]raceresult.Result(nil), results...)
	return nil
}

func (r *RaceResultRepository) ListByRaceSession(_ context.Context, raceID string, session raceresult.Session) ([]raceresult.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.results[sessionKey{raceID: raceID, session: session}]
	out := append([]raceresult.Result(nil), stored...)
	sortResults(out)
	return out, nil
}

func (r *RaceResultRepository) ListByRace(_ context.Context, raceID string) ([]raceresult.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []raceresult.Result
	for key, stored := range r.results {
		if key.raceID == raceID {
			out = append(out, stored...)
		}
	}
	sortResults(out)
	return out, nil
}

func sortResults(results []raceresult.Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Session != results[j].Session {
			return results[i].Session < results[j].Session
		}
		if results[i].Category != results[j].Category {
			return results[i].Category < results[j].Category
		}
		return results[i].Position < results[j].Position
	})
}
