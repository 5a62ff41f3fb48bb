package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
)

type leagueRaceKey struct {
	leagueID string
	raceID   string
}

type TeamScoreRepository struct {
	mu     sync.RWMutex
	scores map[leagueRaceKey][]scoring.TeamScore
}

func NewTeamScoreRepository() *TeamScoreRepository {
	return &TeamScoreRepository{scores: make(map[leagueRaceKey][]scoring.TeamScore)}
}

func (r *TeamScoreRepository) ReplaceByLeagueRace(_ context.Context, leagueID, raceID string, scores []scoring.TeamScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cloned := make([]scoring.TeamScore, 0, len(scores))
	for _, score := range scores {
		cloned = append(cloned, cloneScore(score))
	}
	r.scores[leagueRaceKey{leagueID: leagueID, raceID: raceID}] = cloned
	return nil
}

func (r *TeamScoreRepository) ListByLeague(_ context.Context, leagueID string) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []scoring.TeamScore
	for key, stored := range r.scores {
		if key.leagueID != leagueID {
			continue
		}
		for _, score := range stored {
			out = append(out, cloneScore(score))
		}
	}
	sortScores(out)
	return out, nil
}

func (r *TeamScoreRepository) ListByTeam(_ context.Context, teamID string) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []scoring.TeamScore
	for _, stored := range r.scores {
		for _, score := range stored {
			if score.TeamID == teamID {
				out = append(out, cloneScore(score))
			}
		}
	}
	sortScores(out)
	return out, nil
}

func (r *TeamScoreRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.scores {
		if key.leagueID == leagueID {
			delete(r.scores, key)
		}
	}
	return nil
}

func cloneScore(score scoring.TeamScore) scoring.TeamScore {
	clone := score
	clone.Breakdown = append([]scoring.RiderScore(nil), score.Breakdown...)
	return clone
}

func sortScores(scores []scoring.TeamScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].RaceID != scores[j].RaceID {
			return scores[i].RaceID < scores[j].RaceID
		}
		return scores[i].TeamID < scores[j].TeamID
	})
}
