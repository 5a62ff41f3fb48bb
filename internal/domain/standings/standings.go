package standings

import (
	"math"
	"sort"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
)

// Trend is a team's rank movement after the latest scored race.
type Trend string

const (
	TrendUp   Trend = "UP"
	TrendDown Trend = "DOWN"
	TrendSame Trend = "SAME"
	// TrendNew marks a team with no rank before the latest race.
	TrendNew Trend = "NEW"
)

// Standing is one row of a league table. Totals are golf-style, so the
// leader has the lowest number.
type Standing struct {
	Rank            int
	TeamID          string
	TotalPoints     int
	LatestRacePoints *int
	RacesScored     int
	Trend           Trend
	// GapToLeader and GapToPrevious are this row's deficit to rank 1
	// and to the row directly above, zero for the leader. GapToNext is
	// the margin the row directly below trails by, zero for the last
	// row. Totals are golf-style, so gaps are always non-negative.
	GapToLeader   int
	GapToPrevious int
	GapToNext     int
}

type teamTotals struct {
	teamID      string
	total       int
	latest      *int
	racesScored int
	createdAt   time.Time
}

// Build computes the league table from per-race team scores. raceOrder
// lists the season's race IDs in round order and decides which race is
// "latest" for tie-breaks and trend. createdAt breaks remaining ties
// deterministically by team age.
func Build(scores []scoring.TeamScore, raceOrder []string, createdAt map[string]time.Time) []Standing {
	if len(scores) == 0 {
		return nil
	}

	roundOf := make(map[string]int, len(raceOrder))
	for i, raceID := range raceOrder {
		roundOf[raceID] = i
	}

	latestRound := -1
	for _, score := range scores {
		if round, ok := roundOf[score.RaceID]; ok && round > latestRound {
			latestRound = round
		}
	}

	byTeam := make(map[string]*teamTotals)
	for _, score := range scores {
		totals, ok := byTeam[score.TeamID]
		if !ok {
			totals = &teamTotals{teamID: score.TeamID, createdAt: createdAt[score.TeamID]}
			byTeam[score.TeamID] = totals
		}
		totals.total += score.Points
		totals.racesScored++
		if roundOf[score.RaceID] == latestRound {
			points := score.Points
			totals.latest = &points
		}
	}

	rows := make([]*teamTotals, 0, len(byTeam))
	for _, totals := range byTeam {
		rows = append(rows, totals)
	}
	rank(rows)

	previous := previousRanks(scores, roundOf, latestRound, createdAt)

	out := make([]Standing, len(rows))
	for i, row := range rows {
		standing := Standing{
			Rank:            i + 1,
			TeamID:          row.teamID,
			TotalPoints:     row.total,
			LatestRacePoints: row.latest,
			RacesScored:     row.racesScored,
			Trend:           TrendNew,
			GapToLeader:     row.total - rows[0].total,
		}
		if i > 0 {
			standing.GapToPrevious = row.total - rows[i-1].total
		}
		if i+1 < len(rows) {
			standing.GapToNext = rows[i+1].total - row.total
		}
		if prev, ok := previous[row.teamID]; ok {
			switch {
			case standing.Rank < prev:
				standing.Trend = TrendUp
			case standing.Rank > prev:
				standing.Trend = TrendDown
			default:
				standing.Trend = TrendSame
			}
		}
		out[i] = standing
	}
	return out
}

// previousRanks ranks the table as it stood before the latest race, so
// trends compare like for like.
func previousRanks(scores []scoring.TeamScore, roundOf map[string]int, latestRound int, createdAt map[string]time.Time) map[string]int {
	byTeam := make(map[string]*teamTotals)
	prevRound := -1
	for _, score := range scores {
		round := roundOf[score.RaceID]
		if round == latestRound {
			continue
		}
		totals, ok := byTeam[score.TeamID]
		if !ok {
			totals = &teamTotals{teamID: score.TeamID, createdAt: createdAt[score.TeamID]}
			byTeam[score.TeamID] = totals
		}
		totals.total += score.Points
		totals.racesScored++
		if round > prevRound {
			prevRound = round
		}
	}
	for _, score := range scores {
		if roundOf[score.RaceID] != prevRound {
			continue
		}
		if totals, ok := byTeam[score.TeamID]; ok {
			points := score.Points
			totals.latest = &points
		}
	}

	rows := make([]*teamTotals, 0, len(byTeam))
	for _, totals := range byTeam {
		rows = append(rows, totals)
	}
	rank(rows)

	out := make(map[string]int, len(rows))
	for i, row := range rows {
		out[row.teamID] = i + 1
	}
	return out
}

func rank(rows []*teamTotals) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total < rows[j].total
		}
		li, lj := latestOrMax(rows[i]), latestOrMax(rows[j])
		if li != lj {
			return li < lj
		}
		if !rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].createdAt.Before(rows[j].createdAt)
		}
		return rows[i].teamID < rows[j].teamID
	})
}

// latestOrMax treats a team that skipped the latest race as worst in
// the tie-break.
func latestOrMax(t *teamTotals) int {
	if t.latest == nil {
		return math.MaxInt
	}
	return *t.latest
}
