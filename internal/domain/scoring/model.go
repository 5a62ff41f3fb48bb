package scoring

import (
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/domain/raceresult"
)

// Source records which lineup produced a team's race score.
type Source string

const (
	// SourceLineup means the team submitted a lineup for this race.
	SourceLineup Source = "LINEUP"
	// SourceFallback means the most recent earlier lineup was reused.
	SourceFallback Source = "FALLBACK"
	// SourcePenalty means no lineup existed and the league charges a
	// full non-finisher score for missed races.
	SourcePenalty Source = "PENALTY"
)

// RiderScore is the per-pick breakdown of one race score.
type RiderScore struct {
	RiderID           string
	Category          rider.Category
	Session           raceresult.Session
	PredictedPosition int
	ActualPosition    int
	Status            raceresult.Status
	Captain           bool
	Points            int
}

// TeamScore is a team's total for one race. Lower is better.
type TeamScore struct {
	ID         string
	TeamID     string
	LeagueID   string
	RaceID     string
	Points     int
	Source     Source
	Breakdown  []RiderScore
	ComputedAt time.Time
}
