package raceresult

import (
	"strings"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

// Session names the scoring session a result belongs to.
type Session string

const (
	SessionRace   Session = "RACE"
	SessionSprint Session = "SPRINT"
)

func (s Session) Valid() bool {
	return s == SessionRace || s == SessionSprint
}

// Status is a rider's classification outcome in one session.
type Status string

const (
	StatusFinished     Status = "FINISHED"
	StatusDNF          Status = "DNF"
	StatusDNS          Status = "DNS"
	StatusDisqualified Status = "DSQ"
)

// NormalizeStatus maps the loose spellings used by result feeds onto
// the canonical statuses. Unrecognized values count as DNF, which is
// the conservative choice for scoring.
func NormalizeStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "FINISHED", "FIN", "CLASSIFIED":
		return StatusFinished
	case "DNS", "DID NOT START":
		return StatusDNS
	case "DSQ", "DISQUALIFIED", "EXCLUDED":
		return StatusDisqualified
	default:
		return StatusDNF
	}
}

// Finished reports whether the result yields a real finishing position.
func (s Status) Finished() bool {
	return s == StatusFinished
}

// Result is one rider's outcome in one session of one race.
type Result struct {
	ID        string
	RaceID    string
	Session   Session
	RiderID   string
	Category  rider.Category
	Position  int
	Status    Status
	CreatedAt time.Time
}
