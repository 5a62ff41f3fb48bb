package lineup

import (
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

// Pick is one fielded rider with a predicted finishing position.
type Pick struct {
	RiderID           string
	Category          rider.Category
	PredictedPosition int
	Captain           bool
}

// Lineup is what a team fields for a single race: two riders per
// category out of its roster, each with a predicted position, and one
// captain across the whole lineup.
type Lineup struct {
	ID        string
	TeamID    string
	LeagueID  string
	RaceID    string
	Picks     []Pick
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Captain returns the captain pick if the lineup has one.
func (l Lineup) Captain() (Pick, bool) {
	for _, pick := range l.Picks {
		if pick.Captain {
			return pick, true
		}
	}
	return Pick{}, false
}
