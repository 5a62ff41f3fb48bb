package team

import (
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

// RosterPick is one rider slot on a team's roster.
type RosterPick struct {
	RiderID  string
	Category rider.Category
	Value    int
}

// Team is a manager's entry in one league. A rider on its roster is
// unavailable to every other team in the same league.
type Team struct {
	ID        string
	LeagueID  string
	OwnerID   string
	Name      string
	Roster    []RosterPick
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RosterCategories indexes the roster by rider for lineup validation.
func (t Team) RosterCategories() map[string]rider.Category {
	out := make(map[string]rider.Category, len(t.Roster))
	for _, pick := range t.Roster {
		out[pick.RiderID] = pick.Category
	}
	return out
}

// RosterValue is the combined purchase value of every pick.
func (t Team) RosterValue() int {
	total := 0
	for _, pick := range t.Roster {
		total += pick.Value
	}
	return total
}
