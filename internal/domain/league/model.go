package league

import (
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

// MissedRacePolicy controls what a team scores for a race where it had
// neither a lineup nor a usable fallback.
type MissedRacePolicy string

const (
	// MissedRaceNoScore leaves the race out of the team's total.
	MissedRaceNoScore MissedRacePolicy = "NO_SCORE"
	// MissedRaceMaxPenalty charges a full non-finisher lineup instead.
	MissedRaceMaxPenalty MissedRacePolicy = "MAX_PENALTY"
)

func (p MissedRacePolicy) Valid() bool {
	return p == MissedRaceNoScore || p == MissedRaceMaxPenalty
}

// ScoringParams are the per-league knobs of the scoring engine.
type ScoringParams struct {
	CaptainMultiplier     int
	MaxPenaltyByCategory  map[rider.Category]int
	MaxFieldSizeByCategory map[rider.Category]int
	MissedRacePolicy      MissedRacePolicy
	SprintScoringEnabled  bool
}

// DefaultScoringParams mirrors the real-world grid sizes of the three
// classes. The non-finisher penalty is 2*fieldSize-1, the score of the
// back marker under a maximally wrong prediction, so not finishing is
// never cheaper than the worst possible finish.
func DefaultScoringParams() ScoringParams {
	return ScoringParams{
		CaptainMultiplier: 2,
		MaxPenaltyByCategory: map[rider.Category]int{
			rider.CategoryMotoGP: 43,
			rider.CategoryMoto2:  55,
			rider.CategoryMoto3:  53,
		},
		MaxFieldSizeByCategory: map[rider.Category]int{
			rider.CategoryMotoGP: 22,
			rider.CategoryMoto2:  28,
			rider.CategoryMoto3:  27,
		},
		MissedRacePolicy:     MissedRaceNoScore,
		SprintScoringEnabled: true,
	}
}

// MaxPenalty returns the non-finisher score for one pick of the category.
func (p ScoringParams) MaxPenalty(category rider.Category) int {
	if v, ok := p.MaxPenaltyByCategory[category]; ok && v > 0 {
		return v
	}
	return DefaultScoringParams().MaxPenaltyByCategory[category]
}

// MaxFieldSize bounds the predicted finishing position for the category.
func (p ScoringParams) MaxFieldSize(category rider.Category) int {
	if v, ok := p.MaxFieldSizeByCategory[category]; ok && v > 0 {
		return v
	}
	return DefaultScoringParams().MaxFieldSizeByCategory[category]
}

// League is an isolated competition with its own budget and roster
// exclusivity scope.
type League struct {
	ID     string
	Name   string
	Season int
	Budget int

	// MaxTeams caps league entries; zero means unlimited.
	MaxTeams int

	// TeamsLocked freezes team creation and roster edits, typically
	// flipped once the season is underway.
	TeamsLocked bool

	Scoring   ScoringParams
	CreatedAt time.Time
	UpdatedAt time.Time
}
