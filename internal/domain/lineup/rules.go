package lineup

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

// Kind tags a single lineup constraint failure.
type Kind string

const (
	KindDeadlinePassed       Kind = "DEADLINE_PASSED"
	KindCategoryCount        Kind = "CATEGORY_COUNT"
	KindPredictionOutOfRange Kind = "PREDICTION_OUT_OF_RANGE"
	KindRiderNotInRoster     Kind = "RIDER_NOT_IN_ROSTER"
	KindDuplicateRider       Kind = "DUPLICATE_RIDER"
	KindMultipleCaptains     Kind = "MULTIPLE_CAPTAINS"
)

// Violation is one failed constraint.
type Violation struct {
	Kind    Kind
	RiderID string
	Message string
}

func (v Violation) Error() string {
	if v.RiderID == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("%s: rider %s: %s", v.Kind, v.RiderID, v.Message)
}

type Violations []Violation

func (vs Violations) Error() string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.Error())
	}
	return strings.Join(parts, "; ")
}

// RidersPerCategory is how many riders a lineup fields per class.
const RidersPerCategory = 2

// Rules validates a lineup submission for one race.
type Rules struct {
	// Deadline is the race's lock time. Submissions at or after it are
	// rejected outright.
	Deadline time.Time
	// Roster maps rider ID to category for the submitting team's
	// roster. Lineups may only field rostered riders.
	Roster map[string]rider.Category
	// MaxFieldSize bounds the predicted position per category.
	MaxFieldSize map[rider.Category]int
}

// Validate checks the submission against every rule and accumulates
// all failures. A passed deadline is reported alongside the
// composition problems, not instead of them.
func (r Rules) Validate(picks []Pick, now time.Time) Violations {
	var out Violations

	if !now.Before(r.Deadline) {
		out = append(out, Violation{
			Kind:    KindDeadlinePassed,
			Message: fmt.Sprintf("lineup locked at %s", r.Deadline.UTC().Format(time.RFC3339)),
		})
	}

	perCategory := make(map[rider.Category]int)
	seen := make(map[string]bool, len(picks))
	captains := 0

	for _, pick := range picks {
		if seen[pick.RiderID] {
			out = append(out, Violation{
				Kind:    KindDuplicateRider,
				RiderID: pick.RiderID,
				Message: "rider listed more than once",
			})
			continue
		}
		seen[pick.RiderID] = true

		category, rostered := r.Roster[pick.RiderID]
		if !rostered {
			out = append(out, Violation{
				Kind:    KindRiderNotInRoster,
				RiderID: pick.RiderID,
				Message: "rider is not on the team roster",
			})
			category = pick.Category
		}
		perCategory[category]++

		max := r.MaxFieldSize[category]
		if pick.PredictedPosition < 1 || (max > 0 && pick.PredictedPosition > max) {
			out = append(out, Violation{
				Kind:    KindPredictionOutOfRange,
				RiderID: pick.RiderID,
				Message: fmt.Sprintf("predicted position %d is outside 1..%d", pick.PredictedPosition, max),
			})
		}

		if pick.Captain {
			captains++
		}
	}

	for _, category := range rider.Categories() {
		if perCategory[category] != RidersPerCategory {
			out = append(out, Violation{
				Kind:    KindCategoryCount,
				Message: fmt.Sprintf("%s has %d riders, want exactly %d", category, perCategory[category], RidersPerCategory),
			})
		}
	}

	if captains > 1 {
		out = append(out, Violation{
			Kind:    KindMultipleCaptains,
			Message: fmt.Sprintf("%d captains marked, want at most 1", captains),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].RiderID < out[j].RiderID
	})
	return out
}
