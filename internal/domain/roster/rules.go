package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

// Kind tags a single roster constraint failure.
type Kind string

const (
	KindBudgetExceeded   Kind = "BUDGET_EXCEEDED"
	KindCategoryQuota    Kind = "CATEGORY_QUOTA"
	KindRiderNotOfficial Kind = "RIDER_NOT_OFFICIAL"
	KindRiderClaimed     Kind = "RIDER_ALREADY_CLAIMED"
	KindDuplicateRider   Kind = "DUPLICATE_RIDER"
	KindUnknownRider     Kind = "UNKNOWN_RIDER"
)

// Violation is one failed constraint. Validation never stops at the
// first failure, so a single save attempt reports everything wrong
// with it at once.
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

// RidersPerCategory is the slot count each class gets on a full roster.
const RidersPerCategory = 3

// FullRosterSize is the rider count of a complete roster, three slots
// in each of the three classes.
const FullRosterSize = 3 * RidersPerCategory

// Pick is one requested roster slot, identified by rider only. Value
// and category are resolved from the rider catalog during validation.
type Pick struct {
	RiderID string
}

// Result is the outcome of validating a roster request.
type Result struct {
	// Complete is true when every category quota is filled exactly.
	// Teams may save partial rosters while building up, but only a
	// complete roster can field lineups.
	Complete   bool
	TotalValue int
	Violations Violations
}

func (r Result) OK() bool {
	return len(r.Violations) == 0
}

// Rules validates roster composition for one league.
type Rules struct {
	Budget int
	// Claimed maps rider ID to the owning team for every rider already
	// rostered in the league. The team being validated must not appear.
	Claimed map[string]string
	// Catalog resolves rider IDs to season entries.
	Catalog map[string]rider.Rider
}

// Validate checks every constraint and accumulates all failures. The
// returned result carries the resolved total value even when the
// roster is rejected, so callers can report how far over budget the
// request was.
func (r Rules) Validate(picks []Pick) Result {
	var out Result

	perCategory := make(map[rider.Category]int)
	seen := make(map[string]bool, len(picks))

	for _, pick := range picks {
		if seen[pick.RiderID] {
			out.Violations = append(out.Violations, Violation{
				Kind:    KindDuplicateRider,
				RiderID: pick.RiderID,
				Message: "rider listed more than once",
			})
			continue
		}
		seen[pick.RiderID] = true

		entry, ok := r.Catalog[pick.RiderID]
		if !ok {
			out.Violations = append(out.Violations, Violation{
				Kind:    KindUnknownRider,
				RiderID: pick.RiderID,
				Message: "rider is not part of the season",
			})
			continue
		}

		if !entry.Eligible() {
			out.Violations = append(out.Violations, Violation{
				Kind:    KindRiderNotOfficial,
				RiderID: pick.RiderID,
				Message: fmt.Sprintf("%s riders cannot be rostered", strings.ToLower(string(entry.Type))),
			})
		}
		if owner, claimed := r.Claimed[pick.RiderID]; claimed {
			out.Violations = append(out.Violations, Violation{
				Kind:    KindRiderClaimed,
				RiderID: pick.RiderID,
				Message: fmt.Sprintf("already rostered by team %s", owner),
			})
		}

		perCategory[entry.Category]++
		out.TotalValue += entry.Value
	}

	// A submission with fewer than nine picks is a roster under
	// construction, so short classes only make it incomplete. At full
	// size the split itself must be 3/3/3.
	fullAttempt := len(picks) >= FullRosterSize
	for _, category := range rider.Categories() {
		count := perCategory[category]
		switch {
		case count > RidersPerCategory:
			out.Violations = append(out.Violations, Violation{
				Kind:    KindCategoryQuota,
				Message: fmt.Sprintf("%s has %d riders, want at most %d", category, count, RidersPerCategory),
			})
		case fullAttempt && count < RidersPerCategory:
			out.Violations = append(out.Violations, Violation{
				Kind:    KindCategoryQuota,
				Message: fmt.Sprintf("%s has %d riders, want %d", category, count, RidersPerCategory),
			})
		}
	}

	if r.Budget > 0 && out.TotalValue > r.Budget {
		out.Violations = append(out.Violations, Violation{
			Kind:    KindBudgetExceeded,
			Message: fmt.Sprintf("roster value %d exceeds budget %d", out.TotalValue, r.Budget),
		})
	}

	out.Complete = true
	for _, category := range rider.Categories() {
		if perCategory[category] != RidersPerCategory {
			out.Complete = false
			break
		}
	}

	sortViolations(out.Violations)
	return out
}

func sortViolations(vs Violations) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Kind != vs[j].Kind {
			return vs[i].Kind < vs[j].Kind
		}
		return vs[i].RiderID < vs[j].RiderID
	})
}
