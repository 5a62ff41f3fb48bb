package roster

import (
	"strings"
	"testing"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

func testCatalog() map[string]rider.Rider {
	catalog := make(map[string]rider.Rider)

	add := func(id string, category rider.Category, riderType rider.Type, value int) {
		catalog[id] = rider.Rider{
			ID:       id,
			Name:     id,
			Category: category,
			Type:     riderType,
			Value:    value,
			Season:   2026,
		}
	}

	for _, spec := range []struct {
		prefix   string
		category rider.Category
	}{
		{"mgp", rider.CategoryMotoGP},
		{"m2", rider.CategoryMoto2},
		{"m3", rider.CategoryMoto3},
	} {
		add(spec.prefix+"-1", spec.category, rider.TypeOfficial, 100)
		add(spec.prefix+"-2", spec.category, rider.TypeOfficial, 90)
		add(spec.prefix+"-3", spec.category, rider.TypeOfficial, 80)
		add(spec.prefix+"-4", spec.category, rider.TypeOfficial, 70)
	}
	add("mgp-wild", rider.CategoryMotoGP, rider.TypeWildcard, 60)

	return catalog
}

func fullPicks() []Pick {
	return []Pick{
		{RiderID: "mgp-1"}, {RiderID: "mgp-2"}, {RiderID: "mgp-3"},
		{RiderID: "m2-1"}, {RiderID: "m2-2"}, {RiderID: "m2-3"},
		{RiderID: "m3-1"}, {RiderID: "m3-2"}, {RiderID: "m3-3"},
	}
}

func TestRulesValidate_CompleteRoster(t *testing.T) {
	t.Parallel()

	rules := Rules{Budget: 1000, Catalog: testCatalog()}
	result := rules.Validate(fullPicks())

	if !result.OK() {
		t.Fatalf("expected valid roster, got violations: %v", result.Violations)
	}
	if !result.Complete {
		t.Fatal("expected roster to be complete")
	}
	if result.TotalValue != 810 {
		t.Fatalf("unexpected total value: got=%d want=810", result.TotalValue)
	}
}

func TestRulesValidate_PartialRosterIsValidButIncomplete(t *testing.T) {
	t.Parallel()

	rules := Rules{Budget: 1000, Catalog: testCatalog()}
	result := rules.Validate([]Pick{
		{RiderID: "mgp-1"},
		{RiderID: "m2-1"},
	})

	if !result.OK() {
		t.Fatalf("partial roster must be savable, got violations: %v", result.Violations)
	}
	if result.Complete {
		t.Fatal("two riders cannot be a complete roster")
	}
}

func TestRulesValidate_BudgetExceeded(t *testing.T) {
	t.Parallel()

	rules := Rules{Budget: 500, Catalog: testCatalog()}
	result := rules.Validate(fullPicks())

	if result.OK() {
		t.Fatal("expected budget violation")
	}
	if !hasKind(result.Violations, KindBudgetExceeded) {
		t.Fatalf("missing BUDGET_EXCEEDED, got: %v", result.Violations)
	}
	if result.TotalValue != 810 {
		t.Fatalf("rejected roster must still report resolved value, got=%d", result.TotalValue)
	}
}

func TestRulesValidate_CategoryQuotaOnPartialRoster(t *testing.T) {
	t.Parallel()

	rules := Rules{Budget: 0, Catalog: testCatalog()}

	// Short classes on a partial roster are fine, just incomplete.
	under := rules.Validate([]Pick{
		{RiderID: "mgp-1"}, {RiderID: "mgp-2"},
	})
	if hasKind(under.Violations, KindCategoryQuota) {
		t.Fatalf("partial roster must not violate quota: %v", under.Violations)
	}

	// Exceeding a class is a violation at any size.
	over := rules.Validate([]Pick{
		{RiderID: "mgp-1"}, {RiderID: "mgp-2"}, {RiderID: "mgp-3"}, {RiderID: "mgp-4"},
	})
	if !hasKind(over.Violations, KindCategoryQuota) {
		t.Fatalf("four premier-class riders must violate quota: %v", over.Violations)
	}
}

func TestRulesValidate_UnbalancedFullRosterFlagsEveryClass(t *testing.T) {
	t.Parallel()

	rules := Rules{Budget: 1000, Catalog: testCatalog()}

	// Nine picks split 4/3/2: the premier class is over quota and
	// MOTO3 is under, so both classes get exactly one violation each.
	result := rules.Validate([]Pick{
		{RiderID: "mgp-1"}, {RiderID: "mgp-2"}, {RiderID: "mgp-3"}, {RiderID: "mgp-4"},
		{RiderID: "m2-1"}, {RiderID: "m2-2"}, {RiderID: "m2-3"},
		{RiderID: "m3-1"}, {RiderID: "m3-2"},
	})

	var quota Violations
	for _, v := range result.Violations {
		if v.Kind == KindCategoryQuota {
			quota = append(quota, v)
		}
	}
	if len(quota) != 2 {
		t.Fatalf("want one quota violation per unbalanced class, got: %v", result.Violations)
	}
	if !strings.Contains(quota[0].Message, string(rider.CategoryMotoGP)) && !strings.Contains(quota[1].Message, string(rider.CategoryMotoGP)) {
		t.Fatalf("missing premier-class quota violation: %v", quota)
	}
	if !strings.Contains(quota[0].Message, string(rider.CategoryMoto3)) && !strings.Contains(quota[1].Message, string(rider.CategoryMoto3)) {
		t.Fatalf("missing MOTO3 quota violation: %v", quota)
	}
	if hasKind(result.Violations, KindBudgetExceeded) {
		t.Fatalf("budget is fine, must not report BUDGET_EXCEEDED: %v", result.Violations)
	}
	if result.Complete {
		t.Fatal("unbalanced roster cannot be complete")
	}
}

func TestRulesValidate_AccumulatesAllFailures(t *testing.T) {
	t.Parallel()

	rules := Rules{
		Budget:  100,
		Claimed: map[string]string{"m2-1": "team-rival"},
		Catalog: testCatalog(),
	}
	result := rules.Validate([]Pick{
		{RiderID: "mgp-1"},
		{RiderID: "mgp-1"},     // duplicate
		{RiderID: "mgp-wild"},  // wildcard
		{RiderID: "m2-1"},      // claimed
		{RiderID: "ghost-99"},  // unknown
	})

	for _, kind := range []Kind{KindDuplicateRider, KindRiderNotOfficial, KindRiderClaimed, KindUnknownRider, KindBudgetExceeded} {
		if !hasKind(result.Violations, kind) {
			t.Fatalf("missing %s in %v", kind, result.Violations)
		}
	}
}

func TestRulesValidate_ViolationsSorted(t *testing.T) {
	t.Parallel()

	rules := Rules{Budget: 1, Catalog: testCatalog()}
	result := rules.Validate([]Pick{
		{RiderID: "mgp-wild"},
		{RiderID: "ghost-2"},
		{RiderID: "ghost-1"},
	})

	for i := 1; i < len(result.Violations); i++ {
		prev, cur := result.Violations[i-1], result.Violations[i]
		if prev.Kind > cur.Kind || (prev.Kind == cur.Kind && prev.RiderID > cur.RiderID) {
			t.Fatalf("violations not sorted: %v", result.Violations)
		}
	}
}

func TestViolationsError(t *testing.T) {
	t.Parallel()

	vs := Violations{
		{Kind: KindUnknownRider, RiderID: "x-1", Message: "rider is not part of the season"},
	}
	if vs.Error() == "" {
		t.Fatal("violations must render an error string")
	}
}

func hasKind(vs Violations, kind Kind) bool {
	for _, v := range vs {
		if v.Kind == kind {
			return true
		}
	}
	return false
}
