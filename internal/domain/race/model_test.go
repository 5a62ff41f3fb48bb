package race

import (
	"testing"
	"time"
)

func TestDeadline(t *testing.T) {
	t.Parallel()

	gp := time.Date(2026, 3, 8, 13, 0, 0, 0, time.UTC)
	sprint := time.Date(2026, 3, 7, 14, 0, 0, 0, time.UTC)

	plain := Race{GPDate: gp}
	if got := plain.Deadline(); !got.Equal(gp) {
		t.Fatalf("without sprint the GP start locks the lineup, got %s", got)
	}
	if plain.HasSprint() {
		t.Fatal("race without sprint date must not report a sprint")
	}

	weekend := Race{SprintDate: &sprint, GPDate: gp}
	if got := weekend.Deadline(); !got.Equal(sprint) {
		t.Fatalf("sprint weekends lock at the sprint, got %s", got)
	}
	if !weekend.HasSprint() {
		t.Fatal("race with sprint date must report a sprint")
	}
}

func TestFinished(t *testing.T) {
	t.Parallel()

	gp := time.Date(2026, 3, 8, 13, 0, 0, 0, time.UTC)
	entry := Race{GPDate: gp}

	if entry.Finished(gp.Add(-time.Minute)) {
		t.Fatal("race has not started yet")
	}
	if !entry.Finished(gp) {
		t.Fatal("race start counts as finished for scheduling")
	}
}
