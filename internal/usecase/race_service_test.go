package usecase

import (
	"errors"
	"testing"

	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/repository/memory"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

func TestRaceService_ListCalendar(t *testing.T) {
	repos := newSeededRepos(t)
	service := NewRaceService(repos.races, logging.NewNop())

	calendar, err := service.ListCalendar(t.Context(), memory.SeedSeason)
	if err != nil {
		t.Fatalf("list calendar: %v", err)
	}
	if len(calendar) == 0 {
		t.Fatal("want seeded calendar")
	}
	for i := 1; i < len(calendar); i++ {
		if calendar[i].Round <= calendar[i-1].Round {
			t.Fatalf("calendar must be ordered by round: %v then %v",
				calendar[i-1].Round, calendar[i].Round)
		}
	}
}

func TestRaceService_GetRace(t *testing.T) {
	repos := newSeededRepos(t)
	service := NewRaceService(repos.races, logging.NewNop())

	event, err := service.GetRace(t.Context(), "race-losail")
	if err != nil {
		t.Fatalf("get race: %v", err)
	}
	if event.Round != 1 || !event.HasSprint() {
		t.Fatalf("unexpected race: %+v", event)
	}

	if _, err := service.GetRace(t.Context(), "race-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
