package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/repository/memory"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

type stubProvider struct {
	races      []ProviderRace
	riders     []ProviderRider
	calendarErr error
	entryErr    error
}

func (p *stubProvider) FetchCalendar(_ context.Context, _ int) ([]ProviderRace, error) {
	return p.races, p.calendarErr
}

func (p *stubProvider) FetchEntryList(_ context.Context, _ int) ([]ProviderRider, error) {
	return p.riders, p.entryErr
}

func newCalendarSyncService(repos seededRepos, provider RaceDataProvider) *CalendarSyncService {
	return NewCalendarSyncService(
		provider,
		repos.races,
		repos.riders,
		&staticIDGenerator{prefix: "sync"},
		logging.NewNop(),
	)
}

func TestCalendarSyncService_SyncSeason(t *testing.T) {
	repos := newSeededRepos(t)
	sprint := time.Date(2027, 3, 6, 14, 0, 0, 0, time.UTC)
	provider := &stubProvider{
		races: []ProviderRace{
			{ExternalID: "race-losail-27", Round: 1, Name: "Qatar GP", Circuit: "Losail",
				Country: "QA", SprintDate: &sprint, GPDate: sprint.Add(23 * time.Hour)},
			{ExternalID: "race-termas-27", Round: 2, Name: "Argentina GP", Circuit: "Termas",
				Country: "AR", GPDate: time.Date(2027, 3, 21, 13, 0, 0, 0, time.UTC)},
		},
		riders: []ProviderRider{
			{ExternalID: "mgp-herras", Name: "Joan Herras", Number: 37, Team: "Aprilia",
				Category: "motogp", Type: "official", Value: 310},
			{ExternalID: "m3-rook", Name: "Dani Rook", Number: 81, Team: "Leopard",
				Category: "moto3", Type: "", Value: 45},
			{ExternalID: "x-kart", Name: "Kart Guy", Number: 9, Category: "KARTING", Value: 1},
		},
	}

	service := newCalendarSyncService(repos, provider)
	report, err := service.SyncSeason(t.Context(), 2027)
	if err != nil {
		t.Fatalf("sync season: %v", err)
	}
	if report.Season != 2027 || report.Races != 2 || report.Riders != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}

	calendar, err := repos.races.ListBySeason(t.Context(), 2027)
	if err != nil {
		t.Fatalf("list calendar: %v", err)
	}
	if len(calendar) != 2 {
		t.Fatalf("want 2 synced races, got %d", len(calendar))
	}
	if !calendar[0].HasSprint() || calendar[1].HasSprint() {
		t.Fatalf("sprint flags wrong: %+v", calendar)
	}

	synced, err := repos.riders.GetByID(t.Context(), "m3-rook")
	if err != nil {
		t.Fatalf("get synced rider: %v", err)
	}
	if synced.Type != rider.TypeOfficial {
		t.Fatalf("empty type must default to OFFICIAL, got %s", synced.Type)
	}
	if synced.Category != rider.CategoryMoto3 {
		t.Fatalf("category must be upcased, got %s", synced.Category)
	}

	// The karting entry is dropped, not stored.
	if _, err := repos.riders.GetByID(t.Context(), "x-kart"); err == nil {
		t.Fatal("unknown category entry must be skipped")
	}
}

func TestCalendarSyncService_ResyncUpdatesInPlace(t *testing.T) {
	repos := newSeededRepos(t)
	provider := &stubProvider{
		riders: []ProviderRider{
			{ExternalID: "mgp-herras", Name: "Joan Herras", Number: 37, Team: "Aprilia",
				Category: "MOTOGP", Type: "OFFICIAL", Value: 310},
		},
	}

	service := newCalendarSyncService(repos, provider)
	if _, err := service.SyncSeason(t.Context(), memory.SeedSeason); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	provider.riders[0].Value = 280
	if _, err := service.SyncSeason(t.Context(), memory.SeedSeason); err != nil {
		t.Fatalf("resync: %v", err)
	}

	updated, err := repos.riders.GetByID(t.Context(), "mgp-herras")
	if err != nil {
		t.Fatalf("get rider: %v", err)
	}
	if updated.Value != 280 {
		t.Fatalf("resync must update in place, got value %d", updated.Value)
	}
}

func TestCalendarSyncService_ProviderOutage(t *testing.T) {
	repos := newSeededRepos(t)
	provider := &stubProvider{calendarErr: errors.New("upstream 503")}

	service := newCalendarSyncService(repos, provider)
	if _, err := service.SyncSeason(t.Context(), 2027); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("want ErrDependencyUnavailable, got %v", err)
	}
}

func TestCalendarSyncService_NoProvider(t *testing.T) {
	repos := newSeededRepos(t)
	service := newCalendarSyncService(repos, nil)

	if _, err := service.SyncSeason(t.Context(), 2027); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("want ErrDependencyUnavailable, got %v", err)
	}
}
