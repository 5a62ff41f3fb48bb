package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	idgen "github.com/paddockleague/fantasy-motogp/internal/platform/id"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
)

// ProviderRace is one calendar entry as the upstream feed shapes it.
type ProviderRace struct {
	ExternalID string
	Round      int
	Name       string
	Circuit    string
	Country    string
	SprintDate *time.Time
	GPDate     time.Time
}

// ProviderRider is one season entry from the upstream entry list.
type ProviderRider struct {
	ExternalID string
	Name       string
	Number     int
	Team       string
	Category   string
	Type       string
	Value      int
}

// RaceDataProvider is the upstream motorsport data feed.
type RaceDataProvider interface {
	FetchCalendar(ctx context.Context, season int) ([]ProviderRace, error)
	FetchEntryList(ctx context.Context, season int) ([]ProviderRider, error)
}

// SyncReport summarizes one provider sync.
type SyncReport struct {
	Season int
	Races  int
	Riders int
}

// CalendarSyncService pulls the season calendar and entry list from
// the provider and upserts them into local storage. Provider IDs are
// kept as-is so re-syncs update in place.
type CalendarSyncService struct {
	provider RaceDataProvider
	raceRepo race.Repository
	riderRepo rider.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewCalendarSyncService(
	provider RaceDataProvider,
	raceRepo race.Repository,
	riderRepo rider.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *CalendarSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CalendarSyncService{
		provider:  provider,
		raceRepo:  raceRepo,
		riderRepo: riderRepo,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

// SyncSeason fetches calendar and entry list concurrently, then
// upserts both. A provider outage surfaces as
// ErrDependencyUnavailable.
func (s *CalendarSyncService) SyncSeason(ctx context.Context, season int) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "CalendarSyncService.SyncSeason")
	defer span.End()

	if season <= 0 {
		return SyncReport{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return SyncReport{}, fmt.Errorf("%w: no race data provider configured", ErrDependencyUnavailable)
	}

	var (
		races  []ProviderRace
		riders []ProviderRider
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		fetched, err := s.provider.FetchCalendar(ctx, season)
		if err != nil {
			return fmt.Errorf("%w: fetch calendar: %w", ErrDependencyUnavailable, err)
		}
		races = fetched
		return nil
	})
	p.Go(func(ctx context.Context) error {
		fetched, err := s.provider.FetchEntryList(ctx, season)
		if err != nil {
			return fmt.Errorf("%w: fetch entry list: %w", ErrDependencyUnavailable, err)
		}
		riders = fetched
		return nil
	})
	if err := p.Wait(); err != nil {
		return SyncReport{}, err
	}

	now := s.now().UTC()
	for _, in := range races {
		id := strings.TrimSpace(in.ExternalID)
		if id == "" {
			generated, err := s.idGen.NewID()
			if err != nil {
				return SyncReport{}, fmt.Errorf("generate race id: %w", err)
			}
			id = generated
		}
		entry := race.Race{
			ID:         id,
			Season:     season,
			Round:      in.Round,
			Name:       strings.TrimSpace(in.Name),
			Circuit:    strings.TrimSpace(in.Circuit),
			Country:    strings.TrimSpace(in.Country),
			SprintDate: in.SprintDate,
			GPDate:     in.GPDate,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.raceRepo.Upsert(ctx, &entry); err != nil {
			return SyncReport{}, fmt.Errorf("upsert race %s: %w", entry.ID, err)
		}
	}

	for _, in := range riders {
		category := rider.Category(strings.ToUpper(strings.TrimSpace(in.Category)))
		if !category.Valid() {
			s.logger.WarnContext(ctx, "skipping entry with unknown category",
				"rider_id", in.ExternalID, "category", in.Category)
			continue
		}
		riderType := rider.Type(strings.ToUpper(strings.TrimSpace(in.Type)))
		if !riderType.Valid() {
			riderType = rider.TypeOfficial
		}
		id := strings.TrimSpace(in.ExternalID)
		if id == "" {
			generated, err := s.idGen.NewID()
			if err != nil {
				return SyncReport{}, fmt.Errorf("generate rider id: %w", err)
			}
			id = generated
		}
		entry := rider.Rider{
			ID:        id,
			Name:      strings.TrimSpace(in.Name),
			Number:    in.Number,
			Team:      strings.TrimSpace(in.Team),
			Category:  category,
			Type:      riderType,
			Value:     in.Value,
			Season:    season,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.riderRepo.Upsert(ctx, &entry); err != nil {
			return SyncReport{}, fmt.Errorf("upsert rider %s: %w", entry.ID, err)
		}
	}

	report := SyncReport{Season: season, Races: len(races), Riders: len(riders)}
	s.logger.InfoContext(ctx, "season synced",
		"season", season, "races", report.Races, "riders", report.Riders)
	return report, nil
}
