package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
)

// SeedSeason is the season the fixture data belongs to.
const SeedSeason = 2026

// SeedLeagueID is the league the fixtures create.
const SeedLeagueID = "league-grandstand"

// Seed loads a fictional season into the memory repositories so the
// service is usable out of the box: a full rider catalog, a six-round
// calendar, and one open league.
func Seed(ctx context.Context, leagues *LeagueRepository, riders *RiderRepository, races *RaceRepository) error {
	now := time.Date(SeedSeason, time.January, 15, 0, 0, 0, 0, time.UTC)

	defaultLeague := league.League{
		ID:        SeedLeagueID,
		Name:      "Grandstand Open",
		Season:    SeedSeason,
		Budget:    1500,
		MaxTeams:  20,
		Scoring:   league.DefaultScoringParams(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := leagues.Create(ctx, &defaultLeague); err != nil {
		return fmt.Errorf("seed league: %w", err)
	}

	for _, entry := range seedRiders(now) {
		entry := entry
		if err := riders.Upsert(ctx, &entry); err != nil {
			return fmt.Errorf("seed rider %s: %w", entry.ID, err)
		}
	}
	for _, entry := range seedRaces(now) {
		entry := entry
		if err := races.Upsert(ctx, &entry); err != nil {
			return fmt.Errorf("seed race %s: %w", entry.ID, err)
		}
	}
	return nil
}

type riderSpec struct {
	id     string
	name   string
	number int
	team   string
	kind   rider.Type
	value  int
}

func seedRiders(now time.Time) []rider.Rider {
	byCategory := map[rider.Category][]riderSpec{
		rider.CategoryMotoGP: {
			{"mgp-vautrin", "Luca Vautrin", 9, "Aquila Corse", rider.TypeOfficial, 320},
			{"mgp-herras", "Dani Herras", 27, "Aquila Corse", rider.TypeOfficial, 305},
			{"mgp-okabe", "Renji Okabe", 54, "Shimizu Factory Racing", rider.TypeOfficial, 290},
			{"mgp-falworth", "Tom Falworth", 11, "Shimizu Factory Racing", rider.TypeOfficial, 250},
			{"mgp-brandao", "Caio Brandao", 88, "Vertex GP", rider.TypeOfficial, 230},
			{"mgp-lindqvist", "Axel Lindqvist", 36, "Vertex GP", rider.TypeOfficial, 205},
			{"mgp-sarda", "Marc Sarda", 71, "Helion Racing", rider.TypeOfficial, 180},
			{"mgp-pyatt", "Josh Pyatt", 40, "Helion Racing", rider.TypeWildcard, 120},
		},
		rider.CategoryMoto2: {
			{"m2-costelo", "Iker Costelo", 7, "Meridian M2", rider.TypeOfficial, 160},
			{"m2-duboeuf", "Theo Duboeuf", 19, "Meridian M2", rider.TypeOfficial, 150},
			{"m2-hanabusa", "Sora Hanabusa", 31, "Kaito Junior Team", rider.TypeOfficial, 145},
			{"m2-merle", "Adrien Merle", 64, "Kaito Junior Team", rider.TypeOfficial, 130},
			{"m2-santoro", "Gianni Santoro", 21, "Scuderia Lampo", rider.TypeOfficial, 115},
			{"m2-byrne", "Cillian Byrne", 50, "Scuderia Lampo", rider.TypeOfficial, 100},
			{"m2-alvim", "Rafael Alvim", 83, "Torrada Racing", rider.TypeOfficial, 90},
			{"m2-karlsen", "Emil Karlsen", 14, "Torrada Racing", rider.TypeReplacement, 70},
		},
		rider.CategoryMoto3: {
			{"m3-paredes", "Nico Paredes", 4, "Colina Academy", rider.TypeOfficial, 95},
			{"m3-unwin", "Billy Unwin", 29, "Colina Academy", rider.TypeOfficial, 90},
			{"m3-takagi", "Haru Takagi", 77, "Hayate Moto3", rider.TypeOfficial, 85},
			{"m3-novelli", "Pietro Novelli", 16, "Hayate Moto3", rider.TypeOfficial, 75},
			{"m3-ferran", "Pau Ferran", 44, "Septimo Racing", rider.TypeOfficial, 70},
			{"m3-orsini", "Matteo Orsini", 58, "Septimo Racing", rider.TypeOfficial, 60},
			{"m3-leclair", "Hugo Leclair", 92, "Breizh GP", rider.TypeOfficial, 55},
			{"m3-soto", "Andres Soto", 25, "Breizh GP", rider.TypeWildcard, 40},
		},
	}

	var out []rider.Rider
	for category, specs := range byCategory {
		for _, spec := range specs {
			out = append(out, rider.Rider{
				ID:        spec.id,
				Name:      spec.name,
				Number:    spec.number,
				Team:      spec.team,
				Category:  category,
				Type:      spec.kind,
				Value:     spec.value,
				Season:    SeedSeason,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}
	return out
}

func seedRaces(now time.Time) []race.Race {
	gp := func(month time.Month, day int) time.Time {
		return time.Date(SeedSeason, month, day, 13, 0, 0, 0, time.UTC)
	}
	sprint := func(month time.Month, day int) *time.Time {
		t := time.Date(SeedSeason, month, day, 14, 0, 0, 0, time.UTC)
		return &t
	}

	return []race.Race{
		{ID: "race-losail", Season: SeedSeason, Round: 1, Name: "Doha Grand Prix", Circuit: "Losail", Country: "Qatar", SprintDate: sprint(time.March, 7), GPDate: gp(time.March, 8), CreatedAt: now, UpdatedAt: now},
		{ID: "race-termas", Season: SeedSeason, Round: 2, Name: "Argentina Grand Prix", Circuit: "Termas de Rio Hondo", Country: "Argentina", GPDate: gp(time.March, 22), CreatedAt: now, UpdatedAt: now},
		{ID: "race-jerez", Season: SeedSeason, Round: 3, Name: "Spanish Grand Prix", Circuit: "Jerez", Country: "Spain", SprintDate: sprint(time.April, 25), GPDate: gp(time.April, 26), CreatedAt: now, UpdatedAt: now},
		{ID: "race-mugello", Season: SeedSeason, Round: 4, Name: "Italian Grand Prix", Circuit: "Mugello", Country: "Italy", SprintDate: sprint(time.May, 30), GPDate: gp(time.May, 31), CreatedAt: now, UpdatedAt: now},
		{ID: "race-assen", Season: SeedSeason, Round: 5, Name: "Dutch TT", Circuit: "Assen", Country: "Netherlands", GPDate: gp(time.June, 28), CreatedAt: now, UpdatedAt: now},
		{ID: "race-phillipisland", Season: SeedSeason, Round: 6, Name: "Australian Grand Prix", Circuit: "Phillip Island", Country: "Australia", SprintDate: sprint(time.October, 17), GPDate: gp(time.October, 18), CreatedAt: now, UpdatedAt: now},
	}
}
