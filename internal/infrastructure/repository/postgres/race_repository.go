package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	qb "github.com/paddockleague/fantasy-motogp/internal/platform/querybuilder"
)

var raceColumns = []string{"id", "season", "round", "name", "circuit", "country", "sprint_date", "gp_date", "created_at", "updated_at"}

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) GetByID(ctx context.Context, id string) (*race.Race, error) {
	query, args, err := qb.Select(raceColumns...).
		From("races").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get race query: %w", err)
	}

	var row raceRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", race.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get race: %w", err)
	}
	entry := raceFromRow(row)
	return &entry, nil
}

func (r *RaceRepository) ListBySeason(ctx context.Context, season int) ([]race.Race, error) {
	query, args, err := qb.Select(raceColumns...).
		From("races").
		Where(qb.Eq("season", season)).
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list races query: %w", err)
	}

	var rows []raceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, raceFromRow(row))
	}
	return out, nil
}

func (r *RaceRepository) Upsert(ctx context.Context, entry *race.Race) error {
	var sprint any
	if entry.SprintDate != nil {
		sprint = *entry.SprintDate
	}

	query, args, err := qb.InsertInto("races").
		Columns(raceColumns...).
		Values(entry.ID, entry.Season, entry.Round, entry.Name, entry.Circuit, entry.Country, sprint, entry.GPDate, entry.CreatedAt, entry.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
season = EXCLUDED.season,
round = EXCLUDED.round,
name = EXCLUDED.name,
circuit = EXCLUDED.circuit,
country = EXCLUDED.country,
sprint_date = EXCLUDED.sprint_date,
gp_date = EXCLUDED.gp_date,
updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert race query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert race: %w", err)
	}
	return nil
}
