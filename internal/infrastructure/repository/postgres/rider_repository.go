package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	qb "github.com/paddockleague/fantasy-motogp/internal/platform/querybuilder"
)

var riderColumns = []string{"id", "name", "number", "team", "category", "rider_type", "value", "season", "created_at", "updated_at"}

type RiderRepository struct {
	db *sqlx.DB
}

func NewRiderRepository(db *sqlx.DB) *RiderRepository {
	return &RiderRepository{db: db}
}

func (r *RiderRepository) GetByID(ctx context.Context, id string) (*rider.Rider, error) {
	query, args, err := qb.Select(riderColumns...).
		From("riders").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get rider query: %w", err)
	}

	var row riderRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", rider.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get rider: %w", err)
	}
	entry := riderFromRow(row)
	return &entry, nil
}

func (r *RiderRepository) ListBySeason(ctx context.Context, season int) ([]rider.Rider, error) {
	query, args, err := qb.Select(riderColumns...).
		From("riders").
		Where(qb.Eq("season", season)).
		OrderBy("category", "number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list riders query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *RiderRepository) ListByCategory(ctx context.Context, season int, category rider.Category) ([]rider.Rider, error) {
	query, args, err := qb.Select(riderColumns...).
		From("riders").
		Where(qb.Eq("season", season), qb.Eq("category", string(category))).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list riders by category query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *RiderRepository) Upsert(ctx context.Context, entry *rider.Rider) error {
	query, args, err := qb.InsertInto("riders").
		Columns(riderColumns...).
		Values(entry.ID, entry.Name, entry.Number, entry.Team, string(entry.Category), string(entry.Type), entry.Value, entry.Season, entry.CreatedAt, entry.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
name = EXCLUDED.name,
number = EXCLUDED.number,
team = EXCLUDED.team,
category = EXCLUDED.category,
rider_type = EXCLUDED.rider_type,
value = EXCLUDED.value,
season = EXCLUDED.season,
updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert rider query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert rider: %w", err)
	}
	return nil
}

func (r *RiderRepository) list(ctx context.Context, query string, args []any) ([]rider.Rider, error) {
	var rows []riderRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	out := make([]rider.Rider, 0, len(rows))
	for _, row := range rows {
		out = append(out, riderFromRow(row))
	}
	return out, nil
}
