package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/paddockleague/fantasy-motogp/internal/domain/raceresult"
	qb "github.com/paddockleague/fantasy-motogp/internal/platform/querybuilder"
)

var raceResultColumns = []string{"id", "race_id", "session", "rider_id", "category", "position", "status", "created_at"}

type RaceResultRepository struct {
	db *sqlx.DB
}

func NewRaceResultRepository(db *sqlx.DB) *RaceResultRepository {
	return &RaceResultRepository{db: db}
}

// ReplaceByRaceSession deletes and reinserts the session classification
// in one transaction, so readers never see a half-applied correction.
func (r *RaceResultRepository) ReplaceByRaceSession(ctx context.Context, raceID string, session raceresult.Session, results []raceresult.Result) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace results: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("race_results").
		Where(qb.Eq("race_id", raceID), qb.Eq("session", string(session))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete results query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete results: %w", err)
	}

	if len(results) > 0 {
		insert := qb.InsertInto("race_results").Columns(raceResultColumns...)
		for _, row := range results {
			insert.Values(row.ID, row.RaceID, string(row.Session), row.RiderID, string(row.Category), row.Position, string(row.Status), row.CreatedAt)
		}
		insertQuery, insertArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert results: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace results: %w", err)
	}
	return nil
}

func (r *RaceResultRepository) ListByRaceSession(ctx context.Context, raceID string, session raceresult.Session) ([]raceresult.Result, error) {
	query, args, err := qb.Select(raceResultColumns...).
		From("race_results").
		Where(qb.Eq("race_id", raceID), qb.Eq("session", string(session))).
		OrderBy("category", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *RaceResultRepository) ListByRace(ctx context.Context, raceID string) ([]raceresult.Result, error) {
	query, args, err := qb.Select(raceResultColumns...).
		From("race_results").
		Where(qb.Eq("race_id", raceID)).
		OrderBy("session", "category", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list race results query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *RaceResultRepository) list(ctx context.Context, query string, args []any) ([]raceresult.Result, error) {
	var rows []raceResultRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list race results: %w", err)
	}
	out := make([]raceresult.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, raceResultFromRow(row))
	}
	return out, nil
}
