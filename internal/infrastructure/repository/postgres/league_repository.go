package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	qb "github.com/paddockleague/fantasy-motogp/internal/platform/querybuilder"
)

var leagueColumns = []string{"id", "name", "season", "budget", "max_teams", "teams_locked", "scoring_params", "created_at", "updated_at"}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, id string) (*league.League, error) {
	query, args, err := qb.Select(leagueColumns...).
		From("leagues").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", league.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get league: %w", err)
	}

	entry, err := leagueFromRow(row)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *LeagueRepository) ListBySeason(ctx context.Context, season int) ([]league.League, error) {
	query, args, err := qb.Select(leagueColumns...).
		From("leagues").
		Where(qb.Eq("season", season)).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		entry, err := leagueFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *LeagueRepository) Create(ctx context.Context, entry *league.League) error {
	params, err := encodeScoringParams(entry.Scoring)
	if err != nil {
		return fmt.Errorf("encode scoring params: %w", err)
	}

	query, args, err := qb.InsertInto("leagues").
		Columns(leagueColumns...).
		Values(entry.ID, entry.Name, entry.Season, entry.Budget, entry.MaxTeams, entry.TeamsLocked, params, entry.CreatedAt, entry.UpdatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create league: %w", err)
	}
	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, entry *league.League) error {
	params, err := encodeScoringParams(entry.Scoring)
	if err != nil {
		return fmt.Errorf("encode scoring params: %w", err)
	}

	query, args, err := qb.Update("leagues").
		Set("name", entry.Name).
		Set("season", entry.Season).
		Set("budget", entry.Budget).
		Set("max_teams", entry.MaxTeams).
		Set("teams_locked", entry.TeamsLocked).
		Set("scoring_params", params).
		Set("updated_at", entry.UpdatedAt).
		Where(qb.Eq("id", entry.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update league: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", league.ErrNotFound, entry.ID)
	}
	return nil
}
