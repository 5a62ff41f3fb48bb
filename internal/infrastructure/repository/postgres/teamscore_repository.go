package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	qb "github.com/paddockleague/fantasy-motogp/internal/platform/querybuilder"
)

var teamScoreColumns = []string{"id", "team_id", "league_id", "race_id", "points", "source", "breakdown", "computed_at"}

type TeamScoreRepository struct {
	db *sqlx.DB
}

func NewTeamScoreRepository(db *sqlx.DB) *TeamScoreRepository {
	return &TeamScoreRepository{db: db}
}

func (r *TeamScoreRepository) ReplaceByLeagueRace(ctx context.Context, leagueID, raceID string, scores []scoring.TeamScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace scores: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("team_scores").
		Where(qb.Eq("league_id", leagueID), qb.Eq("race_id", raceID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}

	if len(scores) > 0 {
		insert := qb.InsertInto("team_scores").Columns(teamScoreColumns...)
		for _, score := range scores {
			breakdown, err := encodeBreakdown(score.Breakdown)
			if err != nil {
				return fmt.Errorf("encode score breakdown: %w", err)
			}
			insert.Values(score.ID, score.TeamID, score.LeagueID, score.RaceID, score.Points, string(score.Source), breakdown, score.ComputedAt)
		}
		insertQuery, insertArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert scores: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace scores: %w", err)
	}
	return nil
}

func (r *TeamScoreRepository) ListByLeague(ctx context.Context, leagueID string) ([]scoring.TeamScore, error) {
	query, args, err := qb.Select(teamScoreColumns...).
		From("team_scores").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("race_id", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league scores query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *TeamScoreRepository) ListByTeam(ctx context.Context, teamID string) ([]scoring.TeamScore, error) {
	query, args, err := qb.Select(teamScoreColumns...).
		From("team_scores").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("race_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team scores query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *TeamScoreRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	query, args, err := qb.DeleteFrom("team_scores").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete league scores query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete league scores: %w", err)
	}
	return nil
}

func (r *TeamScoreRepository) list(ctx context.Context, query string, args []any) ([]scoring.TeamScore, error) {
	var rows []teamScoreRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team scores: %w", err)
	}
	out := make([]scoring.TeamScore, 0, len(rows))
	for _, row := range rows {
		entry, err := teamScoreFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}
