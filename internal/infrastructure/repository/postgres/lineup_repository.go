package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	qb "github.com/paddockleague/fantasy-motogp/internal/platform/querybuilder"
)

var lineupColumns = []string{"id", "team_id", "league_id", "race_id", "picks", "created_at", "updated_at"}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByTeamRace(ctx context.Context, teamID, raceID string) (*lineup.Lineup, error) {
	query, args, err := qb.Select(lineupColumns...).
		From("lineups").
		Where(qb.Eq("team_id", teamID), qb.Eq("race_id", raceID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: team %s race %s", lineup.ErrNotFound, teamID, raceID)
		}
		return nil, fmt.Errorf("get lineup: %w", err)
	}

	entry, err := lineupFromRow(row)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *LineupRepository) ListByRace(ctx context.Context, leagueID, raceID string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select(lineupColumns...).
		From("lineups").
		Where(qb.Eq("league_id", leagueID), qb.Eq("race_id", raceID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *LineupRepository) ListByTeam(ctx context.Context, teamID string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select(lineupColumns...).
		From("lineups").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("race_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team lineups query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *LineupRepository) Upsert(ctx context.Context, entry *lineup.Lineup) error {
	picks, err := encodeLineupPicks(entry.Picks)
	if err != nil {
		return fmt.Errorf("encode lineup picks: %w", err)
	}

	query, args, err := qb.InsertInto("lineups").
		Columns(lineupColumns...).
		Values(entry.ID, entry.TeamID, entry.LeagueID, entry.RaceID, picks, entry.CreatedAt, entry.UpdatedAt).
		Suffix(`ON CONFLICT (team_id, race_id) DO UPDATE SET
picks = EXCLUDED.picks,
updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert lineup query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}
	return nil
}

func (r *LineupRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	query, args, err := qb.DeleteFrom("lineups").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete lineups query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete lineups: %w", err)
	}
	return nil
}

func (r *LineupRepository) list(ctx context.Context, query string, args []any) ([]lineup.Lineup, error) {
	var rows []lineupRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}
	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		entry, err := lineupFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}
