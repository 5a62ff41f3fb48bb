package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
	qb "github.com/paddockleague/fantasy-motogp/internal/platform/querybuilder"
)

var teamColumns = []string{"id", "league_id", "owner_id", "name", "roster", "created_at", "updated_at"}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*team.Team, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get team query: %w", err)
	}

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", team.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get team: %w", err)
	}

	entry, err := teamFromRow(row)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		entry, err := teamFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, entry *team.Team) error {
	roster, err := encodeRoster(entry.Roster)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}

	query, args, err := qb.InsertInto("teams").
		Columns(teamColumns...).
		Values(entry.ID, entry.LeagueID, entry.OwnerID, entry.Name, roster, entry.CreatedAt, entry.UpdatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build create team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// ReplaceRoster locks every team row in the league for the duration of
// the transaction, so concurrent saves serialize and the claim check
// cannot race.
func (r *TeamRepository) ReplaceRoster(ctx context.Context, teamID string, picks []team.RosterPick) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace roster: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var leagueID string
	if err := tx.GetContext(ctx, &leagueID, "SELECT league_id FROM teams WHERE id = $1 FOR UPDATE", teamID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", team.ErrNotFound, teamID)
		}
		return fmt.Errorf("lock team: %w", err)
	}

	var rows []teamRow
	if err := tx.SelectContext(ctx, &rows, "SELECT id, league_id, owner_id, name, roster, created_at, updated_at FROM teams WHERE league_id = $1 FOR UPDATE", leagueID); err != nil {
		return fmt.Errorf("lock league teams: %w", err)
	}

	requested := make(map[string]bool, len(picks))
	for _, pick := range picks {
		requested[pick.RiderID] = true
	}
	for _, row := range rows {
		if row.ID == teamID {
			continue
		}
		other, err := teamFromRow(row)
		if err != nil {
			return err
		}
		for _, pick := range other.Roster {
			if requested[pick.RiderID] {
				return fmt.Errorf("%w: rider %s held by team %s", team.ErrRiderClaimed, pick.RiderID, other.ID)
			}
		}
	}

	roster, err := encodeRoster(picks)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE teams SET roster = $1, updated_at = $2 WHERE id = $3", roster, time.Now().UTC(), teamID); err != nil {
		return fmt.Errorf("update roster: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace roster: %w", err)
	}
	return nil
}

func (r *TeamRepository) ClearRostersByLeague(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("teams").
		Set("roster", []byte("[]")).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear rosters query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear rosters: %w", err)
	}
	return nil
}
