package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/raceresult"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
)

type riderRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Number    int       `db:"number"`
	Team      string    `db:"team"`
	Category  string    `db:"category"`
	Type      string    `db:"rider_type"`
	Value     int       `db:"value"`
	Season    int       `db:"season"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func riderFromRow(row riderRow) rider.Rider {
	return rider.Rider{
		ID:        row.ID,
		Name:      row.Name,
		Number:    row.Number,
		Team:      row.Team,
		Category:  rider.Category(row.Category),
		Type:      rider.Type(row.Type),
		Value:     row.Value,
		Season:    row.Season,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type leagueRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Season      int       `db:"season"`
	Budget      int       `db:"budget"`
	MaxTeams    int       `db:"max_teams"`
	TeamsLocked bool      `db:"teams_locked"`
	Scoring     []byte    `db:"scoring_params"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// scoringParamsDoc is the JSONB shape of league scoring settings.
type scoringParamsDoc struct {
	CaptainMultiplier      int            `json:"captainMultiplier"`
	MaxPenaltyByCategory   map[string]int `json:"maxPenaltyByCategory"`
	MaxFieldSizeByCategory map[string]int `json:"maxFieldSizeByCategory"`
	MissedRacePolicy       string         `json:"missedRacePolicy"`
	SprintScoringEnabled   bool           `json:"sprintScoringEnabled"`
}

func leagueFromRow(row leagueRow) (league.League, error) {
	var doc scoringParamsDoc
	if len(row.Scoring) > 0 {
		if err := sonic.Unmarshal(row.Scoring, &doc); err != nil {
			return league.League{}, fmt.Errorf("decode scoring params: %w", err)
		}
	}

	params := league.DefaultScoringParams()
	if doc.CaptainMultiplier > 0 {
		params.CaptainMultiplier = doc.CaptainMultiplier
	}
	if len(doc.MaxPenaltyByCategory) > 0 {
		params.MaxPenaltyByCategory = categoryMapFromDoc(doc.MaxPenaltyByCategory)
	}
	if len(doc.MaxFieldSizeByCategory) > 0 {
		params.MaxFieldSizeByCategory = categoryMapFromDoc(doc.MaxFieldSizeByCategory)
	}
	if policy := league.MissedRacePolicy(doc.MissedRacePolicy); policy.Valid() {
		params.MissedRacePolicy = policy
	}
	params.SprintScoringEnabled = doc.SprintScoringEnabled

	return league.League{
		ID:          row.ID,
		Name:        row.Name,
		Season:      row.Season,
		Budget:      row.Budget,
		MaxTeams:    row.MaxTeams,
		TeamsLocked: row.TeamsLocked,
		Scoring:     params,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func encodeScoringParams(params league.ScoringParams) ([]byte, error) {
	doc := scoringParamsDoc{
		CaptainMultiplier:      params.CaptainMultiplier,
		MaxPenaltyByCategory:   categoryMapToDoc(params.MaxPenaltyByCategory),
		MaxFieldSizeByCategory: categoryMapToDoc(params.MaxFieldSizeByCategory),
		MissedRacePolicy:       string(params.MissedRacePolicy),
		SprintScoringEnabled:   params.SprintScoringEnabled,
	}
	return sonic.Marshal(doc)
}

func categoryMapFromDoc(in map[string]int) map[rider.Category]int {
	out := make(map[rider.Category]int, len(in))
	for k, v := range in {
		out[rider.Category(k)] = v
	}
	return out
}

func categoryMapToDoc(in map[rider.Category]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

type teamRow struct {
	ID        string    `db:"id"`
	LeagueID  string    `db:"league_id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	Roster    []byte    `db:"roster"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type rosterPickDoc struct {
	RiderID  string `json:"riderId"`
	Category string `json:"category"`
	Value    int    `json:"value"`
}

func teamFromRow(row teamRow) (team.Team, error) {
	var docs []rosterPickDoc
	if len(row.Roster) > 0 {
		if err := sonic.Unmarshal(row.Roster, &docs); err != nil {
			return team.Team{}, fmt.Errorf("decode roster: %w", err)
		}
	}
	picks := make([]team.RosterPick, 0, len(docs))
	for _, doc := range docs {
		picks = append(picks, team.RosterPick{
			RiderID:  doc.RiderID,
			Category: rider.Category(doc.Category),
			Value:    doc.Value,
		})
	}
	return team.Team{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Roster:    picks,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func encodeRoster(picks []team.RosterPick) ([]byte, error) {
	docs := make([]rosterPickDoc, 0, len(picks))
	for _, pick := range picks {
		docs = append(docs, rosterPickDoc{
			RiderID:  pick.RiderID,
			Category: string(pick.Category),
			Value:    pick.Value,
		})
	}
	return sonic.Marshal(docs)
}

type raceRow struct {
	ID         string       `db:"id"`
	Season     int          `db:"season"`
	Round      int          `db:"round"`
	Name       string       `db:"name"`
	Circuit    string       `db:"circuit"`
	Country    string       `db:"country"`
	SprintDate sql.NullTime `db:"sprint_date"`
	GPDate     time.Time    `db:"gp_date"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

func raceFromRow(row raceRow) race.Race {
	out := race.Race{
		ID:        row.ID,
		Season:    row.Season,
		Round:     row.Round,
		Name:      row.Name,
		Circuit:   row.Circuit,
		Country:   row.Country,
		GPDate:    row.GPDate,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.SprintDate.Valid {
		sprint := row.SprintDate.Time
		out.SprintDate = &sprint
	}
	return out
}

type raceResultRow struct {
	ID        string    `db:"id"`
	RaceID    string    `db:"race_id"`
	Session   string    `db:"session"`
	RiderID   string    `db:"rider_id"`
	Category  string    `db:"category"`
	Position  int       `db:"position"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func raceResultFromRow(row raceResultRow) raceresult.Result {
	return raceresult.Result{
		ID:        row.ID,
		RaceID:    row.RaceID,
		Session:   raceresult.Session(row.Session),
		RiderID:   row.RiderID,
		Category:  rider.Category(row.Category),
		Position:  row.Position,
		Status:    raceresult.Status(row.Status),
		CreatedAt: row.CreatedAt,
	}
}

type lineupRow struct {
	ID        string    `db:"id"`
	TeamID    string    `db:"team_id"`
	LeagueID  string    `db:"league_id"`
	RaceID    string    `db:"race_id"`
	Picks     []byte    `db:"picks"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type lineupPickDoc struct {
	RiderID           string `json:"riderId"`
	Category          string `json:"category"`
	PredictedPosition int    `json:"predictedPosition"`
	Captain           bool   `json:"captain"`
}

func lineupFromRow(row lineupRow) (lineup.Lineup, error) {
	var docs []lineupPickDoc
	if len(row.Picks) > 0 {
		if err := sonic.Unmarshal(row.Picks, &docs); err != nil {
			return lineup.Lineup{}, fmt.Errorf("decode lineup picks: %w", err)
		}
	}
	picks := make([]lineup.Pick, 0, len(docs))
	for _, doc := range docs {
		picks = append(picks, lineup.Pick{
			RiderID:           doc.RiderID,
			Category:          rider.Category(doc.Category),
			PredictedPosition: doc.PredictedPosition,
			Captain:           doc.Captain,
		})
	}
	return lineup.Lineup{
		ID:        row.ID,
		TeamID:    row.TeamID,
		LeagueID:  row.LeagueID,
		RaceID:    row.RaceID,
		Picks:     picks,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func encodeLineupPicks(picks []lineup.Pick) ([]byte, error) {
	docs := make([]lineupPickDoc, 0, len(picks))
	for _, pick := range picks {
		docs = append(docs, lineupPickDoc{
			RiderID:           pick.RiderID,
			Category:          string(pick.Category),
			PredictedPosition: pick.PredictedPosition,
			Captain:           pick.Captain,
		})
	}
	return sonic.Marshal(docs)
}

type teamScoreRow struct {
	ID         string    `db:"id"`
	TeamID     string    `db:"team_id"`
	LeagueID   string    `db:"league_id"`
	RaceID     string    `db:"race_id"`
	Points     int       `db:"points"`
	Source     string    `db:"source"`
	Breakdown  []byte    `db:"breakdown"`
	ComputedAt time.Time `db:"computed_at"`
}

type riderScoreDoc struct {
	RiderID           string `json:"riderId"`
	Category          string `json:"category"`
	Session           string `json:"session"`
	PredictedPosition int    `json:"predictedPosition"`
	ActualPosition    int    `json:"actualPosition"`
	Status            string `json:"status"`
	Captain           bool   `json:"captain"`
	Points            int    `json:"points"`
}

func teamScoreFromRow(row teamScoreRow) (scoring.TeamScore, error) {
	var docs []riderScoreDoc
	if len(row.Breakdown) > 0 {
		if err := sonic.Unmarshal(row.Breakdown, &docs); err != nil {
			return scoring.TeamScore{}, fmt.Errorf("decode score breakdown: %w", err)
		}
	}
	breakdown := make([]scoring.RiderScore, 0, len(docs))
	for _, doc := range docs {
		breakdown = append(breakdown, scoring.RiderScore{
			RiderID:           doc.RiderID,
			Category:          rider.Category(doc.Category),
			Session:           raceresult.Session(doc.Session),
			PredictedPosition: doc.PredictedPosition,
			ActualPosition:    doc.ActualPosition,
			Status:            raceresult.Status(doc.Status),
			Captain:           doc.Captain,
			Points:            doc.Points,
		})
	}
	return scoring.TeamScore{
		ID:         row.ID,
		TeamID:     row.TeamID,
		LeagueID:   row.LeagueID,
		RaceID:     row.RaceID,
		Points:     row.Points,
		Source:     scoring.Source(row.Source),
		Breakdown:  breakdown,
		ComputedAt: row.ComputedAt,
	}, nil
}

func encodeBreakdown(breakdown []scoring.RiderScore) ([]byte, error) {
	docs := make([]riderScoreDoc, 0, len(breakdown))
	for _, entry := range breakdown {
		docs = append(docs, riderScoreDoc{
			RiderID:           entry.RiderID,
			Category:          string(entry.Category),
			Session:           string(entry.Session),
			PredictedPosition: entry.PredictedPosition,
			ActualPosition:    entry.ActualPosition,
			Status:            string(entry.Status),
			Captain:           entry.Captain,
			Points:            entry.Points,
		})
	}
	return sonic.Marshal(docs)
}
