package httpapi

import (
	"time"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	"github.com/paddockleague/fantasy-motogp/internal/domain/standings"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
)

type leagueDTO struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Season               int    `json:"season"`
	Budget               int    `json:"budget"`
	MaxTeams             int    `json:"maxTeams"`
	TeamsLocked          bool   `json:"teamsLocked"`
	CaptainMultiplier    int    `json:"captainMultiplier"`
	MissedRacePolicy     string `json:"missedRacePolicy"`
	SprintScoringEnabled bool   `json:"sprintScoringEnabled"`
	CreatedAt            string `json:"createdAt"`
}

func leagueToDTO(entry league.League) leagueDTO {
	return leagueDTO{
		ID:                   entry.ID,
		Name:                 entry.Name,
		Season:               entry.Season,
		Budget:               entry.Budget,
		MaxTeams:             entry.MaxTeams,
		TeamsLocked:          entry.TeamsLocked,
		CaptainMultiplier:    entry.Scoring.CaptainMultiplier,
		MissedRacePolicy:     string(entry.Scoring.MissedRacePolicy),
		SprintScoringEnabled: entry.Scoring.SprintScoringEnabled,
		CreatedAt:            entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type riderDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Team     string `json:"team"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Value    int    `json:"value"`
	Season   int    `json:"season"`
}

func riderToDTO(entry rider.Rider) riderDTO {
	return riderDTO{
		ID:       entry.ID,
		Name:     entry.Name,
		Number:   entry.Number,
		Team:     entry.Team,
		Category: string(entry.Category),
		Type:     string(entry.Type),
		Value:    entry.Value,
		Season:   entry.Season,
	}
}

type raceDTO struct {
	ID         string  `json:"id"`
	Season     int     `json:"season"`
	Round      int     `json:"round"`
	Name       string  `json:"name"`
	Circuit    string  `json:"circuit"`
	Country    string  `json:"country"`
	SprintDate *string `json:"sprintDate,omitempty"`
	GPDate     string  `json:"gpDate"`
	Deadline   string  `json:"deadline"`
}

func raceToDTO(entry race.Race) raceDTO {
	out := raceDTO{
		ID:       entry.ID,
		Season:   entry.Season,
		Round:    entry.Round,
		Name:     entry.Name,
		Circuit:  entry.Circuit,
		Country:  entry.Country,
		GPDate:   entry.GPDate.UTC().Format(time.RFC3339),
		Deadline: entry.Deadline().UTC().Format(time.RFC3339),
	}
	if entry.SprintDate != nil {
		sprint := entry.SprintDate.UTC().Format(time.RFC3339)
		out.SprintDate = &sprint
	}
	return out
}

type rosterPickDTO struct {
	RiderID  string `json:"riderId"`
	Category string `json:"category"`
	Value    int    `json:"value"`
}

type teamDTO struct {
	ID          string          `json:"id"`
	LeagueID    string          `json:"leagueId"`
	OwnerID     string          `json:"ownerId"`
	Name        string          `json:"name"`
	Roster      []rosterPickDTO `json:"roster"`
	RosterValue int             `json:"rosterValue"`
	CreatedAt   string          `json:"createdAt"`
}

func teamToDTO(entry team.Team) teamDTO {
	roster := make([]rosterPickDTO, 0, len(entry.Roster))
	for _, pick := range entry.Roster {
		roster = append(roster, rosterPickDTO{
			RiderID:  pick.RiderID,
			Category: string(pick.Category),
			Value:    pick.Value,
		})
	}
	return teamDTO{
		ID:          entry.ID,
		LeagueID:    entry.LeagueID,
		OwnerID:     entry.OwnerID,
		Name:        entry.Name,
		Roster:      roster,
		RosterValue: entry.RosterValue(),
		CreatedAt:   entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type lineupPickDTO struct {
	RiderID           string `json:"riderId"`
	Category          string `json:"category"`
	PredictedPosition int    `json:"predictedPosition"`
	Captain           bool   `json:"captain"`
}

type lineupDTO struct {
	ID        string          `json:"id"`
	TeamID    string          `json:"teamId"`
	LeagueID  string          `json:"leagueId"`
	RaceID    string          `json:"raceId"`
	Picks     []lineupPickDTO `json:"picks"`
	UpdatedAt string          `json:"updatedAt"`
}

func lineupToDTO(entry lineup.Lineup) lineupDTO {
	picks := make([]lineupPickDTO, 0, len(entry.Picks))
	for _, pick := range entry.Picks {
		picks = append(picks, lineupPickDTO{
			RiderID:           pick.RiderID,
			Category:          string(pick.Category),
			PredictedPosition: pick.PredictedPosition,
			Captain:           pick.Captain,
		})
	}
	return lineupDTO{
		ID:        entry.ID,
		TeamID:    entry.TeamID,
		LeagueID:  entry.LeagueID,
		RaceID:    entry.RaceID,
		Picks:     picks,
		UpdatedAt: entry.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type effectiveLineupDTO struct {
	Lineup lineupDTO `json:"lineup"`
	Source string    `json:"source"`
}

type riderScoreDTO struct {
	RiderID           string `json:"riderId"`
	Category          string `json:"category"`
	Session           string `json:"session"`
	PredictedPosition int    `json:"predictedPosition"`
	ActualPosition    int    `json:"actualPosition"`
	Status            string `json:"status"`
	Captain           bool   `json:"captain"`
	Points            int    `json:"points"`
}

type teamScoreDTO struct {
	TeamID    string          `json:"teamId"`
	LeagueID  string          `json:"leagueId"`
	RaceID    string          `json:"raceId"`
	Points    int             `json:"points"`
	Source    string          `json:"source"`
	Breakdown []riderScoreDTO `json:"breakdown,omitempty"`
}

func teamScoreToDTO(entry scoring.TeamScore) teamScoreDTO {
	breakdown := make([]riderScoreDTO, 0, len(entry.Breakdown))
	for _, row := range entry.Breakdown {
		breakdown = append(breakdown, riderScoreDTO{
			RiderID:           row.RiderID,
			Category:          string(row.Category),
			Session:           string(row.Session),
			PredictedPosition: row.PredictedPosition,
			ActualPosition:    row.ActualPosition,
			Status:            string(row.Status),
			Captain:           row.Captain,
			Points:            row.Points,
		})
	}
	return teamScoreDTO{
		TeamID:    entry.TeamID,
		LeagueID:  entry.LeagueID,
		RaceID:    entry.RaceID,
		Points:    entry.Points,
		Source:    string(entry.Source),
		Breakdown: breakdown,
	}
}

type standingDTO struct {
	Rank            int    `json:"rank"`
	TeamID          string `json:"teamId"`
	TotalPoints     int    `json:"totalPoints"`
	LatestRacePoints *int  `json:"latestRacePoints,omitempty"`
	RacesScored     int    `json:"racesScored"`
	Trend           string `json:"trend"`
	GapToLeader     int    `json:"gapToLeader"`
	GapToPrevious   int    `json:"gapToPrevious"`
	GapToNext       int    `json:"gapToNext"`
}

func standingToDTO(entry standings.Standing) standingDTO {
	return standingDTO{
		Rank:            entry.Rank,
		TeamID:          entry.TeamID,
		TotalPoints:     entry.TotalPoints,
		LatestRacePoints: entry.LatestRacePoints,
		RacesScored:     entry.RacesScored,
		Trend:           string(entry.Trend),
		GapToLeader:     entry.GapToLeader,
		GapToPrevious:   entry.GapToPrevious,
		GapToNext:       entry.GapToNext,
	}
}
