package httpapi

import (
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

type tournamentDTO struct {
	ID           string              `json:"id"`
	SeasonNumber int                 `json:"season_number"`
	Settings     tournament.Settings `json:"settings"`
	ScheduleSeed uint64              `json:"schedule_seed"`
	CreatedAt    time.Time           `json:"created_at"`
}

type deleteTournamentDTO struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type sideDTO struct {
	TeamID      string `json:"team_id,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Name        string `json:"name,omitempty"`
}

type fixtureDTO struct {
	ID            string  `json:"id"`
	Number        int     `json:"number"`
	Stage         string  `json:"stage"`
	Round         int     `json:"round"`
	Home          sideDTO `json:"home"`
	Away          sideDTO `json:"away"`
	HomeGoals     *int    `json:"home_goals"`
	AwayGoals     *int    `json:"away_goals"`
	HomePenalties *int    `json:"home_penalties,omitempty"`
	AwayPenalties *int    `json:"away_penalties,omitempty"`
	Status        string  `json:"status"`
	State         string  `json:"state"`
}

type standingRowDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	Name           string `json:"name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type groupTableDTO struct {
	Label string           `json:"label"`
	Stage string           `json:"stage"`
	Rows  []standingRowDTO `json:"rows"`
}

type championDTO struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

type reportDTO struct {
	Tournament tournamentDTO   `json:"tournament"`
	Tables     []groupTableDTO `json:"tables"`
	Fixtures   []fixtureDTO    `json:"fixtures"`
	Champion   *championDTO    `json:"champion,omitempty"`
}

type recordResultDTO struct {
	Fixture     fixtureDTO `json:"fixture"`
	Transitions []string   `json:"transitions"`
}

type autogenerateDTO struct {
	Generated   int      `json:"generated"`
	Transitions []string `json:"transitions"`
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:           t.ID,
		SeasonNumber: t.SeasonNumber,
		Settings:     t.Settings,
		ScheduleSeed: t.ScheduleSeed,
		CreatedAt:    t.CreatedAt,
	}
}

func fixtureToDTO(f fixture.Fixture, homeName, awayName string) fixtureDTO {
	return fixtureDTO{
		ID:            f.ID,
		Number:        f.Sequence,
		Stage:         string(f.Stage),
		Round:         f.Round,
		Home:          sideDTO{TeamID: f.Home.TeamID, Placeholder: f.Home.Placeholder, Name: homeName},
		Away:          sideDTO{TeamID: f.Away.TeamID, Placeholder: f.Away.Placeholder, Name: awayName},
		HomeGoals:     f.HomeGoals,
		AwayGoals:     f.AwayGoals,
		HomePenalties: f.HomePenalties,
		AwayPenalties: f.AwayPenalties,
		Status:        string(f.Status),
		State:         f.State().String(),
	}
}

func standingRowToDTO(row standing.Row) standingRowDTO {
	rec := row.Team.Record
	return standingRowDTO{
		Position:       row.Position,
		TeamID:         row.Team.ID,
		Name:           row.Team.Name,
		Played:         rec.Played,
		Won:            rec.Won,
		Drawn:          rec.Drawn,
		Lost:           rec.Lost,
		GoalsFor:       rec.GoalsFor,
		GoalsAgainst:   rec.GoalsAgainst,
		GoalDifference: rec.GoalDifference(),
		Points:         rec.Points(),
	}
}

func reportToDTO(report usecase.Report) reportDTO {
	out := reportDTO{
		Tournament: tournamentToDTO(report.Tournament),
		Tables:     make([]groupTableDTO, 0, len(report.Tables)),
		Fixtures:   make([]fixtureDTO, 0, len(report.Fixtures)),
	}
	for _, table := range report.Tables {
		rows := make([]standingRowDTO, 0, len(table.Rows))
		for _, row := range table.Rows {
			rows = append(rows, standingRowToDTO(row))
		}
		out.Tables = append(out.Tables, groupTableDTO{Label: table.Label, Stage: string(table.Stage), Rows: rows})
	}
	for _, view := range report.Fixtures {
		out.Fixtures = append(out.Fixtures, fixtureToDTO(view.Fixture, view.HomeName, view.AwayName))
	}
	if report.ChampionTeamID != "" {
		out.Champion = &championDTO{TeamID: report.ChampionTeamID, Name: report.ChampionName}
	}
	return out
}

func transitionsToStrings(items []usecase.Transition) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, string(t))
	}
	return out
}
