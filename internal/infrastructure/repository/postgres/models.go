package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
)

type tournamentTableModel struct {
	PublicID     string    `db:"public_id"`
	SeasonNumber int       `db:"season_number"`
	Settings     []byte    `db:"settings"`
	ScheduleSeed int64     `db:"schedule_seed"`
	CreatedAt    time.Time `db:"created_at"`
}

func newTournamentTableModel(t tournament.Tournament) (tournamentTableModel, error) {
	settings, err := sonic.Marshal(t.Settings)
	if err != nil {
		return tournamentTableModel{}, fmt.Errorf("encode settings: %w", err)
	}
	return tournamentTableModel{
		PublicID:     t.ID,
		SeasonNumber: t.SeasonNumber,
		Settings:     settings,
		ScheduleSeed: int64(t.ScheduleSeed),
		CreatedAt:    t.CreatedAt,
	}, nil
}

func (m tournamentTableModel) toDomain() (tournament.Tournament, error) {
	var settings tournament.Settings
	if err := sonic.Unmarshal(m.Settings, &settings); err != nil {
		return tournament.Tournament{}, fmt.Errorf("decode settings of tournament %s: %w", m.PublicID, err)
	}
	return tournament.Tournament{
		ID:           m.PublicID,
		SeasonNumber: m.SeasonNumber,
		Settings:     settings,
		ScheduleSeed: uint64(m.ScheduleSeed),
		CreatedAt:    m.CreatedAt,
	}, nil
}

type teamTableModel struct {
	PublicID     string `db:"public_id"`
	TournamentID string `db:"tournament_public_id"`
	Name         string `db:"name"`
	GroupLabel   string `db:"group_label"`
	Played       int    `db:"played"`
	Won          int    `db:"won"`
	Drawn        int    `db:"drawn"`
	Lost         int    `db:"lost"`
	GoalsFor     int    `db:"goals_for"`
	GoalsAgainst int    `db:"goals_against"`
}

func newTeamTableModel(t team.Team) teamTableModel {
	return teamTableModel{
		PublicID:     t.ID,
		TournamentID: t.TournamentID,
		Name:         t.Name,
		GroupLabel:   t.Group,
		Played:       t.Record.Played,
		Won:          t.Record.Won,
		Drawn:        t.Record.Drawn,
		Lost:         t.Record.Lost,
		GoalsFor:     t.Record.GoalsFor,
		GoalsAgainst: t.Record.GoalsAgainst,
	}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:           m.PublicID,
		TournamentID: m.TournamentID,
		Name:         m.Name,
		Group:        m.GroupLabel,
		Record: team.Record{
			Played:       m.Played,
			Won:          m.Won,
			Drawn:        m.Drawn,
			Lost:         m.Lost,
			GoalsFor:     m.GoalsFor,
			GoalsAgainst: m.GoalsAgainst,
		},
	}
}

type fixtureTableModel struct {
	PublicID        string         `db:"public_id"`
	TournamentID    string         `db:"tournament_public_id"`
	Sequence        int            `db:"sequence"`
	Stage           string         `db:"stage"`
	Round           int            `db:"round"`
	HomeTeamID      sql.NullString `db:"home_team_public_id"`
	AwayTeamID      sql.NullString `db:"away_team_public_id"`
	HomePlaceholder sql.NullString `db:"home_placeholder"`
	AwayPlaceholder sql.NullString `db:"away_placeholder"`
	HomeGoals       sql.NullInt64  `db:"home_goals"`
	AwayGoals       sql.NullInt64  `db:"away_goals"`
	HomePenalties   sql.NullInt64  `db:"home_penalties"`
	AwayPenalties   sql.NullInt64  `db:"away_penalties"`
	Status          string         `db:"status"`
}

func newFixtureTableModel(f fixture.Fixture) fixtureTableModel {
	return fixtureTableModel{
		PublicID:        f.ID,
		TournamentID:    f.TournamentID,
		Sequence:        f.Sequence,
		Stage:           string(f.Stage),
		Round:           f.Round,
		HomeTeamID:      stringToNull(f.Home.TeamID),
		AwayTeamID:      stringToNull(f.Away.TeamID),
		HomePlaceholder: stringToNull(f.Home.Placeholder),
		AwayPlaceholder: stringToNull(f.Away.Placeholder),
		HomeGoals:       intPtrToNull(f.HomeGoals),
		AwayGoals:       intPtrToNull(f.AwayGoals),
		HomePenalties:   intPtrToNull(f.HomePenalties),
		AwayPenalties:   intPtrToNull(f.AwayPenalties),
		Status:          string(f.Status),
	}
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:            m.PublicID,
		TournamentID:  m.TournamentID,
		Sequence:      m.Sequence,
		Stage:         fixture.Stage(m.Stage),
		Round:         m.Round,
		Home:          fixture.Slot{TeamID: m.HomeTeamID.String, Placeholder: m.HomePlaceholder.String},
		Away:          fixture.Slot{TeamID: m.AwayTeamID.String, Placeholder: m.AwayPlaceholder.String},
		HomeGoals:     nullToIntPtr(m.HomeGoals),
		AwayGoals:     nullToIntPtr(m.AwayGoals),
		HomePenalties: nullToIntPtr(m.HomePenalties),
		AwayPenalties: nullToIntPtr(m.AwayPenalties),
		Status:        fixture.Status(m.Status),
	}
}
