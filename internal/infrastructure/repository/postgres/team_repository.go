package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	query, args, err := qb.Select(qb.Columns(teamTableModel{})...).
		From(teamsTable).
		Where(qb.Eq(tournamentFKColumn, tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by tournament query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by tournament: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(qb.Columns(teamTableModel{})...).
		From(teamsTable).
		Where(qb.Eq(publicIDColumn, teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) UpdateRecord(ctx context.Context, teamID string, record team.Record) error {
	query, args, err := qb.Update(teamsTable).
		Set("played", record.Played).
		Set("won", record.Won).
		Set("drawn", record.Drawn).
		Set("lost", record.Lost).
		Set("goals_for", record.GoalsFor).
		Set("goals_against", record.GoalsAgainst).
		SetRaw("updated_at", "NOW()").
		Where(qb.Eq(publicIDColumn, teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team record query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team record rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", team.ErrTeamNotFound, teamID)
	}
	return nil
}
