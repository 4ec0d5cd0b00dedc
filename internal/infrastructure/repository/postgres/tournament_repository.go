package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

// fixtureInsertBatch keeps multi-row inserts well below the postgres bind parameter limit.
const fixtureInsertBatch = 500

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament, teams []team.Team, fixtures []fixture.Fixture) error {
	row, err := newTournamentTableModel(t)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create tournament: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModels(tournamentsTable, []tournamentTableModel{row})
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert tournament: %w", err)
	}

	if len(teams) > 0 {
		rows := make([]teamTableModel, 0, len(teams))
		for _, item := range teams {
			rows = append(rows, newTeamTableModel(item))
		}
		query, args, err := qb.InsertModels(teamsTable, rows)
		if err != nil {
			return fmt.Errorf("build insert teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isDuplicateTeamName(err) {
				return fmt.Errorf("%w: %v", team.ErrDuplicateName, err)
			}
			return fmt.Errorf("insert teams: %w", err)
		}
	}

	for start := 0; start < len(fixtures); start += fixtureInsertBatch {
		end := min(start+fixtureInsertBatch, len(fixtures))
		rows := make([]fixtureTableModel, 0, end-start)
		for _, item := range fixtures[start:end] {
			rows = append(rows, newFixtureTableModel(item))
		}
		query, args, err := qb.InsertModels(fixturesTable, rows)
		if err != nil {
			return fmt.Errorf("build insert fixtures query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert fixtures: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create tournament: %w", err)
	}
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(qb.Columns(tournamentTableModel{})...).
		From(tournamentsTable).
		Where(qb.Eq(publicIDColumn, tournamentID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return out, true, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(qb.Columns(tournamentTableModel{})...).
		From(tournamentsTable).
		OrderBy("season_number DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Delete relies on ON DELETE CASCADE for teams and fixtures.
func (r *TournamentRepository) Delete(ctx context.Context, tournamentID string) (bool, error) {
	query, args, err := qb.DeleteFrom(tournamentsTable).
		Where(qb.Eq(publicIDColumn, tournamentID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete tournament query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete tournament: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete tournament rows affected: %w", err)
	}
	return affected > 0, nil
}
