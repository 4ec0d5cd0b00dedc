package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByTournament(ctx context.Context, tournamentID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(qb.Columns(fixtureTableModel{})...).
		From(fixturesTable).
		Where(qb.Eq(tournamentFKColumn, tournamentID)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by tournament query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by tournament: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(qb.Columns(fixtureTableModel{})...).
		From(fixturesTable).
		Where(qb.Eq(publicIDColumn, fixtureID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *FixtureRepository) RecordResult(ctx context.Context, fixtureID string, result fixture.Result) error {
	query, args, err := qb.Update(fixturesTable).
		Set("home_goals", result.HomeGoals).
		Set("away_goals", result.AwayGoals).
		Set("home_penalties", intPtrToNull(result.HomePenalties)).
		Set("away_penalties", intPtrToNull(result.AwayPenalties)).
		Set("status", string(fixture.StatusPlayed)).
		SetRaw("updated_at", "NOW()").
		Where(qb.Eq(publicIDColumn, fixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build record result query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("record fixture result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record fixture result rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", fixture.ErrFixtureNotFound, fixtureID)
	}
	return nil
}

// ResolveSide only updates a side that still holds a placeholder, so a second resolution
// touches no row and is reported as ErrSideAlreadyResolved.
func (r *FixtureRepository) ResolveSide(ctx context.Context, fixtureID string, side fixture.Side, teamID string) error {
	if !side.Valid() {
		return fmt.Errorf("unknown fixture side %q", side)
	}
	teamColumn := string(side) + "_team_public_id"

	query, args, err := qb.Update(fixturesTable).
		Set(teamColumn, teamID).
		SetRaw(string(side)+"_placeholder", "NULL").
		SetRaw("updated_at", "NOW()").
		Where(qb.Eq(publicIDColumn, fixtureID), qb.IsNull(teamColumn)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build resolve side query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("resolve fixture side: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve fixture side rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, exists, err := r.GetByID(ctx, fixtureID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", fixture.ErrFixtureNotFound, fixtureID)
	}
	return fmt.Errorf("%w: fixture %s %s side", fixture.ErrSideAlreadyResolved, fixtureID, side)
}
