package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation    = pq.ErrorCode("23505")
	teamNameConstraint = "teams_tournament_name_key"
	tournamentsTable   = "tournaments"
	teamsTable         = "teams"
	fixturesTable      = "fixtures"
	publicIDColumn     = "public_id"
	tournamentFKColumn = "tournament_public_id"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isDuplicateTeamName(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == teamNameConstraint
}

func stringToNull(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func intPtrToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}
