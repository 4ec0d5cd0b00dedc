package fixture

import "context"

// Repository exposes fixture reads and the two mutations the engine performs.
type Repository interface {
	// ListByTournament returns fixtures ordered by sequence.
	ListByTournament(ctx context.Context, tournamentID string) ([]Fixture, error)
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	// RecordResult overwrites any previous score and marks the fixture played.
	RecordResult(ctx context.Context, fixtureID string, result Result) error
	// ResolveSide replaces a placeholder with a team. It fails with ErrSideAlreadyResolved
	// when the side already holds a team.
	ResolveSide(ctx context.Context, fixtureID string, side Side, teamID string) error
}
