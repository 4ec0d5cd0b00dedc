package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	// ListByTournament returns teams in creation order.
	ListByTournament(ctx context.Context, tournamentID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	UpdateRecord(ctx context.Context, teamID string, record Record) error
}
