package tournament

import (
	"context"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
)

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	// Create stores the tournament with its teams and fixtures, all or nothing.
	Create(ctx context.Context, t Tournament, teams []team.Team, fixtures []fixture.Fixture) error
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	List(ctx context.Context) ([]Tournament, error)
	Delete(ctx context.Context, tournamentID string) (bool, error)
}
