package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	basecache "github.com/riskibarqy/tournament-engine/internal/platform/cache"
)

const (
	tournamentListKey     = "tournament:list"
	tournamentByIDKeyBase = "tournament:id:"
)

// TournamentRepository caches tournament reads. Settings and seed never change after
// creation, so only Create and Delete invalidate. Teams and fixtures are not cached.
type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store[cachedTournaments]
}

type cachedTournaments struct {
	items  []tournament.Tournament
	exists bool
}

func NewTournamentRepository(next tournament.Repository, ttl time.Duration) *TournamentRepository {
	return &TournamentRepository{next: next, cache: basecache.NewStore[cachedTournaments](ttl)}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament, teams []team.Team, fixtures []fixture.Fixture) error {
	if err := r.next.Create(ctx, t, teams, fixtures); err != nil {
		return err
	}
	r.cache.Delete(ctx, tournamentListKey, tournamentByIDKeyBase+t.ID)
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, tournamentByIDKeyBase+tournamentID, func(ctx context.Context) (cachedTournaments, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return cachedTournaments{}, err
		}
		return cachedTournaments{items: []tournament.Tournament{item}, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	if !cached.exists || len(cached.items) == 0 {
		return tournament.Tournament{}, false, nil
	}
	return cached.items[0], true, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	cached, err := r.cache.GetOrLoad(ctx, tournamentListKey, func(ctx context.Context) (cachedTournaments, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return cachedTournaments{}, err
		}
		return cachedTournaments{items: append([]tournament.Tournament(nil), items...), exists: true}, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]tournament.Tournament(nil), cached.items...), nil
}

func (r *TournamentRepository) Delete(ctx context.Context, tournamentID string) (bool, error) {
	deleted, err := r.next.Delete(ctx, tournamentID)
	if err != nil {
		return false, err
	}
	r.cache.Delete(ctx, tournamentListKey, tournamentByIDKeyBase+tournamentID)
	return deleted, nil
}
