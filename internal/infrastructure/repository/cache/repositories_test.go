package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
)

type countingTournamentRepo struct {
	items    map[string]tournament.Tournament
	getCalls int
	listCall int
	failGet  error
}

func (r *countingTournamentRepo) Create(_ context.Context, t tournament.Tournament, _ []team.Team, _ []fixture.Fixture) error {
	r.items[t.ID] = t
	return nil
}

func (r *countingTournamentRepo) GetByID(_ context.Context, id string) (tournament.Tournament, bool, error) {
	r.getCalls++
	if r.failGet != nil {
		return tournament.Tournament{}, false, r.failGet
	}
	t, ok := r.items[id]
	return t, ok, nil
}

func (r *countingTournamentRepo) List(context.Context) ([]tournament.Tournament, error) {
	r.listCall++
	out := make([]tournament.Tournament, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	return out, nil
}

func (r *countingTournamentRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.items[id]
	delete(r.items, id)
	return ok, nil
}

func TestTournamentRepositoryCachesReads(t *testing.T) {
	ctx := context.Background()
	next := &countingTournamentRepo{items: map[string]tournament.Tournament{}}
	repo := NewTournamentRepository(next, 0)

	if _, exists, err := repo.GetByID(ctx, "t1"); err != nil || exists {
		t.Fatalf("expected missing tournament, exists=%v err=%v", exists, err)
	}
	if err := repo.Create(ctx, tournament.Tournament{ID: "t1", SeasonNumber: 1}, nil, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	for range 3 {
		got, exists, err := repo.GetByID(ctx, "t1")
		if err != nil || !exists || got.SeasonNumber != 1 {
			t.Fatalf("unexpected get result: %+v exists=%v err=%v", got, exists, err)
		}
	}
	if next.getCalls != 2 {
		t.Fatalf("expected create to invalidate the cached miss once, got %d loads", next.getCalls)
	}

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if next.listCall != 1 {
		t.Fatalf("expected one list load, got %d", next.listCall)
	}

	deleted, err := repo.Delete(ctx, "t1")
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	if _, exists, _ := repo.GetByID(ctx, "t1"); exists {
		t.Fatalf("expected deleted tournament to be gone")
	}
	items, _ := repo.List(ctx)
	if len(items) != 0 || next.listCall != 2 {
		t.Fatalf("expected list reload after delete, items=%d loads=%d", len(items), next.listCall)
	}
}

func TestTournamentRepositoryDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	next := &countingTournamentRepo{items: map[string]tournament.Tournament{"t1": {ID: "t1"}}, failGet: boom}
	repo := NewTournamentRepository(next, 0)

	if _, _, err := repo.GetByID(ctx, "t1"); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	next.failGet = nil
	if _, exists, err := repo.GetByID(ctx, "t1"); err != nil || !exists {
		t.Fatalf("expected retry to succeed, exists=%v err=%v", exists, err)
	}
}
