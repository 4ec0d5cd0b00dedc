package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	fixturemock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/fixture"
	teammock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/team"
	tournamentmock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/platform/id"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

func leagueInput() CreateTournamentInput {
	return CreateTournamentInput{
		SeasonNumber:     3,
		NumGroups:        1,
		NumTeamsPerGroup: 2,
		KnockoutMode:     "none",
		NumLegs:          1,
		Groups:           [][]string{{"north", "south"}},
		Seed:             seedPtr(11),
	}
}

func TestTournamentService_Create_StoredDuplicateIsInvalidInputUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	repo.
		On("Create", ctx, mock.AnythingOfType("tournament.Tournament"), mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: teams_tournament_name_key", team.ErrDuplicateName)).
		Once()

	service := NewTournamentService(repo, id.NewSequenceGenerator("t"), logging.NewNop())
	_, err := service.Create(ctx, leagueInput())
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, team.ErrDuplicateName) {
		t.Fatalf("expected invalid input wrapping duplicate name, got %v", err)
	}
}

func TestTournamentService_Create_PassesEveryFixtureToRepositoryUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	repo.
		On("Create", ctx,
			mock.MatchedBy(func(v tournament.Tournament) bool { return v.SeasonNumber == 3 && v.Settings.IsLeagueMode }),
			mock.MatchedBy(func(v []team.Team) bool { return len(v) == 2 }),
			mock.MatchedBy(func(v []fixture.Fixture) bool { return len(v) == 1 && v[0].Stage == fixture.StageLeague }),
		).
		Return(nil).
		Once()

	service := NewTournamentService(repo, id.NewSequenceGenerator("t"), logging.NewNop())
	created, err := service.Create(ctx, leagueInput())
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if created.ScheduleSeed != 11 {
		t.Fatalf("unexpected schedule seed: %d", created.ScheduleSeed)
	}
}

func TestTournamentService_Create_RepositoryFailureIsNotInvalidInputUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("connection reset")
	repo := tournamentmock.NewRepository(t)
	repo.On("Create", ctx, mock.Anything, mock.Anything, mock.Anything).Return(boom).Once()

	service := NewTournamentService(repo, id.NewSequenceGenerator("t"), logging.NewNop())
	_, err := service.Create(ctx, leagueInput())
	if !errors.Is(err, boom) || errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestTournamentService_Delete_MissingUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	repo.On("Delete", ctx, "missing").Return(false, nil).Once()

	service := NewTournamentService(repo, nil, logging.NewNop())
	if err := service.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResultService_RecordResult_PendingFixtureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)

	pending := fixture.Fixture{
		ID:           "final",
		TournamentID: "cup",
		Sequence:     3,
		Stage:        fixture.StageFinal,
		Round:        1,
		Home:         fixture.PlaceholderSlot("A1"),
		Away:         fixture.PlaceholderSlot("B1"),
		Status:       fixture.StatusUnplayed,
	}
	fixtureRepo.On("GetByID", mock.Anything, "final").Return(pending, true, nil).Once()

	promotion := NewPromotionService(tournamentRepo, teamRepo, fixtureRepo, logging.NewNop())
	service := NewResultService(tournamentRepo, teamRepo, fixtureRepo, promotion, ResultServiceConfig{}, logging.NewNop())

	_, err := service.RecordResult(ctx, RecordResultInput{FixtureID: "final", HomeGoals: 1})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, fixture.ErrSideUnresolved) {
		t.Fatalf("expected conflict on unresolved fixture, got %v", err)
	}
}

func TestReportService_Build_MissingTournamentUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	tournamentRepo.On("GetByID", mock.Anything, "missing").Return(tournament.Tournament{}, false, nil).Once()

	service := NewReportService(tournamentRepo, teammock.NewRepository(t), fixturemock.NewRepository(t))
	if _, err := service.Build(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
