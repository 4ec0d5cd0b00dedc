package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
)

func seedTournament(t *testing.T, store *Store) {
	t.Helper()

	settings, err := tournament.NewSettings(1, 2, tournament.KnockoutFinal, 1)
	require.NoError(t, err)

	err = store.Tournaments().Create(context.Background(),
		tournament.Tournament{ID: "tr-1", SeasonNumber: 1, Settings: settings},
		[]team.Team{
			{ID: "tm-1", TournamentID: "tr-1", Name: "LIONS"},
			{ID: "tm-2", TournamentID: "tr-1", Name: "TIGERS"},
		},
		[]fixture.Fixture{
			{ID: "fx-2", TournamentID: "tr-1", Sequence: 2, Stage: fixture.StageFinal, Round: 1,
				Home: fixture.PlaceholderSlot("1st Place"), Away: fixture.PlaceholderSlot("2nd Place"), Status: fixture.StatusUnplayed},
			{ID: "fx-1", TournamentID: "tr-1", Sequence: 1, Stage: fixture.StageLeague, Round: 1,
				Home: fixture.TeamSlot("tm-1"), Away: fixture.TeamSlot("tm-2"), Status: fixture.StatusUnplayed},
		},
	)
	require.NoError(t, err)
}

func TestStore_CreateAndRead(t *testing.T) {
	t.Parallel()

	store := NewStore()
	seedTournament(t, store)
	ctx := context.Background()

	got, exists, err := store.Tournaments().GetByID(ctx, "tr-1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, 1, got.SeasonNumber)

	teams, err := store.Teams().ListByTournament(ctx, "tr-1")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "LIONS", teams[0].Name)

	fixtures, err := store.Fixtures().ListByTournament(ctx, "tr-1")
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, "fx-1", fixtures[0].ID)
	assert.Equal(t, "fx-2", fixtures[1].ID)
}

func TestStore_CreateRejectsDuplicateTeamNames(t *testing.T) {
	t.Parallel()

	store := NewStore()
	settings, err := tournament.NewSettings(1, 2, tournament.KnockoutNone, 1)
	require.NoError(t, err)

	err = store.Tournaments().Create(context.Background(),
		tournament.Tournament{ID: "tr-1", SeasonNumber: 1, Settings: settings},
		[]team.Team{
			{ID: "tm-1", TournamentID: "tr-1", Name: "LIONS"},
			{ID: "tm-2", TournamentID: "tr-1", Name: "LIONS"},
		},
		nil,
	)
	require.ErrorIs(t, err, team.ErrDuplicateName)

	_, exists, err := store.Tournaments().GetByID(context.Background(), "tr-1")
	require.NoError(t, err)
	assert.False(t, exists, "nothing may be stored after a rejected create")
}

func TestStore_ResultAndResolveSide(t *testing.T) {
	t.Parallel()

	store := NewStore()
	seedTournament(t, store)
	ctx := context.Background()

	require.NoError(t, store.Fixtures().RecordResult(ctx, "fx-1", fixture.Result{HomeGoals: 2, AwayGoals: 1}))
	require.NoError(t, store.Fixtures().RecordResult(ctx, "fx-1", fixture.Result{HomeGoals: 0, AwayGoals: 1}))

	played, exists, err := store.Fixtures().GetByID(ctx, "fx-1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, fixture.StatusPlayed, played.Status)
	assert.Equal(t, 0, *played.HomeGoals)

	*played.HomeGoals = 9
	again, _, _ := store.Fixtures().GetByID(ctx, "fx-1")
	assert.Equal(t, 0, *again.HomeGoals, "returned fixtures must not alias stored state")

	require.NoError(t, store.Fixtures().ResolveSide(ctx, "fx-2", fixture.SideAway, "tm-1"))
	final, _, _ := store.Fixtures().GetByID(ctx, "fx-2")
	assert.Equal(t, fixture.TeamSlot("tm-1"), final.Away)
	assert.Equal(t, "1st Place", final.Home.Placeholder)

	err = store.Fixtures().ResolveSide(ctx, "fx-2", fixture.SideAway, "tm-2")
	assert.ErrorIs(t, err, fixture.ErrSideAlreadyResolved)

	err = store.Fixtures().RecordResult(ctx, "missing", fixture.Result{})
	assert.True(t, errors.Is(err, fixture.ErrFixtureNotFound))
}

func TestStore_DeleteCascades(t *testing.T) {
	t.Parallel()

	store := NewStore()
	seedTournament(t, store)
	ctx := context.Background()

	deleted, err := store.Tournaments().Delete(ctx, "tr-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, exists, _ := store.Teams().GetByID(ctx, "tm-1")
	assert.False(t, exists)
	_, exists, _ = store.Fixtures().GetByID(ctx, "fx-1")
	assert.False(t, exists)

	list, err := store.Tournaments().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	deleted, err = store.Tournaments().Delete(ctx, "tr-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_UpdateRecord(t *testing.T) {
	t.Parallel()

	store := NewStore()
	seedTournament(t, store)
	ctx := context.Background()

	require.NoError(t, store.Teams().UpdateRecord(ctx, "tm-1", team.Record{Played: 1, Won: 1}))
	got, _, _ := store.Teams().GetByID(ctx, "tm-1")
	assert.Equal(t, 3, got.Record.Points())

	assert.ErrorIs(t, store.Teams().UpdateRecord(ctx, "nope", team.Record{}), team.ErrTeamNotFound)
}
