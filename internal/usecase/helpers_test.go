package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-engine/internal/platform/id"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

type testEngine struct {
	store       *memory.Store
	tournaments *TournamentService
	promotion   *PromotionService
	results     *ResultService
	reports     *ReportService
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	store := memory.NewStore()
	logger := logging.NewNop()
	seed := uint64(7)

	promotion := NewPromotionService(store.Tournaments(), store.Teams(), store.Fixtures(), logger)
	return &testEngine{
		store:       store,
		tournaments: NewTournamentService(store.Tournaments(), id.NewSequenceGenerator("id"), logger),
		promotion:   promotion,
		results: NewResultService(store.Tournaments(), store.Teams(), store.Fixtures(), promotion,
			ResultServiceConfig{BatchWorkers: 4, MaxGoals: 5, Seed: &seed}, logger),
		reports: NewReportService(store.Tournaments(), store.Teams(), store.Fixtures()),
	}
}

func seedPtr(v uint64) *uint64 { return &v }

func intPtr(v int) *int { return &v }

func (e *testEngine) teamIDs(t *testing.T, tournamentID string) map[string]string {
	t.Helper()

	teams, err := e.store.Teams().ListByTournament(context.Background(), tournamentID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	out := make(map[string]string, len(teams))
	for _, tm := range teams {
		out[tm.Name] = tm.ID
	}
	return out
}

func (e *testEngine) fixtures(t *testing.T, tournamentID string) []fixture.Fixture {
	t.Helper()

	items, err := e.store.Fixtures().ListByTournament(context.Background(), tournamentID)
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	return items
}

func (e *testEngine) team(t *testing.T, teamID string) team.Team {
	t.Helper()

	tm, exists, err := e.store.Teams().GetByID(context.Background(), teamID)
	if err != nil || !exists {
		t.Fatalf("get team %s: exists=%v err=%v", teamID, exists, err)
	}
	return tm
}

func stageFixtures(items []fixture.Fixture, stage fixture.Stage) []fixture.Fixture {
	var out []fixture.Fixture
	for _, f := range items {
		if f.Stage == stage {
			out = append(out, f)
		}
	}
	return out
}

// twoGroupSemiFinal creates groups A and B of four teams each with a semi-final bracket.
func (e *testEngine) twoGroupSemiFinal(t *testing.T) tournament.Tournament {
	t.Helper()

	created, err := e.tournaments.Create(context.Background(), CreateTournamentInput{
		SeasonNumber:     1,
		NumGroups:        2,
		NumTeamsPerGroup: 4,
		KnockoutMode:     "semi-final",
		NumLegs:          1,
		Groups: [][]string{
			{"alpha", "bravo", "charlie", "delta"},
			{"echo", "foxtrot", "golf", "hotel"},
		},
		Seed: seedPtr(11),
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return created
}

// strength decides every group match of the two-group fixture set: the stronger side scores more.
var strength = map[string]int{
	"ALPHA": 4, "BRAVO": 3, "CHARLIE": 2, "DELTA": 1,
	"ECHO": 4, "FOXTROT": 3, "GOLF": 2, "HOTEL": 1,
}
