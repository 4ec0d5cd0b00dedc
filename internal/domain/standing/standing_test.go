package standing

import (
	"testing"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
)

func played(stage fixture.Stage, home, away string, hg, ag int) fixture.Fixture {
	f := fixture.Fixture{Stage: stage, Home: fixture.TeamSlot(home), Away: fixture.TeamSlot(away), Status: fixture.StatusUnplayed}
	return f.WithResult(fixture.Result{HomeGoals: hg, AwayGoals: ag})
}

func TestCompute_CountsOnlyPlayedGroupFixtures(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		played(fixture.GroupStage("A"), "x", "y", 3, 1),
		played(fixture.GroupStage("A"), "z", "x", 1, 1),
		played(fixture.GroupStage("A"), "x", "w", 0, 2),
		{Stage: fixture.GroupStage("A"), Home: fixture.TeamSlot("x"), Away: fixture.TeamSlot("v"), Status: fixture.StatusUnplayed},
		played(fixture.StageFinal, "x", "y", 5, 0),
	}

	rec := Compute("x", fixtures)
	if rec.Played != 3 || rec.Won != 1 || rec.Drawn != 1 || rec.Lost != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Points() != 4 || rec.GoalsFor != 4 || rec.GoalsAgainst != 4 || rec.GoalDifference() != 0 {
		t.Fatalf("unexpected totals: %+v", rec)
	}
}

func TestRankForDisplay_BreaksTiesByName(t *testing.T) {
	t.Parallel()

	same := team.Record{Played: 1, Won: 1, GoalsFor: 2, GoalsAgainst: 1}
	teams := []team.Team{
		{ID: "1", Name: "ZEBRAS", Record: same},
		{ID: "2", Name: "ANTS", Record: same},
		{ID: "3", Name: "BEARS", Record: team.Record{Played: 1, Won: 1, GoalsFor: 4, GoalsAgainst: 0}},
		{ID: "4", Name: "CATS", Record: team.Record{Played: 1, Lost: 1}},
	}

	rows := RankForDisplay(teams)
	want := []string{"BEARS", "ANTS", "ZEBRAS", "CATS"}
	for i, row := range rows {
		if row.Team.Name != want[i] || row.Position != i+1 {
			t.Fatalf("position %d: got %s (%d), want %s", i+1, row.Team.Name, row.Position, want[i])
		}
	}
}

func TestRankForPromotion_RecomputesAndKeepsCreationOrderOnTies(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "a", Name: "ZULU", Record: team.Record{Won: 9}},
		{ID: "b", Name: "ALPHA"},
		{ID: "c", Name: "MIKE"},
		{ID: "d", Name: "BRAVO"},
	}
	stage := fixture.GroupStage("A")
	fixtures := []fixture.Fixture{
		played(stage, "a", "c", 1, 1),
		played(stage, "b", "d", 1, 1),
		played(stage, "c", "b", 2, 0),
		played(stage, "a", "d", 2, 0),
	}

	rows := RankForPromotion(teams, fixtures)
	got := []string{rows[0].Team.ID, rows[1].Team.ID, rows[2].Team.ID, rows[3].Team.ID}
	want := []string{"a", "c", "b", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected promotion order: %v, want %v", got, want)
		}
	}
	if rows[0].Team.Record.Won != 1 {
		t.Fatalf("stored record must be ignored, got %+v", rows[0].Team.Record)
	}
}

func TestGroupTeams(t *testing.T) {
	t.Parallel()

	labels, byGroup := GroupTeams([]team.Team{
		{ID: "1", Group: "B"},
		{ID: "2", Group: "A"},
		{ID: "3", Group: "B"},
	})
	if len(labels) != 2 || labels[0] != "A" || labels[1] != "B" {
		t.Fatalf("unexpected labels: %v", labels)
	}
	if len(byGroup["B"]) != 2 || byGroup["B"][0].ID != "1" || byGroup["B"][1].ID != "3" {
		t.Fatalf("unexpected group B: %+v", byGroup["B"])
	}
}
