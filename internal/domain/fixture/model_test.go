package fixture

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestResult_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		result   Result
		knockout bool
		wantErr  error
	}{
		{name: "group draw", result: Result{HomeGoals: 1, AwayGoals: 1}},
		{name: "knockout win", result: Result{HomeGoals: 2, AwayGoals: 0}, knockout: true},
		{name: "knockout draw with shoot-out", result: Result{HomeGoals: 1, AwayGoals: 1, HomePenalties: intPtr(4), AwayPenalties: intPtr(3)}, knockout: true},
		{name: "knockout draw without shoot-out", result: Result{HomeGoals: 1, AwayGoals: 1}, knockout: true, wantErr: ErrDrawWithoutPenalties},
		{name: "negative goals", result: Result{HomeGoals: -1}, wantErr: ErrInvalidResult},
		{name: "one sided penalties", result: Result{HomeGoals: 0, AwayGoals: 0, HomePenalties: intPtr(3)}, knockout: true, wantErr: ErrInvalidResult},
		{name: "penalties after a win", result: Result{HomeGoals: 2, AwayGoals: 1, HomePenalties: intPtr(3), AwayPenalties: intPtr(2)}, knockout: true, wantErr: ErrInvalidResult},
		{name: "level shoot-out", result: Result{HomeGoals: 0, AwayGoals: 0, HomePenalties: intPtr(3), AwayPenalties: intPtr(3)}, knockout: true, wantErr: ErrInvalidResult},
		{name: "penalties in group", result: Result{HomeGoals: 0, AwayGoals: 0, HomePenalties: intPtr(3), AwayPenalties: intPtr(2)}, wantErr: ErrInvalidResult},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.result.Validate(tc.knockout)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFixture_WinnerTeamID(t *testing.T) {
	t.Parallel()

	base := Fixture{Stage: StageSemiFinal, Home: TeamSlot("h"), Away: TeamSlot("a")}

	if _, err := base.WinnerTeamID(); !errors.Is(err, ErrNotPlayed) {
		t.Fatalf("expected ErrNotPlayed, got %v", err)
	}

	won := base.WithResult(Result{HomeGoals: 0, AwayGoals: 2})
	if got, err := won.WinnerTeamID(); err != nil || got != "a" {
		t.Fatalf("expected away winner, got %q err=%v", got, err)
	}

	shootout := base.WithResult(Result{HomeGoals: 2, AwayGoals: 2, HomePenalties: intPtr(5), AwayPenalties: intPtr(4)})
	if got, err := shootout.WinnerTeamID(); err != nil || got != "h" {
		t.Fatalf("expected home shoot-out winner, got %q err=%v", got, err)
	}
}

func TestFixture_State(t *testing.T) {
	t.Parallel()

	f := Fixture{Stage: StageFinal, Home: PlaceholderSlot("Winner Semi-Final 1"), Away: PlaceholderSlot("Winner Semi-Final 2"), Status: StatusUnplayed}
	if f.State() != StatePending {
		t.Fatalf("expected pending, got %s", f.State())
	}
	f.Home = TeamSlot("x")
	f.Away = TeamSlot("y")
	if f.State() != StateReady {
		t.Fatalf("expected ready, got %s", f.State())
	}
	if f.WithResult(Result{HomeGoals: 1}).State() != StatePlayed {
		t.Fatalf("expected played")
	}
}

func TestStage(t *testing.T) {
	t.Parallel()

	if GroupStage("") != StageLeague || GroupStage("B") != Stage("Group B") {
		t.Fatalf("unexpected group stage names")
	}
	if Stage("Group C").GroupLabel() != "C" || StageLeague.GroupLabel() != "" || StageFinal.GroupLabel() != "" {
		t.Fatalf("unexpected group labels")
	}
	if !StageLeague.IsGroup() || StageFinal.IsGroup() || !StageQuarterFinal.IsKnockout() {
		t.Fatalf("unexpected stage kinds")
	}
	if next, ok := StageQuarterFinal.Next(); !ok || next != StageSemiFinal {
		t.Fatalf("unexpected next stage: %s", next)
	}
	if _, ok := StageFinal.Next(); ok {
		t.Fatalf("final must not have a next stage")
	}
	if got := WinnerPlaceholder(StageQuarterFinal, 3); got != "Winner Quarter-Final 3" {
		t.Fatalf("unexpected winner placeholder: %q", got)
	}
}
