package fixture

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrFixtureNotFound      = errors.New("fixture not found")
	ErrSideUnresolved       = errors.New("fixture side is still a placeholder")
	ErrSideAlreadyResolved  = errors.New("fixture side is already resolved")
	ErrInvalidResult        = errors.New("invalid fixture result")
	ErrDrawWithoutPenalties = errors.New("knockout draw requires a penalty result")
	ErrNotPlayed            = errors.New("fixture is not played")
)

type Stage string

const (
	StageLeague       Stage = "League"
	StageQuarterFinal Stage = "Quarter-Final"
	StageSemiFinal    Stage = "Semi-Final"
	StageFinal        Stage = "Final"

	groupStagePrefix = "Group "
)

// GroupStage names the stage of a group; an empty label is the single league table.
func GroupStage(label string) Stage {
	if label == "" {
		return StageLeague
	}
	return Stage(groupStagePrefix + label)
}

func (s Stage) IsGroup() bool {
	return s == StageLeague || strings.HasPrefix(string(s), groupStagePrefix)
}

func (s Stage) IsKnockout() bool {
	switch s {
	case StageQuarterFinal, StageSemiFinal, StageFinal:
		return true
	default:
		return false
	}
}

// GroupLabel is "A" for "Group A" and empty for the league or knockout stages.
func (s Stage) GroupLabel() string {
	label, ok := strings.CutPrefix(string(s), groupStagePrefix)
	if !ok {
		return ""
	}
	return label
}

// Next returns the stage fed by winners of s.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageQuarterFinal:
		return StageSemiFinal, true
	case StageSemiFinal:
		return StageFinal, true
	default:
		return "", false
	}
}

// WinnerPlaceholder is the label a later round uses for the winner of stage round n.
func WinnerPlaceholder(stage Stage, round int) string {
	return fmt.Sprintf("Winner %s %d", stage, round)
}

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// Slot holds exactly one of a team id or a placeholder label.
type Slot struct {
	TeamID      string
	Placeholder string
}

func TeamSlot(teamID string) Slot { return Slot{TeamID: teamID} }

func PlaceholderSlot(label string) Slot { return Slot{Placeholder: label} }

func (s Slot) Resolved() bool {
	return s.TeamID != ""
}

type Status string

const (
	StatusUnplayed Status = "Unplayed"
	StatusPlayed   Status = "Played"
)

// State is the promotion view of a fixture.
type State int

const (
	StatePending State = iota
	StateReady
	StatePlayed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StatePlayed:
		return "played"
	default:
		return "pending"
	}
}

// Result is one entered score. Penalties are either both set or both nil.
type Result struct {
	HomeGoals     int
	AwayGoals     int
	HomePenalties *int
	AwayPenalties *int
}

func (r Result) HasPenalties() bool {
	return r.HomePenalties != nil && r.AwayPenalties != nil
}

// Validate checks the score for a group (knockout=false) or knockout fixture.
func (r Result) Validate(knockout bool) error {
	if r.HomeGoals < 0 || r.AwayGoals < 0 {
		return errors.Wrap(ErrInvalidResult, "goals must not be negative")
	}
	if (r.HomePenalties == nil) != (r.AwayPenalties == nil) {
		return errors.Wrap(ErrInvalidResult, "penalties must be given for both sides")
	}
	if !r.HasPenalties() {
		if knockout && r.HomeGoals == r.AwayGoals {
			return ErrDrawWithoutPenalties
		}
		return nil
	}

	if !knockout {
		return errors.Wrap(ErrInvalidResult, "penalties are only allowed in knockout fixtures")
	}
	if r.HomeGoals != r.AwayGoals {
		return errors.Wrap(ErrInvalidResult, "penalties are only allowed after a draw")
	}
	if *r.HomePenalties < 0 || *r.AwayPenalties < 0 {
		return errors.Wrap(ErrInvalidResult, "penalties must not be negative")
	}
	if *r.HomePenalties == *r.AwayPenalties {
		return errors.Wrap(ErrInvalidResult, "penalty shoot-out must have a winner")
	}
	return nil
}

// Fixture is one match of a tournament.
type Fixture struct {
	ID            string
	TournamentID  string
	Sequence      int
	Stage         Stage
	Round         int
	Home          Slot
	Away          Slot
	HomeGoals     *int
	AwayGoals     *int
	HomePenalties *int
	AwayPenalties *int
	Status        Status
}

func (f Fixture) Slot(side Side) Slot {
	if side == SideAway {
		return f.Away
	}
	return f.Home
}

func (f Fixture) State() State {
	switch {
	case f.Status == StatusPlayed:
		return StatePlayed
	case f.Home.Resolved() && f.Away.Resolved():
		return StateReady
	default:
		return StatePending
	}
}

// Result returns the entered score of a played fixture.
func (f Fixture) Result() (Result, bool) {
	if f.Status != StatusPlayed || f.HomeGoals == nil || f.AwayGoals == nil {
		return Result{}, false
	}
	return Result{
		HomeGoals:     *f.HomeGoals,
		AwayGoals:     *f.AwayGoals,
		HomePenalties: f.HomePenalties,
		AwayPenalties: f.AwayPenalties,
	}, true
}

// WithResult returns f marked as played with r applied.
func (f Fixture) WithResult(r Result) Fixture {
	home, away := r.HomeGoals, r.AwayGoals
	f.HomeGoals = &home
	f.AwayGoals = &away
	f.HomePenalties = copyInt(r.HomePenalties)
	f.AwayPenalties = copyInt(r.AwayPenalties)
	f.Status = StatusPlayed
	return f
}

// WinnerTeamID decides on regular goals, then on penalties.
func (f Fixture) WinnerTeamID() (string, error) {
	r, ok := f.Result()
	if !ok {
		return "", ErrNotPlayed
	}
	if !f.Home.Resolved() || !f.Away.Resolved() {
		return "", ErrSideUnresolved
	}

	switch {
	case r.HomeGoals > r.AwayGoals:
		return f.Home.TeamID, nil
	case r.AwayGoals > r.HomeGoals:
		return f.Away.TeamID, nil
	case r.HasPenalties() && *r.HomePenalties > *r.AwayPenalties:
		return f.Home.TeamID, nil
	case r.HasPenalties() && *r.AwayPenalties > *r.HomePenalties:
		return f.Away.TeamID, nil
	default:
		return "", ErrDrawWithoutPenalties
	}
}

func (f Fixture) Validate() error {
	if f.ID == "" || f.TournamentID == "" {
		return errors.New("fixture id and tournament id are required")
	}
	if f.Sequence <= 0 || f.Round <= 0 {
		return errors.Newf("fixture %s must have positive sequence and round", f.ID)
	}
	for _, slot := range []Slot{f.Home, f.Away} {
		if (slot.TeamID == "") == (slot.Placeholder == "") {
			return errors.Newf("fixture %s side must hold exactly one of team or placeholder", f.ID)
		}
	}
	if f.Stage.IsGroup() && (!f.Home.Resolved() || !f.Away.Resolved()) {
		return errors.Newf("group fixture %s must be created with both teams", f.ID)
	}
	if f.Stage.IsKnockout() && (f.Home.Resolved() || f.Away.Resolved()) {
		return errors.Newf("knockout fixture %s must be created with placeholders", f.ID)
	}
	if !f.Stage.IsGroup() && !f.Stage.IsKnockout() {
		return errors.Newf("fixture %s has unknown stage %q", f.ID, f.Stage)
	}
	return nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
