package team

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrDuplicateName = errors.New("duplicate team name")
	ErrTeamNotFound  = errors.New("team not found")
)

// Record is the group/league tally of a team. It is always derived from played fixtures.
type Record struct {
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
}

func (r Record) Points() int {
	return r.Won*3 + r.Drawn
}

func (r Record) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// Add folds one played match into the record.
func (r Record) Add(scored, conceded int) Record {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		r.Won++
	case scored < conceded:
		r.Lost++
	default:
		r.Drawn++
	}
	return r
}

// Team is a participant of one tournament. Group is empty in league mode.
type Team struct {
	ID           string
	TournamentID string
	Name         string
	Group        string
	Record       Record
}

// NormalizeName is the stored form of a team name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func (t Team) Validate() error {
	if t.ID == "" {
		return errors.New("team id is required")
	}
	if t.TournamentID == "" {
		return errors.New("team tournament id is required")
	}
	if t.Name == "" {
		return errors.New("team name is required")
	}
	if t.Name != NormalizeName(t.Name) {
		return errors.Newf("team name %q is not normalized", t.Name)
	}

	return nil
}
