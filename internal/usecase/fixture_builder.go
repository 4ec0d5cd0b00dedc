package usecase

import (
	"fmt"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/platform/id"
)

// fixtureBuilder lays out every fixture of a new tournament: interleaved group or
// league rounds first, then the knockout bracket with placeholder sides.
type fixtureBuilder struct {
	ids id.Generator
}

func (b fixtureBuilder) build(t tournament.Tournament, teams []team.Team, custom []bracket.PlaceholderPair) ([]fixture.Fixture, error) {
	// Validate the bracket before scheduling so a bad custom pairing fails fast.
	matches, err := bracket.Build(t.Settings, custom)
	if err != nil {
		return nil, err
	}

	labels, byGroup := groupTeamIDs(teams)
	groups := make([]schedule.GroupSchedule, 0, len(labels))
	for i, label := range labels {
		ordered := schedule.Shuffle(byGroup[label], groupSeed(t.ScheduleSeed, i))
		s, err := schedule.RoundRobin(ordered, t.Settings.NumLegs)
		if err != nil {
			return nil, err
		}
		groups = append(groups, schedule.GroupSchedule{Label: label, Schedule: s})
	}

	slots := schedule.Interleave(groups)
	out := make([]fixture.Fixture, 0, len(slots)+len(matches))
	next := func(stage fixture.Stage, round int, home, away fixture.Slot) error {
		fixtureID, err := b.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate fixture id: %w", err)
		}
		out = append(out, fixture.Fixture{
			ID:           fixtureID,
			TournamentID: t.ID,
			Sequence:     len(out) + 1,
			Stage:        stage,
			Round:        round,
			Home:         home,
			Away:         away,
			Status:       fixture.StatusUnplayed,
		})
		return nil
	}

	for _, slot := range slots {
		stage := fixture.GroupStage(slot.Group)
		if err := next(stage, slot.MatchDay, fixture.TeamSlot(slot.Pairing.Home), fixture.TeamSlot(slot.Pairing.Away)); err != nil {
			return nil, err
		}
	}
	for _, m := range matches {
		if err := next(m.Stage, m.Round, fixture.PlaceholderSlot(m.Home), fixture.PlaceholderSlot(m.Away)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func groupTeamIDs(teams []team.Team) ([]string, map[string][]string) {
	var labels []string
	byGroup := make(map[string][]string)
	for _, t := range teams {
		if _, ok := byGroup[t.Group]; !ok {
			labels = append(labels, t.Group)
		}
		byGroup[t.Group] = append(byGroup[t.Group], t.ID)
	}
	return labels, byGroup
}

// groupSeed derives an independent shuffle seed per group from the tournament seed.
func groupSeed(seed uint64, groupIndex int) uint64 {
	return seed + uint64(groupIndex)*0x9e3779b97f4a7c15
}
