package standing

import (
	"sort"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
)

// Row is one line of a group table.
type Row struct {
	Position int
	Team     team.Team
}

// Compute rebuilds the record of teamID from played group and league fixtures.
// Knockout fixtures never count.
func Compute(teamID string, fixtures []fixture.Fixture) team.Record {
	var rec team.Record
	for _, f := range fixtures {
		if !f.Stage.IsGroup() {
			continue
		}
		r, ok := f.Result()
		if !ok {
			continue
		}
		switch teamID {
		case f.Home.TeamID:
			rec = rec.Add(r.HomeGoals, r.AwayGoals)
		case f.Away.TeamID:
			rec = rec.Add(r.AwayGoals, r.HomeGoals)
		}
	}
	return rec
}

// GroupTeams splits teams by group label, keeping their input order.
func GroupTeams(teams []team.Team) (labels []string, byGroup map[string][]team.Team) {
	byGroup = make(map[string][]team.Team)
	for _, t := range teams {
		if _, ok := byGroup[t.Group]; !ok {
			labels = append(labels, t.Group)
		}
		byGroup[t.Group] = append(byGroup[t.Group], t)
	}
	sort.Strings(labels)
	return labels, byGroup
}

// RankForDisplay orders by points, goal difference and goals for, then name.
// It uses the stored records.
func RankForDisplay(teams []team.Team) []Row {
	rows := toRows(teams)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Team, rows[j].Team
		if c := compareRecords(a.Record, b.Record); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})
	return numbered(rows)
}

// RankForPromotion recomputes every record from fixtures and orders without a name
// tie-break; fully tied teams keep their input (creation) order.
func RankForPromotion(teams []team.Team, fixtures []fixture.Fixture) []Row {
	rows := toRows(teams)
	for i := range rows {
		rows[i].Team.Record = Compute(rows[i].Team.ID, fixtures)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return compareRecords(rows[i].Team.Record, rows[j].Team.Record) > 0
	})
	return numbered(rows)
}

// compareRecords returns >0 when a ranks above b on points, goal difference,
// goals for and fewer goals against.
func compareRecords(a, b team.Record) int {
	keys := [][2]int{
		{a.Points(), b.Points()},
		{a.GoalDifference(), b.GoalDifference()},
		{a.GoalsFor, b.GoalsFor},
		{b.GoalsAgainst, a.GoalsAgainst},
	}
	for _, k := range keys {
		if k[0] != k[1] {
			return k[0] - k[1]
		}
	}
	return 0
}

func toRows(teams []team.Team) []Row {
	rows := make([]Row, len(teams))
	for i, t := range teams {
		rows[i] = Row{Team: t}
	}
	return rows
}

func numbered(rows []Row) []Row {
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}
