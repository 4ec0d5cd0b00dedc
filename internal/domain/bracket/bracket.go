package bracket

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
)

var (
	ErrIncompleteBracket = errors.New("custom pairings do not cover the bracket")
	ErrUnsupportedShape  = errors.New("unsupported knockout shape")
)

// PlaceholderPair is one first-round knockout match expressed with rank placeholders.
type PlaceholderPair struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Match is a knockout fixture to be created with placeholder sides.
type Match struct {
	Stage fixture.Stage
	Round int
	Home  string
	Away  string
}

type shapeKey struct {
	mode   tournament.KnockoutMode
	groups int
}

// Indices into the placeholder list. Group sizes without an entry cannot be seeded.
var defaultPairings = map[shapeKey][][2]int{
	{tournament.KnockoutQuarterFinal, 1}: {{0, 7}, {3, 4}, {2, 5}, {1, 6}},
	{tournament.KnockoutQuarterFinal, 2}: {{0, 7}, {2, 5}, {4, 3}, {6, 1}},
	{tournament.KnockoutQuarterFinal, 4}: {{0, 3}, {4, 7}, {2, 1}, {6, 5}},
	{tournament.KnockoutSemiFinal, 1}:    {{0, 3}, {1, 2}},
	{tournament.KnockoutSemiFinal, 2}:    {{0, 3}, {2, 1}},
	{tournament.KnockoutSemiFinal, 4}:    {{0, 1}, {2, 3}},
	{tournament.KnockoutFinal, 1}:        {{0, 1}},
	{tournament.KnockoutFinal, 2}:        {{0, 1}},
}

// Ordinal renders 1 as "1st", 12 as "12th" and 22 as "22nd".
func Ordinal(n int) string {
	suffix := "th"
	if mod100 := n % 100; mod100 < 11 || mod100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// RankPlaceholder names the team finishing at rank in group: "A1" or "1st Place" in league mode.
func RankPlaceholder(isLeague bool, group string, rank int) string {
	if isLeague {
		return Ordinal(rank) + " Place"
	}
	return fmt.Sprintf("%s%d", group, rank)
}

// Placeholders lists the qualifiers group by group, ranks ascending.
func Placeholders(s tournament.Settings) []string {
	out := make([]string, 0, s.KnockoutMode.Slots())
	for _, group := range s.GroupLabels() {
		for rank := 1; rank <= s.QualifiersPerGroup; rank++ {
			out = append(out, RankPlaceholder(s.IsLeagueMode, group, rank))
		}
	}
	return out
}

// FirstStage is the stage the qualifiers enter.
func FirstStage(mode tournament.KnockoutMode) (fixture.Stage, bool) {
	switch mode {
	case tournament.KnockoutQuarterFinal:
		return fixture.StageQuarterFinal, true
	case tournament.KnockoutSemiFinal:
		return fixture.StageSemiFinal, true
	case tournament.KnockoutFinal:
		return fixture.StageFinal, true
	default:
		return "", false
	}
}

// DefaultPairings seeds the first knockout round from the fixed table.
func DefaultPairings(s tournament.Settings) ([]PlaceholderPair, error) {
	table, ok := defaultPairings[shapeKey{mode: s.KnockoutMode, groups: s.NumGroups}]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedShape, "%s with %d groups", s.KnockoutMode, s.NumGroups)
	}

	placeholders := Placeholders(s)
	out := make([]PlaceholderPair, len(table))
	for i, idx := range table {
		out[i] = PlaceholderPair{Home: placeholders[idx[0]], Away: placeholders[idx[1]]}
	}
	return out, nil
}

// ValidatePairings checks that custom pairs use every qualifier placeholder exactly once.
func ValidatePairings(s tournament.Settings, pairs []PlaceholderPair) error {
	expected := Placeholders(s)
	if want := len(expected) / 2; len(pairs) != want {
		return errors.Wrapf(ErrIncompleteBracket, "got %d pairs, want %d", len(pairs), want)
	}

	remaining := make(map[string]bool, len(expected))
	for _, p := range expected {
		remaining[p] = true
	}
	for _, pair := range pairs {
		for _, label := range []string{pair.Home, pair.Away} {
			if !remaining[label] {
				return errors.Wrapf(ErrIncompleteBracket, "placeholder %q is unknown or used twice", label)
			}
			delete(remaining, label)
		}
	}
	return nil
}

// Build lays out every knockout match: the first round from custom or default pairings,
// later rounds fed by "Winner <stage> <n>" placeholders.
func Build(s tournament.Settings, custom []PlaceholderPair) ([]Match, error) {
	first, ok := FirstStage(s.KnockoutMode)
	if !ok {
		if len(custom) > 0 {
			return nil, errors.Wrap(ErrIncompleteBracket, "custom pairings given without a knockout stage")
		}
		return nil, nil
	}

	var pairs []PlaceholderPair
	if len(custom) > 0 {
		pairs = make([]PlaceholderPair, len(custom))
		for i, p := range custom {
			pairs[i] = PlaceholderPair{Home: strings.TrimSpace(p.Home), Away: strings.TrimSpace(p.Away)}
		}
		if err := ValidatePairings(s, pairs); err != nil {
			return nil, err
		}
	} else {
		var err error
		if pairs, err = DefaultPairings(s); err != nil {
			return nil, err
		}
	}

	matches := make([]Match, 0, len(pairs)*2-1)
	stage := first
	for {
		for i, p := range pairs {
			matches = append(matches, Match{Stage: stage, Round: i + 1, Home: p.Home, Away: p.Away})
		}

		next, ok := stage.Next()
		if !ok {
			break
		}
		nextPairs := make([]PlaceholderPair, len(pairs)/2)
		for i := range nextPairs {
			nextPairs[i] = PlaceholderPair{
				Home: fixture.WinnerPlaceholder(stage, 2*i+1),
				Away: fixture.WinnerPlaceholder(stage, 2*i+2),
			}
		}
		stage, pairs = next, nextPairs
	}

	return matches, nil
}
