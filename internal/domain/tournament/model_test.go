package tournament

import (
	"errors"
	"testing"
)

func TestNewSettings_DerivesFields(t *testing.T) {
	t.Parallel()

	s, err := NewSettings(2, 4, KnockoutQuarterFinal, 1)
	if err != nil {
		t.Fatalf("NewSettings error: %v", err)
	}
	if s.IsLeagueMode {
		t.Fatalf("two groups must not be league mode")
	}
	if s.QualifiersPerGroup != 4 {
		t.Fatalf("unexpected qualifiers per group: %d", s.QualifiersPerGroup)
	}
	if got := s.GroupLabels(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("unexpected group labels: %v", got)
	}

	league, err := NewSettings(1, 6, KnockoutSemiFinal, 2)
	if err != nil {
		t.Fatalf("NewSettings league error: %v", err)
	}
	if !league.IsLeagueMode || league.QualifiersPerGroup != 4 {
		t.Fatalf("unexpected league settings: %+v", league)
	}
	if got := league.GroupLabels(); len(got) != 1 || got[0] != "" {
		t.Fatalf("unexpected league labels: %v", got)
	}
}

func TestNewSettings_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		groups int
		teams  int
		mode   KnockoutMode
		legs   int
	}{
		{name: "three groups into final", groups: 3, teams: 4, mode: KnockoutFinal, legs: 1},
		{name: "four groups into final", groups: 4, teams: 4, mode: KnockoutFinal, legs: 1},
		{name: "qualifiers exceed group size", groups: 1, teams: 6, mode: KnockoutQuarterFinal, legs: 1},
		{name: "too many groups", groups: 5, teams: 4, mode: KnockoutNone, legs: 1},
		{name: "no groups", groups: 0, teams: 4, mode: KnockoutNone, legs: 1},
		{name: "single team groups", groups: 2, teams: 1, mode: KnockoutNone, legs: 1},
		{name: "zero legs", groups: 1, teams: 4, mode: KnockoutNone, legs: 0},
		{name: "unknown mode", groups: 1, teams: 4, mode: KnockoutMode("round-of-16"), legs: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSettings(tc.groups, tc.teams, tc.mode, tc.legs)
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestParseKnockoutMode(t *testing.T) {
	t.Parallel()

	cases := map[string]KnockoutMode{
		"":              KnockoutNone,
		"0":             KnockoutNone,
		"1":             KnockoutFinal,
		"Semi-Final":    KnockoutSemiFinal,
		"3":             KnockoutQuarterFinal,
		"quarter_final": KnockoutQuarterFinal,
	}
	for in, want := range cases {
		got, err := ParseKnockoutMode(in)
		if err != nil {
			t.Fatalf("ParseKnockoutMode(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseKnockoutMode(%q)=%q, want %q", in, got, want)
		}
	}

	if _, err := ParseKnockoutMode("4"); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings for unknown code, got %v", err)
	}
}
