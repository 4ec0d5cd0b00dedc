package tournament

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidSettings = errors.New("invalid tournament settings")

// KnockoutMode is the first knockout round a tournament starts with.
type KnockoutMode string

const (
	KnockoutNone         KnockoutMode = "none"
	KnockoutFinal        KnockoutMode = "final"
	KnockoutSemiFinal    KnockoutMode = "semi-final"
	KnockoutQuarterFinal KnockoutMode = "quarter-final"
)

const MaxGroups = 4

var groupLabels = [MaxGroups]string{"A", "B", "C", "D"}

var settingsValidator = validator.New()

// ParseKnockoutMode accepts the mode name or its numeric code ("0" none ... "3" quarter-final).
func ParseKnockoutMode(value string) (KnockoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", string(KnockoutNone):
		return KnockoutNone, nil
	case "1", string(KnockoutFinal):
		return KnockoutFinal, nil
	case "2", string(KnockoutSemiFinal), "semi_final", "semifinal":
		return KnockoutSemiFinal, nil
	case "3", string(KnockoutQuarterFinal), "quarter_final", "quarterfinal":
		return KnockoutQuarterFinal, nil
	default:
		return "", errors.Wrapf(ErrInvalidSettings, "unknown knockout mode %q", value)
	}
}

// Slots is the number of teams entering the knockout bracket.
func (m KnockoutMode) Slots() int {
	switch m {
	case KnockoutFinal:
		return 2
	case KnockoutSemiFinal:
		return 4
	case KnockoutQuarterFinal:
		return 8
	default:
		return 0
	}
}

// Settings are fixed at creation time and never change afterwards.
type Settings struct {
	NumGroups          int          `json:"num_groups" validate:"min=1,max=4"`
	NumTeamsPerGroup   int          `json:"num_teams_per_group" validate:"min=2"`
	KnockoutMode       KnockoutMode `json:"knockout_mode" validate:"oneof=none final semi-final quarter-final"`
	NumLegs            int          `json:"num_legs" validate:"min=1"`
	IsLeagueMode       bool         `json:"is_league_mode"`
	QualifiersPerGroup int          `json:"qualifiers_per_group"`
}

// NewSettings fills the derived fields and validates the combination.
func NewSettings(numGroups, teamsPerGroup int, mode KnockoutMode, legs int) (Settings, error) {
	s := Settings{
		NumGroups:        numGroups,
		NumTeamsPerGroup: teamsPerGroup,
		KnockoutMode:     mode,
		NumLegs:          legs,
		IsLeagueMode:     numGroups == 1,
	}
	if numGroups > 0 {
		s.QualifiersPerGroup = mode.Slots() / numGroups
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return errors.Wrapf(ErrInvalidSettings, "%v", err)
	}
	if s.IsLeagueMode != (s.NumGroups == 1) {
		return errors.Wrap(ErrInvalidSettings, "league mode must match a single group")
	}

	slots := s.KnockoutMode.Slots()
	if slots%s.NumGroups != 0 {
		return errors.Wrapf(ErrInvalidSettings, "%d knockout slots cannot be split across %d groups", slots, s.NumGroups)
	}
	if s.QualifiersPerGroup != slots/s.NumGroups {
		return errors.Wrapf(ErrInvalidSettings, "qualifiers per group must be %d", slots/s.NumGroups)
	}
	if s.QualifiersPerGroup > s.NumTeamsPerGroup {
		return errors.Wrapf(ErrInvalidSettings, "%d qualifiers per group exceed %d teams per group", s.QualifiersPerGroup, s.NumTeamsPerGroup)
	}

	return nil
}

// GroupLabels returns the labels in use ("A".."D"), or one empty label in league mode.
func (s Settings) GroupLabels() []string {
	if s.IsLeagueMode {
		return []string{""}
	}
	n := min(max(s.NumGroups, 0), MaxGroups)
	out := make([]string, n)
	copy(out, groupLabels[:n])
	return out
}

func (s Settings) HasKnockout() bool {
	return s.KnockoutMode.Slots() > 0
}

// Tournament is one season's competition.
type Tournament struct {
	ID           string
	SeasonNumber int
	Settings     Settings
	ScheduleSeed uint64
	CreatedAt    time.Time
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("tournament id is required")
	}
	if t.SeasonNumber <= 0 {
		return errors.New("tournament season number must be positive")
	}
	return t.Settings.Validate()
}
