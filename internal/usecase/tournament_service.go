package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/platform/id"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

type CreateTournamentInput struct {
	SeasonNumber     int
	NumGroups        int
	NumTeamsPerGroup int
	KnockoutMode     string
	NumLegs          int
	// Groups holds the team names of each group in label order (A, B, ...).
	Groups [][]string
	// CustomPairings replaces the default seeding of the first knockout round.
	CustomPairings []bracket.PlaceholderPair
	// Seed fixes the group shuffle; nil draws a random seed.
	Seed *uint64
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	ids            id.Generator
	now            func() time.Time
	logger         *logging.Logger
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &TournamentService{
		tournamentRepo: tournamentRepo,
		ids:            ids,
		now:            time.Now,
		logger:         logger,
	}
}

// Create validates the settings and team list, builds every fixture and stores it all in one step.
func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (t tournament.Tournament, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create", "")
	defer func() { finishSpan(span, err) }()

	if input.SeasonNumber <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: season number must be positive", ErrInvalidInput)
	}

	mode, err := tournament.ParseKnockoutMode(input.KnockoutMode)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	settings, err := tournament.NewSettings(input.NumGroups, input.NumTeamsPerGroup, mode, input.NumLegs)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	tournamentID, err := s.ids.NewID()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
	}

	seed := rand.Uint64()
	if input.Seed != nil {
		seed = *input.Seed
	}
	t = tournament.Tournament{
		ID:           tournamentID,
		SeasonNumber: input.SeasonNumber,
		Settings:     settings,
		ScheduleSeed: seed,
		CreatedAt:    s.now().UTC(),
	}

	teams, err := s.buildTeams(tournamentID, settings, input.Groups)
	if err != nil {
		return tournament.Tournament{}, err
	}

	fixtures, err := fixtureBuilder{ids: s.ids}.build(t, teams, input.CustomPairings)
	if err != nil {
		if errors.Is(err, bracket.ErrIncompleteBracket) || errors.Is(err, bracket.ErrUnsupportedShape) {
			return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return tournament.Tournament{}, fmt.Errorf("build fixtures: %w", err)
	}

	if err := s.tournamentRepo.Create(ctx, t, teams, fixtures); err != nil {
		if errors.Is(err, team.ErrDuplicateName) {
			return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		"tournament_id", t.ID,
		"season", t.SeasonNumber,
		"groups", settings.NumGroups,
		"knockout_mode", string(settings.KnockoutMode),
		"teams", len(teams),
		"fixtures", len(fixtures),
	)
	return t, nil
}

func (s *TournamentService) buildTeams(tournamentID string, settings tournament.Settings, groups [][]string) ([]team.Team, error) {
	if len(groups) != settings.NumGroups {
		return nil, fmt.Errorf("%w: expected %d groups of teams, got %d", ErrInvalidInput, settings.NumGroups, len(groups))
	}

	labels := settings.GroupLabels()

	seen := make(map[string]struct{}, settings.NumGroups*settings.NumTeamsPerGroup)
	teams := make([]team.Team, 0, settings.NumGroups*settings.NumTeamsPerGroup)
	for g, names := range groups {
		if len(names) != settings.NumTeamsPerGroup {
			return nil, fmt.Errorf("%w: group %d needs %d teams, got %d", ErrInvalidInput, g+1, settings.NumTeamsPerGroup, len(names))
		}
		for _, raw := range names {
			name := team.NormalizeName(raw)
			if name == "" {
				return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("%w: %w: %s", ErrInvalidInput, team.ErrDuplicateName, name)
			}
			seen[name] = struct{}{}

			teamID, err := s.ids.NewID()
			if err != nil {
				return nil, fmt.Errorf("generate team id: %w", err)
			}
			teams = append(teams, team.Team{
				ID:           teamID,
				TournamentID: tournamentID,
				Name:         name,
				Group:        labels[g],
			})
		}
	}

	return teams, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	return t, nil
}

// List returns tournaments newest season first.
func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SeasonNumber != items[j].SeasonNumber {
			return items[i].SeasonNumber > items[j].SeasonNumber
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Delete removes a tournament with its teams and fixtures.
func (s *TournamentService) Delete(ctx context.Context, tournamentID string) error {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	deleted, err := s.tournamentRepo.Delete(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	s.logger.InfoContext(ctx, "tournament deleted", "tournament_id", tournamentID)
	return nil
}
