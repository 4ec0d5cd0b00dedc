package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

// Transition names the promotion step that fired during one Advance call.
type Transition string

const (
	TransitionNone            Transition = ""
	TransitionGroupToKnockout Transition = "group-to-knockout"
	TransitionQuarterToSemi   Transition = "quarter-final-to-semi-final"
	TransitionSemiToFinal     Transition = "semi-final-to-final"
)

// knockoutTransitions are checked in bracket order after the group stage.
var knockoutTransitions = []struct {
	stage      fixture.Stage
	transition Transition
}{
	{stage: fixture.StageQuarterFinal, transition: TransitionQuarterToSemi},
	{stage: fixture.StageSemiFinal, transition: TransitionSemiToFinal},
}

// maxCascade bounds AdvanceAll; a full bracket needs at most three transitions.
const maxCascade = 8

type PromotionService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	fixtureRepo    fixture.Repository
	logger         *logging.Logger
}

func NewPromotionService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	logger *logging.Logger,
) *PromotionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PromotionService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		fixtureRepo:    fixtureRepo,
		logger:         logger,
	}
}

// sideRef points at one placeholder side of a knockout fixture.
type sideRef struct {
	fixtureID string
	side      fixture.Side
}

// placeholderIndex maps every open placeholder to the sides that hold it. It is built once per scan.
type placeholderIndex map[string][]sideRef

func indexPlaceholders(fixtures []fixture.Fixture) placeholderIndex {
	idx := make(placeholderIndex)
	for _, f := range fixtures {
		if !f.Stage.IsKnockout() {
			continue
		}
		for _, side := range []fixture.Side{fixture.SideHome, fixture.SideAway} {
			if slot := f.Slot(side); !slot.Resolved() && slot.Placeholder != "" {
				idx[slot.Placeholder] = append(idx[slot.Placeholder], sideRef{fixtureID: f.ID, side: side})
			}
		}
	}
	return idx
}

// Advance fires at most one promotion transition. Calling it when nothing completed is a no-op.
func (s *PromotionService) Advance(ctx context.Context, tournamentID string) (transition Transition, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PromotionService.Advance", tournamentID)
	defer func() { finishSpan(span, err) }()

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return TransitionNone, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return TransitionNone, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	fixtures, err := s.fixtureRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return TransitionNone, fmt.Errorf("list fixtures: %w", err)
	}

	var groupFixtures, knockoutFixtures []fixture.Fixture
	for _, f := range fixtures {
		switch {
		case f.Stage.IsGroup():
			groupFixtures = append(groupFixtures, f)
		case f.Stage.IsKnockout():
			knockoutFixtures = append(knockoutFixtures, f)
		}
	}
	if len(groupFixtures) == 0 || len(knockoutFixtures) == 0 {
		return TransitionNone, nil
	}

	idx := indexPlaceholders(knockoutFixtures)

	if allPlayed(groupFixtures) && !anySideResolved(knockoutFixtures) {
		if err := s.promoteGroups(ctx, t, groupFixtures, idx); err != nil {
			return TransitionNone, err
		}
		s.logger.InfoContext(ctx, "group stage promoted", "tournament_id", tournamentID)
		return TransitionGroupToKnockout, nil
	}

	for _, step := range knockoutTransitions {
		stageFixtures := fixturesInStage(knockoutFixtures, step.stage)
		if len(stageFixtures) == 0 || !allPlayed(stageFixtures) {
			continue
		}
		if !winnersPending(stageFixtures, idx) {
			continue
		}

		if err := s.promoteWinners(ctx, stageFixtures, idx); err != nil {
			return TransitionNone, err
		}
		s.logger.InfoContext(ctx, "knockout winners promoted",
			"tournament_id", tournamentID,
			"stage", string(step.stage),
		)
		return step.transition, nil
	}

	return TransitionNone, nil
}

// AdvanceAll repeats Advance until no transition fires and returns the transitions in order.
func (s *PromotionService) AdvanceAll(ctx context.Context, tournamentID string) ([]Transition, error) {
	var fired []Transition
	for range maxCascade {
		transition, err := s.Advance(ctx, tournamentID)
		if err != nil {
			return fired, err
		}
		if transition == TransitionNone {
			return fired, nil
		}
		fired = append(fired, transition)
	}

	return fired, fmt.Errorf("%w: promotion did not settle after %d transitions", ErrConflict, maxCascade)
}

func (s *PromotionService) promoteGroups(ctx context.Context, t tournament.Tournament, groupFixtures []fixture.Fixture, idx placeholderIndex) error {
	teams, err := s.teamRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	labels, byGroup := standing.GroupTeams(teams)
	for _, label := range labels {
		rows := standing.RankForPromotion(byGroup[label], groupFixtures)
		for _, row := range rows {
			placeholder := bracket.RankPlaceholder(t.Settings.IsLeagueMode, label, row.Position)
			if err := s.resolve(ctx, idx[placeholder], row.Team.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *PromotionService) promoteWinners(ctx context.Context, stageFixtures []fixture.Fixture, idx placeholderIndex) error {
	for _, f := range stageFixtures {
		winner, err := f.WinnerTeamID()
		if err != nil {
			return fmt.Errorf("%w: fixture %s: %w", ErrConflict, f.ID, err)
		}
		refs := idx[fixture.WinnerPlaceholder(f.Stage, f.Round)]
		if err := s.resolve(ctx, refs, winner); err != nil {
			return err
		}
	}
	return nil
}

func (s *PromotionService) resolve(ctx context.Context, refs []sideRef, teamID string) error {
	for _, ref := range refs {
		if err := s.fixtureRepo.ResolveSide(ctx, ref.fixtureID, ref.side, teamID); err != nil {
			if errors.Is(err, fixture.ErrSideAlreadyResolved) {
				return fmt.Errorf("%w: %w", ErrConflict, err)
			}
			return fmt.Errorf("resolve fixture %s %s side: %w", ref.fixtureID, ref.side, err)
		}
	}
	return nil
}

func allPlayed(fixtures []fixture.Fixture) bool {
	for _, f := range fixtures {
		if f.Status != fixture.StatusPlayed {
			return false
		}
	}
	return true
}

func anySideResolved(fixtures []fixture.Fixture) bool {
	for _, f := range fixtures {
		if f.Home.Resolved() || f.Away.Resolved() {
			return true
		}
	}
	return false
}

func fixturesInStage(fixtures []fixture.Fixture, stage fixture.Stage) []fixture.Fixture {
	var out []fixture.Fixture
	for _, f := range fixtures {
		if f.Stage == stage {
			out = append(out, f)
		}
	}
	return out
}

func winnersPending(stageFixtures []fixture.Fixture, idx placeholderIndex) bool {
	for _, f := range stageFixtures {
		if len(idx[fixture.WinnerPlaceholder(f.Stage, f.Round)]) > 0 {
			return true
		}
	}
	return false
}
