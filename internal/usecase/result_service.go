package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

const (
	defaultBatchWorkers = 8
	defaultMaxGoals     = 5
)

type RecordResultInput struct {
	FixtureID     string
	HomeGoals     int
	AwayGoals     int
	HomePenalties *int
	AwayPenalties *int
}

type RecordResultOutput struct {
	Fixture     fixture.Fixture
	Transitions []Transition
}

type AutogenerateOutput struct {
	Generated   int
	Transitions []Transition
}

type ResultServiceConfig struct {
	BatchWorkers int
	MaxGoals     int
	// Seed makes generated scores reproducible; nil seeds randomly.
	Seed *uint64
}

type ResultService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	fixtureRepo    fixture.Repository
	promotion      *PromotionService
	batchWorkers   int
	maxGoals       int
	rngMu          sync.Mutex
	rng            *rand.Rand
	logger         *logging.Logger
}

func NewResultService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	promotion *PromotionService,
	cfg ResultServiceConfig,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = defaultBatchWorkers
	}
	if cfg.MaxGoals <= 0 {
		cfg.MaxGoals = defaultMaxGoals
	}
	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	return &ResultService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		fixtureRepo:    fixtureRepo,
		promotion:      promotion,
		batchWorkers:   cfg.BatchWorkers,
		maxGoals:       cfg.MaxGoals,
		rng:            schedule.NewRand(seed),
		logger:         logger,
	}
}

// RecordResult enters or overwrites one score, rebuilds the affected team records and
// cascades promotion.
func (s *ResultService) RecordResult(ctx context.Context, input RecordResultInput) (out RecordResultOutput, err error) {
	fixtureID := strings.TrimSpace(input.FixtureID)
	if fixtureID == "" {
		return RecordResultOutput{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	f, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return RecordResultOutput{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return RecordResultOutput{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RecordResult", f.TournamentID)
	defer func() { finishSpan(span, err) }()

	if f.State() == fixture.StatePending {
		return RecordResultOutput{}, fmt.Errorf("%w: %w", ErrConflict, fixture.ErrSideUnresolved)
	}

	result := fixture.Result{
		HomeGoals:     input.HomeGoals,
		AwayGoals:     input.AwayGoals,
		HomePenalties: input.HomePenalties,
		AwayPenalties: input.AwayPenalties,
	}
	if err := result.Validate(f.Stage.IsKnockout()); err != nil {
		return RecordResultOutput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	fixtures, err := s.fixtureRepo.ListByTournament(ctx, f.TournamentID)
	if err != nil {
		return RecordResultOutput{}, fmt.Errorf("list fixtures: %w", err)
	}
	if f.Status == fixture.StatusPlayed && winnerPromoted(fixtures, f) {
		return RecordResultOutput{}, fmt.Errorf("%w: winner of fixture %s already advanced", ErrConflict, f.ID)
	}

	if err := s.fixtureRepo.RecordResult(ctx, f.ID, result); err != nil {
		if errors.Is(err, fixture.ErrFixtureNotFound) {
			return RecordResultOutput{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, f.ID)
		}
		return RecordResultOutput{}, fmt.Errorf("record result: %w", err)
	}
	f = f.WithResult(result)

	if f.Stage.IsGroup() {
		for i := range fixtures {
			if fixtures[i].ID == f.ID {
				fixtures[i] = f
			}
		}
		for _, teamID := range []string{f.Home.TeamID, f.Away.TeamID} {
			if err := s.teamRepo.UpdateRecord(ctx, teamID, standing.Compute(teamID, fixtures)); err != nil {
				return RecordResultOutput{}, fmt.Errorf("update team record: %w", err)
			}
		}
	}

	transitions, err := s.promotion.AdvanceAll(ctx, f.TournamentID)
	if err != nil {
		return RecordResultOutput{}, fmt.Errorf("advance promotion: %w", err)
	}

	s.logger.InfoContext(ctx, "fixture result recorded",
		"tournament_id", f.TournamentID,
		"fixture_id", f.ID,
		"stage", string(f.Stage),
		"home_goals", result.HomeGoals,
		"away_goals", result.AwayGoals,
		"transitions", len(transitions),
	)
	return RecordResultOutput{Fixture: f, Transitions: transitions}, nil
}

// RecomputeTeamRecord rebuilds one team's record from its played group fixtures.
func (s *ResultService) RecomputeTeamRecord(ctx context.Context, teamID string) (team.Record, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Record{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Record{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Record{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	fixtures, err := s.fixtureRepo.ListByTournament(ctx, t.TournamentID)
	if err != nil {
		return team.Record{}, fmt.Errorf("list fixtures: %w", err)
	}

	record := standing.Compute(teamID, fixtures)
	if err := s.teamRepo.UpdateRecord(ctx, teamID, record); err != nil {
		return team.Record{}, fmt.Errorf("update team record: %w", err)
	}
	return record, nil
}

// AutogenerateGroupResults fills every ready group or league fixture with a random score,
// rebuilds the affected records once and then cascades promotion once.
func (s *ResultService) AutogenerateGroupResults(ctx context.Context, tournamentID string) (out AutogenerateOutput, err error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return AutogenerateOutput{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.AutogenerateGroupResults", tournamentID)
	defer func() { finishSpan(span, err) }()

	_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return AutogenerateOutput{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return AutogenerateOutput{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	fixtures, err := s.fixtureRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return AutogenerateOutput{}, fmt.Errorf("list fixtures: %w", err)
	}

	type pending struct {
		fixtureID string
		result    fixture.Result
	}
	var batch []pending
	affected := make(map[string]struct{})
	var affectedOrder []string
	s.rngMu.Lock()
	for _, f := range fixtures {
		if !f.Stage.IsGroup() || f.State() != fixture.StateReady {
			continue
		}
		batch = append(batch, pending{
			fixtureID: f.ID,
			result:    fixture.Result{HomeGoals: s.rng.IntN(s.maxGoals + 1), AwayGoals: s.rng.IntN(s.maxGoals + 1)},
		})
		for _, teamID := range []string{f.Home.TeamID, f.Away.TeamID} {
			if _, ok := affected[teamID]; !ok {
				affected[teamID] = struct{}{}
				affectedOrder = append(affectedOrder, teamID)
			}
		}
	}
	s.rngMu.Unlock()

	if len(batch) == 0 {
		return AutogenerateOutput{}, nil
	}

	workerPool, err := ants.NewPool(min(s.batchWorkers, len(batch)))
	if err != nil {
		return AutogenerateOutput{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		workers sync.WaitGroup
		errMu   sync.Mutex
		errs    []error
	)
	addErr := func(err error) {
		errMu.Lock()
		errs = append(errs, err)
		errMu.Unlock()
	}
	for _, item := range batch {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			if err := s.fixtureRepo.RecordResult(ctx, item.fixtureID, item.result); err != nil {
				addErr(fmt.Errorf("record fixture %s: %w", item.fixtureID, err))
			}
		}); err != nil {
			workers.Done()
			addErr(fmt.Errorf("submit fixture %s: %w", item.fixtureID, err))
		}
	}
	workers.Wait()
	if err := errors.Join(errs...); err != nil {
		return AutogenerateOutput{}, err
	}

	if err := s.recomputeRecords(ctx, tournamentID, affectedOrder); err != nil {
		return AutogenerateOutput{}, err
	}

	transitions, err := s.promotion.AdvanceAll(ctx, tournamentID)
	if err != nil {
		return AutogenerateOutput{}, fmt.Errorf("advance promotion: %w", err)
	}

	s.logger.InfoContext(ctx, "group results generated",
		"tournament_id", tournamentID,
		"generated", len(batch),
		"transitions", len(transitions),
	)
	return AutogenerateOutput{Generated: len(batch), Transitions: transitions}, nil
}

// recomputeRecords rebuilds the given teams from one fixture snapshot, one team per task.
func (s *ResultService) recomputeRecords(ctx context.Context, tournamentID string, teamIDs []string) error {
	fixtures, err := s.fixtureRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("list fixtures: %w", err)
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.batchWorkers)
	for _, teamID := range teamIDs {
		p.Go(func(ctx context.Context) error {
			if err := s.teamRepo.UpdateRecord(ctx, teamID, standing.Compute(teamID, fixtures)); err != nil {
				return fmt.Errorf("update team %s record: %w", teamID, err)
			}
			return nil
		})
	}
	return p.Wait()
}

// winnerPromoted reports whether f's winner already fills a later-round side.
func winnerPromoted(fixtures []fixture.Fixture, f fixture.Fixture) bool {
	next, ok := f.Stage.Next()
	if !ok {
		return false
	}

	label := fixture.WinnerPlaceholder(f.Stage, f.Round)
	found := false
	for _, other := range fixtures {
		if other.Stage != next {
			continue
		}
		found = true
		if other.Home.Placeholder == label || other.Away.Placeholder == label {
			return false
		}
	}
	return found
}
