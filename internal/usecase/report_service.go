package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
)

type GroupTable struct {
	Label string
	Stage fixture.Stage
	Rows  []standing.Row
}

// FixtureView is a fixture with its side names resolved for display.
type FixtureView struct {
	Number   int
	Fixture  fixture.Fixture
	State    fixture.State
	HomeName string
	AwayName string
}

type Report struct {
	Tournament tournament.Tournament
	Tables     []GroupTable
	Fixtures   []FixtureView
	// ChampionTeamID is set once the final is played.
	ChampionTeamID string
	ChampionName   string
}

type ReportService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	fixtureRepo    fixture.Repository
}

func NewReportService(tournamentRepo tournament.Repository, teamRepo team.Repository, fixtureRepo fixture.Repository) *ReportService {
	return &ReportService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		fixtureRepo:    fixtureRepo,
	}
}

// Build snapshots standings and fixtures of one tournament.
func (s *ReportService) Build(ctx context.Context, tournamentID string) (report Report, err error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return Report{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Build", tournamentID)
	defer func() { finishSpan(span, err) }()

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return Report{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return Report{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	var (
		teams    []team.Team
		fixtures []fixture.Fixture
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.teamRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teams = items
		return nil
	})
	g.Go(func() error {
		items, err := s.fixtureRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("list fixtures: %w", err)
		}
		fixtures = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report = Report{Tournament: t}

	labels, byGroup := standing.GroupTeams(teams)
	for _, label := range labels {
		report.Tables = append(report.Tables, GroupTable{
			Label: label,
			Stage: fixture.GroupStage(label),
			Rows:  standing.RankForDisplay(byGroup[label]),
		})
	}

	names := make(map[string]string, len(teams))
	for _, tm := range teams {
		names[tm.ID] = tm.Name
	}
	sideName := func(slot fixture.Slot) string {
		if slot.Resolved() {
			return names[slot.TeamID]
		}
		return slot.Placeholder
	}

	report.Fixtures = make([]FixtureView, 0, len(fixtures))
	for _, f := range fixtures {
		report.Fixtures = append(report.Fixtures, FixtureView{
			Number:   f.Sequence,
			Fixture:  f,
			State:    f.State(),
			HomeName: sideName(f.Home),
			AwayName: sideName(f.Away),
		})
		if f.Stage == fixture.StageFinal {
			if winner, err := f.WinnerTeamID(); err == nil {
				report.ChampionTeamID = winner
				report.ChampionName = names[winner]
			}
		}
	}

	return report, nil
}
