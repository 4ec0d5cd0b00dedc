package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
)

// Store keeps every tournament in process memory. The repositories it hands out share one lock,
// so Create is atomic with respect to readers.
type Store struct {
	mu sync.RWMutex

	tournaments     map[string]tournament.Tournament
	tournamentOrder []string

	teams          map[string]team.Team
	teamsByTourney map[string][]string

	fixtures          map[string]fixture.Fixture
	fixturesByTourney map[string][]string
}

func NewStore() *Store {
	return &Store{
		tournaments:       make(map[string]tournament.Tournament),
		teams:             make(map[string]team.Team),
		teamsByTourney:    make(map[string][]string),
		fixtures:          make(map[string]fixture.Fixture),
		fixturesByTourney: make(map[string][]string),
	}
}

func (s *Store) Tournaments() *TournamentRepository { return &TournamentRepository{store: s} }

func (s *Store) Teams() *TeamRepository { return &TeamRepository{store: s} }

func (s *Store) Fixtures() *FixtureRepository { return &FixtureRepository{store: s} }

type TournamentRepository struct {
	store *Store
}

func (r *TournamentRepository) Create(_ context.Context, t tournament.Tournament, teams []team.Team, fixtures []fixture.Fixture) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tournaments[t.ID]; exists {
		return fmt.Errorf("tournament %s already exists", t.ID)
	}

	names := make(map[string]struct{}, len(teams))
	for _, item := range teams {
		if _, exists := s.teams[item.ID]; exists {
			return fmt.Errorf("team %s already exists", item.ID)
		}
		if _, dup := names[item.Name]; dup {
			return fmt.Errorf("%w: %s", team.ErrDuplicateName, item.Name)
		}
		names[item.Name] = struct{}{}
	}
	for _, item := range fixtures {
		if _, exists := s.fixtures[item.ID]; exists {
			return fmt.Errorf("fixture %s already exists", item.ID)
		}
	}

	s.tournaments[t.ID] = t
	s.tournamentOrder = append(s.tournamentOrder, t.ID)

	teamIDs := make([]string, 0, len(teams))
	for _, item := range teams {
		s.teams[item.ID] = item
		teamIDs = append(teamIDs, item.ID)
	}
	s.teamsByTourney[t.ID] = teamIDs

	ordered := append([]fixture.Fixture(nil), fixtures...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Sequence < ordered[j].Sequence })
	fixtureIDs := make([]string, 0, len(ordered))
	for _, item := range ordered {
		s.fixtures[item.ID] = cloneFixture(item)
		fixtureIDs = append(fixtureIDs, item.ID)
	}
	s.fixturesByTourney[t.ID] = fixtureIDs

	return nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tournaments[tournamentID]
	return t, ok, nil
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(s.tournamentOrder))
	for _, id := range s.tournamentOrder {
		out = append(out, s.tournaments[id])
	}
	return out, nil
}

func (r *TournamentRepository) Delete(_ context.Context, tournamentID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tournaments[tournamentID]; !ok {
		return false, nil
	}

	for _, id := range s.teamsByTourney[tournamentID] {
		delete(s.teams, id)
	}
	for _, id := range s.fixturesByTourney[tournamentID] {
		delete(s.fixtures, id)
	}
	delete(s.teamsByTourney, tournamentID)
	delete(s.fixturesByTourney, tournamentID)
	delete(s.tournaments, tournamentID)

	for i, id := range s.tournamentOrder {
		if id == tournamentID {
			s.tournamentOrder = append(s.tournamentOrder[:i], s.tournamentOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID string) ([]team.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.teamsByTourney[tournamentID]
	out := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.teams[id])
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) UpdateRecord(_ context.Context, teamID string, record team.Record) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[teamID]
	if !ok {
		return fmt.Errorf("%w: %s", team.ErrTeamNotFound, teamID)
	}
	t.Record = record
	s.teams[teamID] = t
	return nil
}

type FixtureRepository struct {
	store *Store
}

func (r *FixtureRepository) ListByTournament(_ context.Context, tournamentID string) ([]fixture.Fixture, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.fixturesByTourney[tournamentID]
	out := make([]fixture.Fixture, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneFixture(s.fixtures[id]))
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.fixtures[fixtureID]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return cloneFixture(f), true, nil
}

func (r *FixtureRepository) RecordResult(_ context.Context, fixtureID string, result fixture.Result) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fixtures[fixtureID]
	if !ok {
		return fmt.Errorf("%w: %s", fixture.ErrFixtureNotFound, fixtureID)
	}
	s.fixtures[fixtureID] = f.WithResult(result)
	return nil
}

func (r *FixtureRepository) ResolveSide(_ context.Context, fixtureID string, side fixture.Side, teamID string) error {
	if !side.Valid() {
		return fmt.Errorf("unknown fixture side %q", side)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fixtures[fixtureID]
	if !ok {
		return fmt.Errorf("%w: %s", fixture.ErrFixtureNotFound, fixtureID)
	}
	if f.Slot(side).Resolved() {
		return fmt.Errorf("%w: fixture %s %s side", fixture.ErrSideAlreadyResolved, fixtureID, side)
	}

	if side == fixture.SideHome {
		f.Home = fixture.TeamSlot(teamID)
	} else {
		f.Away = fixture.TeamSlot(teamID)
	}
	s.fixtures[fixtureID] = f
	return nil
}

func cloneFixture(f fixture.Fixture) fixture.Fixture {
	f.HomeGoals = cloneInt(f.HomeGoals)
	f.AwayGoals = cloneInt(f.AwayGoals)
	f.HomePenalties = cloneInt(f.HomePenalties)
	f.AwayPenalties = cloneInt(f.AwayPenalties)
	return f
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
