package schedule

import (
	"math/rand/v2"
	"sort"

	"github.com/cockroachdb/errors"
)

var ErrInvalidLegs = errors.New("legs must be at least one")

// Pairing is one match of a round. Home is listed first.
type Pairing struct {
	Home string
	Away string
}

func (p Pairing) Swap() Pairing {
	return Pairing{Home: p.Away, Away: p.Home}
}

type Round []Pairing

// Schedule is the first-leg round list of one group plus the number of legs.
// Later legs replay the same rounds, with sides swapped on odd legs.
type Schedule struct {
	Rounds []Round
	Legs   int
}

// Leg returns the rounds of leg l (0-based).
func (s Schedule) Leg(l int) []Round {
	if l%2 == 0 {
		return s.Rounds
	}
	out := make([]Round, len(s.Rounds))
	for i, round := range s.Rounds {
		swapped := make(Round, len(round))
		for j, p := range round {
			swapped[j] = p.Swap()
		}
		out[i] = swapped
	}
	return out
}

// MatchCount is the number of pairings across all legs.
func (s Schedule) MatchCount() int {
	n := 0
	for _, round := range s.Rounds {
		n += len(round)
	}
	return n * s.Legs
}

// RoundRobin builds a circle-method schedule. An odd field gets a bye, position 0 stays
// fixed and the last position moves to index 1 after every round.
func RoundRobin(teamIDs []string, legs int) (Schedule, error) {
	if legs < 1 {
		return Schedule{}, ErrInvalidLegs
	}
	if len(teamIDs) < 2 {
		return Schedule{Legs: legs}, nil
	}

	const bye = ""
	slots := make([]string, len(teamIDs), len(teamIDs)+1)
	copy(slots, teamIDs)
	if len(slots)%2 != 0 {
		slots = append(slots, bye)
	}

	n := len(slots)
	rounds := make([]Round, n-1)
	for r := range rounds {
		round := make(Round, 0, n/2)
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == bye || away == bye {
				continue
			}
			round = append(round, Pairing{Home: home, Away: away})
		}
		rounds[r] = round

		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	return Schedule{Rounds: rounds, Legs: legs}, nil
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a copy of ids in a seed-determined order.
func Shuffle(ids []string, seed uint64) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	NewRand(seed).Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// GroupSchedule binds a schedule to its group label ("" for a league).
type GroupSchedule struct {
	Label    string
	Schedule Schedule
}

// Slot is one interleaved fixture. Round is the 1-based round inside the leg and
// MatchDay is aligned across groups and legs.
type Slot struct {
	Group    string
	Leg      int
	Round    int
	MatchDay int
	Pairing  Pairing
}

// Interleave orders every group's fixtures by leg, round, match index and group label,
// so groups play the same match day side by side.
func Interleave(groups []GroupSchedule) []Slot {
	sorted := make([]GroupSchedule, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })

	maxLegs, maxRounds, maxMatches, total := 0, 0, 0, 0
	legRounds := make([][][]Round, len(sorted))
	for g, group := range sorted {
		s := group.Schedule
		maxLegs = max(maxLegs, s.Legs)
		maxRounds = max(maxRounds, len(s.Rounds))
		for _, round := range s.Rounds {
			maxMatches = max(maxMatches, len(round))
		}
		total += s.MatchCount()

		legRounds[g] = make([][]Round, s.Legs)
		for l := 0; l < s.Legs; l++ {
			legRounds[g][l] = s.Leg(l)
		}
	}

	out := make([]Slot, 0, total)
	for l := 0; l < maxLegs; l++ {
		for r := 0; r < maxRounds; r++ {
			for m := 0; m < maxMatches; m++ {
				for g, group := range sorted {
					if l >= len(legRounds[g]) || r >= len(legRounds[g][l]) || m >= len(legRounds[g][l][r]) {
						continue
					}
					out = append(out, Slot{
						Group:    group.Label,
						Leg:      l + 1,
						Round:    r + 1,
						MatchDay: l*maxRounds + r + 1,
						Pairing:  legRounds[g][l][r][m],
					})
				}
			}
		}
	}

	return out
}
