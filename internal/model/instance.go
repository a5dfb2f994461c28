package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Instance is the static problem definition: the full leg set, the deadhead
// distance matrix and the per-position shift-overhead tables. It is loaded
// once and read-only afterwards, so it can be shared across concurrent shift
// evaluations.
type Instance struct {
	Name      string
	Legs      []Leg   // ordered by (start, id)
	Distance  [][]int // deadhead travel time between positions
	StartWork []int   // overhead before the first leg, per start position
	EndWork   []int   // overhead after the last leg, per end position

	Tours       []int // distinct tour ids, sorted
	StartShifts int   // earliest leg start
	EndShifts   int   // latest leg end
}

// NewInstance validates the raw data and derives the instance aggregates.
// The distance matrix must be square with the same dimension as the overhead
// tables, and every leg must reference valid positions.
func NewInstance(name string, legs []Leg, distance [][]int, startWork, endWork []int) (*Instance, error) {
	positions := len(distance)
	if len(startWork) != positions || len(endWork) != positions {
		return nil, fmt.Errorf("instance %v: overhead tables have %v/%v entries, distance matrix has %v rows",
			name, len(startWork), len(endWork), positions)
	}
	for i, row := range distance {
		if len(row) != positions {
			return nil, fmt.Errorf("instance %v: distance matrix row %v has %v entries, want %v",
				name, i, len(row), positions)
		}
	}

	sorted := make([]Leg, 0, len(legs))
	for _, leg := range legs {
		if leg.Start >= leg.End {
			return nil, fmt.Errorf("instance %v: leg %v starts at %v but ends at %v", name, leg.ID, leg.Start, leg.End)
		}
		if leg.StartPos < 0 || leg.StartPos >= positions || leg.EndPos < 0 || leg.EndPos >= positions {
			return nil, fmt.Errorf("instance %v: leg %v references position out of range [0, %v)", name, leg.ID, positions)
		}
		sorted = insertLeg(sorted, leg)
	}

	inst := &Instance{
		Name:      name,
		Legs:      sorted,
		Distance:  distance,
		StartWork: startWork,
		EndWork:   endWork,
	}
	if len(sorted) > 0 {
		inst.Tours = lo.Uniq(lo.Map(sorted, func(l Leg, _ int) int { return l.Tour }))
		slices.Sort(inst.Tours)
		inst.StartShifts = lo.MinBy(sorted, func(a, b Leg) bool { return a.Start < b.Start }).Start
		inst.EndShifts = lo.MaxBy(sorted, func(a, b Leg) bool { return a.End > b.End }).End
	}
	return inst, nil
}

// PassiveRide returns the deadhead travel time a driver needs to get from
// position i to position j when not driving a bus. Staying at the same
// position always costs 0, whatever the matrix holds on the diagonal.
func (inst *Instance) PassiveRide(i, j int) int {
	if i == j {
		return 0
	}
	return inst.Distance[i][j]
}

// LowerBound is the trivial objective lower bound of the instance: every
// minute of driving is paid at least twice and counts once in total time.
func (inst *Instance) LowerBound() int {
	return lo.SumBy(inst.Legs, func(l Leg) int { return 3 * l.Drive() })
}
