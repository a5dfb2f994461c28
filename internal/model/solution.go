package model

import "github.com/samber/lo"

// Solution is a full assignment of the instance's legs to driver shifts.
// Value and Feasible are caches maintained by Evaluate.
type Solution struct {
	Instance *Instance
	Shifts   []*Shift
	Value    int
	Feasible bool
}

func NewSolution(inst *Instance, shifts []*Shift) *Solution {
	return &Solution{Instance: inst, Shifts: shifts, Feasible: true}
}

// Evaluate recomputes the solution value and feasibility from scratch.
// Calling it twice without mutating any shift yields identical results.
func (s *Solution) Evaluate() {
	s.Value = 0
	s.Feasible = true
	for _, shift := range s.Shifts {
		s.Value += shift.Evaluate(s.Instance)
		if !shift.Result.Feasible {
			s.Feasible = false
		}
	}
}

// LegCounts returns how many times each leg id occurs across all shifts.
// In a structurally valid solution every instance leg counts exactly once.
func (s *Solution) LegCounts() map[int]int {
	legs := lo.FlatMap(s.Shifts, func(shift *Shift, _ int) []Leg { return shift.Legs })
	return lo.CountValuesBy(legs, func(l Leg) int { return l.ID })
}
