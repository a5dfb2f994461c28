package model

import "github.com/samber/lo"

// Shift is one driver's work for one day: an ordered sequence of legs plus
// the result of its last evaluation.
type Shift struct {
	Name   string
	Legs   []Leg
	Result ShiftResult
}

func NewShift(name string) *Shift {
	return &Shift{Name: name}
}

// AddLeg inserts the leg keeping (start, id) order. Duplicates are not
// rejected here; the solution-level coverage check reports them.
func (s *Shift) AddLeg(leg Leg) {
	s.Legs = insertLeg(s.Legs, leg)
}

// Evaluate recomputes the shift result from scratch and returns the shift
// cost (hard-constraint penalty plus objective). The previous result is
// discarded; a caller that wants to roll back keeps its own copy.
func (s *Shift) Evaluate(inst *Instance) int {
	s.Result = EvaluateShift(inst, s.Legs)
	return s.Result.Cost()
}

// LegIDs returns the assigned leg ids in shift order.
func (s *Shift) LegIDs() []int {
	return lo.Map(s.Legs, func(l Leg, _ int) int { return l.ID })
}
