package model

import "slices"

// Leg is one scheduled, non-splittable bus trip. Identity is by ID alone;
// ordering everywhere in the solver is by (Start, ID).
type Leg struct {
	ID       int
	Tour     int
	Start    int // absolute time, minutes
	End      int // absolute time, minutes
	StartPos int
	EndPos   int
}

// Drive is the active driving time of the leg itself.
func (l Leg) Drive() int {
	return l.End - l.Start
}

// CompareLegs orders legs by start time, ties broken by id.
func CompareLegs(a, b Leg) int {
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	return a.ID - b.ID
}

// insertLeg inserts leg into legs keeping CompareLegs order.
func insertLeg(legs []Leg, leg Leg) []Leg {
	i, _ := slices.BinarySearchFunc(legs, leg, CompareLegs)
	return slices.Insert(legs, i, leg)
}
