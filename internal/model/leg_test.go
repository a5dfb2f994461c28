package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareLegs(t *testing.T) {
	a := Leg{ID: 3, Start: 100, End: 160}
	b := Leg{ID: 1, Start: 200, End: 260}
	c := Leg{ID: 2, Start: 100, End: 180}

	assert.Negative(t, CompareLegs(a, b), "earlier start orders first")
	assert.Positive(t, CompareLegs(b, a))
	assert.Positive(t, CompareLegs(a, c), "equal starts tie-break by id")
	assert.Zero(t, CompareLegs(a, a))
}

func TestShiftKeepsLegOrder(t *testing.T) {
	shift := NewShift("E0")
	shift.AddLeg(Leg{ID: 1, Start: 200, End: 260})
	shift.AddLeg(Leg{ID: 3, Start: 100, End: 160})
	shift.AddLeg(Leg{ID: 2, Start: 100, End: 180})
	shift.AddLeg(Leg{ID: 0, Start: 300, End: 360})

	assert.Equal(t, []int{2, 3, 1, 0}, shift.LegIDs())
}

func TestDrive(t *testing.T) {
	assert.Equal(t, 60, Leg{Start: 100, End: 160}.Drive())
}
