package model

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestNewInstance(t *testing.T) {
	t.Run("derives aggregates and sorts legs", func(t *testing.T) {
		legs := []Leg{
			{ID: 0, Tour: 7, Start: 300, End: 360},
			{ID: 1, Tour: 2, Start: 100, End: 160},
			{ID: 2, Tour: 2, Start: 200, End: 280, StartPos: 1, EndPos: 1},
		}

		inst, err := NewInstance("t", legs, [][]int{{0, 5}, {5, 0}}, []int{10, 10}, []int{10, 10})

		assert.Nil(t, err)
		ids := lo.Map(inst.Legs, func(l Leg, _ int) int { return l.ID })
		assert.Equal(t, []int{1, 2, 0}, ids)
		assert.Equal(t, []int{2, 7}, inst.Tours)
		assert.Equal(t, 100, inst.StartShifts)
		assert.Equal(t, 360, inst.EndShifts)
	})

	t.Run("rejects ragged distance matrix", func(t *testing.T) {
		_, err := NewInstance("t", nil, [][]int{{0, 5}, {5}}, []int{0, 0}, []int{0, 0})
		assert.ErrorContains(t, err, "distance matrix row")
	})

	t.Run("rejects mismatched overhead tables", func(t *testing.T) {
		_, err := NewInstance("t", nil, [][]int{{0}}, []int{0, 0}, []int{0})
		assert.ErrorContains(t, err, "overhead tables")
	})

	t.Run("rejects out-of-range positions", func(t *testing.T) {
		legs := []Leg{{ID: 0, Tour: 1, Start: 0, End: 60, StartPos: 0, EndPos: 3}}
		_, err := NewInstance("t", legs, [][]int{{0}}, []int{0}, []int{0})
		assert.ErrorContains(t, err, "position out of range")
	})

	t.Run("rejects legs that end before they start", func(t *testing.T) {
		legs := []Leg{{ID: 0, Tour: 1, Start: 60, End: 60}}
		_, err := NewInstance("t", legs, [][]int{{0}}, []int{0}, []int{0})
		assert.ErrorContains(t, err, "starts at")
	})
}

func TestPassiveRide(t *testing.T) {
	inst := &Instance{Distance: [][]int{{99, 5}, {5, 99}}}

	assert.Equal(t, 0, inst.PassiveRide(1, 1), "diagonal is never read")
	assert.Equal(t, 5, inst.PassiveRide(0, 1))
}

func TestLowerBound(t *testing.T) {
	inst := &Instance{Legs: []Leg{
		{Start: 0, End: 60},
		{Start: 100, End: 140},
	}}

	assert.Equal(t, 3*60+3*40, inst.LowerBound())
}
