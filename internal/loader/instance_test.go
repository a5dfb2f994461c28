package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"bdsp-validator/internal/model"
)

const instanceJSON = `{
	"legs": [
		{"tour": 1, "start": 200, "end": 260, "startPos": 1, "endPos": 0},
		{"tour": 2, "start": 100, "end": 160, "startPos": 0, "endPos": 1}
	],
	"distances": {
		"0": {"0": 0, "1": 5},
		"1": {"0": 5, "1": 0}
	},
	"extra": {
		"0": {"startWork": 10, "endWork": 15},
		"1": {"startWork": 20, "endWork": 25}
	}
}`

func TestInstanceFromJSON(t *testing.T) {
	t.Run("decodes the document", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		file := filepath.Join(dir, "realistic_1_1.json")
		assert.Nil(t, os.WriteFile(file, []byte(instanceJSON), 0o644))

		// Act
		inst, err := InstanceFromJSON(file)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, "realistic_1_1", inst.Name)
		assert.Len(t, inst.Legs, 2)
		// Ids follow array order, but legs are sorted by start time.
		assert.Equal(t, 1, inst.Legs[0].ID)
		assert.Equal(t, 0, inst.Legs[1].ID)
		assert.Equal(t, [][]int{{0, 5}, {5, 0}}, inst.Distance)
		assert.Equal(t, []int{10, 20}, inst.StartWork)
		assert.Equal(t, []int{15, 25}, inst.EndWork)
	})

	t.Run("missing file is a not-found error", func(t *testing.T) {
		_, err := InstanceFromJSON(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("rejects out-of-range distance positions", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "bad.json")
		bad := `{"legs": [], "distances": {"5": {"0": 1}}, "extra": {}}`
		assert.Nil(t, os.WriteFile(file, []byte(bad), 0o644))

		_, err := InstanceFromJSON(file)
		assert.ErrorContains(t, err, "out of range")
	})
}

func TestInstanceFromCSV(t *testing.T) {
	dir := t.TempDir()
	legsFile := filepath.Join(dir, "small.csv")
	distFile := filepath.Join(dir, "small_dist.csv")
	extraFile := filepath.Join(dir, "small_extra.csv")

	assert.Nil(t, os.WriteFile(legsFile, []byte(
		"tour,start,end,startPos,endPos\n"+
			"1,200,260,1,0\n"+
			"2,100,160,0,1\n"), 0o644))
	assert.Nil(t, os.WriteFile(distFile, []byte("0,5\n5,0\n"), 0o644))
	assert.Nil(t, os.WriteFile(extraFile, []byte("10,20\n15,25\n"), 0o644))

	inst, err := InstanceFromCSV(legsFile, distFile, extraFile)

	assert.Nil(t, err)
	assert.Equal(t, "small", inst.Name)
	assert.Len(t, inst.Legs, 2)
	assert.Equal(t, 1, inst.Legs[0].ID, "row ids, sorted by start")
	assert.Equal(t, [][]int{{0, 5}, {5, 0}}, inst.Distance)
	assert.Equal(t, []int{10, 20}, inst.StartWork)
	assert.Equal(t, []int{15, 25}, inst.EndWork)
}

func TestInstanceRoundTrips(t *testing.T) {
	dir := t.TempDir()
	legs := []model.Leg{
		{ID: 0, Tour: 1, Start: 100, End: 160, StartPos: 0, EndPos: 1},
		{ID: 1, Tour: 2, Start: 200, End: 260, StartPos: 1, EndPos: 0},
	}
	inst, err := model.NewInstance("round", legs, [][]int{{0, 5}, {5, 0}}, []int{10, 20}, []int{15, 25})
	assert.Nil(t, err)

	t.Run("json", func(t *testing.T) {
		file := filepath.Join(dir, "round.json")
		assert.Nil(t, WriteInstanceJSON(inst, file))

		loaded, err := InstanceFromJSON(file)

		assert.Nil(t, err)
		assert.Equal(t, inst.Legs, loaded.Legs)
		assert.Equal(t, inst.Distance, loaded.Distance)
		assert.Equal(t, inst.StartWork, loaded.StartWork)
		assert.Equal(t, inst.EndWork, loaded.EndWork)
	})

	t.Run("csv", func(t *testing.T) {
		assert.Nil(t, WriteInstanceCSV(inst, dir))

		loaded, err := InstanceFromCSV(
			filepath.Join(dir, "round.csv"),
			filepath.Join(dir, "round_dist.csv"),
			filepath.Join(dir, "round_extra.csv"),
		)

		assert.Nil(t, err)
		assert.Equal(t, inst.Legs, loaded.Legs)
		assert.Equal(t, inst.Distance, loaded.Distance)
		assert.Equal(t, inst.StartWork, loaded.StartWork)
		assert.Equal(t, inst.EndWork, loaded.EndWork)
	})
}
