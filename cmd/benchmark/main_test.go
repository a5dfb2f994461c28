package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"bdsp-validator/internal/loader"
	"bdsp-validator/internal/model"
)

func benchmarkCorpus(t *testing.T) (solutionDir, instanceDir string) {
	t.Helper()
	dir := t.TempDir()
	instanceDir = filepath.Join(dir, "instances")
	solutionDir = filepath.Join(dir, "solutions")
	assert.Nil(t, os.Mkdir(instanceDir, 0o755))
	assert.Nil(t, os.Mkdir(solutionDir, 0o755))

	legs := []model.Leg{
		{ID: 0, Tour: 1, Start: 100, End: 160},
		{ID: 1, Tour: 1, Start: 200, End: 260},
	}
	inst, err := model.NewInstance("realistic_1_1", legs, [][]int{{0}}, []int{10}, []int{10})
	assert.Nil(t, err)
	assert.Nil(t, loader.WriteInstanceJSON(inst, filepath.Join(instanceDir, "realistic_1_1.json")))
	assert.Nil(t, os.WriteFile(filepath.Join(solutionDir, "realistic_1_1_sol.csv"), []byte("1,1\n"), 0o644))
	return solutionDir, instanceDir
}

func TestBenchmarkFile(t *testing.T) {
	solutionDir, instanceDir := benchmarkCorpus(t)

	t.Run("measures a valid solution", func(t *testing.T) {
		result, err := benchmarkFile(filepath.Join(solutionDir, "realistic_1_1_sol.csv"), instanceDir)

		assert.Nil(t, err)
		assert.Equal(t, "realistic_1_1_sol.csv", result.Filename)
		assert.Equal(t, "realistic_1_1", result.Instance)
		assert.Equal(t, 2, result.Legs)
		assert.Equal(t, 1, result.Shifts)
		// One shift: 180 total, 120 drive, paid floor 390.
		assert.Equal(t, 2*390+180, result.Objective)
		assert.True(t, result.Feasible)
		assert.GreaterOrEqual(t, result.DurationMs, int64(0))
	})

	t.Run("missing instance fails", func(t *testing.T) {
		file := filepath.Join(solutionDir, "unknown_sol.csv")
		assert.Nil(t, os.WriteFile(file, []byte("1,1\n"), 0o644))

		_, err := benchmarkFile(file, instanceDir)

		assert.NotNil(t, err)
	})
}

func TestWriteResults(t *testing.T) {
	results := []benchmarkResult{
		{Filename: "realistic_1_1_sol.csv", Instance: "realistic_1_1", Legs: 2, Shifts: 1, Objective: 960, Feasible: true, DurationMs: 3},
	}
	file := filepath.Join(t.TempDir(), "results.csv")

	assert.Nil(t, writeResults(results, file))

	f, err := os.Open(file)
	assert.Nil(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	assert.Nil(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"filename", "instance", "legs", "shifts", "objective", "feasible", "duration_ms"}, rows[0])
	assert.Equal(t, []string{"realistic_1_1_sol.csv", "realistic_1_1", "2", "1", "960", "true", "3"}, rows[1])
}
