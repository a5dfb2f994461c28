package loader

import (
	"fmt"
	"os"
	"strings"

	"bdsp-validator/internal/model"
)

// SolutionFromCSV reads a binary assignment matrix: one row per driver, one
// column per leg in instance order, cell 1 when the leg is assigned. Rows
// with no assigned legs are dropped and the remaining shifts are renumbered
// E0, E1, ... in file order.
func SolutionFromCSV(inst *model.Instance, file string) (*model.Solution, error) {
	rows, err := readCSV(file)
	if err != nil {
		return nil, err
	}

	var shifts []*model.Shift
	counter := 0
	for i, row := range rows {
		if len(row) != len(inst.Legs) {
			return nil, fmt.Errorf("read solution %v: row %v has %v columns, want %v legs",
				file, i, len(row), len(inst.Legs))
		}
		cells, err := numericRow(row)
		if err != nil {
			return nil, fmt.Errorf("read solution %v: row %v: %w", file, i, err)
		}

		var shift *model.Shift
		for column, cell := range cells {
			if cell != 1 {
				continue
			}
			if shift == nil {
				shift = model.NewShift(fmt.Sprintf("E%v", counter))
				counter++
			}
			shift.AddLeg(inst.Legs[column])
		}
		if shift != nil {
			shifts = append(shifts, shift)
		}
	}

	return model.NewSolution(inst, shifts), nil
}

// WriteSolutionCSV emits the solution back out as a binary assignment
// matrix, one row per shift in solution order.
func WriteSolutionCSV(sol *model.Solution, file string) error {
	index := make(map[int]int, len(sol.Instance.Legs))
	for i, leg := range sol.Instance.Legs {
		index[leg.ID] = i
	}

	var out strings.Builder
	for _, shift := range sol.Shifts {
		row := make([]int, len(sol.Instance.Legs))
		for _, leg := range shift.Legs {
			row[index[leg.ID]] = 1
		}
		out.WriteString(joinInts(row) + "\n")
	}
	if err := os.WriteFile(file, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("write solution %v: %w", file, err)
	}
	return nil
}
