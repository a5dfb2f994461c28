package validator

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

var breakdownHeader = []string{
	"Employee", "Feasible", "Objective", "W'", "T", "ride", "tour", "split",
	"bus_penalty", "drive_penalty", "rest_penalty",
	"work_time", "unpaid", "upmax", "drive_time", "legs",
}

// WriteBreakdown emits the per-shift objective breakdown as CSV: one row per
// shift with its feasibility, cost and every evaluated component.
func (v *Validator) WriteBreakdown(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("write breakdown %v: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(breakdownHeader); err != nil {
		return fmt.Errorf("write breakdown %v: %w", file, err)
	}
	for _, shift := range v.Solution.Shifts {
		result := shift.Result
		row := []string{
			shift.Name,
			strconv.FormatBool(result.Feasible),
			strconv.Itoa(result.Cost()),
			strconv.Itoa(result.ActualWorkTime),
			strconv.Itoa(result.TotalTime),
			strconv.Itoa(result.Ride),
			strconv.Itoa(result.VehicleChanges),
			strconv.Itoa(result.SplitCount),
			strconv.Itoa(result.BusPenalty),
			strconv.Itoa(result.DrivePenalty),
			strconv.Itoa(result.RestPenalty),
			strconv.Itoa(result.WorkTime),
			strconv.Itoa(result.Unpaid),
			strconv.Itoa(result.Upmax),
			strconv.Itoa(result.DriveTime),
			fmt.Sprintf("%v", shift.LegIDs()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write breakdown %v: %w", file, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
