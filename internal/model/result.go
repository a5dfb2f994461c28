package model

// ShiftResult is the full outcome of evaluating one shift. It is a value:
// every evaluation recomputes the whole struct from scratch, nothing is ever
// patched in place. All durations are minutes.
type ShiftResult struct {
	Feasible bool

	StartShift     int
	EndShift       int
	TotalTime      int
	WorkTime       int
	ActualWorkTime int // paid work time, floored at the 6.5h minimum
	DriveTime      int
	Ride           int
	VehicleChanges int
	SplitCount     int
	SplitTime      int
	Unpaid         int
	Upmax          int

	BusPenalty   int
	DrivePenalty int
	RestPenalty  int

	Objective   int
	HardPenalty int

	// Break classification state, kept for the breakdown report.
	First15  bool
	Break30  bool
	Center30 bool
}

// Cost is the value a shift contributes to the solution objective.
func (r ShiftResult) Cost() int {
	return r.HardPenalty + r.Objective
}
