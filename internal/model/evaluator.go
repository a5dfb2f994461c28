package model

// Labor-regulation and objective constants, in minutes.
const (
	driveMax      = 9 * 60  // driving time cap per shift
	workMax       = 10 * 60 // paid work time cap per shift
	workMin       = 390     // 6.5h minimum paid time floor
	totalMax      = 14 * 60 // shift span cap
	driveBlockMax = 4 * 60  // continuous driving limit between rest credits
	splitMin      = 3 * 60  // gap length at which a transition becomes a split
	hardWeight    = 1000
)

// transition carries the derived variables of one consecutive leg pair.
type transition struct {
	from, to Leg
	ride     int // deadhead travel time from from.EndPos to to.StartPos
	gap      int // raw idle time, negative when the legs overlap
	gapAdj   int // gap minus ride: idle time actually usable as rest
}

// EvaluateShift computes the full result for an ordered list of legs. It is
// pure and deterministic: the same instance and legs always produce an
// identical result. An empty shift is feasible with every field at zero.
//
// The rule steps are order-dependent: the break classification (first15,
// break30, center30, unpaid, upmax) must be complete before work time, which
// feeds the rest penalty, which feeds the hard-constraint total.
func EvaluateShift(inst *Instance, legs []Leg) ShiftResult {
	if len(legs) == 0 {
		return ShiftResult{Feasible: true}
	}

	ev := shiftEvaluation{inst: inst, legs: legs}
	ev.computeTransitions()
	ev.evalShiftTimes()

	ev.evalDriveTime()
	ev.evalRide()
	ev.evalBusPenalty()
	ev.evalVehicleChanges()
	ev.evalDrivePenalty()

	ev.evalFirst15()
	ev.evalBreak30()
	ev.evalUnpaid()
	ev.evalUpmax()
	ev.evalSplits()

	ev.res.WorkTime = ev.res.TotalTime - ev.res.SplitTime - min(ev.res.Unpaid, ev.res.Upmax)
	ev.evalRestPenalty()

	ev.evalObjective()
	ev.evalHardPenalty()

	return ev.res
}

type shiftEvaluation struct {
	inst  *Instance
	legs  []Leg
	trans []transition
	res   ShiftResult
}

func (ev *shiftEvaluation) computeTransitions() {
	ev.trans = make([]transition, 0, len(ev.legs)-1)
	for k := 0; k+1 < len(ev.legs); k++ {
		from, to := ev.legs[k], ev.legs[k+1]
		ride := ev.inst.PassiveRide(from.EndPos, to.StartPos)
		gap := to.Start - from.End
		ev.trans = append(ev.trans, transition{
			from:   from,
			to:     to,
			ride:   ride,
			gap:    gap,
			gapAdj: gap - ride,
		})
	}
}

func (ev *shiftEvaluation) evalShiftTimes() {
	first := ev.legs[0]
	last := ev.legs[len(ev.legs)-1]
	ev.res.StartShift = first.Start - ev.inst.StartWork[first.StartPos]
	ev.res.EndShift = last.End + ev.inst.EndWork[last.EndPos]
	ev.res.TotalTime = ev.res.EndShift - ev.res.StartShift
}

func (ev *shiftEvaluation) evalDriveTime() {
	for _, leg := range ev.legs {
		ev.res.DriveTime += leg.Drive()
	}
}

func (ev *shiftEvaluation) evalRide() {
	for _, tr := range ev.trans {
		ev.res.Ride += tr.ride
	}
}

// evalBusPenalty charges transitions that change vehicle or location without
// leaving enough time for the required repositioning travel. Both terms use
// the raw gap, not the rest-adjusted one.
func (ev *shiftEvaluation) evalBusPenalty() {
	for _, tr := range ev.trans {
		if tr.from.Tour == tr.to.Tour && tr.from.EndPos == tr.to.StartPos {
			continue
		}
		required := ev.inst.Distance[tr.from.EndPos][tr.to.StartPos]
		if tr.gap < required {
			ev.res.BusPenalty += required - tr.gap
		}
		if tr.gap <= 0 {
			ev.res.BusPenalty += -tr.gap
		}
	}
}

func (ev *shiftEvaluation) evalVehicleChanges() {
	for _, tr := range ev.trans {
		if tr.from.Tour != tr.to.Tour {
			ev.res.VehicleChanges++
		}
	}
}

// evalDrivePenalty enforces the continuous-driving regulation: every block
// of at most 4h of driving must be ended by one 30-minute break, two
// 20-minute breaks or three 15-minute breaks. The block accumulator is
// seeded with the first leg and checked after every transition, so minutes
// above the limit keep accruing until a qualifying reset fires.
func (ev *shiftEvaluation) evalDrivePenalty() {
	block := ev.legs[0].Drive()
	count20, count15 := 0, 0
	for _, tr := range ev.trans {
		reset := tr.gap >= 30 ||
			(tr.gap >= 20 && count20 == 1) ||
			(tr.gap >= 15 && count15 == 2)
		if reset {
			block = tr.to.Drive()
			count20, count15 = 0, 0
		} else {
			block += tr.to.Drive()
			if tr.gap >= 20 {
				count20 = 1
			}
			if tr.gap >= 15 {
				count15++
			}
		}
		if block > driveBlockMax {
			ev.res.DrivePenalty += block - driveBlockMax
		}
	}
}

// evalFirst15 looks for a rest break of at least 15 minutes within the first
// 6 hours of the shift. Split time seen so far extends the window, so the
// transitions must be scanned in shift order.
func (ev *shiftEvaluation) evalFirst15() {
	splitTime := 0
	for _, tr := range ev.trans {
		if tr.gapAdj >= splitMin {
			splitTime += tr.gapAdj
			continue
		}
		if tr.gapAdj >= 15 && tr.from.End <= ev.res.StartShift+6*60+splitTime {
			ev.res.First15 = true
			return
		}
	}
}

func (ev *shiftEvaluation) evalBreak30() {
	for _, tr := range ev.trans {
		if tr.gapAdj >= splitMin {
			continue
		}
		if tr.gapAdj >= 30 {
			ev.res.Break30 = true
			return
		}
	}
}

// evalUnpaid sums the unpaid-break minutes falling in the central corridor
// of the shift (2h margins) and flags center30 when a 30-minute break fits
// in the tighter 3h-margin corridor.
func (ev *shiftEvaluation) evalUnpaid() {
	for _, tr := range ev.trans {
		if tr.gapAdj >= splitMin {
			continue
		}
		if min(ev.res.EndShift-3*60, tr.to.Start-tr.ride)-max(ev.res.StartShift+3*60, tr.from.End) >= 30 {
			ev.res.Center30 = true
		}
		breakEnd := min(ev.res.EndShift-2*60, tr.to.Start-tr.ride)
		breakStart := max(ev.res.StartShift+2*60, tr.from.End)
		if breakEnd-breakStart >= 15 {
			ev.res.Unpaid += breakEnd - breakStart
		}
	}
}

func (ev *shiftEvaluation) evalUpmax() {
	switch {
	case !ev.res.Break30 || !ev.res.First15:
		ev.res.Upmax = 0
	case ev.res.Center30:
		ev.res.Upmax = 90
	default:
		ev.res.Upmax = 60
	}
}

func (ev *shiftEvaluation) evalSplits() {
	for _, tr := range ev.trans {
		if tr.gapAdj >= splitMin {
			ev.res.SplitCount++
			ev.res.SplitTime += tr.gapAdj
		}
	}
}

// evalRestPenalty charges shifts longer than 6h of work that lack enough
// qualifying break minutes. Breaks only count at all once the shift has both
// a 30-minute break and a 15-minute break in its first 6 hours.
func (ev *shiftEvaluation) evalRestPenalty() {
	if ev.res.WorkTime < 6*60 {
		return
	}
	restTime := 0
	if ev.res.Break30 && ev.res.First15 {
		for _, tr := range ev.trans {
			if tr.gapAdj >= splitMin {
				continue
			}
			if tr.gapAdj >= 15 {
				restTime += tr.gapAdj
			}
		}
	}
	switch {
	case restTime < 30:
		ev.res.RestPenalty = max(0, ev.res.WorkTime-(6*60-1))
	case restTime < 45:
		ev.res.RestPenalty = max(0, ev.res.WorkTime-9*60)
	}
}

func (ev *shiftEvaluation) evalObjective() {
	ev.res.ActualWorkTime = max(ev.res.WorkTime, workMin)
	ev.res.Objective = 2*ev.res.ActualWorkTime + ev.res.TotalTime +
		ev.res.Ride + 30*ev.res.VehicleChanges + 180*ev.res.SplitCount
}

func (ev *shiftEvaluation) evalHardPenalty() {
	ev.res.HardPenalty = hardWeight * (ev.res.BusPenalty +
		max(ev.res.DriveTime-driveMax, 0) +
		max(ev.res.TotalTime-totalMax, 0) +
		ev.res.DrivePenalty +
		ev.res.RestPenalty +
		max(ev.res.WorkTime-workMax, 0))
	ev.res.Feasible = ev.res.HardPenalty == 0
}
