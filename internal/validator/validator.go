package validator

import (
	"fmt"
	"log"

	"github.com/samber/lo"

	"bdsp-validator/internal/model"
)

// Validator runs the solution-level checks for one instance/solution pair:
// leg coverage, per-shift feasibility and the cached-objective cross-check.
// Checks never short-circuit, so a single run reports every violation found.
type Validator struct {
	Instance *model.Instance
	Solution *model.Solution
	Errors   []Error
}

// New builds a validator and evaluates the solution once, so shift results
// and the cached value are populated before any check runs.
func New(inst *model.Instance, sol *model.Solution) *Validator {
	sol.Evaluate()
	return &Validator{Instance: inst, Solution: sol}
}

// Validate runs all checks and returns the overall verdict.
func (v *Validator) Validate() bool {
	legsOK := v.ValidateLegs()
	shiftsOK := v.ValidateShifts()
	objectiveOK := v.ValidateObjective()
	return legsOK && shiftsOK && objectiveOK
}

// ValidateLegs checks that the multiset union of legs across all shifts
// equals the instance leg set exactly once each. Unassigned and duplicated
// legs are both reported; either alone invalidates the solution.
func (v *Validator) ValidateLegs() bool {
	counts := v.Solution.LegCounts()

	var unassigned, duplicates []int
	for _, leg := range v.Instance.Legs {
		switch {
		case counts[leg.ID] == 0:
			unassigned = append(unassigned, leg.ID)
		case counts[leg.ID] > 1:
			duplicates = append(duplicates, leg.ID)
		}
	}

	if len(unassigned) > 0 {
		v.report(Coverage, fmt.Sprintf("unassigned legs: %v", unassigned))
	}
	if len(duplicates) > 0 {
		v.report(Coverage, fmt.Sprintf("duplicate legs: %v", duplicates))
	}
	return len(unassigned) == 0 && len(duplicates) == 0
}

// ValidateShifts checks that every shift satisfies the hard constraints.
func (v *Validator) ValidateShifts() bool {
	valid := true
	for _, shift := range v.Solution.Shifts {
		if !shift.Result.Feasible {
			valid = false
			v.report(Feasibility, fmt.Sprintf("shift %v is not feasible", shift.Name))
		}
	}
	return valid
}

// ValidateObjective cross-checks the cached solution value against a fresh
// recomputation of every shift. The recomputation goes through the pure
// evaluator so the cache under test is left untouched.
func (v *Validator) ValidateObjective() bool {
	calculated := lo.SumBy(v.Solution.Shifts, func(shift *model.Shift) int {
		return model.EvaluateShift(v.Instance, shift.Legs).Cost()
	})
	if v.Solution.Value != calculated {
		v.report(Consistency, fmt.Sprintf("objective value %v does not match the calculated value %v",
			v.Solution.Value, calculated))
		return false
	}
	return true
}

// Report logs every accumulated finding.
func (v *Validator) Report() {
	if len(v.Errors) == 0 {
		log.Print("no validation errors found")
		return
	}
	log.Print("validation errors:")
	for _, err := range v.Errors {
		log.Printf("  [%v] %v", err.Kind, err.Message)
	}
}

// ErrorMessages returns the accumulated findings as plain strings, in the
// order they were found.
func (v *Validator) ErrorMessages() []string {
	return lo.Map(v.Errors, func(err Error, _ int) string { return err.Message })
}

func (v *Validator) report(kind Kind, message string) {
	v.Errors = append(v.Errors, Error{Kind: kind, Message: message})
}
