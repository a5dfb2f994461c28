package validator

import "fmt"

// Kind classifies a validation finding.
type Kind int

const (
	// Structural: missing input file, malformed matrix dimensions or an
	// out-of-range position index. Fatal for the affected file.
	Structural Kind = iota
	// Coverage: a leg unassigned or assigned more than once.
	Coverage
	// Feasibility: a shift violates a hard labor constraint.
	Feasibility
	// Consistency: the cached solution value disagrees with a fresh
	// recomputation, which indicates a caller bug rather than a domain
	// violation.
	Consistency
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Coverage:
		return "coverage"
	case Feasibility:
		return "feasibility"
	case Consistency:
		return "consistency"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is one validation finding. Non-structural findings are accumulated
// in order and surfaced together at the end of a run.
type Error struct {
	Kind    Kind
	Message string
}

func (e Error) Error() string {
	return e.Message
}
