package scoring

import "fmt"

// Policy selects the credit rule applied to marked cells.
type Policy int

const (
	// Strict awards 1 point per marked cell whose column is in the key's
	// correct set, nothing otherwise. Subject scores are integers.
	Strict Policy = iota

	// Flexible awards 1 point for a correct mark and 0.5 for a mark in a
	// wrong column when the question has at least one correct column,
	// modeling generous grading of near-miss selections on multi-correct
	// questions. Subject scores may be fractional.
	Flexible

	// Penalty awards 1 point for a correct mark and deducts 0.25 for a
	// mark in a wrong column. Unmarked cells are never penalized.
	Penalty
)

// String returns the policy name used in configuration and reports.
func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Flexible:
		return "flexible"
	case Penalty:
		return "penalty"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy converts a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "strict", "":
		return Strict, nil
	case "flexible":
		return Flexible, nil
	case "penalty":
		return Penalty, nil
	default:
		return Strict, fmt.Errorf("scoring: unknown policy %q", s)
	}
}

// credit returns the points a single marked cell earns.
// correct: the marked column is in the key's correct set.
// hasCorrect: the question has at least one correct column.
func (p Policy) credit(correct, hasCorrect bool) float64 {
	if correct {
		return 1.0
	}
	if !hasCorrect {
		return 0
	}
	switch p {
	case Flexible:
		return 0.5
	case Penalty:
		return -0.25
	default:
		return 0
	}
}

// integral reports whether subject scores are rounded to whole points.
func (p Policy) integral() bool {
	return p == Strict
}
