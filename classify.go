package tally

import "encoding/json"

// Grade classifies a pass rate into a reporting tier.
type Grade int

const (
	// Critical grade, the lowest tier
	Critical Grade = iota
	// NeedsImprovement grade
	NeedsImprovement
	// Good grade
	Good
	// Excellent grade, the highest tier
	Excellent
)

// String converts a Grade into its display name
func (g Grade) String() string {
	switch g {
	case Excellent:
		return "EXCELLENT"
	case Good:
		return "GOOD"
	case NeedsImprovement:
		return "NEEDS IMPROVEMENT"
	case Critical:
		return "CRITICAL"
	}
	return "UNDEFINED"
}

// MarshalJSON is used convert a Grade object into a JSON representation
func (g Grade) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// MarshalYAML is used convert a Grade object into a YAML representation
func (g Grade) MarshalYAML() (interface{}, error) {
	return g.String(), nil
}

// Color returns the display color associated with the grade.
func (g Grade) Color() string {
	switch g {
	case Excellent:
		return "#28a745"
	case Good:
		return "#ffc107"
	case NeedsImprovement:
		return "#fd7e14"
	default:
		return "#dc3545"
	}
}

// Thresholds holds the inclusive lower bound of each grade tier above
// Critical.
type Thresholds struct {
	Excellent        float64 `json:"excellent"`
	Good             float64 `json:"good"`
	NeedsImprovement float64 `json:"needs_improvement"`
}

// DefaultThresholds returns the standard grading tiers.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Excellent:        0.95,
		Good:             0.80,
		NeedsImprovement: 0.60,
	}
}

// Classify maps a pass rate onto a Grade. Tiers are checked from the best
// one down and the first matching lower bound wins.
func Classify(passRate float64, thresholds Thresholds) Grade {
	switch {
	case passRate >= thresholds.Excellent:
		return Excellent
	case passRate >= thresholds.Good:
		return Good
	case passRate >= thresholds.NeedsImprovement:
		return NeedsImprovement
	default:
		return Critical
	}
}
