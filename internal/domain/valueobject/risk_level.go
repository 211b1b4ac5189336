package valueobject

import "fmt"

// Probability band boundaries. A band includes its lower bound.
const (
	MediumRiskFloor = 0.20
	HighRiskFloor   = 0.30
)

// RiskLevel is an immutable value object representing the risk classification
// of a scored loan applicant.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "LOW"}
	RiskLevelMedium = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh   = RiskLevel{value: "HIGH"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromProbability buckets a default probability.
// The comparisons run in ascending order; NaN falls through to HIGH.
func RiskLevelFromProbability(p float64) RiskLevel {
	switch {
	case p < MediumRiskFloor:
		return RiskLevelLow
	case p < HighRiskFloor:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}
