package valueobject

import "fmt"

// DefaultDecision is the binary outcome of scoring: 1 predicts a default, 0 does not.
type DefaultDecision struct {
	value int
}

var (
	DecisionNoDefault = DefaultDecision{value: 0}
	DecisionDefault   = DefaultDecision{value: 1}
)

// DefaultDecisionFromInt reconstructs a decision from its wire representation.
func DefaultDecisionFromInt(v int) (DefaultDecision, error) {
	switch v {
	case 0:
		return DecisionNoDefault, nil
	case 1:
		return DecisionDefault, nil
	default:
		return DefaultDecision{}, fmt.Errorf("invalid default decision: %d", v)
	}
}

// DecisionFromProbability returns DecisionDefault when p reaches the threshold.
// It agrees with RiskLevelFromProbability for every input, NaN included.
func DecisionFromProbability(p, threshold float64) DefaultDecision {
	if p < threshold {
		return DecisionNoDefault
	}
	return DecisionDefault
}

// Int returns the wire representation.
func (d DefaultDecision) Int() int {
	return d.value
}

// String returns the string representation.
func (d DefaultDecision) String() string {
	return fmt.Sprintf("%d", d.value)
}

// Equal checks equality with another DefaultDecision.
func (d DefaultDecision) Equal(other DefaultDecision) bool {
	return d.value == other.value
}

// IsDefault returns true if the decision predicts a default.
func (d DefaultDecision) IsDefault() bool {
	return d.value == 1
}
