package valueobject

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// DisplayPrecision is the number of decimal places a probability is rounded to for display.
const DisplayPrecision = 4

// ErrProbabilityOutOfRange is returned for values outside [0, 1] or NaN.
var ErrProbabilityOutOfRange = errors.New("probability out of range")

// Probability is a validated value in the closed interval [0, 1].
type Probability struct {
	value float64
}

// NewProbability validates p.
func NewProbability(p float64) (Probability, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return Probability{}, fmt.Errorf("%w: %v", ErrProbabilityOutOfRange, p)
	}
	return Probability{value: p}, nil
}

// Float64 returns the raw, unrounded value.
func (p Probability) Float64() float64 {
	return p.value
}

// Rounded returns the value rounded to DisplayPrecision places.
func (p Probability) Rounded() float64 {
	return RoundProbability(p.value)
}

// RoundProbability rounds the exact binary value of p to DisplayPrecision
// decimal places, ties to even. 0.28785 is stored just below the tie and
// rounds down to 0.2878.
func RoundProbability(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return p
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(p, 'f', DisplayPrecision, 64), 64)
	if err != nil {
		return p
	}
	return r
}
