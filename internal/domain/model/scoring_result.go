package model

import "github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/valueobject"

// ScoringResult is the outcome of applying the scoring policy to a probability.
// Probability is kept unrounded; use DisplayProbability for output.
type ScoringResult struct {
	Probability   float64
	Decision      valueobject.DefaultDecision
	RiskLevel     valueobject.RiskLevel
	ThresholdUsed float64
}

// DisplayProbability returns the probability rounded for display.
func (r ScoringResult) DisplayProbability() float64 {
	return valueobject.RoundProbability(r.Probability)
}
