package service

import (
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/valueobject"
)

// DecisionThreshold is the probability at or above which a default is predicted.
const DecisionThreshold = valueobject.HighRiskFloor

// ScoringPolicy maps a default probability to a decision and a risk band.
//
//	p < 0.20          LOW     decision 0
//	0.20 <= p < 0.30  MEDIUM  decision 0
//	p >= 0.30         HIGH    decision 1
//
// Classify does not validate its input. Callers reject out-of-range values
// with valueobject.NewProbability first.
type ScoringPolicy struct{}

// NewScoringPolicy creates a ScoringPolicy.
func NewScoringPolicy() *ScoringPolicy {
	return &ScoringPolicy{}
}

// Classify compares the raw probability against the band boundaries.
func (p *ScoringPolicy) Classify(probability float64) model.ScoringResult {
	return model.ScoringResult{
		Probability:   probability,
		Decision:      valueobject.DecisionFromProbability(probability, DecisionThreshold),
		RiskLevel:     valueobject.RiskLevelFromProbability(probability),
		ThresholdUsed: DecisionThreshold,
	}
}

// Threshold returns the decision threshold.
func (p *ScoringPolicy) Threshold() float64 {
	return DecisionThreshold
}
