package event

import (
	"github.com/google/uuid"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/events"
)

const (
	// EventTypePredictionScored is emitted for every scored applicant.
	EventTypePredictionScored = "loanrisk.prediction.scored"

	// EventTypeHighRiskDetected is emitted when an applicant lands in the HIGH band.
	EventTypeHighRiskDetected = "loanrisk.high_risk.detected"

	// AggregateTypeAssessment names the aggregate that produces these events.
	AggregateTypeAssessment = "DefaultAssessment"
)

// PredictionScored is published after a loan applicant has been scored.
type PredictionScored struct {
	events.BaseEvent
	Age           int     `json:"age"`
	Income        float64 `json:"income"`
	LoanAmount    float64 `json:"loan_amount"`
	CreditScore   float64 `json:"credit_score"`
	Probability   float64 `json:"default_probability"`
	Decision      int     `json:"default_prediction"`
	RiskLevel     string  `json:"risk_level"`
	ThresholdUsed float64 `json:"threshold_used"`
}

// NewPredictionScored creates a PredictionScored event.
func NewPredictionScored(
	assessmentID uuid.UUID,
	age int,
	income, loanAmount, creditScore float64,
	probability float64,
	decision int,
	riskLevel string,
	threshold float64,
) PredictionScored {
	return PredictionScored{
		BaseEvent:     events.NewBaseEvent(EventTypePredictionScored, assessmentID, AggregateTypeAssessment),
		Age:           age,
		Income:        income,
		LoanAmount:    loanAmount,
		CreditScore:   creditScore,
		Probability:   probability,
		Decision:      decision,
		RiskLevel:     riskLevel,
		ThresholdUsed: threshold,
	}
}

// HighRiskDetected is published when an applicant's default probability
// reaches the decision threshold.
type HighRiskDetected struct {
	events.BaseEvent
	Probability float64 `json:"default_probability"`
	LoanAmount  float64 `json:"loan_amount"`
}

// NewHighRiskDetected creates a HighRiskDetected event.
func NewHighRiskDetected(assessmentID uuid.UUID, probability, loanAmount float64) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:   events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, AggregateTypeAssessment),
		Probability: probability,
		LoanAmount:  loanAmount,
	}
}
