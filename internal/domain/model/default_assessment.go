package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/event"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/valueobject"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/events"
)

// ErrAlreadyAssessed is returned when Assess is called twice on the same assessment.
var ErrAlreadyAssessed = errors.New("assessment already scored")

// DefaultAssessment is the aggregate root for a single loan default prediction.
// It lives for the duration of one request and is never persisted.
type DefaultAssessment struct {
	events.EventCollector
	assessedAt time.Time
	createdAt  time.Time
	result     ScoringResult
	applicant  LoanApplicant
	id         uuid.UUID
	assessed   bool
}

// NewDefaultAssessment starts an unscored assessment for applicant.
func NewDefaultAssessment(applicant LoanApplicant) *DefaultAssessment {
	return &DefaultAssessment{
		id:        uuid.New(),
		applicant: applicant,
		createdAt: time.Now().UTC(),
	}
}

// Assess records the scoring result and emits PredictionScored, plus
// HighRiskDetected when the result is in the HIGH band.
func (a *DefaultAssessment) Assess(result ScoringResult) error {
	if a.assessed {
		return ErrAlreadyAssessed
	}

	a.result = result
	a.assessed = true
	a.assessedAt = time.Now().UTC()

	a.Record(event.NewPredictionScored(
		a.id,
		a.applicant.Age(), a.applicant.Income(), a.applicant.LoanAmount(), a.applicant.CreditScore(),
		result.DisplayProbability(),
		result.Decision.Int(),
		result.RiskLevel.String(),
		result.ThresholdUsed,
	))

	if result.RiskLevel.Equal(valueobject.RiskLevelHigh) {
		a.Record(event.NewHighRiskDetected(a.id, result.DisplayProbability(), a.applicant.LoanAmount()))
	}

	return nil
}

// --- Accessors ---

func (a *DefaultAssessment) ID() uuid.UUID            { return a.id }
func (a *DefaultAssessment) Applicant() LoanApplicant { return a.applicant }
func (a *DefaultAssessment) Result() ScoringResult    { return a.result }
func (a *DefaultAssessment) IsAssessed() bool         { return a.assessed }
func (a *DefaultAssessment) AssessedAt() time.Time    { return a.assessedAt }
func (a *DefaultAssessment) CreatedAt() time.Time     { return a.createdAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *DefaultAssessment) DomainEvents() []events.DomainEvent {
	return a.ClearEvents()
}
