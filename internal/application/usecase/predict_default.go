package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/dto"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/service"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/valueobject"
)

// ErrInvalidApplicant is returned when the request cannot form a LoanApplicant.
var ErrInvalidApplicant = errors.New("invalid applicant")

var tracer = otel.Tracer("github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/usecase")

// PredictDefault scores a loan applicant: model probability, then policy.
type PredictDefault struct {
	classifier port.Classifier
	policy     *service.ScoringPolicy
	publisher  port.EventPublisher
	recorder   port.PredictionRecorder
	logger     *slog.Logger
}

// NewPredictDefault creates a new PredictDefault use case. recorder may be nil.
func NewPredictDefault(
	classifier port.Classifier,
	policy *service.ScoringPolicy,
	publisher port.EventPublisher,
	recorder port.PredictionRecorder,
	logger *slog.Logger,
) *PredictDefault {
	return &PredictDefault{
		classifier: classifier,
		policy:     policy,
		publisher:  publisher,
		recorder:   recorder,
		logger:     logger,
	}
}

// Execute predicts the default probability, rejects values outside [0, 1],
// classifies the raw value and publishes the resulting domain events.
// Publishing is best effort: a failure is logged and the response is still returned.
func (uc *PredictDefault) Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error) {
	ctx, span := tracer.Start(ctx, "PredictDefault.Execute")
	defer span.End()

	// 1. Build the applicant.
	applicant, err := model.NewLoanApplicant(req.Age, req.Income, req.LoanAmount, req.CreditScore)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return dto.PredictResponse{}, fmt.Errorf("%w: %v", ErrInvalidApplicant, err)
	}

	// 2. Ask the model provider.
	raw, err := uc.classifier.PredictProba(ctx, applicant.Vector())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prediction failed")
		return dto.PredictResponse{}, fmt.Errorf("failed to predict default probability: %w", err)
	}

	probability, err := valueobject.NewProbability(raw)
	if err != nil {
		uc.logger.ErrorContext(ctx, "classifier returned invalid probability",
			slog.Float64("probability", raw),
		)
		span.SetStatus(codes.Error, err.Error())
		return dto.PredictResponse{}, err
	}

	// 3. Apply the scoring policy to the unrounded value.
	result := uc.policy.Classify(probability.Float64())

	assessment := model.NewDefaultAssessment(applicant)
	if err := assessment.Assess(result); err != nil {
		return dto.PredictResponse{}, fmt.Errorf("failed to assess applicant: %w", err)
	}

	span.SetAttributes(
		attribute.String("prediction.id", assessment.ID().String()),
		attribute.String("prediction.risk_level", result.RiskLevel.String()),
		attribute.Int("prediction.decision", result.Decision.Int()),
	)

	if uc.recorder != nil {
		uc.recorder.RecordPrediction(ctx, result.RiskLevel.String(), result.Decision.Int())
	}

	// 4. Publish domain events.
	if evts := assessment.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.WarnContext(ctx, "failed to publish prediction events",
				slog.String("prediction_id", assessment.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}

	uc.logger.DebugContext(ctx, "applicant scored",
		slog.String("prediction_id", assessment.ID().String()),
		slog.Float64("probability", result.Probability),
		slog.String("risk_level", result.RiskLevel.String()),
	)

	return dto.FromAssessment(assessment), nil
}
