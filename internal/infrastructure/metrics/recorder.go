package metrics

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PredictionRecorder counts predictions by risk level and decision.
type PredictionRecorder struct {
	predictions metric.Int64Counter
}

// NewPredictionRecorder registers the prediction counter on meter.
func NewPredictionRecorder(meter metric.Meter) (*PredictionRecorder, error) {
	counter, err := meter.Int64Counter(
		"loanrisk.predictions",
		metric.WithDescription("Scored loan applicants"),
		metric.WithUnit("{prediction}"),
	)
	if err != nil {
		return nil, err
	}
	return &PredictionRecorder{predictions: counter}, nil
}

// RecordPrediction implements port.PredictionRecorder.
func (r *PredictionRecorder) RecordPrediction(ctx context.Context, riskLevel string, decision int) {
	r.predictions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("risk_level", riskLevel),
		attribute.String("default_prediction", strconv.Itoa(decision)),
	))
}
