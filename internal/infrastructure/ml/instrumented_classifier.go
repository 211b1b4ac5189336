package ml

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
)

// InstrumentedClassifier records inference latency and failures.
type InstrumentedClassifier struct {
	next     port.Classifier
	latency  metric.Float64Histogram
	failures metric.Int64Counter
	attrs    metric.MeasurementOption
}

// NewInstrumentedClassifier wraps next. backend labels the measurements.
func NewInstrumentedClassifier(next port.Classifier, meter metric.Meter, backend string) (*InstrumentedClassifier, error) {
	latency, err := meter.Float64Histogram(
		"loanrisk.inference.duration",
		metric.WithDescription("Time spent computing a default probability"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter(
		"loanrisk.inference.failures",
		metric.WithDescription("Inference calls that returned an error"),
	)
	if err != nil {
		return nil, err
	}
	return &InstrumentedClassifier{
		next:     next,
		latency:  latency,
		failures: failures,
		attrs:    metric.WithAttributes(attribute.String("backend", backend)),
	}, nil
}

// PredictProba delegates to the wrapped classifier.
func (c *InstrumentedClassifier) PredictProba(ctx context.Context, features model.FeatureVector) (float64, error) {
	start := time.Now()
	p, err := c.next.PredictProba(ctx, features)
	c.latency.Record(ctx, time.Since(start).Seconds(), c.attrs)
	if err != nil {
		c.failures.Add(ctx, 1, c.attrs)
	}
	return p, err
}
