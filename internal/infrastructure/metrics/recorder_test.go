package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestPredictionRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	rec, err := NewPredictionRecorder(meter)
	require.NoError(t, err)

	ctx := context.Background()
	rec.RecordPrediction(ctx, "HIGH", 1)
	rec.RecordPrediction(ctx, "HIGH", 1)
	rec.RecordPrediction(ctx, "LOW", 0)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	m := rm.ScopeMetrics[0].Metrics[0]
	assert.Equal(t, "loanrisk.predictions", m.Name)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		level, _ := dp.Attributes.Value(attribute.Key("risk_level"))
		counts[level.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"HIGH": 2, "LOW": 1}, counts)
}
