package ml

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml/forest"
)

func TestUrbanizationData(t *testing.T) {
	x, y := UrbanizationData()
	require.Len(t, x, 31)
	require.Len(t, y, 31)
	assert.Equal(t, []float64{167640}, x[0])
	assert.InDelta(t, 86.50, y[0], 1e-9)

	// The caller owns the returned slices.
	y[0] = 0
	_, fresh := UrbanizationData()
	assert.InDelta(t, 86.50, fresh[0], 1e-9)
}

func TestTrainUrbanization(t *testing.T) {
	params := forest.Params{Trees: 100, Seed: 42}

	reg, report, err := TrainUrbanization(context.Background(), params, 0.2)
	require.NoError(t, err)

	assert.Equal(t, 24, report.TrainRows)
	assert.Equal(t, 7, report.TestRows)
	assert.GreaterOrEqual(t, report.MSE, 0.0)
	assert.LessOrEqual(t, report.R2, 1.0)

	pred, err := reg.Predict([]float64{150000})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pred, 31.14)
	assert.LessOrEqual(t, pred, 88.13)

	_, again, err := TrainUrbanization(context.Background(), params, 0.2)
	require.NoError(t, err)
	assert.Equal(t, report, again, "same seed gives the same evaluation")
}

func TestTrainUrbanization_BadTestSize(t *testing.T) {
	_, _, err := TrainUrbanization(context.Background(), forest.Params{Trees: 5}, 1)
	assert.Error(t, err)
}

func TestSaveAndLoadRegressor(t *testing.T) {
	reg, report, err := TrainUrbanization(context.Background(), forest.Params{Trees: 10, Seed: 42}, 0.2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "urbanization_growth_model.json")
	require.NoError(t, SaveRegressor(path, reg, report))

	a, err := LoadArtifact(path, KindUrbanizationRegressor)
	require.NoError(t, err)
	assert.Equal(t, []string{UrbanizationFeature}, a.Features)
	assert.InDelta(t, report.MSE, a.Metrics["mse"], 1e-9)

	loaded, err := LoadRegressor(path)
	require.NoError(t, err)

	want, _ := reg.Predict([]float64{150000})
	got, err := loaded.Predict([]float64{150000})
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)

	_, err = LoadArtifact(path, KindLoanDefaultClassifier)
	assert.Error(t, err)
}
