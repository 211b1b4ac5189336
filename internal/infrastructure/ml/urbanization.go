package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml/forest"
)

// UrbanizationFeature is the single regressor input.
const UrbanizationFeature = "gdp_per_capita"

var (
	gdpPerCapita = []float64{
		167640, 90176, 47691, 47334, 68357, 57713, 45753, 36518,
		72619, 57051, 127285, 110450, 60763, 55061, 73297, 60391,
		49206, 110506, 96138, 159385, 44671, 80027, 58029, 50474,
		54285, 67545, 34059, 49455, 56445, 54684, 58557,
	}
	urbanizationRate = []float64{
		86.50, 83.15, 56.43, 58.41, 62.71, 68.10, 56.98, 59.55,
		61.18, 51.71, 69.61, 68.90, 54.69, 56.00, 60.30, 56.02,
		47.52, 65.82, 70.70, 88.13, 50.22, 65.50, 52.29, 47.69,
		31.14, 58.13, 47.69, 54.47, 58.88, 50.91, 59.06,
	}
)

// UrbanizationData returns the built-in GDP per capita and urbanization rate
// observations as a one-column feature matrix and target vector.
func UrbanizationData() (x [][]float64, y []float64) {
	x = make([][]float64, len(gdpPerCapita))
	for i, gdp := range gdpPerCapita {
		x[i] = []float64{gdp}
	}
	return x, append([]float64(nil), urbanizationRate...)
}

// RegressionReport summarizes a held-out evaluation.
type RegressionReport struct {
	TrainRows int
	TestRows  int
	MSE       float64
	R2        float64
}

// TrainUrbanization fits a forest regressor on the built-in data, holding out
// testSize of the rows for evaluation.
func TrainUrbanization(ctx context.Context, params forest.Params, testSize float64) (*forest.Regressor, RegressionReport, error) {
	x, y := UrbanizationData()

	train, test, err := forest.TrainTestSplit(len(y), testSize, params.Seed)
	if err != nil {
		return nil, RegressionReport{}, err
	}

	reg := forest.NewRegressor(params)
	if err := reg.Fit(ctx, forest.Take(x, train), forest.Take(y, train)); err != nil {
		return nil, RegressionReport{}, fmt.Errorf("fit random forest regressor: %w", err)
	}

	yTest := forest.Take(y, test)
	predicted, err := reg.PredictBatch(forest.Take(x, test))
	if err != nil {
		return nil, RegressionReport{}, fmt.Errorf("evaluate random forest regressor: %w", err)
	}

	return reg, RegressionReport{
		TrainRows: len(train),
		TestRows:  len(test),
		MSE:       forest.MeanSquaredError(yTest, predicted),
		R2:        forest.R2(yTest, predicted),
	}, nil
}

// SaveRegressor writes reg and its evaluation to path.
func SaveRegressor(path string, reg *forest.Regressor, report RegressionReport) error {
	body, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encode regressor: %w", err)
	}
	return SaveArtifact(path, Artifact{
		Kind:      KindUrbanizationRegressor,
		Version:   ArtifactVersion,
		Features:  []string{UrbanizationFeature},
		CreatedAt: time.Now().UTC(),
		Metrics: map[string]float64{
			"mse":        report.MSE,
			"r2":         report.R2,
			"train_rows": float64(report.TrainRows),
			"test_rows":  float64(report.TestRows),
		},
		Model: body,
	})
}

// LoadRegressor reads a regressor written by SaveRegressor.
func LoadRegressor(path string) (*forest.Regressor, error) {
	a, err := LoadArtifact(path, KindUrbanizationRegressor)
	if err != nil {
		return nil, err
	}
	reg := forest.NewRegressor(forest.Params{})
	if err := json.Unmarshal(a.Model, reg); err != nil {
		return nil, err
	}
	return reg, nil
}
