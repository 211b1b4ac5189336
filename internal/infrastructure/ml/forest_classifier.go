package ml

import (
	"context"
	"fmt"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml/forest"
)

// ForestClassifier adapts a fitted forest.Classifier to port.Classifier.
type ForestClassifier struct {
	model *forest.Classifier
}

// NewForestClassifier wraps a fitted forest classifier.
func NewForestClassifier(m *forest.Classifier) (*ForestClassifier, error) {
	if m == nil || !m.Fitted() {
		return nil, forest.ErrNotFitted
	}
	if m.Features() != model.FeatureCount {
		return nil, fmt.Errorf("classifier expects %d features, model has %d", model.FeatureCount, m.Features())
	}
	return &ForestClassifier{model: m}, nil
}

// PredictProba returns the probability of default for the feature vector.
func (c *ForestClassifier) PredictProba(ctx context.Context, features model.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.model.PredictProba(features[:])
}

// Model returns the underlying forest.
func (c *ForestClassifier) Model() *forest.Classifier {
	return c.model
}

// ForestTrainer implements port.ClassifierTrainer with a random forest. It
// holds out TestSize of the rows, fits on the rest and reports accuracy on
// the held-out rows.
type ForestTrainer struct {
	params   forest.Params
	testSize float64
}

// NewForestTrainer creates a trainer. The split uses params.Seed.
func NewForestTrainer(params forest.Params, testSize float64) *ForestTrainer {
	return &ForestTrainer{params: params, testSize: testSize}
}

// Train fits a classifier on dataset.
func (t *ForestTrainer) Train(ctx context.Context, dataset model.Dataset) (port.Classifier, port.TrainingReport, error) {
	if err := dataset.Validate(); err != nil {
		return nil, port.TrainingReport{}, err
	}

	train, test, err := forest.TrainTestSplit(dataset.Len(), t.testSize, t.params.Seed)
	if err != nil {
		return nil, port.TrainingReport{}, err
	}

	x := dataset.Matrix()
	xTrain, yTrain := forest.Take(x, train), forest.Take(dataset.Defaults, train)
	xTest, yTest := forest.Take(x, test), forest.Take(dataset.Defaults, test)

	m := forest.NewClassifier(t.params)
	if err := m.Fit(ctx, xTrain, yTrain); err != nil {
		return nil, port.TrainingReport{}, fmt.Errorf("fit random forest: %w", err)
	}

	predicted, err := m.PredictBatch(xTest)
	if err != nil {
		return nil, port.TrainingReport{}, fmt.Errorf("evaluate random forest: %w", err)
	}

	clf, err := NewForestClassifier(m)
	if err != nil {
		return nil, port.TrainingReport{}, err
	}

	return clf, port.TrainingReport{
		TrainRows: len(train),
		TestRows:  len(test),
		Accuracy:  forest.Accuracy(yTest, predicted),
	}, nil
}
