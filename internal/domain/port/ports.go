package port

import (
	"context"
	"errors"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/events"
)

// ErrModelNotFound is returned by ModelStore.Load when no artifact exists yet.
var ErrModelNotFound = errors.New("model artifact not found")

// Classifier is the model provider: a trained binary classifier that returns
// the probability of default (class 1) for a feature vector.
type Classifier interface {
	PredictProba(ctx context.Context, features model.FeatureVector) (float64, error)
}

// TrainingReport summarises a training run.
type TrainingReport struct {
	TrainRows int
	TestRows  int
	Accuracy  float64
}

// ClassifierTrainer fits a new classifier on a labeled dataset and evaluates
// it on a held-out split.
type ClassifierTrainer interface {
	Train(ctx context.Context, dataset model.Dataset) (Classifier, TrainingReport, error)
}

// ModelStore persists trained classifiers between process runs.
type ModelStore interface {
	// Load returns ErrModelNotFound when nothing has been saved.
	Load(ctx context.Context) (Classifier, error)
	Save(ctx context.Context, classifier Classifier, report TrainingReport) error
}

// DatasetLoader reads the labeled loan history.
type DatasetLoader interface {
	Load(ctx context.Context) (model.Dataset, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// PredictionRecorder records prediction outcomes for monitoring.
type PredictionRecorder interface {
	RecordPrediction(ctx context.Context, riskLevel string, decision int)
}
