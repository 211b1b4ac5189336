package usecase_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/events"
)

// --- Mock implementations ---

type mockClassifier struct {
	probability  float64
	err          error
	lastFeatures model.FeatureVector
	calls        int
}

func (m *mockClassifier) PredictProba(_ context.Context, features model.FeatureVector) (float64, error) {
	m.calls++
	m.lastFeatures = features
	return m.probability, m.err
}

type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type recordedPrediction struct {
	riskLevel string
	decision  int
}

type mockRecorder struct {
	records []recordedPrediction
}

func (m *mockRecorder) RecordPrediction(_ context.Context, riskLevel string, decision int) {
	m.records = append(m.records, recordedPrediction{riskLevel: riskLevel, decision: decision})
}

type mockModelStore struct {
	loadFunc  func(ctx context.Context) (port.Classifier, error)
	saveErr   error
	saved     port.Classifier
	saveCalls int
	loadCalls int
}

func (m *mockModelStore) Load(ctx context.Context) (port.Classifier, error) {
	m.loadCalls++
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return nil, port.ErrModelNotFound
}

func (m *mockModelStore) Save(_ context.Context, clf port.Classifier, _ port.TrainingReport) error {
	m.saveCalls++
	m.saved = clf
	return m.saveErr
}

type mockDatasetLoader struct {
	dataset model.Dataset
	err     error
	calls   int
}

func (m *mockDatasetLoader) Load(_ context.Context) (model.Dataset, error) {
	m.calls++
	return m.dataset, m.err
}

type mockTrainer struct {
	classifier port.Classifier
	report     port.TrainingReport
	err        error
	calls      int
}

func (m *mockTrainer) Train(_ context.Context, _ model.Dataset) (port.Classifier, port.TrainingReport, error) {
	m.calls++
	return m.classifier, m.report, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}
