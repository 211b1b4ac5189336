package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/dto"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
)

// BootstrapModel makes a classifier available before the service accepts
// traffic. The dataset is always loaded and validated; the persisted artifact
// is then used if present, otherwise a classifier is trained and persisted.
type BootstrapModel struct {
	store        port.ModelStore
	loader       port.DatasetLoader
	trainer      port.ClassifierTrainer
	logger       *slog.Logger
	artifactPath string
}

// NewBootstrapModel creates a new BootstrapModel use case.
func NewBootstrapModel(
	store port.ModelStore,
	loader port.DatasetLoader,
	trainer port.ClassifierTrainer,
	artifactPath string,
	logger *slog.Logger,
) *BootstrapModel {
	return &BootstrapModel{
		store:        store,
		loader:       loader,
		trainer:      trainer,
		artifactPath: artifactPath,
		logger:       logger,
	}
}

// Execute returns the serving classifier. Any error is fatal to startup.
func (uc *BootstrapModel) Execute(ctx context.Context) (port.Classifier, dto.ModelInfo, error) {
	ctx, span := tracer.Start(ctx, "BootstrapModel.Execute")
	defer span.End()

	dataset, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, dto.ModelInfo{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	if err := dataset.Validate(); err != nil {
		return nil, dto.ModelInfo{}, fmt.Errorf("invalid dataset: %w", err)
	}

	clf, err := uc.store.Load(ctx)
	if err == nil {
		uc.logger.Info("model loaded from artifact", slog.String("path", uc.artifactPath))
		return clf, dto.ModelInfo{
			Source:   dto.ModelSourceArtifact,
			Path:     uc.artifactPath,
			LoadedAt: time.Now().UTC(),
		}, nil
	}
	if !errors.Is(err, port.ErrModelNotFound) {
		return nil, dto.ModelInfo{}, fmt.Errorf("failed to load model artifact: %w", err)
	}

	uc.logger.Info("no model artifact found, training", slog.String("path", uc.artifactPath))

	start := time.Now()
	clf, report, err := uc.trainer.Train(ctx, dataset)
	if err != nil {
		return nil, dto.ModelInfo{}, fmt.Errorf("failed to train classifier: %w", err)
	}

	uc.logger.Info("model trained",
		slog.Float64("accuracy", report.Accuracy),
		slog.Int("train_rows", report.TrainRows),
		slog.Int("test_rows", report.TestRows),
		slog.Duration("duration", time.Since(start)),
	)

	if err := uc.store.Save(ctx, clf, report); err != nil {
		return nil, dto.ModelInfo{}, fmt.Errorf("failed to save model artifact: %w", err)
	}

	uc.logger.Info("model saved", slog.String("path", uc.artifactPath))

	accuracy := report.Accuracy
	return clf, dto.ModelInfo{
		Source:    dto.ModelSourceTrained,
		Path:      uc.artifactPath,
		Accuracy:  &accuracy,
		TrainRows: report.TrainRows,
		TestRows:  report.TestRows,
		LoadedAt:  time.Now().UTC(),
	}, nil
}
