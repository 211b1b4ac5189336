package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml/forest"
)

// Artifact kinds.
const (
	KindLoanDefaultClassifier = "loan_default_classifier"
	KindUrbanizationRegressor = "urbanization_regressor"
)

// ArtifactVersion is the current artifact envelope version.
const ArtifactVersion = 1

// Artifact is the on-disk envelope around a serialized model.
type Artifact struct {
	Kind      string             `json:"kind"`
	Version   int                `json:"version"`
	Features  []string           `json:"features"`
	CreatedAt time.Time          `json:"created_at"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Model     json.RawMessage    `json:"model"`
}

// SaveArtifact writes a to path. The file is written to a temporary sibling
// and renamed into place so readers never observe a partial artifact.
func SaveArtifact(path string, a Artifact) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads the artifact at path and checks its kind. A missing file
// yields an error wrapping fs.ErrNotExist.
func LoadArtifact(path, kind string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, err
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return Artifact{}, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	if a.Kind != kind {
		return Artifact{}, fmt.Errorf("artifact %s has kind %q, want %q", path, a.Kind, kind)
	}
	if a.Version != ArtifactVersion {
		return Artifact{}, fmt.Errorf("artifact %s has unsupported version %d", path, a.Version)
	}
	return a, nil
}

// FileModelStore implements port.ModelStore on a single JSON artifact file.
type FileModelStore struct {
	path string
}

// NewFileModelStore creates a store for the artifact at path.
func NewFileModelStore(path string) *FileModelStore {
	return &FileModelStore{path: path}
}

// Path returns the artifact location.
func (s *FileModelStore) Path() string {
	return s.path
}

// Load restores the persisted classifier.
func (s *FileModelStore) Load(ctx context.Context) (port.Classifier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a, err := LoadArtifact(s.path, KindLoanDefaultClassifier)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, port.ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}

	var m forest.Classifier
	if err := json.Unmarshal(a.Model, &m); err != nil {
		return nil, fmt.Errorf("decode classifier from %s: %w", s.path, err)
	}
	return NewForestClassifier(&m)
}

// Save persists classifier, which must be a *ForestClassifier.
func (s *FileModelStore) Save(ctx context.Context, classifier port.Classifier, report port.TrainingReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fc, ok := classifier.(*ForestClassifier)
	if !ok {
		return fmt.Errorf("unsupported classifier type %T", classifier)
	}

	raw, err := json.Marshal(fc.Model())
	if err != nil {
		return fmt.Errorf("encode classifier: %w", err)
	}

	return SaveArtifact(s.path, Artifact{
		Kind:      KindLoanDefaultClassifier,
		Version:   ArtifactVersion,
		Features:  model.FeatureNames[:],
		CreatedAt: time.Now().UTC(),
		Metrics: map[string]float64{
			"accuracy":   report.Accuracy,
			"train_rows": float64(report.TrainRows),
			"test_rows":  float64(report.TestRows),
		},
		Model: raw,
	})
}
