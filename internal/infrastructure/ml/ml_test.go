package ml

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/ml/forest"
)

// loanHistory builds a dataset where low credit scores and large loans
// relative to income default.
func loanHistory(n int) model.Dataset {
	ds := model.Dataset{}
	for i := 0; i < n; i++ {
		risky := i%2 == 0
		v := float64(i % 10)
		if risky {
			ds.Features = append(ds.Features, model.FeatureVector{25 + v, 30000 + 100*v, 150000 + 1000*v, 350 + v})
			ds.Defaults = append(ds.Defaults, 1)
		} else {
			ds.Features = append(ds.Features, model.FeatureVector{45 + v, 120000 + 100*v, 20000 + 1000*v, 750 + v})
			ds.Defaults = append(ds.Defaults, 0)
		}
	}
	return ds
}

var (
	riskyApplicant = model.FeatureVector{27, 31000, 152000, 352}
	safeApplicant  = model.FeatureVector{48, 121000, 22000, 752}
)

func trainedClassifier(t *testing.T) (port.Classifier, port.TrainingReport) {
	t.Helper()
	trainer := NewForestTrainer(forest.Params{Trees: 25, Seed: 42}, 0.2)
	clf, report, err := trainer.Train(context.Background(), loanHistory(60))
	require.NoError(t, err)
	return clf, report
}

func TestForestTrainer_Train(t *testing.T) {
	clf, report := trainedClassifier(t)

	assert.Equal(t, 48, report.TrainRows)
	assert.Equal(t, 12, report.TestRows)
	assert.InDelta(t, 1.0, report.Accuracy, 1e-9)

	high, err := clf.PredictProba(context.Background(), riskyApplicant)
	require.NoError(t, err)
	assert.Greater(t, high, 0.8)

	low, err := clf.PredictProba(context.Background(), safeApplicant)
	require.NoError(t, err)
	assert.Less(t, low, 0.2)
}

func TestForestTrainer_RejectsInvalidDataset(t *testing.T) {
	trainer := NewForestTrainer(forest.Params{Trees: 5}, 0.2)

	_, _, err := trainer.Train(context.Background(), model.Dataset{})
	assert.ErrorIs(t, err, model.ErrEmptyDataset)
}

func TestForestClassifier_CancelledContext(t *testing.T) {
	clf, _ := trainedClassifier(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := clf.PredictProba(ctx, riskyApplicant)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewForestClassifier_RequiresFittedModel(t *testing.T) {
	_, err := NewForestClassifier(forest.NewClassifier(forest.Params{}))
	assert.ErrorIs(t, err, forest.ErrNotFitted)
}

func TestFileModelStore_LoadMissing(t *testing.T) {
	store := NewFileModelStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, port.ErrModelNotFound)
}

func TestFileModelStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "loan_default_model.json")
	store := NewFileModelStore(path)
	clf, report := trainedClassifier(t)

	require.NoError(t, store.Save(context.Background(), clf, report))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)

	for _, fv := range []model.FeatureVector{riskyApplicant, safeApplicant, {35, 60000, 80000, 600}} {
		want, err := clf.PredictProba(context.Background(), fv)
		require.NoError(t, err)
		got, err := loaded.PredictProba(context.Background(), fv)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	a, err := LoadArtifact(path, KindLoanDefaultClassifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "income", "loanamount", "creditscore"}, a.Features)
	assert.InDelta(t, report.Accuracy, a.Metrics["accuracy"], 1e-12)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileModelStore_SaveRejectsForeignClassifier(t *testing.T) {
	store := NewFileModelStore(filepath.Join(t.TempDir(), "model.json"))

	err := store.Save(context.Background(), &stubClassifier{}, port.TrainingReport{})
	assert.ErrorContains(t, err, "unsupported classifier type")
}

func TestFileModelStore_LoadCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileModelStore(path).Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, port.ErrModelNotFound))
}

func TestLoadArtifact_WrongKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, SaveArtifact(path, Artifact{
		Kind:    KindUrbanizationRegressor,
		Version: ArtifactVersion,
		Model:   json.RawMessage(`{}`),
	}))

	_, err := LoadArtifact(path, KindLoanDefaultClassifier)
	assert.ErrorContains(t, err, "urbanization_regressor")
}

type stubClassifier struct {
	calls int
	p     float64
	err   error
}

func (s *stubClassifier) PredictProba(_ context.Context, _ model.FeatureVector) (float64, error) {
	s.calls++
	return s.p, s.err
}

func TestCachedClassifier(t *testing.T) {
	stub := &stubClassifier{p: 0.42}
	cached, err := NewCachedClassifier(stub, 2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		p, err := cached.PredictProba(context.Background(), riskyApplicant)
		require.NoError(t, err)
		assert.Equal(t, 0.42, p)
	}
	assert.Equal(t, 1, stub.calls)

	_, err = cached.PredictProba(context.Background(), safeApplicant)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, 2, cached.Len())
}

func TestCachedClassifier_DoesNotCacheErrors(t *testing.T) {
	stub := &stubClassifier{err: errors.New("boom")}
	cached, err := NewCachedClassifier(stub, 4)
	require.NoError(t, err)

	_, err = cached.PredictProba(context.Background(), riskyApplicant)
	require.Error(t, err)
	_, err = cached.PredictProba(context.Background(), riskyApplicant)
	require.Error(t, err)

	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, 0, cached.Len())
}

func TestNewCachedClassifier_InvalidSize(t *testing.T) {
	_, err := NewCachedClassifier(&stubClassifier{}, 0)
	assert.Error(t, err)
}

func TestInstrumentedClassifier(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("test")

	stub := &stubClassifier{p: 0.1}
	clf, err := NewInstrumentedClassifier(stub, meter, "forest")
	require.NoError(t, err)

	_, err = clf.PredictProba(context.Background(), safeApplicant)
	require.NoError(t, err)

	stub.err = errors.New("boom")
	_, err = clf.PredictProba(context.Background(), safeApplicant)
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
			switch data := m.Data.(type) {
			case metricdata.Histogram[float64]:
				require.Len(t, data.DataPoints, 1)
				assert.Equal(t, uint64(2), data.DataPoints[0].Count)
			case metricdata.Sum[int64]:
				require.Len(t, data.DataPoints, 1)
				assert.Equal(t, int64(1), data.DataPoints[0].Value)
			}
		}
	}
	assert.True(t, found["loanrisk.inference.duration"])
	assert.True(t, found["loanrisk.inference.failures"])
}
