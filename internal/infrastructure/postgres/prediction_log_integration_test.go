//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/event"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/valueobject"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/testutil"
)

func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "..", "migrations")
}

func TestPredictionLog_PublishAndRecent(t *testing.T) {
	ctx := context.Background()

	pg := testutil.NewPostgresContainer(ctx, t)
	defer pg.Cleanup(t)
	pg.RunMigrations(t, migrationsDir())

	log := NewPredictionLog(pg.Pool)

	low := event.NewPredictionScored(uuid.New(), 56, 85994, 50587, 520, 0.05, 0, "LOW", 0.3)
	high := event.NewPredictionScored(uuid.New(), 46, 84208, 124440, 458, 0.8123, 1, "HIGH", 0.3)

	require.NoError(t, log.Publish(ctx, low, event.NewHighRiskDetected(high.AggregateID(), 0.8123, 124440), high))
	// Replays are ignored.
	require.NoError(t, log.Publish(ctx, high))

	all, err := log.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)

	onlyHigh, err := log.Recent(ctx, "HIGH", 10)
	require.NoError(t, err)
	require.Len(t, onlyHigh, 1)

	got := onlyHigh[0]
	assert.Equal(t, high.AggregateID(), got.ID)
	assert.Equal(t, valueobject.RiskLevelHigh, got.RiskLevel)
	assert.Equal(t, 1, got.DefaultPrediction)
	assert.Equal(t, "0.8123", got.DefaultProbability.StringFixed(4))
	assert.Equal(t, "0.3000", got.ThresholdUsed.StringFixed(4))
}
