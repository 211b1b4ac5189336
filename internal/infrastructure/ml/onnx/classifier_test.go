package onnx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
)

func TestLoad_MissingModel(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.onnx"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MissingRuntime(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.onnx")
	require.NoError(t, os.WriteFile(modelPath, []byte("onnx"), 0o600))

	t.Setenv(SharedLibraryEnv, "")
	if resolveSharedLibraryPath(dir) != "" {
		t.Skip("onnxruntime is installed on this host")
	}

	_, err := Load(modelPath, "")
	assert.ErrorContains(t, err, "onnxruntime shared library not found")
}

func TestResolveSharedLibraryPath_EnvWins(t *testing.T) {
	t.Setenv(SharedLibraryEnv, " /opt/ort/libonnxruntime.so ")
	assert.Equal(t, "/opt/ort/libonnxruntime.so", resolveSharedLibraryPath(t.TempDir()))
}

func TestResolveSharedLibraryPath_ModelDir(t *testing.T) {
	t.Setenv(SharedLibraryEnv, "")
	dir := t.TempDir()
	lib := filepath.Join(dir, "libonnxruntime.so")
	require.NoError(t, os.WriteFile(lib, nil, 0o600))

	assert.Equal(t, lib, resolveSharedLibraryPath(dir))
}

func TestFloat32Features(t *testing.T) {
	got := float32Features(model.FeatureVector{35, 50000, 100000, 650.5})
	assert.Equal(t, []float32{35, 50000, 100000, 650.5}, got)
}

func TestClassifier_Closed(t *testing.T) {
	c := &Classifier{}
	require.NoError(t, c.Close())

	_, err := c.PredictProba(context.Background(), model.FeatureVector{})
	assert.ErrorIs(t, err, errClosed)
}
