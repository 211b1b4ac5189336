// Package onnx serves a loan default classifier exported to ONNX, such as a
// scikit-learn pipeline converted with zipmap disabled.
package onnx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
)

// Tensor names of the exported graph.
const (
	InputName  = "float_input"
	OutputName = "probabilities"
)

// SharedLibraryEnv overrides the onnxruntime library location.
const SharedLibraryEnv = "ONNXRUNTIME_SHARED_LIBRARY_PATH"

var errClosed = errors.New("onnx classifier is closed")

// Classifier runs a [1,4] float32 input through an ONNX session and reads
// P(default) from column 1 of the [1,2] probabilities output. A session owns
// its tensors, so calls are serialised.
type Classifier struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// Load opens the model at modelPath. libraryPath may be empty, in which case
// the library is looked up via ONNXRUNTIME_SHARED_LIBRARY_PATH and the usual
// system directories.
func Load(modelPath, libraryPath string) (*Classifier, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("onnx model missing at %s: %w", modelPath, err)
	}

	if libraryPath == "" {
		libraryPath = resolveSharedLibraryPath(filepath.Dir(modelPath))
	}
	if libraryPath == "" {
		return nil, fmt.Errorf("onnxruntime shared library not found; set %s or install the runtime", SharedLibraryEnv)
	}
	ort.SetSharedLibraryPath(libraryPath)
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, model.FeatureCount))
	if err != nil {
		return nil, fmt.Errorf("allocate input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 2))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{InputName},
		[]string{OutputName},
		[]ort.Value{input},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &Classifier{session: session, input: input, output: output}, nil
}

// PredictProba implements port.Classifier.
func (c *Classifier) PredictProba(ctx context.Context, features model.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return 0, errClosed
	}

	copy(c.input.GetData(), float32Features(features))
	if err := c.session.Run(); err != nil {
		return 0, fmt.Errorf("onnx run: %w", err)
	}
	return float64(c.output.GetData()[1]), nil
}

// Close releases the session and its tensors.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	err := c.session.Destroy()
	c.input.Destroy()
	c.output.Destroy()
	c.session = nil
	return err
}

func float32Features(features model.FeatureVector) []float32 {
	out := make([]float32, len(features))
	for i, v := range features {
		out[i] = float32(v)
	}
	return out
}

// resolveSharedLibraryPath finds a platform onnxruntime library. The
// environment override wins over the probed locations.
func resolveSharedLibraryPath(modelDir string) string {
	if env := strings.TrimSpace(os.Getenv(SharedLibraryEnv)); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.so",
		"onnxruntime.so",
		"libonnxruntime.dylib",
		"onnxruntime.dll",
	}
	dirs := []string{
		modelDir,
		filepath.Join(modelDir, "lib"),
		".",
		"/usr/local/lib",
		"/usr/lib",
		"/opt/homebrew/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
