package forest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.75, Accuracy([]int{1, 0, 1, 1}, []int{1, 0, 0, 1}))
	assert.Equal(t, 1.0, Accuracy([]int{0}, []int{0}))
	assert.Equal(t, 0.0, Accuracy(nil, nil))
	assert.Equal(t, 0.0, Accuracy([]int{1}, []int{1, 0}))
}

func TestMeanSquaredError(t *testing.T) {
	assert.InDelta(t, 2.5, MeanSquaredError([]float64{1, 2}, []float64{2, 4}), 1e-12)
	assert.Equal(t, 0.0, MeanSquaredError([]float64{3}, []float64{3}))
	assert.True(t, math.IsNaN(MeanSquaredError(nil, nil)))
}

func TestR2(t *testing.T) {
	truth := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.0, R2(truth, truth), 1e-12)
	assert.InDelta(t, 0.0, R2(truth, []float64{2.5, 2.5, 2.5, 2.5}), 1e-12)
	assert.InDelta(t, 0.8, R2(truth, []float64{1.5, 2.5, 2.5, 3.5}), 1e-12)
	assert.Equal(t, 1.0, R2([]float64{2, 2}, []float64{2, 2}))
	assert.Equal(t, 0.0, R2([]float64{2, 2}, []float64{1, 2}))
}

func TestTrainTestSplit(t *testing.T) {
	train, test, err := TrainTestSplit(31, 0.2, 42)
	require.NoError(t, err)
	assert.Len(t, test, 7)
	assert.Len(t, train, 24)

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		assert.False(t, seen[i], "index %d repeated", i)
		seen[i] = true
	}
	assert.Len(t, seen, 31)

	train2, test2, err := TrainTestSplit(31, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, train, train2)
	assert.Equal(t, test, test2)
}

func TestTrainTestSplit_Invalid(t *testing.T) {
	_, _, err := TrainTestSplit(10, 0, 1)
	assert.Error(t, err)
	_, _, err = TrainTestSplit(10, 1, 1)
	assert.Error(t, err)
	_, _, err = TrainTestSplit(1, 0.2, 1)
	assert.Error(t, err)
}

func TestTake(t *testing.T) {
	assert.Equal(t, []string{"c", "a"}, Take([]string{"a", "b", "c"}, []int{2, 0}))
	assert.Empty(t, Take([]int{1, 2}, nil))
}
