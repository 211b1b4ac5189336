package testutil

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertDisplayProbability checks that p is a probability rounded to at most
// four decimal places.
func AssertDisplayProbability(t *testing.T, p float64) {
	t.Helper()
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
	scaled := p * 1e4
	assert.InDelta(t, math.Round(scaled), scaled, 1e-6, "probability %v has more than four decimals", p)
}

// DecodeJSON unmarshals body into a T and fails the test on error.
func DecodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", body)
	return v
}
