package valueobject_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/valueobject"
)

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "LOW", valueobject.RiskLevelLow.String())
	assert.Equal(t, "MEDIUM", valueobject.RiskLevelMedium.String())
	assert.Equal(t, "HIGH", valueobject.RiskLevelHigh.String())
}

func TestRiskLevel_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskLevel
		wantErr  bool
	}{
		{"LOW", valueobject.RiskLevelLow, false},
		{"MEDIUM", valueobject.RiskLevelMedium, false},
		{"HIGH", valueobject.RiskLevelHigh, false},
		{"CRITICAL", valueobject.RiskLevel{}, true},
		{"low", valueobject.RiskLevel{}, true},
		{"", valueobject.RiskLevel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskLevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestRiskLevel_FromProbability(t *testing.T) {
	tests := []struct {
		name     string
		expected valueobject.RiskLevel
		p        float64
	}{
		{name: "0 is LOW", expected: valueobject.RiskLevelLow, p: 0},
		{name: "0.05 is LOW", expected: valueobject.RiskLevelLow, p: 0.05},
		{name: "0.1999 is LOW", expected: valueobject.RiskLevelLow, p: 0.1999},
		{name: "0.20 is MEDIUM", expected: valueobject.RiskLevelMedium, p: 0.20},
		{name: "0.25 is MEDIUM", expected: valueobject.RiskLevelMedium, p: 0.25},
		{name: "0.2999 is MEDIUM", expected: valueobject.RiskLevelMedium, p: 0.2999},
		{name: "0.30 is HIGH", expected: valueobject.RiskLevelHigh, p: 0.30},
		{name: "0.9999 is HIGH", expected: valueobject.RiskLevelHigh, p: 0.9999},
		{name: "1 is HIGH", expected: valueobject.RiskLevelHigh, p: 1},
		{name: "NaN is HIGH", expected: valueobject.RiskLevelHigh, p: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valueobject.RiskLevelFromProbability(tt.p)
			assert.True(t, tt.expected.Equal(result),
				"expected %s for probability %v, got %s", tt.expected.String(), tt.p, result.String())
		})
	}
}

func TestRiskLevel_Equal(t *testing.T) {
	assert.True(t, valueobject.RiskLevelLow.Equal(valueobject.RiskLevelLow))
	assert.False(t, valueobject.RiskLevelLow.Equal(valueobject.RiskLevelHigh))
}

func TestRiskLevel_IsZero(t *testing.T) {
	var zero valueobject.RiskLevel
	assert.True(t, zero.IsZero())
	assert.False(t, valueobject.RiskLevelLow.IsZero())
}

func TestRiskLevel_MarshalText(t *testing.T) {
	b, err := valueobject.RiskLevelMedium.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", string(b))
}
