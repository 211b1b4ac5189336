package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/valueobject"
)

func TestDecisionFromProbability(t *testing.T) {
	tests := []struct {
		name     string
		p        float64
		expected valueobject.DefaultDecision
	}{
		{"below threshold", 0.2999, valueobject.DecisionNoDefault},
		{"at threshold", 0.30, valueobject.DecisionDefault},
		{"above threshold", 0.75, valueobject.DecisionDefault},
		{"zero", 0, valueobject.DecisionNoDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valueobject.DecisionFromProbability(tt.p, valueobject.HighRiskFloor)
			assert.True(t, tt.expected.Equal(got))
		})
	}
}

func TestDefaultDecisionFromInt(t *testing.T) {
	d, err := valueobject.DefaultDecisionFromInt(1)
	require.NoError(t, err)
	assert.True(t, d.IsDefault())
	assert.Equal(t, 1, d.Int())
	assert.Equal(t, "1", d.String())

	d, err = valueobject.DefaultDecisionFromInt(0)
	require.NoError(t, err)
	assert.False(t, d.IsDefault())

	_, err = valueobject.DefaultDecisionFromInt(2)
	require.Error(t, err)
}
