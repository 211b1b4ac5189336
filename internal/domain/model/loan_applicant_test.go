package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
)

func TestLoanApplicant_Vector(t *testing.T) {
	a, err := model.NewLoanApplicant(42, 61000.5, 20000, 710)
	require.NoError(t, err)

	assert.Equal(t, model.FeatureVector{42, 61000.5, 20000, 710}, a.Vector())
	assert.Equal(t, 42, a.Age())
	assert.Equal(t, 61000.5, a.Income())
	assert.Equal(t, 20000.0, a.LoanAmount())
	assert.Equal(t, 710.0, a.CreditScore())
}

func TestNewLoanApplicant_Validation(t *testing.T) {
	tests := []struct {
		name        string
		income      float64
		loanAmount  float64
		creditScore float64
		wantErr     string
	}{
		{name: "NaN income", income: math.NaN(), loanAmount: 1, creditScore: 1, wantErr: "income"},
		{name: "infinite loan amount", income: 1, loanAmount: math.Inf(1), creditScore: 1, wantErr: "loan_amount"},
		{name: "infinite credit score", income: 1, loanAmount: 1, creditScore: math.Inf(-1), wantErr: "credit_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewLoanApplicant(30, tt.income, tt.loanAmount, tt.creditScore)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLoanApplicant_AcceptsOutOfDomainValues(t *testing.T) {
	_, err := model.NewLoanApplicant(-1, -500, 0, 0)
	assert.NoError(t, err)
}

func TestDataset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ds      model.Dataset
		wantErr bool
	}{
		{name: "empty", ds: model.Dataset{}, wantErr: true},
		{name: "misaligned", ds: model.Dataset{Features: []model.FeatureVector{{1, 2, 3, 4}}}, wantErr: true},
		{name: "non-binary label", ds: model.Dataset{Features: []model.FeatureVector{{1, 2, 3, 4}}, Defaults: []int{2}}, wantErr: true},
		{name: "valid", ds: model.Dataset{Features: []model.FeatureVector{{1, 2, 3, 4}, {5, 6, 7, 8}}, Defaults: []int{0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.ErrorIs(t, model.Dataset{}.Validate(), model.ErrEmptyDataset)
}

func TestDataset_Matrix(t *testing.T) {
	ds := model.Dataset{
		Features: []model.FeatureVector{{1, 2, 3, 4}, {5, 6, 7, 8}},
		Defaults: []int{0, 1},
	}
	m := ds.Matrix()
	require.Len(t, m, 2)
	assert.Equal(t, []float64{5, 6, 7, 8}, m[1])
	assert.Equal(t, 2, ds.Len())
}
