package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/testutil"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Age", "age"},
		{"  Income ", "income"},
		{"LoanAmount", "loanamount"},
		{"Loan Amount", "loanamount"},
		{"loan_amount", "loanamount"},
		{"Credit Score", "creditscore"},
		{"CreditScore", "creditscore"},
		{"Default", "default"},
		{"Employment Type", "employment_type"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeColumn(tt.input))
		})
	}
}

func TestParseCSV(t *testing.T) {
	input := `LoanID, Age ,Income,Loan Amount,Credit Score,Months Employed,Default
L1,56,85994,50587,520,80,0
L2,46,84208,124440,458,15,1
L3,32,31713,44799,743,0,0.0
`
	ds, err := ParseCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, model.FeatureVector{56, 85994, 50587, 520}, ds.Features[0])
	assert.Equal(t, model.FeatureVector{46, 84208, 124440, 458}, ds.Features[1])
	assert.Equal(t, []int{0, 1, 0}, ds.Defaults)
	assert.NoError(t, ds.Validate())
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty input", input: "", wantErr: "no rows"},
		{name: "header only", input: "age,income,loanamount,creditscore,default\n", wantErr: "no rows"},
		{name: "missing feature column", input: "age,income,creditscore,default\n1,2,3,0\n", wantErr: "missing column: loanamount"},
		{name: "missing target column", input: "age,income,loanamount,creditscore\n1,2,3,4\n", wantErr: "missing column: default"},
		{name: "non-numeric feature", input: "age,income,loanamount,creditscore,default\n1,abc,3,4,0\n", wantErr: "row 1 column income"},
		{name: "empty feature", input: "age,income,loanamount,creditscore,default\n1,2,,4,0\n", wantErr: "row 1 column loanamount"},
		{name: "non-binary target", input: "age,income,loanamount,creditscore,default\n1,2,3,4,2\n", wantErr: "row 1 column default"},
		{name: "short row", input: "age,income,loanamount,creditscore,default\n1,2,3\n", wantErr: "read row 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseCSV_MissingColumnIsSentinel(t *testing.T) {
	_, err := ParseCSV(context.Background(), strings.NewReader("age\n1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"1.0", 1, false},
		{" 0 ", 0, false},
		{"true", 1, false},
		{"FALSE", 0, false},
		{"yes", 0, true},
		{"-1", 0, true},
		{"0.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLabel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCSVLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan_default.csv")
	require.NoError(t, os.WriteFile(path, []byte("Age,Income,LoanAmount,CreditScore,Default\n30,40000,10000,600,1\n"), 0o600))

	ds, err := NewCSVLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, []int{1}, ds.Defaults)
}

func TestCSVLoader_LoanHistoryFixture(t *testing.T) {
	path := testutil.WriteLoanHistoryCSV(t, t.TempDir())

	ds, err := NewCSVLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, ds.Validate())
	assert.Equal(t, testutil.LoanHistoryRows, ds.Len())
	assert.Equal(t, model.FeatureVector{40, 57544, 106500, 349}, ds.Features[0])

	defaults := 0
	for _, y := range ds.Defaults {
		defaults += y
	}
	assert.Equal(t, 17, defaults)
}

func TestCSVLoader_MissingFile(t *testing.T) {
	_, err := NewCSVLoader(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
