package model

import (
	"fmt"
	"math"
)

// FeatureCount is the width of the classifier input vector.
const FeatureCount = 4

// FeatureNames lists the classifier inputs in vector order.
var FeatureNames = [FeatureCount]string{"age", "income", "loanamount", "creditscore"}

// FeatureVector is the classifier input in FeatureNames order.
type FeatureVector [FeatureCount]float64

// LoanApplicant holds the attributes a default prediction is made from.
type LoanApplicant struct {
	age         int
	income      float64
	loanAmount  float64
	creditScore float64
}

// NewLoanApplicant creates a LoanApplicant. Values are not range checked; the
// classifier was trained on whatever the dataset holds.
func NewLoanApplicant(age int, income, loanAmount, creditScore float64) (LoanApplicant, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"income", income},
		{"loan_amount", loanAmount},
		{"credit_score", creditScore},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return LoanApplicant{}, fmt.Errorf("%s must be a finite number", f.name)
		}
	}

	return LoanApplicant{
		age:         age,
		income:      income,
		loanAmount:  loanAmount,
		creditScore: creditScore,
	}, nil
}

func (a LoanApplicant) Age() int             { return a.age }
func (a LoanApplicant) Income() float64      { return a.income }
func (a LoanApplicant) LoanAmount() float64  { return a.loanAmount }
func (a LoanApplicant) CreditScore() float64 { return a.creditScore }

// Vector returns the applicant as classifier input.
func (a LoanApplicant) Vector() FeatureVector {
	return FeatureVector{float64(a.age), a.income, a.loanAmount, a.creditScore}
}
