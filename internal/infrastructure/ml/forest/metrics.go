package forest

import "math"

// Accuracy returns the fraction of predictions equal to the truth.
func Accuracy(truth, predicted []int) float64 {
	if len(truth) == 0 || len(truth) != len(predicted) {
		return 0
	}
	correct := 0
	for i := range truth {
		if truth[i] == predicted[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth))
}

// MeanSquaredError returns the mean of squared residuals.
func MeanSquaredError(truth, predicted []float64) float64 {
	if len(truth) == 0 || len(truth) != len(predicted) {
		return math.NaN()
	}
	var sum float64
	for i := range truth {
		d := truth[i] - predicted[i]
		sum += d * d
	}
	return sum / float64(len(truth))
}

// R2 returns the coefficient of determination. When the truth is constant it
// returns 1 for a perfect prediction and 0 otherwise.
func R2(truth, predicted []float64) float64 {
	if len(truth) == 0 || len(truth) != len(predicted) {
		return math.NaN()
	}
	var mean float64
	for _, v := range truth {
		mean += v
	}
	mean /= float64(len(truth))

	var ssRes, ssTot float64
	for i := range truth {
		r := truth[i] - predicted[i]
		ssRes += r * r
		d := truth[i] - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
