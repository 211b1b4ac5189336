package forest

import (
	"context"
	"encoding/json"
	"fmt"
)

// Classifier is a binary random forest classifier over 0/1 labels.
type Classifier struct {
	params Params
	forest *Forest
}

// NewClassifier creates an unfitted Classifier.
func NewClassifier(params Params) *Classifier {
	return &Classifier{params: params}
}

// Fit trains the classifier. Labels must be 0 or 1.
func (c *Classifier) Fit(ctx context.Context, x [][]float64, labels []int) error {
	y := make([]float64, len(labels))
	for i, l := range labels {
		if l != 0 && l != 1 {
			return fmt.Errorf("forest: label %d at row %d is not binary", l, i)
		}
		y[i] = float64(l)
	}

	f, err := fit(ctx, x, y, Gini, c.params)
	if err != nil {
		return err
	}
	c.forest = f
	return nil
}

// Fitted reports whether the classifier can predict.
func (c *Classifier) Fitted() bool {
	return c.forest != nil
}

// Features returns the input width the classifier was trained on.
func (c *Classifier) Features() int {
	if c.forest == nil {
		return 0
	}
	return c.forest.Features
}

// PredictProba returns the probability of class 1: the mean over trees of the
// class 1 fraction in the leaf x falls into.
func (c *Classifier) PredictProba(x []float64) (float64, error) {
	if c.forest == nil {
		return 0, ErrNotFitted
	}
	if len(x) != c.forest.Features {
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrShapeMismatch, len(x), c.forest.Features)
	}
	return c.forest.Predict(x), nil
}

// Predict returns the most probable class. Ties resolve to 0.
func (c *Classifier) Predict(x []float64) (int, error) {
	p, err := c.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if p > 0.5 {
		return 1, nil
	}
	return 0, nil
}

// PredictBatch classifies every row of x.
func (c *Classifier) PredictBatch(x [][]float64) ([]int, error) {
	out := make([]int, len(x))
	for i, row := range x {
		label, err := c.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = label
	}
	return out, nil
}

// MarshalJSON encodes the fitted forest.
func (c *Classifier) MarshalJSON() ([]byte, error) {
	if c.forest == nil {
		return nil, ErrNotFitted
	}
	return json.Marshal(c.forest)
}

// UnmarshalJSON restores a forest written by MarshalJSON.
func (c *Classifier) UnmarshalJSON(data []byte) error {
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("forest: decode classifier: %w", err)
	}
	if f.Criterion != Gini {
		return fmt.Errorf("forest: expected gini criterion, got %s", f.Criterion)
	}
	if err := f.validate(); err != nil {
		return err
	}
	c.forest = &f
	return nil
}
