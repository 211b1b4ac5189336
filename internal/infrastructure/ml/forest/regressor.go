package forest

import (
	"context"
	"encoding/json"
	"fmt"
)

// Regressor is a random forest regressor.
type Regressor struct {
	params Params
	forest *Forest
}

// NewRegressor creates an unfitted Regressor.
func NewRegressor(params Params) *Regressor {
	return &Regressor{params: params}
}

// Fit trains the regressor.
func (r *Regressor) Fit(ctx context.Context, x [][]float64, y []float64) error {
	f, err := fit(ctx, x, y, SquaredError, r.params)
	if err != nil {
		return err
	}
	r.forest = f
	return nil
}

// Predict returns the mean tree prediction for x.
func (r *Regressor) Predict(x []float64) (float64, error) {
	if r.forest == nil {
		return 0, ErrNotFitted
	}
	if len(x) != r.forest.Features {
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrShapeMismatch, len(x), r.forest.Features)
	}
	return r.forest.Predict(x), nil
}

// PredictBatch predicts every row of x.
func (r *Regressor) PredictBatch(x [][]float64) ([]float64, error) {
	out := make([]float64, len(x))
	for i, row := range x {
		v, err := r.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// MarshalJSON encodes the fitted forest.
func (r *Regressor) MarshalJSON() ([]byte, error) {
	if r.forest == nil {
		return nil, ErrNotFitted
	}
	return json.Marshal(r.forest)
}

// UnmarshalJSON restores a forest written by MarshalJSON.
func (r *Regressor) UnmarshalJSON(data []byte) error {
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("forest: decode regressor: %w", err)
	}
	if f.Criterion != SquaredError {
		return fmt.Errorf("forest: expected squared_error criterion, got %s", f.Criterion)
	}
	if err := f.validate(); err != nil {
		return err
	}
	r.forest = &f
	return nil
}
