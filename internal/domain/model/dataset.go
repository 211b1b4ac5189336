package model

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a dataset has no rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// Dataset is the labeled loan history a classifier is trained on.
type Dataset struct {
	Features []FeatureVector
	Defaults []int
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Features)
}

// Validate checks the dataset is trainable: non-empty, aligned, binary labels.
func (d Dataset) Validate() error {
	if len(d.Features) == 0 {
		return ErrEmptyDataset
	}
	if len(d.Features) != len(d.Defaults) {
		return fmt.Errorf("dataset has %d feature rows but %d labels", len(d.Features), len(d.Defaults))
	}
	for i, y := range d.Defaults {
		if y != 0 && y != 1 {
			return fmt.Errorf("row %d: default label must be 0 or 1, got %d", i, y)
		}
	}
	return nil
}

// Matrix returns the features as a row-major matrix.
func (d Dataset) Matrix() [][]float64 {
	rows := make([][]float64, len(d.Features))
	for i := range d.Features {
		row := d.Features[i]
		rows[i] = row[:]
	}
	return rows
}
