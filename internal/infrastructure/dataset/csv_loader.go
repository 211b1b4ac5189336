package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
)

// TargetColumn is the label column in normalized form.
const TargetColumn = "default"

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing column")

// columnAliases maps normalized header names onto feature names.
var columnAliases = map[string]string{
	"loan_amount":  "loanamount",
	"credit_score": "creditscore",
}

// NormalizeColumn trims, lower-cases and replaces spaces with underscores,
// then applies the loan_amount and credit_score aliases.
func NormalizeColumn(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	if alias, ok := columnAliases[n]; ok {
		return alias
	}
	return n
}

// CSVLoader reads the loan history from a CSV file with a header row.
type CSVLoader struct {
	path string
}

// NewCSVLoader creates a loader for path.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// Load implements port.DatasetLoader.
func (l *CSVLoader) Load(ctx context.Context) (model.Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("dataset: open %s: %w", l.path, err)
	}
	defer f.Close()

	return ParseCSV(ctx, f)
}

// ParseCSV decodes a loan history CSV. Extra columns are ignored.
func ParseCSV(ctx context.Context, r io.Reader) (model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Dataset{}, model.ErrEmptyDataset
		}
		return model.Dataset{}, fmt.Errorf("dataset: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[NormalizeColumn(name)] = i
	}

	var featureCols [model.FeatureCount]int
	for i, name := range model.FeatureNames {
		col, ok := index[name]
		if !ok {
			return model.Dataset{}, fmt.Errorf("dataset: %w: %s", ErrMissingColumn, name)
		}
		featureCols[i] = col
	}
	targetCol, ok := index[TargetColumn]
	if !ok {
		return model.Dataset{}, fmt.Errorf("dataset: %w: %s", ErrMissingColumn, TargetColumn)
	}

	var ds model.Dataset
	for row := 1; ; row++ {
		if row%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return model.Dataset{}, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Dataset{}, fmt.Errorf("dataset: read row %d: %w", row, err)
		}

		var features model.FeatureVector
		for i, col := range featureCols {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
			if err != nil {
				return model.Dataset{}, fmt.Errorf("dataset: row %d column %s: %w", row, model.FeatureNames[i], err)
			}
			features[i] = v
		}

		label, err := parseLabel(record[targetCol])
		if err != nil {
			return model.Dataset{}, fmt.Errorf("dataset: row %d column %s: %w", row, TargetColumn, err)
		}

		ds.Features = append(ds.Features, features)
		ds.Defaults = append(ds.Defaults, label)
	}

	if ds.Len() == 0 {
		return model.Dataset{}, model.ErrEmptyDataset
	}
	return ds, nil
}

// parseLabel accepts 0/1 in integer or float form and true/false spellings.
func parseLabel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		switch f {
		case 0:
			return 0, nil
		case 1:
			return 1, nil
		}
		return 0, fmt.Errorf("label must be 0 or 1, got %q", s)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("label must be 0 or 1, got %q", s)
}
