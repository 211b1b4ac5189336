package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/postgres"
)

// PostgresLoader reads the loan history from a table created by the
// loan_history migration.
type PostgresLoader struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresLoader creates a loader reading from table.
func NewPostgresLoader(pool *pgxpool.Pool, table string) *PostgresLoader {
	return &PostgresLoader{pool: pool, table: table}
}

// Load implements port.DatasetLoader.
func (l *PostgresLoader) Load(ctx context.Context) (model.Dataset, error) {
	return loadRows(ctx, l.pool, l.table)
}

func loadRows(ctx context.Context, q postgres.Querier, table string) (model.Dataset, error) {
	query := fmt.Sprintf(
		`SELECT age, income, loan_amount, credit_score, defaulted FROM %s ORDER BY id`,
		pgx.Identifier{table}.Sanitize(),
	)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("dataset: query %s: %w", table, err)
	}
	defer rows.Close()

	var ds model.Dataset
	for rows.Next() {
		var (
			age                             int
			income, loanAmount, creditScore float64
			defaulted                       bool
		)
		if err := rows.Scan(&age, &income, &loanAmount, &creditScore, &defaulted); err != nil {
			return model.Dataset{}, fmt.Errorf("dataset: scan %s: %w", table, err)
		}

		label := 0
		if defaulted {
			label = 1
		}
		ds.Features = append(ds.Features, model.FeatureVector{float64(age), income, loanAmount, creditScore})
		ds.Defaults = append(ds.Defaults, label)
	}
	if err := rows.Err(); err != nil {
		return model.Dataset{}, fmt.Errorf("dataset: iterate %s: %w", table, err)
	}

	if ds.Len() == 0 {
		return model.Dataset{}, model.ErrEmptyDataset
	}
	return ds, nil
}

// Import replaces the contents of the table with ds in a single transaction.
func (l *PostgresLoader) Import(ctx context.Context, ds model.Dataset) (int64, error) {
	if err := ds.Validate(); err != nil {
		return 0, err
	}

	var copied int64
	err := postgres.WithTransaction(ctx, l.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE %s", pgx.Identifier{l.table}.Sanitize())); err != nil {
			return fmt.Errorf("dataset: truncate %s: %w", l.table, err)
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{l.table},
			[]string{"age", "income", "loan_amount", "credit_score", "defaulted"},
			pgx.CopyFromSlice(ds.Len(), func(i int) ([]any, error) {
				f := ds.Features[i]
				return []any{int32(f[0]), f[1], f[2], f[3], ds.Defaults[i] == 1}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("dataset: copy into %s: %w", l.table, err)
		}
		copied = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return copied, nil
}
