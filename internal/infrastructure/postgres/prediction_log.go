package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/event"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/valueobject"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/events"
)

// LoggedPrediction is one row of the prediction log.
type LoggedPrediction struct {
	ID                 uuid.UUID
	Age                int
	Income             float64
	LoanAmount         float64
	CreditScore        float64
	DefaultProbability decimal.Decimal
	DefaultPrediction  int
	RiskLevel          valueobject.RiskLevel
	ThresholdUsed      decimal.Decimal
	ScoredAt           time.Time
}

// PredictionLog implements port.EventPublisher by writing every
// PredictionScored event to the prediction_log table. Other events are
// ignored.
type PredictionLog struct {
	pool *pgxpool.Pool
}

// NewPredictionLog creates a new PostgreSQL-backed prediction log.
func NewPredictionLog(pool *pgxpool.Pool) *PredictionLog {
	return &PredictionLog{pool: pool}
}

// Publish persists the scored predictions among domainEvents in one batch.
// Replayed events are ignored.
func (l *PredictionLog) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	batch := &pgx.Batch{}
	for _, evt := range domainEvents {
		scored, ok := asPredictionScored(evt)
		if !ok {
			continue
		}
		batch.Queue(`
			INSERT INTO prediction_log (
				id, age, income, loan_amount, credit_score,
				default_probability, default_prediction, risk_level, threshold_used,
				scored_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			scored.AggregateID(),
			scored.Age,
			scored.Income,
			scored.LoanAmount,
			scored.CreditScore,
			decimal.NewFromFloat(scored.Probability).Round(valueobject.DisplayPrecision),
			scored.Decision,
			scored.RiskLevel,
			decimal.NewFromFloat(scored.ThresholdUsed),
			scored.OccurredAt(),
		)
	}
	if batch.Len() == 0 {
		return nil
	}

	if err := l.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to log predictions: %w", err)
	}
	return nil
}

func asPredictionScored(evt events.DomainEvent) (event.PredictionScored, bool) {
	switch e := evt.(type) {
	case event.PredictionScored:
		return e, true
	case *event.PredictionScored:
		return *e, true
	default:
		return event.PredictionScored{}, false
	}
}

// Recent returns up to limit logged predictions, newest first. A non-empty
// riskLevel filters by band.
func (l *PredictionLog) Recent(ctx context.Context, riskLevel string, limit int) ([]LoggedPrediction, error) {
	query := `
		SELECT id, age, income, loan_amount, credit_score,
			default_probability, default_prediction, risk_level, threshold_used,
			scored_at
		FROM prediction_log
		WHERE ($1 = '' OR risk_level = $1)
		ORDER BY scored_at DESC
		LIMIT $2
	`

	rows, err := l.pool.Query(ctx, query, riskLevel, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction log: %w", err)
	}
	defer rows.Close()

	var out []LoggedPrediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prediction log: %w", err)
	}
	return out, nil
}

func scanPrediction(row pgx.Row) (LoggedPrediction, error) {
	var (
		p         LoggedPrediction
		riskLevel string
		decision  int16
	)
	err := row.Scan(
		&p.ID, &p.Age, &p.Income, &p.LoanAmount, &p.CreditScore,
		&p.DefaultProbability, &decision, &riskLevel, &p.ThresholdUsed,
		&p.ScoredAt,
	)
	if err != nil {
		return LoggedPrediction{}, fmt.Errorf("failed to scan prediction: %w", err)
	}

	p.RiskLevel, err = valueobject.RiskLevelFromString(riskLevel)
	if err != nil {
		return LoggedPrediction{}, fmt.Errorf("failed to parse risk level: %w", err)
	}
	p.DefaultPrediction = int(decision)
	return p, nil
}
