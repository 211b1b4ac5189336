package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/events"
)

// LogPublisher implements port.EventPublisher by logging events. It is used
// when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new logging event publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs each event at debug level.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		payload, err := json.Marshal(evt)
		if err != nil {
			p.logger.WarnContext(ctx, "failed to marshal event",
				slog.String("event_type", evt.EventType()),
				slog.String("error", err.Error()),
			)
			continue
		}
		p.logger.DebugContext(ctx, "domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.String("payload", string(payload)),
		)
	}
	return nil
}
