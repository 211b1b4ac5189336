package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/events"
	pkgkafka "github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/kafka"
)

// Header keys set on every published message.
const (
	HeaderEventType   = "event_type"
	HeaderContentType = "content-type"
)

// MessageWriter is the subset of pkg/kafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// KafkaPublisher implements port.EventPublisher using Kafka. Messages are
// keyed by aggregate ID so events of one assessment stay ordered.
type KafkaPublisher struct {
	writer MessageWriter
	logger *slog.Logger
	topic  string
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(writer MessageWriter, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish sends domain events to Kafka in a single batch.
func (p *KafkaPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				HeaderEventType:   eventType,
				HeaderContentType: "application/json",
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.writer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
