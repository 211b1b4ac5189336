package messaging

import (
	"context"
	"errors"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/events"
)

// FanoutPublisher hands every batch to each wrapped publisher in order. A
// failing publisher does not stop the others.
type FanoutPublisher struct {
	publishers []port.EventPublisher
}

// NewFanoutPublisher creates a publisher over publishers.
func NewFanoutPublisher(publishers ...port.EventPublisher) *FanoutPublisher {
	return &FanoutPublisher{publishers: publishers}
}

// Publish returns the joined errors of the wrapped publishers.
func (p *FanoutPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	var errs []error
	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, domainEvents...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
