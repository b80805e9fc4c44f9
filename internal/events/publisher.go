package events

import (
	"context"

	"github.com/hotelhub/reservation/internal/domain"
)

// Publisher defines the interface for publishing booking lifecycle events.
// Publishing happens after the storage commit and outside the room's
// exclusion scope; a publish failure never rolls back a reservation.
type Publisher interface {
	// PublishBookingConfirmed publishes a booking confirmed event
	PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error

	// PublishBookingCancelled publishes a booking cancelled event
	PublishBookingCancelled(ctx context.Context, booking *domain.Booking, refund float64) error

	// Close closes the publisher
	Close() error
}

// NoopPublisher is a Publisher that drops every event. Used when no brokers
// are configured and in tests.
type NoopPublisher struct{}

// NewNoopPublisher creates a new NoopPublisher
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return nil
}

func (p *NoopPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking, refund float64) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
