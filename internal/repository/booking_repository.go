package repository

import (
	"context"

	"github.com/hotelhub/reservation/internal/domain"
)

// BookingRepository is the booking ledger: the durable store of booking
// records and the query the overlap check runs against.
type BookingRepository interface {
	// Save persists a booking record
	Save(ctx context.Context, booking *domain.Booking) error

	// FindByID retrieves a booking by its ID
	FindByID(ctx context.Context, id string) (*domain.Booking, error)

	// FindActiveByRoom returns the CONFIRMED bookings for a room. When
	// excludeBookingID is non-empty that booking is left out, so a booking
	// being re-validated never conflicts with its own range.
	FindActiveByRoom(ctx context.Context, roomID, excludeBookingID string) ([]*domain.Booking, error)

	// FindByRoom returns every booking for a room regardless of status
	FindByRoom(ctx context.Context, roomID string) ([]*domain.Booking, error)

	// FindAll returns every booking in the ledger
	FindAll(ctx context.Context) ([]*domain.Booking, error)
}

// PaymentRepository stores the transaction record bound to each booking.
type PaymentRepository interface {
	// Save persists a payment record
	Save(ctx context.Context, payment *domain.Payment) error

	// FindByBooking retrieves the payment attached to a booking
	FindByBooking(ctx context.Context, bookingID string) (*domain.Payment, error)
}
