package repository

import (
	"context"

	"github.com/hotelhub/reservation/internal/domain"
)

// ReservationStore writes the multi-record side of commit and cancel as a
// single all-or-nothing unit: booking, payment, and the room's derived
// availability flag either all persist or none do.
type ReservationStore interface {
	// CommitReservation durably creates the booking and its payment and
	// refreshes the room's availability flag.
	CommitReservation(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error

	// CancelReservation persists the cancelled booking, the refunded payment
	// (nil when no payment record exists), and refreshes the room's
	// availability flag.
	CancelReservation(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error
}
