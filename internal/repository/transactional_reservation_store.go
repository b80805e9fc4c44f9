package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hotelhub/reservation/internal/domain"
)

// TransactionalReservationStore implements ReservationStore on PostgreSQL.
// Each operation runs in a single transaction so a failure anywhere in the
// booking/payment/flag sequence leaves nothing behind.
type TransactionalReservationStore struct {
	pool *pgxpool.Pool
}

// NewTransactionalReservationStore creates a new TransactionalReservationStore
func NewTransactionalReservationStore(pool *pgxpool.Pool) *TransactionalReservationStore {
	return &TransactionalReservationStore{pool: pool}
}

// CommitReservation inserts the booking and payment and refreshes the room's
// availability flag in one transaction.
func (s *TransactionalReservationStore) CommitReservation(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.NewStorageError("begin commit transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := insertBookingTx(ctx, tx, booking); err != nil {
		return err
	}

	if err := insertPaymentTx(ctx, tx, payment); err != nil {
		return err
	}

	if err := refreshRoomAvailabilityTx(ctx, tx, booking.RoomID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.NewStorageError("commit reservation", err)
	}

	return nil
}

// CancelReservation persists the cancelled booking and refunded payment and
// refreshes the room's availability flag in one transaction. payment may be
// nil when the booking has no payment record.
func (s *TransactionalReservationStore) CancelReservation(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.NewStorageError("begin cancel transaction", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE bookings SET
			status = $2,
			updated_at = $3
		WHERE id = $1 AND status = $4
	`

	result, err := tx.Exec(ctx, query,
		booking.ID,
		domain.BookingStatusCancelled.String(),
		booking.UpdatedAt,
		domain.BookingStatusConfirmed.String(),
	)
	if err != nil {
		return domain.NewStorageError("cancel booking", err)
	}
	if result.RowsAffected() == 0 {
		// Lost a race against another cancel on the same booking.
		return domain.ErrBookingAlreadyCancelled
	}

	if payment != nil {
		refund := `
			UPDATE payments SET
				status = $2,
				amount = $3
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, refund, payment.ID, domain.PaymentStatusRefunded.String(), payment.Amount); err != nil {
			return domain.NewStorageError("refund payment", err)
		}
	}

	if err := refreshRoomAvailabilityTx(ctx, tx, booking.RoomID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.NewStorageError("commit cancellation", err)
	}

	return nil
}

func insertBookingTx(ctx context.Context, tx pgx.Tx, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, room_id, user_id, check_in, check_out, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		booking.ID,
		booking.RoomID,
		booking.UserID,
		booking.CheckIn,
		booking.CheckOut,
		booking.TotalAmount,
		booking.Status.String(),
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return domain.NewStorageError("insert booking", err)
	}
	return nil
}

func insertPaymentTx(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, original_amount, method, status, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.OriginalAmount,
		payment.Method,
		payment.Status.String(),
		payment.RecordedAt,
	)
	if err != nil {
		return domain.NewStorageError("insert payment", err)
	}
	return nil
}

// refreshRoomAvailabilityTx recomputes the cached availability flag from the
// CONFIRMED booking set, inside the caller's transaction. The flag is never
// set independently, so it cannot drift from the ledger.
func refreshRoomAvailabilityTx(ctx context.Context, tx pgx.Tx, roomID string) error {
	query := `
		UPDATE rooms SET available = NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_id = $1 AND status = $2
		)
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, roomID, domain.BookingStatusConfirmed.String())
	if err != nil {
		return domain.NewStorageError("refresh room availability", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
