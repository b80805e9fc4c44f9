package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hotelhub/reservation/internal/domain"
)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(pool *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{pool: pool}
}

// Save persists a payment record
func (r *PostgresPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, original_amount, method, status, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			status = EXCLUDED.status
	`

	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.OriginalAmount,
		payment.Method,
		payment.Status.String(),
		payment.RecordedAt,
	)
	if err != nil {
		return domain.NewStorageError("save payment", err)
	}

	return nil
}

// FindByBooking retrieves the payment attached to a booking
func (r *PostgresPaymentRepository) FindByBooking(ctx context.Context, bookingID string) (*domain.Payment, error) {
	query := `
		SELECT id, booking_id, amount, original_amount, method, status, recorded_at
		FROM payments
		WHERE booking_id = $1
	`

	payment := &domain.Payment{}
	var status string

	err := r.pool.QueryRow(ctx, query, bookingID).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.OriginalAmount,
		&payment.Method,
		&status,
		&payment.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, domain.NewStorageError("get payment", err)
	}

	payment.Status = domain.PaymentStatus(status)
	return payment, nil
}
