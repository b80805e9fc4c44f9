package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hotelhub/reservation/internal/domain"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

const bookingColumns = `id, room_id, user_id, check_in, check_out, total_amount, status, created_at, updated_at`

// Save persists a booking record
func (r *PostgresBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			total_amount = EXCLUDED.total_amount,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
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
		return domain.NewStorageError("save booking", err)
	}

	return nil
}

// FindByID retrieves a booking by its ID
func (r *PostgresBookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, domain.NewStorageError("get booking", err)
	}

	return booking, nil
}

// FindActiveByRoom returns the CONFIRMED bookings for a room, optionally
// excluding one booking id.
func (r *PostgresBookingRepository) FindActiveByRoom(ctx context.Context, roomID, excludeBookingID string) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1
		  AND status = $2
		  AND ($3 = '' OR id <> $3)
		ORDER BY check_in
	`

	rows, err := r.pool.Query(ctx, query, roomID, domain.BookingStatusConfirmed.String(), excludeBookingID)
	if err != nil {
		return nil, domain.NewStorageError("list active bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// FindByRoom returns every booking for a room regardless of status
func (r *PostgresBookingRepository) FindByRoom(ctx context.Context, roomID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE room_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, domain.NewStorageError("list room bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// FindAll returns every booking in the ledger
func (r *PostgresBookingRepository) FindAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, domain.NewStorageError("list bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	booking := &domain.Booking{}
	var status string

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.UserID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.TotalAmount,
		&status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	return booking, nil
}

func collectBookings(rows pgx.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("iterate bookings", err)
	}
	return bookings, nil
}
