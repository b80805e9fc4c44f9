package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hotelhub/reservation/internal/domain"
)

// PostgresRoomRepository implements RoomRepository using PostgreSQL
type PostgresRoomRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRoomRepository creates a new PostgresRoomRepository
func NewPostgresRoomRepository(pool *pgxpool.Pool) *PostgresRoomRepository {
	return &PostgresRoomRepository{pool: pool}
}

// GetByID retrieves a room by its ID
func (r *PostgresRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `
		SELECT id, room_number, type, price_per_night, available
		FROM rooms
		WHERE id = $1
	`

	room := &domain.Room{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.RoomNumber,
		&room.Type,
		&room.PricePerNight,
		&room.Available,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, domain.NewStorageError("get room", err)
	}

	return room, nil
}

// SetAvailable updates the room's availability flag
func (r *PostgresRoomRepository) SetAvailable(ctx context.Context, id string, available bool) error {
	result, err := r.pool.Exec(ctx, `UPDATE rooms SET available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return domain.NewStorageError("set room availability", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
