package repository

import (
	"context"

	"github.com/hotelhub/reservation/internal/domain"
)

// RoomRepository is the room directory the engine consumes. The engine only
// reads identity and rate; the Available flag is written as a side effect of
// commit/cancel and is never the source of truth for occupancy.
type RoomRepository interface {
	// GetByID retrieves a room by its ID
	GetByID(ctx context.Context, id string) (*domain.Room, error)

	// SetAvailable updates the room's availability flag
	SetAvailable(ctx context.Context, id string, available bool) error
}
