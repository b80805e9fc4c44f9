package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")

	// Booking errors
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidDateRange        = errors.New("invalid date range")
	ErrDateConflict            = errors.New("room is unavailable for the selected dates")
	ErrNotBookingOwner         = errors.New("booking belongs to another user")
	ErrBookingNotConfirmed     = errors.New("only confirmed bookings can be cancelled")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrCancelWindowExpired     = errors.New("cancellation window has expired")

	// Payment errors
	ErrInvalidPayment  = errors.New("invalid payment details")
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrStorageFailure marks faults in the storage layer. Callers may retry
	// these; they must never be treated as a date conflict.
	ErrStorageFailure = errors.New("storage failure")
)

// StorageError wraps a storage-layer fault so callers can tell it apart from
// business rejections via errors.Is(err, ErrStorageFailure).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

// NewStorageError wraps err as a StorageError. Returns nil if err is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
