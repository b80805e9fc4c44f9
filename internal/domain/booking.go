package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// Booking represents a booking entity. A booking only ever exists in
// CONFIRMED state or later; an unpaid quote is never persisted.
type Booking struct {
	ID          string        `json:"id"`
	RoomID      string        `json:"room_id"`
	UserID      string        `json:"user_id"`
	CheckIn     time.Time     `json:"check_in"`
	CheckOut    time.Time     `json:"check_out"`
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Validate validates all booking fields
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrBookingNotFound
	}
	if strings.TrimSpace(b.RoomID) == "" {
		return ErrRoomNotFound
	}
	if !b.CheckIn.Before(b.CheckOut) {
		return ErrInvalidDateRange
	}
	if !b.Status.IsValid() {
		return ErrBookingNotConfirmed
	}
	return nil
}

// Nights returns the number of nights covered by the booking as a calendar
// day difference. The checkout day is not occupied.
func (b *Booking) Nights() int {
	iy, im, id := b.CheckIn.Date()
	oy, om, od := b.CheckOut.Date()
	in := time.Date(iy, im, id, 0, 0, 0, 0, time.UTC)
	out := time.Date(oy, om, od, 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// IsConfirmed checks if the booking is in confirmed status
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsCancelled checks if the booking is in cancelled status
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// BelongsToUser checks if the booking belongs to the specified user
func (b *Booking) BelongsToUser(userID string) bool {
	return b.UserID == userID
}

// CancellableUntil returns the moment the cancellation window closes.
func (b *Booking) CancellableUntil(window time.Duration) time.Time {
	return b.CreatedAt.Add(window)
}

// Cancel transitions the booking to CANCELLED. The transition is one-way and
// only permitted within the cancellation window measured from CreatedAt.
func (b *Booking) Cancel(now time.Time, window time.Duration) error {
	if b.Status == BookingStatusCancelled {
		return ErrBookingAlreadyCancelled
	}
	if b.Status != BookingStatusConfirmed {
		return ErrBookingNotConfirmed
	}
	if now.After(b.CancellableUntil(window)) {
		return ErrCancelWindowExpired
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = now
	return nil
}
