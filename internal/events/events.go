package events

import (
	"time"

	"github.com/hotelhub/reservation/internal/domain"
)

// BookingEventType identifies a booking lifecycle event
type BookingEventType string

const (
	BookingEventConfirmed BookingEventType = "booking.confirmed"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is the payload published on booking state transitions.
// Consumers downstream (notifications, reporting) key on BookingID.
type BookingEvent struct {
	EventID      string           `json:"event_id"`
	Type         BookingEventType `json:"type"`
	BookingID    string           `json:"booking_id"`
	RoomID       string           `json:"room_id"`
	UserID       string           `json:"user_id"`
	CheckIn      time.Time        `json:"check_in"`
	CheckOut     time.Time        `json:"check_out"`
	TotalAmount  float64          `json:"total_amount"`
	RefundAmount float64          `json:"refund_amount,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
	Source       string           `json:"source"`
}

// NewBookingEvent builds an event from a booking snapshot
func NewBookingEvent(eventType BookingEventType, booking *domain.Booking, eventID, source string) *BookingEvent {
	return &BookingEvent{
		EventID:     eventID,
		Type:        eventType,
		BookingID:   booking.ID,
		RoomID:      booking.RoomID,
		UserID:      booking.UserID,
		CheckIn:     booking.CheckIn,
		CheckOut:    booking.CheckOut,
		TotalAmount: booking.TotalAmount,
		OccurredAt:  time.Now(),
		Source:      source,
	}
}
