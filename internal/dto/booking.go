package dto

import (
	"time"

	"github.com/hotelhub/reservation/internal/domain"
	"github.com/hotelhub/reservation/internal/service"
)

// DateLayout is the wire format for check-in and check-out dates
const DateLayout = "2006-01-02"

// CommitBookingRequest represents a request to commit a booking
type CommitBookingRequest struct {
	RoomID        string  `json:"room_id" binding:"required"`
	CheckIn       string  `json:"check_in" binding:"required"`
	CheckOut      string  `json:"check_out" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
}

// QuoteResponse represents a price and availability preview.
// A quote reserves nothing.
type QuoteResponse struct {
	RoomID        string  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	TotalAmount   float64 `json:"total_amount"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	UserID      string    `json:"user_id"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID            string  `json:"id"`
	RoomNumber    string  `json:"room_number"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"price_per_night"`
	Available     bool    `json:"available"`
}

// FromBooking converts a domain Booking to a BookingResponse
func FromBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		RoomID:      b.RoomID,
		UserID:      b.UserID,
		CheckIn:     b.CheckIn.Format(DateLayout),
		CheckOut:    b.CheckOut.Format(DateLayout),
		TotalAmount: b.TotalAmount,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromBookings converts a slice of domain Bookings
func FromBookings(bookings []*domain.Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromBooking(b))
	}
	return out
}

// FromQuote converts a service QuotePreview to a QuoteResponse
func FromQuote(q *service.QuotePreview) *QuoteResponse {
	return &QuoteResponse{
		RoomID:        q.Room.ID,
		RoomNumber:    q.Room.RoomNumber,
		RoomType:      q.Room.Type,
		PricePerNight: q.Room.PricePerNight,
		CheckIn:       q.CheckIn.Format(DateLayout),
		CheckOut:      q.CheckOut.Format(DateLayout),
		Nights:        q.Nights,
		TotalAmount:   q.TotalAmount,
	}
}

// FromRoom converts a domain Room to a RoomResponse
func FromRoom(r *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		Type:          r.Type,
		PricePerNight: r.PricePerNight,
		Available:     r.Available,
	}
}
