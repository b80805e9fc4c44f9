package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment represents the recorded transaction attached to a booking.
// The lifetime is bound one-to-one to its booking. After a refund, Amount
// holds the refunded amount and OriginalAmount keeps what was charged.
type Payment struct {
	ID             string        `json:"id"`
	BookingID      string        `json:"booking_id"`
	Amount         float64       `json:"amount"`
	OriginalAmount float64       `json:"original_amount"`
	Method         string        `json:"method"`
	Status         PaymentStatus `json:"status"`
	RecordedAt     time.Time     `json:"recorded_at"`
}

// NewPayment creates a completed payment for a booking
func NewPayment(bookingID, method string, amount float64, now time.Time) (*Payment, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, ErrBookingNotFound
	}
	if amount <= 0 || strings.TrimSpace(method) == "" {
		return nil, ErrInvalidPayment
	}
	return &Payment{
		ID:             uuid.New().String(),
		BookingID:      bookingID,
		Amount:         amount,
		OriginalAmount: amount,
		Method:         method,
		Status:         PaymentStatusCompleted,
		RecordedAt:     now,
	}, nil
}

// Refund marks the payment refunded and overwrites Amount with the refunded
// amount. OriginalAmount is left untouched.
func (p *Payment) Refund(refund float64) {
	p.Status = PaymentStatusRefunded
	p.Amount = refund
}
