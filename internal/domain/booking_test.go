package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Nights_CalendarDays(t *testing.T) {
	b := &Booking{
		CheckIn:  time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 6, 13, 1, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, b.Nights())
}

func TestBooking_Cancel_Transitions(t *testing.T) {
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	window := 2 * time.Hour

	b := &Booking{Status: BookingStatusConfirmed, CreatedAt: created}
	assert.NoError(t, b.Cancel(created.Add(time.Hour), window))
	assert.Equal(t, BookingStatusCancelled, b.Status)

	assert.ErrorIs(t, b.Cancel(created.Add(time.Hour), window), ErrBookingAlreadyCancelled)

	late := &Booking{Status: BookingStatusConfirmed, CreatedAt: created}
	assert.ErrorIs(t, late.Cancel(created.Add(3*time.Hour), window), ErrCancelWindowExpired)
}
