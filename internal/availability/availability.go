// Package availability holds the pure date-range logic the reservation
// engine decides with. Nothing in here performs I/O; callers supply the
// booking set to check against.
package availability

import (
	"time"

	"github.com/hotelhub/reservation/internal/domain"
)

// RangesOverlap reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night. The checkout day is not occupied,
// so back-to-back stays do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Overlaps reports whether the candidate range conflicts with any CONFIRMED
// booking for the room. Bookings in any other status never block, and a
// booking whose id equals excludeBookingID is skipped so an existing booking
// can be re-validated against its own range.
func Overlaps(roomID string, checkIn, checkOut time.Time, bookings []*domain.Booking, excludeBookingID string) bool {
	for _, b := range bookings {
		if b.RoomID != roomID {
			continue
		}
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if !b.IsConfirmed() {
			continue
		}
		if RangesOverlap(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			return true
		}
	}
	return false
}

// Nights returns the number of nights between check-in and check-out as a
// calendar-day difference, so the time of day never shaves a night off.
func Nights(checkIn, checkOut time.Time) int {
	return epochDay(checkOut) - epochDay(checkIn)
}

func epochDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// ValidateRange checks that the range is chronological and not past-dated.
// today is the start of the current day in the caller's reference clock.
func ValidateRange(checkIn, checkOut, today time.Time) error {
	if !checkIn.Before(checkOut) {
		return domain.ErrInvalidDateRange
	}
	if checkIn.Before(today) {
		return domain.ErrInvalidDateRange
	}
	return nil
}
