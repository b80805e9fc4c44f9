package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hotelhub/reservation/internal/domain"
	"github.com/hotelhub/reservation/internal/dto"
	"github.com/hotelhub/reservation/internal/metrics"
	"github.com/hotelhub/reservation/pkg/response"
)

// parseDateRange parses wire-format check-in and check-out dates.
// Ordering is not validated here; the service owns that rule.
func parseDateRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(dto.DateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid check_in %q: expected YYYY-MM-DD", checkIn)
	}
	out, err := time.Parse(dto.DateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid check_out %q: expected YYYY-MM-DD", checkOut)
	}
	return in, out, nil
}

// handleError converts domain errors to HTTP responses
func handleError(c *gin.Context, err error) {
	var (
		status  int
		code    string
		message string
	)
	errText := err.Error()

	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		status, code = http.StatusNotFound, "ROOM_NOT_FOUND"
	case errors.Is(err, domain.ErrBookingNotFound):
		status, code = http.StatusNotFound, "BOOKING_NOT_FOUND"
	case errors.Is(err, domain.ErrPaymentNotFound):
		status, code = http.StatusNotFound, "PAYMENT_NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidDateRange):
		status, code = http.StatusBadRequest, "INVALID_DATE_RANGE"
	case errors.Is(err, domain.ErrInvalidPayment):
		status, code = http.StatusBadRequest, "INVALID_PAYMENT"
	case errors.Is(err, domain.ErrDateConflict):
		status, code = http.StatusConflict, "DATE_CONFLICT"
		message = "The room is already booked for part of the requested range"
	case errors.Is(err, domain.ErrBookingAlreadyCancelled):
		status, code = http.StatusConflict, "ALREADY_CANCELLED"
	case errors.Is(err, domain.ErrBookingNotConfirmed):
		status, code = http.StatusConflict, "NOT_CONFIRMED"
	case errors.Is(err, domain.ErrNotBookingOwner):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrCancelWindowExpired):
		status, code = http.StatusUnprocessableEntity, "CANCEL_WINDOW_EXPIRED"
		message = "Bookings can only be cancelled within the cancellation window"
	case errors.Is(err, domain.ErrStorageFailure):
		status, code = http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"
		errText = "storage unavailable"
	default:
		status, code = http.StatusInternalServerError, "INTERNAL_ERROR"
		errText = "internal server error"
	}

	metrics.RecordError(c.Request.Context(), code, c.FullPath())
	response.Error(c, status, code, errText, message)
}
