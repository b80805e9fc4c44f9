package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hotelhub/reservation/internal/dto"
	"github.com/hotelhub/reservation/internal/service"
	"github.com/hotelhub/reservation/pkg/response"
	"github.com/hotelhub/reservation/pkg/telemetry"
)

// UserIDHeader carries the requester identity placed by the upstream gateway
const UserIDHeader = "X-User-ID"

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	reservations service.ReservationService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(reservations service.ReservationService) *BookingHandler {
	return &BookingHandler{reservations: reservations}
}

// CommitBooking handles POST /bookings
func (h *BookingHandler) CommitBooking(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.commit")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID := c.GetHeader(UserIDHeader)
	if userID == "" {
		span.SetStatus(codes.Error, "unauthorized")
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", "")
		return
	}

	var req dto.CommitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request", err.Error())
		return
	}

	checkIn, checkOut, err := parseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid date")
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "invalid date", err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("room_id", req.RoomID),
		attribute.String("check_in", req.CheckIn),
		attribute.String("check_out", req.CheckOut),
	)

	booking, err := h.reservations.Commit(ctx, req.RoomID, userID, checkIn, checkOut, req.PaymentMethod, req.Amount)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("booking_id", booking.ID))
	span.SetStatus(codes.Ok, "")
	response.Created(c, dto.FromBooking(booking))
}

// CancelBooking handles POST /bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.cancel")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID := c.GetHeader(UserIDHeader)
	if userID == "" {
		span.SetStatus(codes.Error, "unauthorized")
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", "")
		return
	}

	bookingID := c.Param("id")
	if bookingID == "" {
		span.SetStatus(codes.Error, "booking id required")
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "booking id required", "")
		return
	}

	span.SetAttributes(
		attribute.String("booking_id", bookingID),
		attribute.String("user_id", userID),
	)

	booking, err := h.reservations.Cancel(ctx, bookingID, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.OK(c, dto.FromBooking(booking))
}

// GetBooking handles GET /bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	bookingID := c.Param("id")
	if bookingID == "" {
		span.SetStatus(codes.Error, "booking id required")
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "booking id required", "")
		return
	}

	span.SetAttributes(attribute.String("booking_id", bookingID))

	booking, err := h.reservations.GetBooking(ctx, bookingID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.OK(c, dto.FromBooking(booking))
}

// ListBookings handles GET /bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	bookings, err := h.reservations.ListBookings(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("count", len(bookings)))
	span.SetStatus(codes.Ok, "")
	response.List(c, dto.FromBookings(bookings))
}
