package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hotelhub/reservation/internal/dto"
	"github.com/hotelhub/reservation/internal/repository"
	"github.com/hotelhub/reservation/internal/service"
	"github.com/hotelhub/reservation/pkg/response"
	"github.com/hotelhub/reservation/pkg/telemetry"
)

// RoomHandler handles room HTTP requests
type RoomHandler struct {
	reservations service.ReservationService
	rooms        repository.RoomRepository
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(reservations service.ReservationService, rooms repository.RoomRepository) *RoomHandler {
	return &RoomHandler{reservations: reservations, rooms: rooms}
}

// Quote handles GET /rooms/:id/quote?check_in=&check_out=
// The response is a preview only; nothing is held until a commit.
func (h *RoomHandler) Quote(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.room.quote")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	roomID := c.Param("id")
	checkInRaw := c.Query("check_in")
	checkOutRaw := c.Query("check_out")
	if checkInRaw == "" || checkOutRaw == "" {
		span.SetStatus(codes.Error, "check_in and check_out required")
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "check_in and check_out required",
			"Please provide check_in and check_out query parameters (YYYY-MM-DD)")
		return
	}

	checkIn, checkOut, err := parseDateRange(checkInRaw, checkOutRaw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid date")
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "invalid date", err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("room_id", roomID),
		attribute.String("check_in", checkInRaw),
		attribute.String("check_out", checkOutRaw),
	)

	quote, err := h.reservations.Quote(ctx, roomID, checkIn, checkOut)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.OK(c, dto.FromQuote(quote))
}

// GetRoom handles GET /rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.room.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	roomID := c.Param("id")
	span.SetAttributes(attribute.String("room_id", roomID))

	room, err := h.rooms.GetByID(ctx, roomID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.OK(c, dto.FromRoom(room))
}

// ListRoomBookings handles GET /rooms/:id/bookings
func (h *RoomHandler) ListRoomBookings(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.room.bookings")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	roomID := c.Param("id")
	span.SetAttributes(attribute.String("room_id", roomID))

	// surface a 404 for unknown rooms instead of an empty list
	if _, err := h.rooms.GetByID(ctx, roomID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	bookings, err := h.reservations.ListRoomBookings(ctx, roomID)
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
