package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelhub/reservation/internal/domain"
	"github.com/hotelhub/reservation/internal/dto"
	"github.com/hotelhub/reservation/internal/service"
	"github.com/hotelhub/reservation/pkg/response"
)

// MockRoomRepository is a mock implementation of RoomRepository
type MockRoomRepository struct {
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Room, error)
	SetAvailableFunc func(ctx context.Context, id string, available bool) error
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRoomRepository) SetAvailable(ctx context.Context, id string, available bool) error {
	if m.SetAvailableFunc != nil {
		return m.SetAvailableFunc(ctx, id, available)
	}
	return nil
}

func sampleRoom() *domain.Room {
	return &domain.Room{
		ID:            "room-101",
		RoomNumber:    "101",
		Type:          "DOUBLE",
		PricePerNight: 100,
		Available:     true,
	}
}

func setupRoomRouter(svc service.ReservationService, rooms *MockRoomRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewRoomHandler(svc, rooms)

	group := router.Group("/rooms")
	{
		group.GET("/:id", h.GetRoom)
		group.GET("/:id/quote", h.Quote)
		group.GET("/:id/bookings", h.ListRoomBookings)
	}
	return router
}

func TestQuote_Success(t *testing.T) {
	svc := &MockReservationService{
		QuoteFunc: func(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*service.QuotePreview, error) {
			return &service.QuotePreview{
				Room:        sampleRoom(),
				CheckIn:     checkIn,
				CheckOut:    checkOut,
				Nights:      3,
				TotalAmount: 300,
			}, nil
		},
	}
	router := setupRoomRouter(svc, &MockRoomRepository{})

	req := httptest.NewRequest(http.MethodGet, "/rooms/room-101/quote?check_in=2026-10-01&check_out=2026-10-04", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, 300.0, resp.TotalAmount)
	assert.Equal(t, "2026-10-01", resp.CheckIn)
}

func TestQuote_MissingParams(t *testing.T) {
	router := setupRoomRouter(&MockReservationService{}, &MockRoomRepository{})

	req := httptest.NewRequest(http.MethodGet, "/rooms/room-101/quote?check_in=2026-10-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuote_Conflict(t *testing.T) {
	svc := &MockReservationService{
		QuoteFunc: func(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*service.QuotePreview, error) {
			return nil, domain.ErrDateConflict
		},
	}
	router := setupRoomRouter(svc, &MockRoomRepository{})

	req := httptest.NewRequest(http.MethodGet, "/rooms/room-101/quote?check_in=2026-10-01&check_out=2026-10-04", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DATE_CONFLICT", resp.Code)
}

func TestQuote_RoomNotFound(t *testing.T) {
	svc := &MockReservationService{
		QuoteFunc: func(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*service.QuotePreview, error) {
			return nil, domain.ErrRoomNotFound
		},
	}
	router := setupRoomRouter(svc, &MockRoomRepository{})

	req := httptest.NewRequest(http.MethodGet, "/rooms/missing/quote?check_in=2026-10-01&check_out=2026-10-04", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRoom_Success(t *testing.T) {
	rooms := &MockRoomRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Room, error) {
			return sampleRoom(), nil
		},
	}
	router := setupRoomRouter(&MockReservationService{}, rooms)

	req := httptest.NewRequest(http.MethodGet, "/rooms/room-101", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.RoomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "101", resp.RoomNumber)
	assert.True(t, resp.Available)
}

func TestListRoomBookings_UnknownRoom(t *testing.T) {
	rooms := &MockRoomRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Room, error) {
			return nil, domain.ErrRoomNotFound
		},
	}
	router := setupRoomRouter(&MockReservationService{}, rooms)

	req := httptest.NewRequest(http.MethodGet, "/rooms/missing/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRoomBookings_Success(t *testing.T) {
	rooms := &MockRoomRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Room, error) {
			return sampleRoom(), nil
		},
	}
	svc := &MockReservationService{
		ListRoomBookingsFunc: func(ctx context.Context, roomID string) ([]*domain.Booking, error) {
			return []*domain.Booking{sampleBooking()}, nil
		},
	}
	router := setupRoomRouter(svc, rooms)

	req := httptest.NewRequest(http.MethodGet, "/rooms/room-101/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
