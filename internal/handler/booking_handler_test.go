package handler

import (
	"bytes"
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

// MockReservationService is a mock implementation of ReservationService
type MockReservationService struct {
	QuoteFunc            func(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*service.QuotePreview, error)
	CommitFunc           func(ctx context.Context, roomID, userID string, checkIn, checkOut time.Time, paymentMethod string, amount float64) (*domain.Booking, error)
	CancelFunc           func(ctx context.Context, bookingID, userID string) (*domain.Booking, error)
	GetBookingFunc       func(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListBookingsFunc     func(ctx context.Context) ([]*domain.Booking, error)
	ListRoomBookingsFunc func(ctx context.Context, roomID string) ([]*domain.Booking, error)
}

func (m *MockReservationService) Quote(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*service.QuotePreview, error) {
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, roomID, checkIn, checkOut)
	}
	return nil, nil
}

func (m *MockReservationService) Commit(ctx context.Context, roomID, userID string, checkIn, checkOut time.Time, paymentMethod string, amount float64) (*domain.Booking, error) {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx, roomID, userID, checkIn, checkOut, paymentMethod, amount)
	}
	return nil, nil
}

func (m *MockReservationService) Cancel(ctx context.Context, bookingID, userID string) (*domain.Booking, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, bookingID, userID)
	}
	return nil, nil
}

func (m *MockReservationService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if m.GetBookingFunc != nil {
		return m.GetBookingFunc(ctx, bookingID)
	}
	return nil, nil
}

func (m *MockReservationService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	if m.ListBookingsFunc != nil {
		return m.ListBookingsFunc(ctx)
	}
	return nil, nil
}

func (m *MockReservationService) ListRoomBookings(ctx context.Context, roomID string) ([]*domain.Booking, error) {
	if m.ListRoomBookingsFunc != nil {
		return m.ListRoomBookingsFunc(ctx, roomID)
	}
	return nil, nil
}

func setupBookingRouter(svc service.ReservationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBookingHandler(svc)

	bookings := router.Group("/bookings")
	{
		bookings.POST("", h.CommitBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
	return router
}

func sampleBooking() *domain.Booking {
	now := time.Now()
	return &domain.Booking{
		ID:          "bk-1",
		RoomID:      "room-101",
		UserID:      "user-1",
		CheckIn:     now.AddDate(0, 0, 10),
		CheckOut:    now.AddDate(0, 0, 13),
		TotalAmount: 300,
		Status:      domain.BookingStatusConfirmed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func commitBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(dto.CommitBookingRequest{
		RoomID:        "room-101",
		CheckIn:       "2026-10-01",
		CheckOut:      "2026-10-04",
		PaymentMethod: "CARD",
		Amount:        300,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestCommitBooking_Success(t *testing.T) {
	svc := &MockReservationService{
		CommitFunc: func(ctx context.Context, roomID, userID string, checkIn, checkOut time.Time, paymentMethod string, amount float64) (*domain.Booking, error) {
			assert.Equal(t, "room-101", roomID)
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, "2026-10-01", checkIn.Format(dto.DateLayout))
			assert.Equal(t, "2026-10-04", checkOut.Format(dto.DateLayout))
			return sampleBooking(), nil
		},
	}
	router := setupBookingRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/bookings", commitBody(t))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(UserIDHeader, "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bk-1", resp.ID)
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestCommitBooking_MissingUserHeader(t *testing.T) {
	router := setupBookingRouter(&MockReservationService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings", commitBody(t))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommitBooking_MalformedBody(t *testing.T) {
	router := setupBookingRouter(&MockReservationService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(`{"room_id":`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(UserIDHeader, "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommitBooking_UnparseableDate(t *testing.T) {
	router := setupBookingRouter(&MockReservationService{})

	body, _ := json.Marshal(dto.CommitBookingRequest{
		RoomID:        "room-101",
		CheckIn:       "01/10/2026",
		CheckOut:      "2026-10-04",
		PaymentMethod: "CARD",
		Amount:        300,
	})
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(UserIDHeader, "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommitBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"room not found", domain.ErrRoomNotFound, http.StatusNotFound, "ROOM_NOT_FOUND"},
		{"invalid range", domain.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
		{"date conflict", domain.ErrDateConflict, http.StatusConflict, "DATE_CONFLICT"},
		{"invalid payment", domain.ErrInvalidPayment, http.StatusBadRequest, "INVALID_PAYMENT"},
		{"storage failure", domain.NewStorageError("commit reservation", assert.AnError), http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockReservationService{
				CommitFunc: func(ctx context.Context, roomID, userID string, checkIn, checkOut time.Time, paymentMethod string, amount float64) (*domain.Booking, error) {
					return nil, tt.err
				},
			}
			router := setupBookingRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/bookings", commitBody(t))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(UserIDHeader, "user-1")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestCancelBooking_Success(t *testing.T) {
	cancelled := sampleBooking()
	cancelled.Status = domain.BookingStatusCancelled

	svc := &MockReservationService{
		CancelFunc: func(ctx context.Context, bookingID, userID string) (*domain.Booking, error) {
			assert.Equal(t, "bk-1", bookingID)
			assert.Equal(t, "user-1", userID)
			return cancelled, nil
		},
	}
	router := setupBookingRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/bookings/bk-1/cancel", nil)
	req.Header.Set(UserIDHeader, "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestCancelBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrBookingNotFound, http.StatusNotFound, "BOOKING_NOT_FOUND"},
		{"not owner", domain.ErrNotBookingOwner, http.StatusForbidden, "FORBIDDEN"},
		{"already cancelled", domain.ErrBookingAlreadyCancelled, http.StatusConflict, "ALREADY_CANCELLED"},
		{"not confirmed", domain.ErrBookingNotConfirmed, http.StatusConflict, "NOT_CONFIRMED"},
		{"window expired", domain.ErrCancelWindowExpired, http.StatusUnprocessableEntity, "CANCEL_WINDOW_EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockReservationService{
				CancelFunc: func(ctx context.Context, bookingID, userID string) (*domain.Booking, error) {
					return nil, tt.err
				},
			}
			router := setupBookingRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/bookings/bk-1/cancel", nil)
			req.Header.Set(UserIDHeader, "user-1")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestGetBooking_Success(t *testing.T) {
	svc := &MockReservationService{
		GetBookingFunc: func(ctx context.Context, bookingID string) (*domain.Booking, error) {
			return sampleBooking(), nil
		},
	}
	router := setupBookingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/bookings/bk-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetBooking_NotFound(t *testing.T) {
	svc := &MockReservationService{
		GetBookingFunc: func(ctx context.Context, bookingID string) (*domain.Booking, error) {
			return nil, domain.ErrBookingNotFound
		},
	}
	router := setupBookingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/bookings/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBookings(t *testing.T) {
	svc := &MockReservationService{
		ListBookingsFunc: func(ctx context.Context) ([]*domain.Booking, error) {
			return []*domain.Booking{sampleBooking()}, nil
		},
	}
	router := setupBookingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Data    []*dto.BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
}
