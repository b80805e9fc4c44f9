package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hotelhub/reservation/internal/availability"
	"github.com/hotelhub/reservation/internal/domain"
	"github.com/hotelhub/reservation/internal/events"
	"github.com/hotelhub/reservation/internal/lock"
	"github.com/hotelhub/reservation/internal/metrics"
	"github.com/hotelhub/reservation/internal/repository"
	"github.com/hotelhub/reservation/pkg/logger"
)

// QuotePreview is the non-durable result of a price/availability preview.
type QuotePreview struct {
	Room        *domain.Room
	CheckIn     time.Time
	CheckOut    time.Time
	Nights      int
	TotalAmount float64
}

// ReservationService defines the interface for the reservation engine
type ReservationService interface {
	// Quote previews price and availability for a date range. It performs no
	// writes and takes no lock: the result is advisory and may be stale by
	// the time a commit is attempted. Commit re-validates.
	Quote(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*QuotePreview, error)

	// Commit durably creates a booking and its payment and marks the room
	// occupied, all-or-nothing, serialized per room.
	Commit(ctx context.Context, roomID, userID string, checkIn, checkOut time.Time, paymentMethod string, amount float64) (*domain.Booking, error)

	// Cancel reverses a confirmed booking within the cancellation window,
	// refunding a fixed share of the charged amount.
	Cancel(ctx context.Context, bookingID, userID string) (*domain.Booking, error)

	// GetBooking retrieves a booking by ID
	GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error)

	// ListBookings retrieves all bookings
	ListBookings(ctx context.Context) ([]*domain.Booking, error)

	// ListRoomBookings retrieves all bookings for a room
	ListRoomBookings(ctx context.Context, roomID string) ([]*domain.Booking, error)
}

// reservationService implements ReservationService
type reservationService struct {
	rooms     repository.RoomRepository
	bookings  repository.BookingRepository
	payments  repository.PaymentRepository
	store     repository.ReservationStore
	locks     lock.RoomLocker
	publisher events.Publisher
	log       *logger.Logger

	cancelWindow time.Duration
	refundRate   float64
}

// ReservationServiceConfig contains configuration for the reservation engine.
// Policy knobs are explicit so tests can vary them; nothing is read from
// process-wide state.
type ReservationServiceConfig struct {
	// CancellationWindow is how long after commit a booking stays cancellable
	CancellationWindow time.Duration
	// RefundRate is the share of the charged amount returned on cancellation
	RefundRate float64
}

// NewReservationService creates a new reservation service
func NewReservationService(
	rooms repository.RoomRepository,
	bookings repository.BookingRepository,
	payments repository.PaymentRepository,
	store repository.ReservationStore,
	locks lock.RoomLocker,
	publisher events.Publisher,
	log *logger.Logger,
	cfg *ReservationServiceConfig,
) ReservationService {
	cancelWindow := 2 * time.Hour
	refundRate := 0.90
	if cfg != nil {
		if cfg.CancellationWindow > 0 {
			cancelWindow = cfg.CancellationWindow
		}
		if cfg.RefundRate > 0 {
			refundRate = cfg.RefundRate
		}
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &reservationService{
		rooms:        rooms,
		bookings:     bookings,
		payments:     payments,
		store:        store,
		locks:        locks,
		publisher:    publisher,
		log:          log,
		cancelWindow: cancelWindow,
		refundRate:   refundRate,
	}
}

// Quote previews price and availability for a date range
func (s *reservationService) Quote(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*QuotePreview, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := availability.ValidateRange(checkIn, checkOut, startOfToday()); err != nil {
		return nil, err
	}

	active, err := s.bookings.FindActiveByRoom(ctx, roomID, "")
	if err != nil {
		return nil, err
	}
	if availability.Overlaps(roomID, checkIn, checkOut, active, "") {
		metrics.RecordQuote(ctx, roomID, false)
		return nil, domain.ErrDateConflict
	}
	metrics.RecordQuote(ctx, roomID, true)

	nights := availability.Nights(checkIn, checkOut)
	return &QuotePreview{
		Room:        room,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Nights:      nights,
		TotalAmount: room.PricePerNight * float64(nights),
	}, nil
}

// Commit durably creates a booking and its payment under the room's
// exclusion scope. The overlap check always runs again here: a quote
// reserves nothing, and the availability flag is only a cache.
func (s *reservationService) Commit(ctx context.Context, roomID, userID string, checkIn, checkOut time.Time, paymentMethod string, amount float64) (*domain.Booking, error) {
	release, err := s.locks.Lock(ctx, roomID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	booking, err := s.commitLocked(ctx, roomID, userID, checkIn, checkOut, paymentMethod, amount)
	release()

	if err != nil {
		if errors.Is(err, domain.ErrDateConflict) {
			metrics.RecordCommitConflict(ctx, roomID)
		}
		return nil, err
	}

	metrics.RecordCommit(ctx, roomID, time.Since(start).Seconds())

	// Outside the exclusion scope on purpose: a slow broker must not stall
	// other reservations for this room.
	if err := s.publisher.PublishBookingConfirmed(ctx, booking); err != nil {
		s.log.Warn("failed to publish booking confirmed event", logger.Err(err), logger.String("booking_id", booking.ID))
	}

	return booking, nil
}

func (s *reservationService) commitLocked(ctx context.Context, roomID, userID string, checkIn, checkOut time.Time, paymentMethod string, amount float64) (*domain.Booking, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := availability.ValidateRange(checkIn, checkOut, startOfToday()); err != nil {
		return nil, err
	}

	active, err := s.bookings.FindActiveByRoom(ctx, roomID, "")
	if err != nil {
		return nil, err
	}
	if availability.Overlaps(roomID, checkIn, checkOut, active, "") {
		return nil, domain.ErrDateConflict
	}

	if amount <= 0 || strings.TrimSpace(paymentMethod) == "" {
		return nil, domain.ErrInvalidPayment
	}

	now := time.Now()
	nights := availability.Nights(checkIn, checkOut)
	booking := &domain.Booking{
		ID:          uuid.New().String(),
		RoomID:      roomID,
		UserID:      userID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: room.PricePerNight * float64(nights),
		Status:      domain.BookingStatusConfirmed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	payment, err := domain.NewPayment(booking.ID, paymentMethod, amount, now)
	if err != nil {
		return nil, err
	}

	if err := s.store.CommitReservation(ctx, booking, payment); err != nil {
		return nil, err
	}

	return booking, nil
}

// Cancel reverses a confirmed booking under the same room exclusion scope
// commit uses, so the flag and status transitions never interleave with a
// competing commit mid-overlap-check.
func (s *reservationService) Cancel(ctx context.Context, bookingID, userID string) (*domain.Booking, error) {
	// Resolve the room before locking; ownership and status are checked
	// again on the re-read inside the critical section.
	peek, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	release, err := s.locks.Lock(ctx, peek.RoomID)
	if err != nil {
		return nil, err
	}

	booking, refund, err := s.cancelLocked(ctx, bookingID, userID)
	release()

	if err != nil {
		return nil, err
	}

	metrics.RecordCancellation(ctx, booking.RoomID)

	if err := s.publisher.PublishBookingCancelled(ctx, booking, refund); err != nil {
		s.log.Warn("failed to publish booking cancelled event", logger.Err(err), logger.String("booking_id", booking.ID))
	}

	return booking, nil
}

func (s *reservationService) cancelLocked(ctx context.Context, bookingID, userID string) (*domain.Booking, float64, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, 0, err
	}

	if !booking.BelongsToUser(userID) {
		return nil, 0, domain.ErrNotBookingOwner
	}

	if err := booking.Cancel(time.Now(), s.cancelWindow); err != nil {
		return nil, 0, err
	}

	refund := booking.TotalAmount * s.refundRate

	payment, err := s.payments.FindByBooking(ctx, bookingID)
	if err != nil && !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, 0, err
	}
	if payment != nil {
		payment.Refund(refund)
	}

	if err := s.store.CancelReservation(ctx, booking, payment); err != nil {
		return nil, 0, err
	}

	return booking, refund, nil
}

// GetBooking retrieves a booking by ID
func (s *reservationService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.bookings.FindByID(ctx, bookingID)
}

// ListBookings retrieves all bookings
func (s *reservationService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookings.FindAll(ctx)
}

// ListRoomBookings retrieves all bookings for a room
func (s *reservationService) ListRoomBookings(ctx context.Context, roomID string) ([]*domain.Booking, error) {
	return s.bookings.FindByRoom(ctx, roomID)
}

// startOfToday returns today's UTC midnight. Wire dates parse to UTC
// midnight, so the comparison frame must not depend on the server's zone.
func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
