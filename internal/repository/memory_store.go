package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/hotelhub/reservation/internal/domain"
)

// MemoryStore implements RoomRepository, BookingRepository,
// PaymentRepository, and ReservationStore with in-memory maps.
// This is useful for testing and development. One mutex covers all three
// record kinds so CommitReservation and CancelReservation are atomic with
// respect to every reader.
type MemoryStore struct {
	mu       sync.RWMutex
	rooms    map[string]*domain.Room
	bookings map[string]*domain.Booking
	payments map[string]*domain.Payment // keyed by payment ID
	byBookng map[string]string          // bookingID -> paymentID
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:    make(map[string]*domain.Room),
		bookings: make(map[string]*domain.Booking),
		payments: make(map[string]*domain.Payment),
		byBookng: make(map[string]string),
	}
}

// AddRoom seeds a room into the store
func (s *MemoryStore) AddRoom(room *domain.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *room
	s.rooms[room.ID] = &r
}

// GetByID retrieves a room by its ID
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	r := *room
	return &r, nil
}

// SetAvailable updates the room's availability flag
func (s *MemoryStore) SetAvailable(ctx context.Context, id string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.Available = available
	return nil
}

// Save persists a booking record
func (s *MemoryStore) Save(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := *booking
	s.bookings[booking.ID] = &b
	return nil
}

// FindByID retrieves a booking by its ID
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b := *booking
	return &b, nil
}

// FindActiveByRoom returns the CONFIRMED bookings for a room, optionally
// excluding one booking id.
func (s *MemoryStore) FindActiveByRoom(ctx context.Context, roomID, excludeBookingID string) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Booking
	for _, booking := range s.bookings {
		if booking.RoomID != roomID || !booking.IsConfirmed() {
			continue
		}
		if excludeBookingID != "" && booking.ID == excludeBookingID {
			continue
		}
		b := *booking
		out = append(out, &b)
	}
	sortBookings(out)
	return out, nil
}

// FindByRoom returns every booking for a room regardless of status
func (s *MemoryStore) FindByRoom(ctx context.Context, roomID string) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Booking
	for _, booking := range s.bookings {
		if booking.RoomID != roomID {
			continue
		}
		b := *booking
		out = append(out, &b)
	}
	sortBookings(out)
	return out, nil
}

// FindAll returns every booking in the ledger
func (s *MemoryStore) FindAll(ctx context.Context) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		b := *booking
		out = append(out, &b)
	}
	sortBookings(out)
	return out, nil
}

// SavePayment persists a payment record
func (s *MemoryStore) SavePayment(ctx context.Context, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *payment
	s.payments[payment.ID] = &p
	s.byBookng[payment.BookingID] = payment.ID
	return nil
}

// FindByBooking retrieves the payment attached to a booking
func (s *MemoryStore) FindByBooking(ctx context.Context, bookingID string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byBookng[bookingID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	p := *s.payments[id]
	return &p, nil
}

// CommitReservation stores the booking and payment and refreshes the room's
// availability flag as one atomic unit.
func (s *MemoryStore) CommitReservation(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[booking.RoomID]
	if !ok {
		return domain.ErrRoomNotFound
	}

	b := *booking
	s.bookings[booking.ID] = &b

	p := *payment
	s.payments[payment.ID] = &p
	s.byBookng[payment.BookingID] = payment.ID

	room.Available = !s.hasConfirmedLocked(booking.RoomID)
	return nil
}

// CancelReservation stores the cancelled booking and refunded payment and
// refreshes the room's availability flag as one atomic unit.
func (s *MemoryStore) CancelReservation(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.bookings[booking.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if !current.IsConfirmed() {
		return domain.ErrBookingAlreadyCancelled
	}

	room, ok := s.rooms[booking.RoomID]
	if !ok {
		return domain.ErrRoomNotFound
	}

	b := *booking
	s.bookings[booking.ID] = &b

	if payment != nil {
		p := *payment
		s.payments[payment.ID] = &p
		s.byBookng[payment.BookingID] = payment.ID
	}

	room.Available = !s.hasConfirmedLocked(booking.RoomID)
	return nil
}

// Payments returns a PaymentRepository view over the store. MemoryStore
// cannot carry the interface method itself because Save is already taken by
// the booking side.
func (s *MemoryStore) Payments() PaymentRepository {
	return memoryPayments{s: s}
}

type memoryPayments struct {
	s *MemoryStore
}

func (m memoryPayments) Save(ctx context.Context, payment *domain.Payment) error {
	return m.s.SavePayment(ctx, payment)
}

func (m memoryPayments) FindByBooking(ctx context.Context, bookingID string) (*domain.Payment, error) {
	return m.s.FindByBooking(ctx, bookingID)
}

func (s *MemoryStore) hasConfirmedLocked(roomID string) bool {
	for _, booking := range s.bookings {
		if booking.RoomID == roomID && booking.IsConfirmed() {
			return true
		}
	}
	return false
}

func sortBookings(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CheckIn.Before(bookings[j].CheckIn)
	})
}
