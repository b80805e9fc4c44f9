package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelhub/reservation/internal/domain"
	"github.com/hotelhub/reservation/internal/lock"
	"github.com/hotelhub/reservation/internal/repository"
)

const (
	testRoomID = "room-101"
	testUserID = "user-1"
)

func newTestService(t *testing.T, cfg *ReservationServiceConfig) (ReservationService, *repository.MemoryStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	store.AddRoom(&domain.Room{
		ID:            testRoomID,
		RoomNumber:    "101",
		Type:          "DOUBLE",
		PricePerNight: 100,
		Available:     true,
	})

	svc := NewReservationService(store, store, store.Payments(), store, lock.NewKeyedRoomLock(), nil, nil, cfg)
	return svc, store
}

func futureRange(daysAhead, nights int) (time.Time, time.Time) {
	checkIn := time.Now().AddDate(0, 0, daysAhead).Truncate(24 * time.Hour)
	return checkIn, checkIn.AddDate(0, 0, nights)
}

func TestQuote_ComputesTotalFromNights(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	quote, err := svc.Quote(context.Background(), testRoomID, checkIn, checkOut)
	require.NoError(t, err)

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 300.0, quote.TotalAmount)
	assert.Equal(t, testRoomID, quote.Room.ID)
}

func TestQuote_RoomNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	_, err := svc.Quote(context.Background(), "no-such-room", checkIn, checkOut)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestQuote_ZeroNightRange(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, _ := futureRange(10, 0)

	_, err := svc.Quote(context.Background(), testRoomID, checkIn, checkIn)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestQuote_ConflictWithConfirmedBooking(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	_, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), testRoomID, checkIn.AddDate(0, 0, 1), checkOut.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, domain.ErrDateConflict)
}

func TestQuote_BackToBackRangesDoNotConflict(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	_, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	// checkout day is not occupied, so a stay starting that day is fine
	quote, err := svc.Quote(context.Background(), testRoomID, checkOut, checkOut.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, quote.Nights)
}

func TestCommit_CreatesBookingAndPaymentAndFlipsFlag(t *testing.T) {
	svc, store := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, 300.0, booking.TotalAmount)

	payment, err := store.FindByBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, 300.0, payment.Amount)
	assert.Equal(t, 300.0, payment.OriginalAmount)

	room, err := store.GetByID(context.Background(), testRoomID)
	require.NoError(t, err)
	assert.False(t, room.Available)
}

func TestCommit_OverlapRejected(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	_, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	_, err = svc.Commit(context.Background(), testRoomID, "user-2", checkIn.AddDate(0, 0, 2), checkOut.AddDate(0, 0, 2), "CARD", 300)
	assert.ErrorIs(t, err, domain.ErrDateConflict)
}

func TestCommit_InvalidPaymentPersistsNothing(t *testing.T) {
	svc, store := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	_, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)

	bookings, err := store.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)

	room, err := store.GetByID(context.Background(), testRoomID)
	require.NoError(t, err)
	assert.True(t, room.Available)
}

func TestCommit_InvalidRangeCheckedBeforeOverlap(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	_, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	// a degenerate range inside an occupied span still reports the range
	// error, never a conflict
	_, err = svc.Commit(context.Background(), testRoomID, "user-2", checkIn, checkIn, "CARD", 100)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestCommit_PastCheckInRejected(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn := time.Now().AddDate(0, 0, -2)

	_, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkIn.AddDate(0, 0, 3), "CARD", 300)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestCommit_ConcurrentOverlappingExactlyOneWins(t *testing.T) {
	svc, store := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	const attempts = 16
	results := make([]error, attempts)

	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			_, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
			results[i] = err
		}(i)
	}
	start.Done()
	done.Wait()

	var won, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, domain.ErrDateConflict):
			conflicted++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, conflicted)

	bookings, err := store.FindActiveByRoom(context.Background(), testRoomID, "")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestCancel_RefundsNinetyPercent(t *testing.T) {
	svc, store := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), booking.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)

	payment, err := store.FindByBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, payment.Status)
	assert.InDelta(t, 270.0, payment.Amount, 1e-9)
	assert.Equal(t, 300.0, payment.OriginalAmount)

	room, err := store.GetByID(context.Background(), testRoomID)
	require.NoError(t, err)
	assert.True(t, room.Available)
}

func TestCancel_FreesDatesForRebooking(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID, testUserID)
	require.NoError(t, err)

	_, err = svc.Commit(context.Background(), testRoomID, "user-2", checkIn, checkOut, "CARD", 300)
	assert.NoError(t, err)
}

func TestCancel_BookingNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Cancel(context.Background(), "no-such-booking", testUserID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestCancel_NotOwner(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotBookingOwner)
}

func TestCancel_TwiceReportsAlreadyCancelled(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID, testUserID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrBookingAlreadyCancelled)
}

func TestCancel_WindowExpired(t *testing.T) {
	svc, store := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	// age the booking past the 2h window
	aged, err := store.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	aged.CreatedAt = time.Now().Add(-3 * time.Hour)
	require.NoError(t, store.Save(context.Background(), aged))

	_, err = svc.Cancel(context.Background(), booking.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrCancelWindowExpired)

	current, err := store.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, current.Status)
}

func TestCancel_CustomWindowAndRate(t *testing.T) {
	svc, store := newTestService(t, &ReservationServiceConfig{
		CancellationWindow: 24 * time.Hour,
		RefundRate:         0.5,
	})
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	aged, err := store.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	aged.CreatedAt = time.Now().Add(-3 * time.Hour)
	require.NoError(t, store.Save(context.Background(), aged))

	_, err = svc.Cancel(context.Background(), booking.ID, testUserID)
	require.NoError(t, err)

	payment, err := store.FindByBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, payment.Amount, 1e-9)
}

func TestGetBooking(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)

	got, err := svc.GetBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = svc.GetBooking(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestListRoomBookings_IncludesCancelled(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 300)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), booking.ID, testUserID)
	require.NoError(t, err)

	later, laterOut := futureRange(20, 2)
	_, err = svc.Commit(context.Background(), testRoomID, testUserID, later, laterOut, "CARD", 200)
	require.NoError(t, err)

	all, err := svc.ListRoomBookings(context.Background(), testRoomID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCommit_CheckInTodayRegardlessOfServerZone(t *testing.T) {
	// Wire dates parse to UTC midnight; "today" must be judged in the same
	// frame even when the server clock sits west of UTC.
	restore := time.Local
	time.Local = time.FixedZone("UTC-5", -5*60*60)
	defer func() { time.Local = restore }()

	svc, _ := newTestService(t, nil)

	checkIn, err := time.Parse("2006-01-02", time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	checkOut := checkIn.AddDate(0, 0, 2)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", 200)
	require.NoError(t, err)
	assert.Equal(t, 200.0, booking.TotalAmount)
}

func TestQuoteThenCommit_SameRangeSucceeds(t *testing.T) {
	svc, _ := newTestService(t, nil)
	checkIn, checkOut := futureRange(10, 3)

	quote, err := svc.Quote(context.Background(), testRoomID, checkIn, checkOut)
	require.NoError(t, err)

	booking, err := svc.Commit(context.Background(), testRoomID, testUserID, checkIn, checkOut, "CARD", quote.TotalAmount)
	require.NoError(t, err)
	assert.Equal(t, quote.TotalAmount, booking.TotalAmount)
}
