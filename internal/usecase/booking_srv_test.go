package usecase

import (
	"context"
	"strings"
	"testing"

	"movietix/internal/data/entity"
	"movietix/internal/data/repository"
	"movietix/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seededStore(t *testing.T) *repository.MemStore {
	t.Helper()
	store := repository.NewMemStore(zap.NewNop())
	require.NoError(t, store.SeedInitialData(context.Background()))
	return store
}

func TestCreateBookingComputesPriceServerSide(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewBookingService(store, zap.NewNop())

	// Seat 1 is G1 (GOLD, 400), seat 9 is R1 (RED, 250), seat 29 is B1
	// (BLUE, 150) in showtime 1's block.
	resp, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID:    1,
		ShowtimeID: 1,
		SeatIDs:    []int{1, 9, 29},
	})
	require.NoError(t, err)

	assert.Equal(t, 800, resp.TotalAmount)
	assert.Equal(t, []string{"G1", "R1", "B1"}, resp.SeatNames)
	assert.True(t, strings.HasPrefix(resp.ID, "MTIX"))
	assert.Len(t, resp.ID, 11)
	assert.Nil(t, resp.UserID)

	for _, id := range []int{1, 9, 29} {
		seat, err := store.GetSeat(ctx, id)
		require.NoError(t, err)
		assert.True(t, seat.Booked)
	}
}

func TestCreateBookingRejectsDoubleBooking(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewBookingService(store, zap.NewNop())

	_, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{1},
	})
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{1, 2},
	})

	var unavailable *SeatsUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"G1"}, unavailable.SeatNames)

	// The available seat in the losing request is untouched.
	seat, err := store.GetSeat(ctx, 2)
	require.NoError(t, err)
	assert.False(t, seat.Booked)
}

func TestCreateBookingRejectsSeatFromOtherShowtime(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(seededStore(t), zap.NewNop())

	// Seat 65 belongs to showtime 2.
	_, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{65},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateBookingRejectsMismatchedShowtime(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(seededStore(t), zap.NewNop())

	// Showtime 6 belongs to movie 2.
	_, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 6, SeatIDs: []int{321},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateBookingRejectsEmptySelection(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(seededStore(t), zap.NewNop())

	_, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateBookingUnknownMovieAndShowtime(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(seededStore(t), zap.NewNop())

	_, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 999, ShowtimeID: 1, SeatIDs: []int{1},
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 999, SeatIDs: []int{1},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBookingAttributesUser(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewBookingService(store, zap.NewNop())

	userID := 7
	resp, err := svc.CreateBooking(ctx, &userID, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{10},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, 7, *resp.UserID)

	bookings, err := svc.GetUserBookings(ctx, 7)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, resp.ID, bookings[0].ID)

	none, err := svc.GetUserBookings(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(seededStore(t), zap.NewNop())

	created, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{30, 31},
	})
	require.NoError(t, err)

	fetched, err := svc.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.TotalAmount, fetched.TotalAmount)
	assert.Equal(t, []string{"B2", "B3"}, fetched.SeatNames)

	_, err = svc.GetBooking(ctx, "MTIX9999999")
	require.ErrorIs(t, err, ErrNotFound)
}

// collidingStore forces id collisions on the first CreateBooking calls.
type collidingStore struct {
	*repository.MemStore
	rejections int
}

func (s *collidingStore) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if s.rejections > 0 {
		s.rejections--
		return nil, repository.ErrDuplicateBooking
	}
	return s.MemStore.CreateBooking(ctx, booking)
}

func TestCreateBookingRetriesOnIDCollision(t *testing.T) {
	ctx := context.Background()
	store := &collidingStore{MemStore: seededStore(t), rejections: 2}
	svc := NewBookingService(store, zap.NewNop())

	resp, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{1},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ID, "MTIX"))
	assert.Zero(t, store.rejections)
}

func TestCreateBookingGivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := context.Background()
	store := &collidingStore{MemStore: seededStore(t), rejections: 100}
	svc := NewBookingService(store, zap.NewNop())

	_, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{1},
	})
	require.ErrorIs(t, err, ErrBookingIDExhausted)

	// No seats were flipped by the failed attempts.
	seat, err := store.GetSeat(ctx, 1)
	require.NoError(t, err)
	assert.False(t, seat.Booked)
}

// racedStore loses a seat to another process between the engine's
// availability check and the storage write.
type racedStore struct {
	*repository.MemStore
	stolenSeatID int
}

func (s *racedStore) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if _, err := s.MemStore.SetSeatBooked(ctx, s.stolenSeatID, true); err != nil {
		return nil, err
	}
	return s.MemStore.CreateBooking(ctx, booking)
}

func TestCreateBookingReportsOnlyLostSeatsOnStorageRace(t *testing.T) {
	ctx := context.Background()
	store := &racedStore{MemStore: seededStore(t), stolenSeatID: 1}
	svc := NewBookingService(store, zap.NewNop())

	_, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
		MovieID: 1, ShowtimeID: 1, SeatIDs: []int{1, 2},
	})

	var unavailable *SeatsUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"G1"}, unavailable.SeatNames)

	// The seat the request did not lose stays free.
	seat, err := store.GetSeat(ctx, 2)
	require.NoError(t, err)
	assert.False(t, seat.Booked)
}

func TestConcurrentBookingsOneWinner(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewBookingService(store, zap.NewNop())

	const contenders = 16
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		go func() {
			_, err := svc.CreateBooking(ctx, nil, &request.CreateBookingRequest{
				MovieID: 1, ShowtimeID: 1, SeatIDs: []int{4},
			})
			results <- err
		}()
	}

	won := 0
	for i := 0; i < contenders; i++ {
		err := <-results
		if err == nil {
			won++
			continue
		}
		var unavailable *SeatsUnavailableError
		require.ErrorAs(t, err, &unavailable)
	}
	assert.Equal(t, 1, won)
}
