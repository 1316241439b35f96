package repository

import (
	"context"
	"errors"
	"testing"

	"movietix/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errBackendDown = errors.New("connection refused")

// flakyStore delegates to a real store until fail is set, then every
// overridden call reports an infrastructure failure.
type flakyStore struct {
	Store
	fail bool
}

func (f *flakyStore) ListMovies(ctx context.Context) ([]*entity.Movie, error) {
	if f.fail {
		return nil, errBackendDown
	}
	return f.Store.ListMovies(ctx)
}

func (f *flakyStore) GetMovie(ctx context.Context, id int) (*entity.Movie, error) {
	if f.fail {
		return nil, errBackendDown
	}
	return f.Store.GetMovie(ctx, id)
}

func (f *flakyStore) ListShowtimes(ctx context.Context) ([]*entity.Showtime, error) {
	if f.fail {
		return nil, errBackendDown
	}
	return f.Store.ListShowtimes(ctx)
}

func (f *flakyStore) ListSeatsForShowtime(ctx context.Context, showtimeID int) ([]*entity.Seat, error) {
	if f.fail {
		return nil, errBackendDown
	}
	return f.Store.ListSeatsForShowtime(ctx, showtimeID)
}

func (f *flakyStore) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if f.fail {
		return nil, errBackendDown
	}
	return f.Store.CreateBooking(ctx, booking)
}

func (f *flakyStore) SeedInitialData(ctx context.Context) error {
	if f.fail {
		return errBackendDown
	}
	return f.Store.SeedInitialData(ctx)
}

func TestHybridStoreStartsDegradedWithoutPrimary(t *testing.T) {
	ctx := context.Background()
	h := NewHybridStore(nil, NewMemStore(zap.NewNop()), zap.NewNop())

	assert.True(t, h.Degraded())

	require.NoError(t, h.SeedInitialData(ctx))
	movies, err := h.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 6)
}

func TestHybridStoreServesPrimaryWhileHealthy(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{Store: seededMemStore(t)}
	h := NewHybridStore(primary, NewMemStore(zap.NewNop()), zap.NewNop())

	assert.False(t, h.Degraded())

	movie, err := h.GetMovie(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, movie)
}

func TestHybridStoreDemotesOnInfrastructureFailure(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{Store: seededMemStore(t)}
	h := NewHybridStore(primary, NewMemStore(zap.NewNop()), zap.NewNop())

	// The construction-time sync already copied the catalogue into memory.
	primary.fail = true

	// The failing call itself succeeds against memory, never surfacing the
	// backend error to the caller.
	movies, err := h.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 6)
	assert.True(t, h.Degraded())

	// Synced rows keep their original ids after the switch.
	seats, err := h.ListSeatsForShowtime(ctx, 2)
	require.NoError(t, err)
	require.Len(t, seats, 64)
	assert.Equal(t, 65, seats[0].ID)

	// Writes now land in memory too.
	_, err = h.CreateBooking(ctx, &entity.Booking{
		ID: "MTIX0000010", MovieID: 1, ShowtimeID: 1, SeatIDs: []int{1},
	})
	require.NoError(t, err)
	seat, err := h.GetSeat(ctx, 1)
	require.NoError(t, err)
	assert.True(t, seat.Booked)
}

func TestHybridStoreDemotionIsOneWay(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{Store: seededMemStore(t)}
	h := NewHybridStore(primary, NewMemStore(zap.NewNop()), zap.NewNop())

	primary.fail = true
	_, err := h.ListMovies(ctx)
	require.NoError(t, err)
	require.True(t, h.Degraded())

	// The backend recovering does not re-promote.
	primary.fail = false
	_, err = h.ListMovies(ctx)
	require.NoError(t, err)
	assert.True(t, h.Degraded())
}

func TestHybridStoreDomainErrorsDoNotDemote(t *testing.T) {
	ctx := context.Background()
	inner := seededMemStore(t)
	primary := &flakyStore{Store: inner}
	h := NewHybridStore(primary, NewMemStore(zap.NewNop()), zap.NewNop())

	_, err := inner.SetSeatBooked(ctx, 1, true)
	require.NoError(t, err)

	_, err = h.CreateBooking(ctx, &entity.Booking{
		ID: "MTIX0000011", MovieID: 1, ShowtimeID: 1, SeatIDs: []int{1},
	})
	require.ErrorIs(t, err, ErrSeatTaken)
	assert.False(t, h.Degraded())
}

func TestHybridStoreDuplicateUsernameDoesNotDemote(t *testing.T) {
	ctx := context.Background()
	inner := seededMemStore(t)
	primary := &flakyStore{Store: inner}
	fallback := NewMemStore(zap.NewNop())
	h := NewHybridStore(primary, fallback, zap.NewNop())

	_, err := h.CreateUser(ctx, &entity.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	// The uniqueness violation surfaces to the caller; it neither demotes
	// the store nor slips the duplicate into the fallback backend.
	_, err = h.CreateUser(ctx, &entity.User{Username: "alice", PasswordHash: "y"})
	require.ErrorIs(t, err, ErrDuplicateUser)
	assert.False(t, h.Degraded())

	ghost, err := fallback.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, ghost)
}

func TestHybridStoreUnknownSeatDoesNotDemote(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{Store: seededMemStore(t)}
	h := NewHybridStore(primary, NewMemStore(zap.NewNop()), zap.NewNop())

	_, err := h.CreateBooking(ctx, &entity.Booking{
		ID: "MTIX0000012", MovieID: 1, ShowtimeID: 1, SeatIDs: []int{9999},
	})
	require.ErrorIs(t, err, ErrUnknownSeat)
	assert.False(t, h.Degraded())
}

func TestHybridStoreSeedFailureFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{Store: newTestMemStore(t), fail: true}
	h := NewHybridStore(primary, NewMemStore(zap.NewNop()), zap.NewNop())

	require.NoError(t, h.SeedInitialData(ctx))
	assert.True(t, h.Degraded())

	movies, err := h.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 6)
}
