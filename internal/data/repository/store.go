// Package repository holds the storage backends behind a single Store
// contract: a volatile in-memory implementation, a Postgres implementation,
// and a hybrid wrapper that demotes from Postgres to memory on failure.
// Callers must not be able to tell which backend served them: both
// implementations return the same filtering and ordering for the same calls.
package repository

import (
	"context"
	"errors"

	"movietix/internal/data/entity"
)

// ErrSeatTaken is returned by CreateBooking when one of the booking's seats
// was flipped to booked by someone else between the caller's availability
// check and the write. Handlers should translate it into a 400 conflict.
var ErrSeatTaken = errors.New("seat already booked")

// ErrDuplicateBooking is returned by CreateBooking when the generated booking
// id already exists. The booking engine retries with a fresh id.
var ErrDuplicateBooking = errors.New("booking id already exists")

// ErrDuplicateUser is returned by CreateUser when the username is already
// taken. Two registrations racing past the service-level pre-check land here.
var ErrDuplicateUser = errors.New("username already exists")

// ErrUnknownSeat is returned by CreateBooking when a requested seat id does
// not exist for the booking's showtime.
var ErrUnknownSeat = errors.New("unknown seat")

// Store is the uniform storage contract. Lookups return (nil, nil) when the
// entity is absent; only infrastructure failures surface as errors.
type Store interface {
	// Movies
	ListMovies(ctx context.Context) ([]*entity.Movie, error)
	GetMovie(ctx context.Context, id int) (*entity.Movie, error)
	CreateMovie(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)

	// Showtimes
	ListShowtimes(ctx context.Context) ([]*entity.Showtime, error)
	GetShowtime(ctx context.Context, id int) (*entity.Showtime, error)
	ListShowtimesForMovie(ctx context.Context, movieID int) ([]*entity.Showtime, error)
	CreateShowtime(ctx context.Context, showtime *entity.Showtime) (*entity.Showtime, error)

	// Seats
	GetSeat(ctx context.Context, id int) (*entity.Seat, error)
	ListSeatsForShowtime(ctx context.Context, showtimeID int) ([]*entity.Seat, error)
	CreateSeat(ctx context.Context, seat *entity.Seat) (*entity.Seat, error)
	SetSeatBooked(ctx context.Context, id int, booked bool) (*entity.Seat, error)

	// Bookings. CreateBooking persists the record and flips its seats to
	// booked as one unit: in one transaction on Postgres, under one lock in
	// memory. A seat that is already booked fails the whole call with
	// ErrSeatTaken and leaves nothing behind.
	GetBooking(ctx context.Context, id string) (*entity.Booking, error)
	ListBookingsForUser(ctx context.Context, userID int) ([]*entity.Booking, error)
	CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)

	// Users
	GetUser(ctx context.Context, id int) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)

	// SeedInitialData loads the sample catalogue. Idempotent: a no-op when
	// movies already exist.
	SeedInitialData(ctx context.Context) error
}
