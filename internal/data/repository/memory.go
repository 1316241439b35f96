package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"movietix/internal/data/entity"

	"go.uber.org/zap"
)

// MemStore is the volatile backend: process-local maps guarded by one RWMutex,
// monotonic id counters, nothing survives a restart. Create operations honor a
// caller-supplied non-zero id and bump the counter past it, so copying rows
// out of the Postgres backend preserves ids.
type MemStore struct {
	mu sync.RWMutex

	movies    map[int]*entity.Movie
	showtimes map[int]*entity.Showtime
	seats     map[int]*entity.Seat
	bookings  map[string]*entity.Booking
	users     map[int]*entity.User

	movieID    int
	showtimeID int
	seatID     int
	userID     int

	log *zap.Logger
}

func NewMemStore(log *zap.Logger) *MemStore {
	return &MemStore{
		movies:     make(map[int]*entity.Movie),
		showtimes:  make(map[int]*entity.Showtime),
		seats:      make(map[int]*entity.Seat),
		bookings:   make(map[string]*entity.Booking),
		users:      make(map[int]*entity.User),
		movieID:    1,
		showtimeID: 1,
		seatID:     1,
		userID:     1,
		log:        log.With(zap.String("store", "memory")),
	}
}

// ==================== Movies ====================

func (s *MemStore) ListMovies(ctx context.Context) ([]*entity.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movies := make([]*entity.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		cp := *m
		movies = append(movies, &cp)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (s *MemStore) GetMovie(ctx context.Context, id int) (*entity.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *MemStore) CreateMovie(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *movie
	if cp.ID == 0 {
		cp.ID = s.movieID
	}
	if cp.ID >= s.movieID {
		s.movieID = cp.ID + 1
	}
	s.movies[cp.ID] = &cp

	out := cp
	return &out, nil
}

// ==================== Showtimes ====================

func (s *MemStore) ListShowtimes(ctx context.Context) ([]*entity.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	showtimes := make([]*entity.Showtime, 0, len(s.showtimes))
	for _, st := range s.showtimes {
		cp := *st
		showtimes = append(showtimes, &cp)
	}
	sort.Slice(showtimes, func(i, j int) bool { return showtimes[i].ID < showtimes[j].ID })
	return showtimes, nil
}

func (s *MemStore) GetShowtime(ctx context.Context, id int) (*entity.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.showtimes[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *MemStore) ListShowtimesForMovie(ctx context.Context, movieID int) ([]*entity.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	showtimes := []*entity.Showtime{}
	for _, st := range s.showtimes {
		if st.MovieID == movieID {
			cp := *st
			showtimes = append(showtimes, &cp)
		}
	}
	sort.Slice(showtimes, func(i, j int) bool { return showtimes[i].ID < showtimes[j].ID })
	return showtimes, nil
}

func (s *MemStore) CreateShowtime(ctx context.Context, showtime *entity.Showtime) (*entity.Showtime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *showtime
	if cp.ID == 0 {
		cp.ID = s.showtimeID
	}
	if cp.ID >= s.showtimeID {
		s.showtimeID = cp.ID + 1
	}
	s.showtimes[cp.ID] = &cp

	out := cp
	return &out, nil
}

// ==================== Seats ====================

func (s *MemStore) GetSeat(ctx context.Context, id int) (*entity.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seat, ok := s.seats[id]
	if !ok {
		return nil, nil
	}
	cp := *seat
	return &cp, nil
}

func (s *MemStore) ListSeatsForShowtime(ctx context.Context, showtimeID int) ([]*entity.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seats := []*entity.Seat{}
	for _, seat := range s.seats {
		if seat.ShowtimeID == showtimeID {
			cp := *seat
			seats = append(seats, &cp)
		}
	}
	sortSeats(seats)
	return seats, nil
}

func (s *MemStore) CreateSeat(ctx context.Context, seat *entity.Seat) (*entity.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *seat
	if cp.ID == 0 {
		cp.ID = s.seatID
	}
	if cp.ID >= s.seatID {
		s.seatID = cp.ID + 1
	}
	s.seats[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *MemStore) SetSeatBooked(ctx context.Context, id int, booked bool) (*entity.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, ok := s.seats[id]
	if !ok {
		return nil, nil
	}
	seat.Booked = booked
	cp := *seat
	return &cp, nil
}

// ==================== Bookings ====================

func (s *MemStore) GetBooking(ctx context.Context, id string) (*entity.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	cp.SeatIDs = append([]int(nil), b.SeatIDs...)
	return &cp, nil
}

func (s *MemStore) ListBookingsForUser(ctx context.Context, userID int) ([]*entity.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := []*entity.Booking{}
	for _, b := range s.bookings {
		if b.UserID != nil && *b.UserID == userID {
			cp := *b
			cp.SeatIDs = append([]int(nil), b.SeatIDs...)
			bookings = append(bookings, &cp)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].BookingDate.Equal(bookings[j].BookingDate) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].BookingDate.Before(bookings[j].BookingDate)
	})
	return bookings, nil
}

func (s *MemStore) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[booking.ID]; exists {
		return nil, ErrDuplicateBooking
	}

	// All-or-nothing under the lock: verify every seat first, then flip.
	for _, seatID := range booking.SeatIDs {
		seat, ok := s.seats[seatID]
		if !ok {
			return nil, fmt.Errorf("%w: seat %d", ErrUnknownSeat, seatID)
		}
		if seat.Booked {
			return nil, fmt.Errorf("%w: seat %s", ErrSeatTaken, seat.Name)
		}
	}
	for _, seatID := range booking.SeatIDs {
		s.seats[seatID].Booked = true
	}

	cp := *booking
	cp.SeatIDs = append([]int(nil), booking.SeatIDs...)
	s.bookings[cp.ID] = &cp

	out := cp
	out.SeatIDs = append([]int(nil), cp.SeatIDs...)
	return &out, nil
}

// ==================== Users ====================

func (s *MemStore) GetUser(ctx context.Context, id int) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, user.Username)
		}
	}

	cp := *user
	if cp.ID == 0 {
		cp.ID = s.userID
	}
	if cp.ID >= s.userID {
		s.userID = cp.ID + 1
	}
	s.users[cp.ID] = &cp

	out := cp
	return &out, nil
}

// ==================== Seeding ====================

func (s *MemStore) SeedInitialData(ctx context.Context) error {
	s.mu.RLock()
	seeded := len(s.movies) > 0
	s.mu.RUnlock()
	if seeded {
		s.log.Debug("Catalogue already seeded, skipping")
		return nil
	}

	movies := seedMovies()
	for _, m := range movies {
		if _, err := s.CreateMovie(ctx, m); err != nil {
			return err
		}
	}
	showtimes := seedShowtimes(movies)
	for _, st := range showtimes {
		if _, err := s.CreateShowtime(ctx, st); err != nil {
			return err
		}
		for _, seat := range generateSeats(st.ID) {
			if _, err := s.CreateSeat(ctx, seat); err != nil {
				return err
			}
		}
	}

	s.log.Info("Catalogue seeded",
		zap.Int("movies", len(movies)),
		zap.Int("showtimes", len(showtimes)),
		zap.Int("seats_per_showtime", seatsPerShowtime),
	)
	return nil
}

// sortSeats orders seats by section (GOLD, RED, BLUE) then seat number for
// deterministic rendering. Within one section, shorter names sort first so
// G2 comes before G10.
func sortSeats(seats []*entity.Seat) {
	sort.Slice(seats, func(i, j int) bool {
		a, b := seats[i], seats[j]
		if a.Type.RenderRank() != b.Type.RenderRank() {
			return a.Type.RenderRank() < b.Type.RenderRank()
		}
		if len(a.Name) != len(b.Name) {
			return len(a.Name) < len(b.Name)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
