package repository

import (
	"context"
	"errors"
	"sync"

	"movietix/internal/data/entity"

	"go.uber.org/zap"
)

type hybridState int

const (
	statePrimary hybridState = iota
	stateDegraded
)

// HybridStore serves every call from the persistent backend while healthy and
// demotes to the volatile backend on the first infrastructure failure. The
// transition is one-way: there is no automatic re-promotion, and after
// demotion every read and write goes through memory only. Demotion never
// surfaces to the caller; the failed operation is retried against memory.
//
// Domain outcomes (seat conflicts, duplicate booking ids, duplicate
// usernames, unknown seats) are not failures and pass through without
// demoting.
type HybridStore struct {
	primary  Store
	fallback *MemStore

	mu    sync.Mutex
	state hybridState

	log *zap.Logger
}

// NewHybridStore wraps primary and fallback. A nil primary starts the store
// already degraded (no database configured). With a live primary an initial
// best-effort copy of the catalogue into memory is taken, so data captured
// before a later failure stays readable after demotion.
func NewHybridStore(primary Store, fallback *MemStore, log *zap.Logger) *HybridStore {
	h := &HybridStore{
		primary:  primary,
		fallback: fallback,
		log:      log.With(zap.String("store", "hybrid")),
	}
	if primary == nil {
		h.state = stateDegraded
		h.log.Warn("No persistent backend, starting on volatile storage only")
		return h
	}

	if err := h.syncToMemory(context.Background()); err != nil {
		h.log.Warn("Initial sync to memory failed", zap.Error(err))
	}
	return h
}

// Degraded reports whether the store has fallen back to volatile storage.
func (h *HybridStore) Degraded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == stateDegraded
}

func (h *HybridStore) demote(ctx context.Context, op string, cause error) {
	h.mu.Lock()
	if h.state == stateDegraded {
		h.mu.Unlock()
		return
	}
	h.state = stateDegraded
	h.mu.Unlock()

	h.log.Error("Persistent backend failed, demoting to volatile storage",
		zap.String("operation", op),
		zap.Error(cause),
	)

	// One last attempt to capture whatever the database still serves.
	if err := h.syncToMemory(ctx); err != nil {
		h.log.Warn("Resync before fallback failed", zap.Error(err))
	}
}

// syncToMemory copies the catalogue (movies, showtimes, seats) from the
// persistent backend into memory. Ids are preserved because MemStore honors
// explicit ids on create. Bookings and users are not copied, matching the
// resync scope of the original system.
func (h *HybridStore) syncToMemory(ctx context.Context) error {
	movies, err := h.primary.ListMovies(ctx)
	if err != nil {
		return err
	}
	for _, m := range movies {
		if _, err := h.fallback.CreateMovie(ctx, m); err != nil {
			return err
		}
	}

	showtimes, err := h.primary.ListShowtimes(ctx)
	if err != nil {
		return err
	}
	for _, st := range showtimes {
		if _, err := h.fallback.CreateShowtime(ctx, st); err != nil {
			return err
		}
		seats, err := h.primary.ListSeatsForShowtime(ctx, st.ID)
		if err != nil {
			return err
		}
		for _, seat := range seats {
			if _, err := h.fallback.CreateSeat(ctx, seat); err != nil {
				return err
			}
		}
	}

	h.log.Info("Synced persistent data to volatile storage",
		zap.Int("movies", len(movies)),
		zap.Int("showtimes", len(showtimes)),
	)
	return nil
}

// domainOutcome separates business results from infrastructure failures so a
// losing booking attempt does not demote the whole store.
func domainOutcome(err error) bool {
	return errors.Is(err, ErrSeatTaken) ||
		errors.Is(err, ErrDuplicateBooking) ||
		errors.Is(err, ErrDuplicateUser) ||
		errors.Is(err, ErrUnknownSeat)
}

func withFallback[T any](ctx context.Context, h *HybridStore, op string, primaryFn, fallbackFn func() (T, error)) (T, error) {
	h.mu.Lock()
	usePrimary := h.state == statePrimary
	h.mu.Unlock()

	if usePrimary {
		v, err := primaryFn()
		if err == nil || domainOutcome(err) {
			return v, err
		}
		h.demote(ctx, op, err)
	}
	return fallbackFn()
}

// ==================== Movies ====================

func (h *HybridStore) ListMovies(ctx context.Context) ([]*entity.Movie, error) {
	return withFallback(ctx, h, "ListMovies",
		func() ([]*entity.Movie, error) { return h.primary.ListMovies(ctx) },
		func() ([]*entity.Movie, error) { return h.fallback.ListMovies(ctx) },
	)
}

func (h *HybridStore) GetMovie(ctx context.Context, id int) (*entity.Movie, error) {
	return withFallback(ctx, h, "GetMovie",
		func() (*entity.Movie, error) { return h.primary.GetMovie(ctx, id) },
		func() (*entity.Movie, error) { return h.fallback.GetMovie(ctx, id) },
	)
}

func (h *HybridStore) CreateMovie(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	return withFallback(ctx, h, "CreateMovie",
		func() (*entity.Movie, error) { return h.primary.CreateMovie(ctx, movie) },
		func() (*entity.Movie, error) { return h.fallback.CreateMovie(ctx, movie) },
	)
}

// ==================== Showtimes ====================

func (h *HybridStore) ListShowtimes(ctx context.Context) ([]*entity.Showtime, error) {
	return withFallback(ctx, h, "ListShowtimes",
		func() ([]*entity.Showtime, error) { return h.primary.ListShowtimes(ctx) },
		func() ([]*entity.Showtime, error) { return h.fallback.ListShowtimes(ctx) },
	)
}

func (h *HybridStore) GetShowtime(ctx context.Context, id int) (*entity.Showtime, error) {
	return withFallback(ctx, h, "GetShowtime",
		func() (*entity.Showtime, error) { return h.primary.GetShowtime(ctx, id) },
		func() (*entity.Showtime, error) { return h.fallback.GetShowtime(ctx, id) },
	)
}

func (h *HybridStore) ListShowtimesForMovie(ctx context.Context, movieID int) ([]*entity.Showtime, error) {
	return withFallback(ctx, h, "ListShowtimesForMovie",
		func() ([]*entity.Showtime, error) { return h.primary.ListShowtimesForMovie(ctx, movieID) },
		func() ([]*entity.Showtime, error) { return h.fallback.ListShowtimesForMovie(ctx, movieID) },
	)
}

func (h *HybridStore) CreateShowtime(ctx context.Context, showtime *entity.Showtime) (*entity.Showtime, error) {
	return withFallback(ctx, h, "CreateShowtime",
		func() (*entity.Showtime, error) { return h.primary.CreateShowtime(ctx, showtime) },
		func() (*entity.Showtime, error) { return h.fallback.CreateShowtime(ctx, showtime) },
	)
}

// ==================== Seats ====================

func (h *HybridStore) GetSeat(ctx context.Context, id int) (*entity.Seat, error) {
	return withFallback(ctx, h, "GetSeat",
		func() (*entity.Seat, error) { return h.primary.GetSeat(ctx, id) },
		func() (*entity.Seat, error) { return h.fallback.GetSeat(ctx, id) },
	)
}

func (h *HybridStore) ListSeatsForShowtime(ctx context.Context, showtimeID int) ([]*entity.Seat, error) {
	return withFallback(ctx, h, "ListSeatsForShowtime",
		func() ([]*entity.Seat, error) { return h.primary.ListSeatsForShowtime(ctx, showtimeID) },
		func() ([]*entity.Seat, error) { return h.fallback.ListSeatsForShowtime(ctx, showtimeID) },
	)
}

func (h *HybridStore) CreateSeat(ctx context.Context, seat *entity.Seat) (*entity.Seat, error) {
	return withFallback(ctx, h, "CreateSeat",
		func() (*entity.Seat, error) { return h.primary.CreateSeat(ctx, seat) },
		func() (*entity.Seat, error) { return h.fallback.CreateSeat(ctx, seat) },
	)
}

func (h *HybridStore) SetSeatBooked(ctx context.Context, id int, booked bool) (*entity.Seat, error) {
	return withFallback(ctx, h, "SetSeatBooked",
		func() (*entity.Seat, error) { return h.primary.SetSeatBooked(ctx, id, booked) },
		func() (*entity.Seat, error) { return h.fallback.SetSeatBooked(ctx, id, booked) },
	)
}

// ==================== Bookings ====================

func (h *HybridStore) GetBooking(ctx context.Context, id string) (*entity.Booking, error) {
	return withFallback(ctx, h, "GetBooking",
		func() (*entity.Booking, error) { return h.primary.GetBooking(ctx, id) },
		func() (*entity.Booking, error) { return h.fallback.GetBooking(ctx, id) },
	)
}

func (h *HybridStore) ListBookingsForUser(ctx context.Context, userID int) ([]*entity.Booking, error) {
	return withFallback(ctx, h, "ListBookingsForUser",
		func() ([]*entity.Booking, error) { return h.primary.ListBookingsForUser(ctx, userID) },
		func() ([]*entity.Booking, error) { return h.fallback.ListBookingsForUser(ctx, userID) },
	)
}

func (h *HybridStore) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	return withFallback(ctx, h, "CreateBooking",
		func() (*entity.Booking, error) { return h.primary.CreateBooking(ctx, booking) },
		func() (*entity.Booking, error) { return h.fallback.CreateBooking(ctx, booking) },
	)
}

// ==================== Users ====================

func (h *HybridStore) GetUser(ctx context.Context, id int) (*entity.User, error) {
	return withFallback(ctx, h, "GetUser",
		func() (*entity.User, error) { return h.primary.GetUser(ctx, id) },
		func() (*entity.User, error) { return h.fallback.GetUser(ctx, id) },
	)
}

func (h *HybridStore) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return withFallback(ctx, h, "GetUserByUsername",
		func() (*entity.User, error) { return h.primary.GetUserByUsername(ctx, username) },
		func() (*entity.User, error) { return h.fallback.GetUserByUsername(ctx, username) },
	)
}

func (h *HybridStore) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	return withFallback(ctx, h, "CreateUser",
		func() (*entity.User, error) { return h.primary.CreateUser(ctx, user) },
		func() (*entity.User, error) { return h.fallback.CreateUser(ctx, user) },
	)
}

// ==================== Seeding ====================

// SeedInitialData seeds whichever backends are active. Memory is always
// seeded so a later demotion lands on a populated catalogue; both paths are
// idempotent.
func (h *HybridStore) SeedInitialData(ctx context.Context) error {
	h.mu.Lock()
	usePrimary := h.state == statePrimary
	h.mu.Unlock()

	if usePrimary {
		if err := h.primary.SeedInitialData(ctx); err != nil {
			h.demote(ctx, "SeedInitialData", err)
		}
	}
	return h.fallback.SeedInitialData(ctx)
}
