package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"movietix/internal/data/entity"
	"movietix/internal/data/repository"
	"movietix/internal/dto/request"
	"movietix/internal/dto/response"
	"movietix/pkg/utils"

	"go.uber.org/zap"
)

// bookingIDAttempts bounds the retry loop when a generated booking id
// collides with an existing one.
const bookingIDAttempts = 5

type BookingService interface {
	// CreateBooking turns a seat selection into a durable booking. userID is
	// nil for guest checkout.
	CreateBooking(ctx context.Context, userID *int, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, id string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID int) ([]response.BookingResponse, error)
}

type bookingService struct {
	store repository.Store
	log   *zap.Logger

	// Booking attempts for one showtime are serialized so the availability
	// check and the write behave as one step. Different showtimes never
	// contend.
	mu        sync.Mutex
	showtimes map[int]*sync.Mutex
}

func NewBookingService(store repository.Store, log *zap.Logger) BookingService {
	return &bookingService{
		store:     store,
		log:       log.With(zap.String("service", "booking")),
		showtimes: make(map[int]*sync.Mutex),
	}
}

func (s *bookingService) showtimeLock(showtimeID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.showtimes[showtimeID]
	if !ok {
		lock = &sync.Mutex{}
		s.showtimes[showtimeID] = lock
	}
	return lock
}

func (s *bookingService) CreateBooking(ctx context.Context, userID *int, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}
	if len(req.SeatIDs) == 0 {
		return nil, fmt.Errorf("%w: no seats selected", ErrInvalidRequest)
	}

	movie, err := s.store.GetMovie(ctx, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("check movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie %d", ErrNotFound, req.MovieID)
	}

	showtime, err := s.store.GetShowtime(ctx, req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("check showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("%w: showtime %d", ErrNotFound, req.ShowtimeID)
	}
	if showtime.MovieID != req.MovieID {
		return nil, fmt.Errorf("%w: showtime %d does not belong to movie %d", ErrInvalidRequest, req.ShowtimeID, req.MovieID)
	}

	lock := s.showtimeLock(req.ShowtimeID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read seat state under the lock; nothing is cached across requests.
	seats, err := s.store.ListSeatsForShowtime(ctx, req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("check seat availability: %w", err)
	}
	byID := make(map[int]*entity.Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}

	var conflicting []string
	totalAmount := 0
	for _, seatID := range req.SeatIDs {
		seat, ok := byID[seatID]
		if !ok {
			// Also rejects a seat id that exists under a different showtime.
			return nil, fmt.Errorf("%w: seat %d not in showtime %d", ErrInvalidRequest, seatID, req.ShowtimeID)
		}
		if seat.Booked {
			conflicting = append(conflicting, seat.Name)
			continue
		}
		totalAmount += seat.Type.Price()
	}
	if len(conflicting) > 0 {
		return nil, &SeatsUnavailableError{SeatNames: conflicting}
	}

	booking := &entity.Booking{
		MovieID:     req.MovieID,
		ShowtimeID:  req.ShowtimeID,
		SeatIDs:     req.SeatIDs,
		TotalAmount: totalAmount,
		BookingDate: time.Now(),
		UserID:      userID,
	}

	var created *entity.Booking
	for attempt := 0; attempt < bookingIDAttempts; attempt++ {
		booking.ID = utils.GenerateBookingID()
		created, err = s.store.CreateBooking(ctx, booking)
		if errors.Is(err, repository.ErrDuplicateBooking) {
			s.log.Warn("Booking id collision, retrying", zap.String("booking_id", booking.ID))
			continue
		}
		break
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBooking):
			s.log.Error("Booking id space exhausted",
				zap.Int("attempts", bookingIDAttempts),
				zap.Int("showtime_id", req.ShowtimeID),
			)
			return nil, ErrBookingIDExhausted
		case errors.Is(err, repository.ErrSeatTaken):
			// Lost a cross-process race at the storage layer.
			return nil, &SeatsUnavailableError{SeatNames: s.conflictingSeatNames(ctx, req.ShowtimeID, req.SeatIDs, byID)}
		case errors.Is(err, repository.ErrUnknownSeat):
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		default:
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.Int("showtime_id", req.ShowtimeID),
				zap.Int("seat_count", len(req.SeatIDs)),
			)
			return nil, fmt.Errorf("create booking: %w", err)
		}
	}

	s.log.Info("Booking created",
		zap.String("booking_id", created.ID),
		zap.Int("movie_id", created.MovieID),
		zap.Int("showtime_id", created.ShowtimeID),
		zap.Int("seat_count", len(created.SeatIDs)),
		zap.Int("total_amount", created.TotalAmount),
	)

	resp := response.BookingToResponse(created, seatNames(byID, created.SeatIDs))
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*response.BookingResponse, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", id))
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	resp := response.BookingToResponse(booking, s.lookupSeatNames(ctx, booking.SeatIDs))
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID int) ([]response.BookingResponse, error) {
	bookings, err := s.store.ListBookingsForUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list user bookings", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}

	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = response.BookingToResponse(b, s.lookupSeatNames(ctx, b.SeatIDs))
	}
	return out, nil
}

// conflictingSeatNames re-reads seat state after a storage-level conflict so
// the response names only the seats actually lost, not the whole selection.
// When the re-read cannot identify the losers, the whole selection is
// reported.
func (s *bookingService) conflictingSeatNames(ctx context.Context, showtimeID int, seatIDs []int, byID map[int]*entity.Seat) []string {
	seats, err := s.store.ListSeatsForShowtime(ctx, showtimeID)
	if err != nil {
		return seatNames(byID, seatIDs)
	}

	current := make(map[int]*entity.Seat, len(seats))
	for _, seat := range seats {
		current[seat.ID] = seat
	}

	var names []string
	for _, id := range seatIDs {
		if seat, ok := current[id]; ok && seat.Booked {
			names = append(names, seat.Name)
		}
	}
	if len(names) == 0 {
		return seatNames(byID, seatIDs)
	}
	return names
}

// lookupSeatNames resolves seat ids to names for display; misses are skipped
// rather than failing the whole response.
func (s *bookingService) lookupSeatNames(ctx context.Context, seatIDs []int) []string {
	names := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, err := s.store.GetSeat(ctx, id)
		if err != nil || seat == nil {
			continue
		}
		names = append(names, seat.Name)
	}
	return names
}

func seatNames(byID map[int]*entity.Seat, seatIDs []int) []string {
	names := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		if seat, ok := byID[id]; ok {
			names = append(names, seat.Name)
		}
	}
	return names
}
