package usecase

import (
	"context"

	"movietix/internal/data/repository"
	"movietix/internal/dto/response"

	"go.uber.org/zap"
)

// CatalogueService answers read-only lookups over movies, showtimes, and
// seats. It never mutates anything.
type CatalogueService interface {
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, id int) (*response.MovieResponse, error)
	ListShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error)
	ListShowtimesForMovie(ctx context.Context, movieID int) ([]response.ShowtimeResponse, error)
	ListSeatsForShowtime(ctx context.Context, showtimeID int) ([]response.SeatResponse, error)
}

type catalogueService struct {
	store repository.Store
	log   *zap.Logger
}

func NewCatalogueService(store repository.Store, log *zap.Logger) CatalogueService {
	return &catalogueService{
		store: store,
		log:   log.With(zap.String("service", "catalogue")),
	}
}

func (s *catalogueService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, err
	}
	return response.MoviesToResponse(movies), nil
}

func (s *catalogueService) GetMovie(ctx context.Context, id int) (*response.MovieResponse, error) {
	movie, err := s.store.GetMovie(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.Int("movie_id", id))
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}
	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *catalogueService) ListShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.store.ListShowtimes(ctx)
	if err != nil {
		s.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, err
	}
	return response.ShowtimesToResponse(showtimes), nil
}

// ListShowtimesForMovie returns an empty list, not an error, for a movie with
// no showtimes.
func (s *catalogueService) ListShowtimesForMovie(ctx context.Context, movieID int) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.store.ListShowtimesForMovie(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to list showtimes for movie", zap.Error(err), zap.Int("movie_id", movieID))
		return nil, err
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *catalogueService) ListSeatsForShowtime(ctx context.Context, showtimeID int) ([]response.SeatResponse, error) {
	seats, err := s.store.ListSeatsForShowtime(ctx, showtimeID)
	if err != nil {
		s.log.Error("Failed to list seats", zap.Error(err), zap.Int("showtime_id", showtimeID))
		return nil, err
	}
	return response.SeatsToResponse(seats), nil
}
