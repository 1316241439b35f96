package adaptor

import (
	"net/http"

	"movietix/internal/usecase"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogueHandler struct {
	service usecase.CatalogueService
	log     *zap.Logger
}

func NewCatalogueHandler(service usecase.CatalogueService, log *zap.Logger) *CatalogueHandler {
	return &CatalogueHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalogue")),
	}
}

// ListMovies handles GET /api/movies
func (h *CatalogueHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "list movies")
		return
	}
	utils.RespondJSON(w, http.StatusOK, movies)
}

// GetMovie handles GET /api/movies/{id}
func (h *CatalogueHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondBadRequest(w, "Invalid movie id")
		return
	}

	movie, err := h.service.GetMovie(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.log, err, "get movie")
		return
	}
	utils.RespondJSON(w, http.StatusOK, movie)
}

// ListShowtimes handles GET /api/showtimes
func (h *CatalogueHandler) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.service.ListShowtimes(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "list showtimes")
		return
	}
	utils.RespondJSON(w, http.StatusOK, showtimes)
}

// ListShowtimesForMovie handles GET /api/showtimes/{movieId}
func (h *CatalogueHandler) ListShowtimesForMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseID(chi.URLParam(r, "movieId"))
	if !ok {
		utils.RespondBadRequest(w, "Invalid movie id")
		return
	}

	showtimes, err := h.service.ListShowtimesForMovie(r.Context(), movieID)
	if err != nil {
		respondServiceError(w, h.log, err, "list showtimes for movie")
		return
	}
	utils.RespondJSON(w, http.StatusOK, showtimes)
}

// ListSeatsForShowtime handles GET /api/seats/{showtimeId}
func (h *CatalogueHandler) ListSeatsForShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID, ok := utils.ParseID(chi.URLParam(r, "showtimeId"))
	if !ok {
		utils.RespondBadRequest(w, "Invalid showtime id")
		return
	}

	seats, err := h.service.ListSeatsForShowtime(r.Context(), showtimeID)
	if err != nil {
		respondServiceError(w, h.log, err, "list seats")
		return
	}
	utils.RespondJSON(w, http.StatusOK, seats)
}
