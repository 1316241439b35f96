package wire

import (
	"movietix/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalogue(r chi.Router, catalogueHandler *adaptor.CatalogueHandler) {
	// All catalogue reads are public
	r.Get("/api/movies", catalogueHandler.ListMovies)
	r.Get("/api/movies/{id}", catalogueHandler.GetMovie)
	r.Get("/api/showtimes", catalogueHandler.ListShowtimes)
	r.Get("/api/showtimes/{movieId}", catalogueHandler.ListShowtimesForMovie)
	r.Get("/api/seats/{showtimeId}", catalogueHandler.ListSeatsForShowtime)
}
