package wire

import (
	"movietix/internal/adaptor"
	"movietix/internal/data/repository"
	"movietix/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	sessions *repository.SessionStore,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - guest checkout allowed; a session, if present,
	// ties the booking to the user
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalSession(sessions))
		r.Post("/api/bookings", bookingHandler.CreateBooking)
	})

	// GET /api/bookings/{id} - ticket lookup by booking token
	r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(sessions, log))

		// GET /api/my-bookings - booking history for the logged-in user
		r.Get("/api/my-bookings", bookingHandler.GetMyBookings)
	})
}
