package wire

import (
	"net/http"

	"movietix/internal/adaptor"
	"movietix/internal/data/repository"
	"movietix/internal/usecase"
	"movietix/pkg/middleware"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers over the injected store and mounts
// all routes. The store is constructed in main and passed down; nothing
// reaches for a global.
func Wiring(store repository.Store, sessions *repository.SessionStore, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(store, sessions, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, sessions, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	sessions *repository.SessionStore,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, sessions, logger)
	wireCatalogue(r, handler.Catalogue)
	wireBooking(r, handler.Booking, sessions, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
