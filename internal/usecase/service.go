package usecase

import (
	"movietix/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Catalogue CatalogueService
	Booking   BookingService
}

func NewService(store repository.Store, sessions *repository.SessionStore, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(store, sessions, log),
		Catalogue: NewCatalogueService(store, log),
		Booking:   NewBookingService(store, log),
	}
}
