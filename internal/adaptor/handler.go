package adaptor

import (
	"errors"
	"net/http"

	"movietix/internal/usecase"
	"movietix/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Catalogue *CatalogueHandler
	Booking   *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Catalogue: NewCatalogueHandler(service.Catalogue, log),
		Booking:   NewBookingHandler(service.Booking, log),
	}
}

// respondServiceError maps domain errors to status codes. Anything not a
// recognized domain outcome is an unexpected failure: logged, generic 500.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var unavailable *usecase.SeatsUnavailableError

	switch {
	case errors.As(err, &unavailable):
		log.Warn(operation+" failed, seats unavailable",
			zap.Strings("seats", unavailable.SeatNames))
		utils.RespondSeatConflict(w, "Some selected seats are already booked", unavailable.SeatNames)

	case errors.Is(err, usecase.ErrInvalidRequest):
		log.Warn(operation+" failed, invalid request", zap.Error(err))
		utils.RespondBadRequest(w, err.Error())

	case errors.Is(err, usecase.ErrUsernameTaken):
		log.Warn(operation+" failed, username taken", zap.Error(err))
		utils.RespondBadRequest(w, err.Error())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed, not found", zap.Error(err))
		utils.RespondNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthenticated), errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed, unauthorized", zap.Error(err))
		utils.RespondUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrBookingIDExhausted):
		log.Error(operation+" failed, booking id space exhausted", zap.Error(err))
		utils.RespondServiceUnavailable(w, "Could not allocate a booking id, please retry")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.RespondInternalError(w, "Internal server error")
	}
}
