// Package usecase holds the business services. Domain outcomes are typed
// errors so handlers can map them to status codes with errors.Is/As instead
// of matching message strings.
package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound: the referenced movie, showtime, or booking does not exist.
// Handlers translate this into 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidRequest: malformed or logically incomplete input, such as an
// empty seat list or a seat that does not belong to the showtime. 400.
var ErrInvalidRequest = errors.New("invalid request")

// ErrUnauthenticated: user-scoped operation without a session. 401.
var ErrUnauthenticated = errors.New("authentication required")

// ErrUsernameTaken: registration with an existing username. 400.
var ErrUsernameTaken = errors.New("username already taken")

// ErrInvalidCredentials: login with a wrong username or password. 401.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrBookingIDExhausted: every generated booking id collided with an existing
// one, which means the ticket number space is close to full. Retryable; 503.
var ErrBookingIDExhausted = errors.New("could not allocate a booking id")

// SeatsUnavailableError reports which requested seats are already booked, by
// name, so the caller can re-render seat state. 400.
type SeatsUnavailableError struct {
	SeatNames []string
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.SeatNames, ", "))
}
