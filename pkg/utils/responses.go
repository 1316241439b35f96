package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error payload. Seats carries the names of conflicting
// seats on a booking conflict so the client can re-render the seat map.
type ErrorBody struct {
	Message string   `json:"message"`
	Seats   []string `json:"seats,omitempty"`
}

// RespondJSON writes v as the response body with the given status code.
// Catalogue reads return bare arrays/objects, not an envelope.
func RespondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// ------------- Error responses -------------

func RespondError(w http.ResponseWriter, code int, message string) {
	RespondJSON(w, code, ErrorBody{Message: message})
}

// returns 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// returns 400 with the conflicting seat names
func RespondSeatConflict(w http.ResponseWriter, message string, seats []string) {
	RespondJSON(w, http.StatusBadRequest, ErrorBody{Message: message, Seats: seats})
}

// returns 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// returns 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// returns 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusInternalServerError, message)
}

// returns 503 Service Unavailable
func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, message)
}
