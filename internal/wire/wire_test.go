package wire_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"movietix/internal/data/repository"
	"movietix/internal/wire"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store := repository.NewMemStore(zap.NewNop())
	require.NoError(t, store.SeedInitialData(context.Background()))

	sessions := repository.NewSessionStore(time.Hour, zap.NewNop())
	app := wire.Wiring(store, sessions, &utils.Config{}, zap.NewNop())
	return app.Router
}

func doJSON(t *testing.T, router *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCatalogueEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/movies", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var movies []map[string]any
	decodeBody(t, rec, &movies)
	assert.Len(t, movies, 6)

	rec = doJSON(t, router, http.MethodGet, "/api/movies/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var movie map[string]any
	decodeBody(t, rec, &movie)
	assert.NotEmpty(t, movie["title"])

	rec = doJSON(t, router, http.MethodGet, "/api/movies/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/showtimes/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var showtimes []map[string]any
	decodeBody(t, rec, &showtimes)
	assert.Len(t, showtimes, 5)

	rec = doJSON(t, router, http.MethodGet, "/api/seats/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var seats []map[string]any
	decodeBody(t, rec, &seats)
	require.Len(t, seats, 64)
	assert.Equal(t, "G1", seats[0]["name"])
	assert.Equal(t, false, seats[0]["booked"])
}

func TestGuestBookingFlow(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]any{
		"movieId":    1,
		"showTimeId": 1,
		"seats":      []int{1, 9},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/bookings", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking map[string]any
	decodeBody(t, rec, &booking)
	id, _ := booking["id"].(string)
	assert.True(t, strings.HasPrefix(id, "MTIX"))
	assert.Equal(t, float64(650), booking["totalAmount"])
	assert.Nil(t, booking["userId"])

	// Same seats again: conflict with the losing seat names in the body.
	rec = doJSON(t, router, http.MethodPost, "/api/bookings", "", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var conflict struct {
		Message string   `json:"message"`
		Seats   []string `json:"seats"`
	}
	decodeBody(t, rec, &conflict)
	assert.NotEmpty(t, conflict.Message)
	assert.Equal(t, []string{"G1", "R1"}, conflict.Seats)

	// The ticket is retrievable by its id without authentication.
	rec = doJSON(t, router, http.MethodGet, "/api/bookings/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &booking)
	assert.Equal(t, id, booking["id"])

	rec = doJSON(t, router, http.MethodGet, "/api/bookings/MTIX0000000", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/bookings", "", map[string]any{
		"movieId": 1, "showTimeId": 1, "seats": []int{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyBookingsRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/my-bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/my-bookings", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedBookingFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", "", map[string]any{
		"username": "alice",
		"password": "s3cretpw",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var auth struct {
		Token string `json:"token"`
		User  struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeBody(t, rec, &auth)
	require.NotEmpty(t, auth.Token)

	// Booking with a session ties it to the user.
	rec = doJSON(t, router, http.MethodPost, "/api/bookings", auth.Token, map[string]any{
		"movieId": 1, "showTimeId": 1, "seats": []int{30},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var booking map[string]any
	decodeBody(t, rec, &booking)
	assert.Equal(t, float64(auth.User.ID), booking["userId"])

	rec = doJSON(t, router, http.MethodGet, "/api/my-bookings", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []map[string]any
	decodeBody(t, rec, &history)
	require.Len(t, history, 1)
	assert.Equal(t, booking["id"], history[0]["id"])

	rec = doJSON(t, router, http.MethodGet, "/api/user", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user map[string]any
	decodeBody(t, rec, &user)
	assert.Equal(t, "alice", user["username"])

	// Logout revokes the session.
	rec = doJSON(t, router, http.MethodPost, "/api/logout", auth.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/api/user", auth.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", "", map[string]any{
		"username": "alice", "password": "s3cretpw",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/login", "", map[string]any{
		"username": "alice", "password": "s3cretpw",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/login", "", map[string]any{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/register", "", map[string]any{
		"username": "alice", "password": "another1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
