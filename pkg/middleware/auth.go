package middleware

import (
	"net/http"
	"strings"

	"movietix/internal/data/repository"
	"movietix/pkg/utils"

	"go.uber.org/zap"
)

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthSession rejects requests without a valid session token and puts the
// user id on the request context.
func AuthSession(sessions *repository.SessionStore, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				utils.RespondUnauthorized(w, "Missing authorization token")
				return
			}

			session := sessions.FindValid(token)
			if session == nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.RespondUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession attaches the user id when a valid token is present but
// never rejects. Guest checkout uses this on the booking endpoint.
func OptionalSession(sessions *repository.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if session := sessions.FindValid(token); session != nil {
					r = r.WithContext(utils.SetUserContext(r.Context(), session.UserID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
