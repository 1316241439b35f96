package utils

import "context"

type contextKey string

const userIDKey contextKey = "user_id"

// SetUserContext attaches the authenticated user's id to the context.
func SetUserContext(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the authenticated user's id, if any.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}
