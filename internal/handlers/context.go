package handlers

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// SetUserIDInContext stores the authenticated user id for downstream
// handlers. The auth gate is stateless, so only the verified token
// subject travels in the context, never a loaded user record.
func SetUserIDInContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// GetUserIDFromContext returns the authenticated user id, or uuid.Nil if
// the request never passed the auth gate.
func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	userID, _ := ctx.Value(userIDContextKey).(uuid.UUID)
	return userID
}
