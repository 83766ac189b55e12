package middleware

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's internal ID
	UserIDKey contextKey = "userID"

	// UserEmailKey is the context key for the authenticated user's email
	UserEmailKey contextKey = "userEmail"
)

// SetUserID stores the internal user ID in the context
func SetUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID extracts the internal user ID from the context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmail extracts the user's email from the context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// ActorID returns the identity to evaluate visibility against: the
// authenticated user's ID, or uuid.Nil for an anonymous request.
func ActorID(ctx context.Context) uuid.UUID {
	if userID, ok := GetUserID(ctx); ok {
		return userID
	}
	return uuid.Nil
}
