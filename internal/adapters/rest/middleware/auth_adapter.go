package middleware

import (
	"context"
	"net/http"

	"github.com/calebh/storyspace/internal/platform/logger"
	"github.com/calebh/storyspace/internal/users/ports"
)

// AuthAdapter bridges the external identity provider and our internal
// domain. It takes the subject claim placed on the context by the JWT
// middleware and resolves it to our internal user UUID by querying the
// database, so every downstream service and ownership check operates on
// the canonical internal ID.
//
// NOTE: This puts a database query on the hot path of every authenticated
// request. If that ever becomes a bottleneck, the internal UUID can be
// issued as a custom claim at sign-up time and this lookup disappears.
type AuthAdapter struct {
	userRepo ports.UserRepository
	logger   logger.Logger
}

// NewAuthAdapter creates a new authentication adapter
func NewAuthAdapter(userRepo ports.UserRepository, logger logger.Logger) *AuthAdapter {
	return &AuthAdapter{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Middleware resolves the JWT subject to an internal user. It must be
// placed after the JWT middleware.
func (a *AuthAdapter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		subject, ok := GetJWTUserID(ctx)
		if !ok {
			a.logger.Warn(ctx, "subject not found in context")
			WriteJSONError(w, ErrorCodeUnauthorized, "Authentication required", http.StatusUnauthorized)
			return
		}

		user, err := a.userRepo.FindBySubjectID(ctx, subject)
		if err != nil {
			a.logger.Error(ctx, "failed to get user by subject ID",
				"subject_id", subject,
				"error", err,
			)
			WriteJSONError(w, ErrorCodeNotFound, "User profile not found", http.StatusNotFound)
			return
		}

		ctx = SetUserID(ctx, user.ID)

		if email, ok := GetJWTUserEmail(ctx); ok {
			ctx = context.WithValue(ctx, UserEmailKey, email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalMiddleware resolves the subject to an internal user when one is
// present, and passes the request through untouched otherwise. Paired with
// the JWT middleware's optional variant on read endpoints.
func (a *AuthAdapter) OptionalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		subject, ok := GetJWTUserID(ctx)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.userRepo.FindBySubjectID(ctx, subject)
		if err != nil {
			// An authenticated identity with no profile browses anonymously
			next.ServeHTTP(w, r)
			return
		}

		ctx = SetUserID(ctx, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
