package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

var (
	ErrMissingToken   = errors.New("missing authentication token")
	ErrInvalidToken   = errors.New("invalid authentication token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrMissingSubject = errors.New("missing subject in token")
	ErrMissingEmail   = errors.New("missing email in token")
)

type jwtContextKey string

const (
	JWTUserIDContextKey    jwtContextKey = "jwt_user_id"
	JWTUserEmailContextKey jwtContextKey = "jwt_email"
)

type JWTMiddleware struct {
	jwksEndpoint string
	issuer       string
	cache        *jwk.Cache
}

func NewJWTMiddleware(ctx context.Context, jwksEndpoint string, issuer string) (*JWTMiddleware, error) {
	// Create a cache with automatic refresh
	cache, err := jwk.NewCache(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	if err := cache.Register(ctx, jwksEndpoint); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}

	// Perform initial fetch to validate the URL
	_, err = cache.Lookup(ctx, jwksEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch initial JWKS: %w", err)
	}

	return &JWTMiddleware{
		jwksEndpoint: jwksEndpoint,
		issuer:       issuer,
		cache:        cache,
	}, nil
}

// Middleware requires a valid bearer token and puts the subject and email
// claims on the context. Requests without a valid token are rejected.
func (m *JWTMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, ErrorCodeUnauthorized, ErrMissingToken.Error(), http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			WriteJSONError(w, ErrorCodeUnauthorized, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		ctx, err := m.authenticate(r.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				WriteJSONError(w, ErrorCodeTokenExpired, ErrTokenExpired.Error(), http.StatusUnauthorized)
			case errors.Is(err, ErrMissingSubject), errors.Is(err, ErrMissingEmail):
				WriteJSONError(w, ErrorCodeInvalidToken, err.Error(), http.StatusUnauthorized)
			default:
				WriteJSONError(w, ErrorCodeInvalidToken, ErrInvalidToken.Error(), http.StatusUnauthorized)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalMiddleware authenticates when a bearer token is present but lets
// the request through anonymously when it is absent or invalid. Read
// endpoints use this so owners see their private content while everyone
// else still gets the public view.
func (m *JWTMiddleware) OptionalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			next.ServeHTTP(w, r)
			return
		}

		ctx, err := m.authenticate(r.Context(), tokenString)
		if err != nil {
			// A bad token downgrades to anonymous rather than failing the
			// request; the identity simply does not attach.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate validates the token and returns a context carrying the
// subject and email claims.
func (m *JWTMiddleware) authenticate(ctx context.Context, tokenString string) (context.Context, error) {
	keySet, err := m.cache.Lookup(ctx, m.jwksEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWKS: %w", err)
	}

	token, err := jwt.ParseString(
		tokenString,
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		if err.Error() == "exp not satisfied" || strings.Contains(err.Error(), "expired") {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	var subject string
	if err := token.Get("sub", &subject); err != nil || subject == "" {
		return nil, ErrMissingSubject
	}

	var email string
	if err := token.Get("email", &email); err != nil || email == "" {
		return nil, ErrMissingEmail
	}

	ctx = context.WithValue(ctx, JWTUserIDContextKey, subject)
	ctx = context.WithValue(ctx, JWTUserEmailContextKey, email)
	return ctx, nil
}

// GetJWTUserID extracts the token subject from the request context set by JWT middleware
func GetJWTUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(JWTUserIDContextKey).(string)
	return userID, ok
}

// GetJWTUserEmail extracts the user email from the request context set by JWT middleware
func GetJWTUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(JWTUserEmailContextKey).(string)
	return email, ok
}
