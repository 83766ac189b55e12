package server

import (
	"net/http"
	"time"

	"github.com/calebh/storyspace/internal/adapters/rest"
	"github.com/calebh/storyspace/internal/adapters/rest/middleware"
	"github.com/calebh/storyspace/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewHTTPServer creates and configures the HTTP server with all routes.
//
// Route groups:
//   - health probes carry no auth at all
//   - read endpoints use OPTIONAL auth: anonymous requests pass through,
//     an attached identity lets owners see their private blogs
//   - registration runs behind the JWT middleware only, because the
//     internal profile the auth adapter resolves does not exist yet
//   - everything that mutates runs behind the full chain
func NewHTTPServer(
	config Config,
	blogsHandler *rest.BlogsHandler,
	usersHandler *rest.UsersHandler,
	healthHandler *rest.HealthHandler,
	jwtMiddleware *middleware.JWTMiddleware,
	authAdapter *middleware.AuthAdapter,
	log logger.Logger,
) *http.Server {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		// Health probes
		r.Get("/health/live", healthHandler.GetLiveness)
		r.Get("/health/ready", healthHandler.GetReadiness)

		// Public reads with optional identity
		r.Group(func(r chi.Router) {
			r.Use(jwtMiddleware.OptionalMiddleware)
			r.Use(authAdapter.OptionalMiddleware)

			r.Get("/blogs", blogsHandler.ListBlogs)
			r.Get("/blogs/{id}", blogsHandler.GetBlog)
			r.Get("/blogs/slug/{slug}", blogsHandler.GetBlogBySlug)
			r.Get("/users/{id}", usersHandler.GetUser)
			r.Get("/users/{id}/blogs", blogsHandler.GetUserBlogs)
		})

		// Registration: authenticated identity, no profile yet
		r.Group(func(r chi.Router) {
			r.Use(jwtMiddleware.Middleware)

			r.Post("/users", usersHandler.RegisterUser)
		})

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(jwtMiddleware.Middleware)
			r.Use(authAdapter.Middleware)

			r.Get("/users/me", usersHandler.GetCurrentUser)
			r.Put("/users/me", usersHandler.UpdateCurrentUser)

			r.Get("/dashboard/blogs", blogsHandler.GetDashboardBlogs)

			r.Post("/blogs", blogsHandler.CreateBlog)
			r.Get("/blogs/{id}/edit", blogsHandler.GetBlogForEdit)
			r.Put("/blogs/{id}", blogsHandler.UpdateBlog)
			r.Delete("/blogs/{id}", blogsHandler.DeleteBlog)
		})
	})

	handler := withObservability(r, log)

	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// withObservability adds request logging
func withObservability(handler http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// chi's response writer wrapper captures status code and bytes written
		wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		handler.ServeHTTP(wrr, r)

		duration := time.Since(start)

		// Extract user ID if available for better tracing
		var userID string
		if uid, ok := middleware.GetUserID(r.Context()); ok {
			userID = uid.String()
		}

		log.Info(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrr.Status(),
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"user_id", userID,
		)
	})
}
