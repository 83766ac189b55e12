package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calebh/storyspace/internal/adapters/api"
	"github.com/calebh/storyspace/internal/adapters/rest/middleware"
	"github.com/calebh/storyspace/internal/users/application"
	"github.com/calebh/storyspace/internal/users/domain"
	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type UsersHandler struct {
	*BaseHandler
	service *application.UserService
}

func NewUsersHandler(base *BaseHandler, service *application.UserService) *UsersHandler {
	return &UsersHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterUser creates the application profile for an authenticated
// identity. It runs behind the JWT middleware only: the profile does not
// exist yet, so the auth adapter cannot resolve it.
func (h *UsersHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetJWTUserID(r.Context())
	if !ok {
		h.WriteJSONError(w, r, "unauthorized", "Subject not found in context", http.StatusUnauthorized)
		return
	}

	email, ok := middleware.GetJWTUserEmail(r.Context())
	if !ok {
		h.WriteJSONError(w, r, "unauthorized", "Email not found in context", http.StatusUnauthorized)
		return
	}

	var req api.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid request body", http.StatusBadRequest)
		return
	}

	// The email of record is the one the identity provider attests to,
	// not whatever the client sent.
	params := application.CreateUserParams{
		SubjectID: subjectID,
		Email:     email,
		Username:  req.Username,
	}

	user, err := h.service.CreateUser(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrValidationFailed):
			h.WriteJSONError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		case errors.Is(err, application.ErrUserAlreadyExists):
			h.WriteJSONError(w, r, "conflict", err.Error(), http.StatusConflict)
		default:
			h.WriteJSONError(w, r, "internal_server_error", "Failed to create user", http.StatusInternalServerError)
		}
		return
	}

	h.WriteJSONResponse(w, r, domainUserToProfile(user), http.StatusCreated)
}

// GetCurrentUser returns the authenticated user's own profile
func (h *UsersHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetJWTUserID(r.Context())
	if !ok {
		h.WriteJSONError(w, r, "unauthorized", "Subject not found in context", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUserBySubjectID(r.Context(), subjectID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			h.WriteJSONError(w, r, "not_found", "User not found", http.StatusNotFound)
		default:
			h.WriteJSONError(w, r, "internal_server_error", "Failed to get user", http.StatusInternalServerError)
		}
		return
	}

	h.WriteJSONResponse(w, r, domainUserToProfile(user), http.StatusOK)
}

// UpdateCurrentUser updates the authenticated user's profile
func (h *UsersHandler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	var req api.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid request body", http.StatusBadRequest)
		return
	}

	params := application.UpdateUserParams{
		UserID:      userID,
		DisplayName: getStringValue(req.DisplayName),
		Bio:         getStringValue(req.Bio),
		AvatarURL:   getStringValue(req.AvatarUrl),
	}

	user, err := h.service.UpdateUserProfile(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			h.WriteJSONError(w, r, "not_found", "User not found", http.StatusNotFound)
		case errors.Is(err, application.ErrValidationFailed):
			h.WriteJSONError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		default:
			h.WriteJSONError(w, r, "internal_server_error", "Failed to update user", http.StatusInternalServerError)
		}
		return
	}

	h.WriteJSONResponse(w, r, domainUserToProfile(user), http.StatusOK)
}

// GetUser returns a user's public profile by ID
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ParseUUID(w, r, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			h.WriteJSONError(w, r, "not_found", "User not found", http.StatusNotFound)
		default:
			h.WriteJSONError(w, r, "internal_server_error", "Failed to get user", http.StatusInternalServerError)
		}
		return
	}

	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusOK)
}

// Helper functions

// domainUserToAPI converts to the public representation (no email)
func domainUserToAPI(user *domain.User) api.User {
	return api.User{
		Id:          openapi_types.UUID(user.ID),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarUrl:   user.AvatarURL,
		CreatedAt:   user.CreatedAt,
	}
}

// domainUserToProfile converts to the owner's own representation
func domainUserToProfile(user *domain.User) api.UserProfile {
	return api.UserProfile{
		Id:          openapi_types.UUID(user.ID),
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarUrl:   user.AvatarURL,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func getStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
