package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calebh/storyspace/internal/adapters/api"
	"github.com/calebh/storyspace/internal/adapters/rest/middleware"
	"github.com/calebh/storyspace/internal/platform/apperror"
	"github.com/calebh/storyspace/internal/platform/logger"
	"github.com/google/uuid"
)

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// WriteJSONError writes a JSON error response matching OpenAPI spec
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errResp := api.Error{
		Error:   code,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"error_code", code,
			"status_code", statusCode,
		)
	}
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError translates an error into an HTTP response. AppErrors carry
// their own category, business code and status; anything else is a 500.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		h.logger.Error(r.Context(), "unhandled error", "error", err)
		h.WriteJSONError(w, r, string(apperror.CodeInternalError), "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "internal error",
			"error", appErr,
			"business_code", appErr.BusinessCode,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)

	bizCode := string(appErr.BusinessCode)
	errResp := api.Error{
		Error:        string(appErr.Code),
		Message:      appErr.Message,
		BusinessCode: &bizCode,
		Context:      appErr.Details,
	}

	if encErr := json.NewEncoder(w).Encode(errResp); encErr != nil {
		h.logger.Error(r.Context(), "failed to encode error response", "error", encErr)
	}
}

// ParseUUID parses a path or query parameter as a UUID. On failure it
// writes a 400 response and returns false, so callers can just return.
func (h *BaseHandler) ParseUUID(w http.ResponseWriter, r *http.Request, value string, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		h.WriteJSONError(w, r, "invalid_request", "Invalid "+paramName, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// GetUserIDFromContext returns the authenticated user's internal ID. It
// panics when the ID is absent: routes calling this sit behind the auth
// middleware chain, so absence is a routing bug, not a runtime condition.
func (h *BaseHandler) GetUserIDFromContext(r *http.Request) uuid.UUID {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		panic("user ID not found in context: handler registered without auth middleware")
	}
	return userID
}
