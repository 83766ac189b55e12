package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSONError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		message        string
		status         int
		expectedStatus int
		expectedBody   map[string]string
	}{
		{
			name:           "writes unauthorized error",
			code:           ErrorCodeUnauthorized,
			message:        "Authentication required",
			status:         http.StatusUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedBody: map[string]string{
				"error":   "unauthorized",
				"message": "Authentication required",
			},
		},
		{
			name:           "writes token expired error",
			code:           ErrorCodeTokenExpired,
			message:        "Token has expired",
			status:         http.StatusUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedBody: map[string]string{
				"error":   "token_expired",
				"message": "Token has expired",
			},
		},
		{
			name:           "writes not found error",
			code:           ErrorCodeNotFound,
			message:        "User profile not found",
			status:         http.StatusNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody: map[string]string{
				"error":   "not_found",
				"message": "User profile not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			WriteJSONError(w, tt.code, tt.message, tt.status)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			contentType := w.Header().Get("Content-Type")
			if contentType != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", contentType)
			}

			var response map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			for key, expectedValue := range tt.expectedBody {
				if actualValue, ok := response[key]; !ok {
					t.Errorf("expected key %q not found in response", key)
				} else if actualValue != expectedValue {
					t.Errorf("for key %q: expected %q, got %q", key, expectedValue, actualValue)
				}
			}
		})
	}
}

func TestWriteJSONErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()

	details := map[string]any{
		"field":    "title",
		"required": true,
	}
	WriteJSONErrorWithDetails(w, ErrorCodeValidationError, "Validation failed", http.StatusBadRequest, details)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["error"] != "validation_error" {
		t.Errorf("expected error code validation_error, got %v", response["error"])
	}
	if response["message"] != "Validation failed" {
		t.Errorf("expected message 'Validation failed', got %v", response["message"])
	}
	if response["field"] != "title" {
		t.Errorf("expected field 'title', got %v", response["field"])
	}
	if response["required"] != true {
		t.Errorf("expected required true, got %v", response["required"])
	}
}
