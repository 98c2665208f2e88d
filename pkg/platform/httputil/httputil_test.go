package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "credo-consent/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("server error hides internal description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeServerError, "redis: connection refused"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "server_error" {
			t.Fatalf("expected error code server_error, got %q", body["error"])
		}
		if body["error_description"] != serverErrorDescription {
			t.Fatalf("expected generic description, got %q", body["error_description"])
		}
	})

	t.Run("uncoded error is a server error", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("boom"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})

	t.Run("expired interaction is invalid_request", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInvalidRequest, "authorization session expired"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "invalid_request" {
			t.Fatalf("expected error code invalid_request, got %q", body["error"])
		}
		if body["error_description"] != "authorization session expired" {
			t.Fatalf("expected error_description to be returned, got %q", body["error_description"])
		}
	})

	t.Run("missing user is not_authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotAuthenticated, "login required"))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})
}
