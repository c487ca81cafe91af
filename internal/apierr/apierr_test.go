package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrite_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"missing token", InvalidToken("Missing token"), http.StatusUnauthorized, "Missing token"},
		{"invalid token", InvalidToken("Invalid token"), http.StatusUnauthorized, "Invalid token"},
		{"validation", ValidationFailed("URL is missing"), http.StatusBadRequest, "URL is missing"},
		{"unexpected", Unexpected("boom"), http.StatusInternalServerError, "boom"},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError, "disk on fire"},
		{"wrapped validation", fmt.Errorf("decode: %w", ValidationFailed("Title is missing")), http.StatusBadRequest, "Title is missing"},
		{"empty plain error", errors.New(""), http.StatusInternalServerError, DefaultUnexpectedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			Write(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %s, want application/json", ct)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] != tt.wantBody {
				t.Errorf("error = %q, want %q", body["error"], tt.wantBody)
			}
			if len(body) != 1 {
				t.Errorf("body has extra keys: %v", body)
			}
		})
	}
}

func TestConstructors_NeverEmpty(t *testing.T) {
	t.Parallel()

	for _, err := range []*Error{InvalidToken(""), ValidationFailed(""), Unexpected("")} {
		if err.Message == "" {
			t.Errorf("kind %s built with empty message", err.Kind)
		}
	}
}

func TestError_IsByKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", ValidationFailed("Image is missing"))

	if !errors.Is(err, ErrValidationFailed) {
		t.Error("expected errors.Is to match ErrValidationFailed")
	}
	if errors.Is(err, ErrInvalidToken) {
		t.Error("validation error should not match ErrInvalidToken")
	}
	if !errors.Is(InvalidToken("Missing token"), InvalidToken("Missing token")) {
		t.Error("same kind and message should match")
	}
}

func TestHandler(t *testing.T) {
	t.Parallel()

	ok := Handler(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
	rec := httptest.NewRecorder()
	ok(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}

	failing := Handler(func(w http.ResponseWriter, r *http.Request) error {
		return InvalidToken("Missing token")
	})
	rec = httptest.NewRecorder()
	failing(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
