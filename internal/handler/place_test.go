package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/placehub/placehub/internal/auth"
	"github.com/placehub/placehub/internal/handler/dto"
	"github.com/placehub/placehub/internal/model"
	"github.com/placehub/placehub/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedContext(ctx context.Context, userID string) context.Context {
	return auth.ContextWithAuth(ctx, &model.AuthContext{UserID: userID, Email: userID + "@example.com"})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestPlaceHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantTag  string
	}{
		{"invalid input", service.ErrInvalidInput, http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"place not found", service.ErrPlaceNotFound, http.StatusNotFound, "PLACE_NOT_FOUND"},
		{"unknown user", service.ErrInvalidUser, http.StatusNotFound, "USER_NOT_FOUND"},
		{"not the owner", service.ErrForbidden, http.StatusForbidden, "NOT_ALLOWED"},
		{"create failed", service.ErrCreateFailed, http.StatusInternalServerError, "CREATE_FAILED"},
		{"update failed", service.ErrUpdateFailed, http.StatusInternalServerError, "UPDATE_FAILED"},
		{"delete failed", service.ErrDeleteFailed, http.StatusInternalServerError, "DELETE_FAILED"},
		{"unclassified", io.ErrUnexpectedEOF, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	h := NewPlaceHandler(nil, nil, discardLogger())

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			h.handleServiceError(rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeError(t, rec); resp.Code != tt.wantTag {
				t.Errorf("expected code %q, got %q", tt.wantTag, resp.Code)
			}
		})
	}
}

func TestPlaceHandler_MutationsRequireIdentity(t *testing.T) {
	t.Parallel()

	h := NewPlaceHandler(nil, nil, discardLogger())

	tests := []struct {
		name  string
		serve func(w http.ResponseWriter, r *http.Request)
		req   *http.Request
	}{
		{
			name:  "create",
			serve: h.Create,
			req:   httptest.NewRequest(http.MethodPost, "/api/v1/places", nil),
		},
		{
			name:  "update",
			serve: h.Update,
			req:   httptest.NewRequest(http.MethodPatch, "/api/v1/places/p1", strings.NewReader(`{}`)),
		},
		{
			name:  "delete",
			serve: h.Delete,
			req:   httptest.NewRequest(http.MethodDelete, "/api/v1/places/p1", nil),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			tt.serve(rec, tt.req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rec.Code)
			}
			if resp := decodeError(t, rec); resp.Code != "AUTH_MISSING" {
				t.Errorf("expected code AUTH_MISSING, got %q", resp.Code)
			}
		})
	}
}

func TestPlaceHandler_Update_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := NewPlaceHandler(nil, nil, discardLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/places/p1", strings.NewReader("{not json"))
	req = req.WithContext(authedContext(req.Context(), "u1"))
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_JSON" {
		t.Errorf("expected code INVALID_JSON, got %q", resp.Code)
	}
}

func TestPlaceHandler_Create_RejectsBadCoordinates(t *testing.T) {
	t.Parallel()

	h := NewPlaceHandler(nil, nil, discardLogger())

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for field, value := range map[string]string{
		"title":       "Somewhere",
		"description": "Worth a visit",
		"address":     "1 Main St",
		"lat":         "not-a-number",
		"lng":         "13.4",
	} {
		if err := form.WriteField(field, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if err := form.Close(); err != nil {
		t.Fatalf("failed to close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/places", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req = req.WithContext(authedContext(req.Context(), "u1"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_INPUT" {
		t.Errorf("expected code INVALID_INPUT, got %q", resp.Code)
	}
}
