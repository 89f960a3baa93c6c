package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/placehub/placehub/internal/service"
)

func TestUserHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantTag  string
	}{
		{"invalid input", service.ErrInvalidInput, http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"duplicate email", service.ErrEmailTaken, http.StatusUnprocessableEntity, "USER_EXISTS"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusForbidden, "INVALID_CREDENTIALS"},
		{"signup failed", service.ErrSignupFailed, http.StatusInternalServerError, "SIGNUP_FAILED"},
		{"login failed", service.ErrLoginFailed, http.StatusInternalServerError, "LOGIN_FAILED"},
		{"unclassified", io.ErrUnexpectedEOF, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	h := NewUserHandler(nil, nil, discardLogger())

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

func TestUserHandler_Login_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(nil, nil, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_JSON" {
		t.Errorf("expected code INVALID_JSON, got %q", resp.Code)
	}
}

func TestUserHandler_Signup_RejectsNonMultipart(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(nil, nil, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signup", strings.NewReader("name=alice"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_FORM" {
		t.Errorf("expected code INVALID_FORM, got %q", resp.Code)
	}
}
