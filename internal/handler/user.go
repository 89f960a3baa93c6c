package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/placehub/placehub/internal/blob"
	"github.com/placehub/placehub/internal/handler/dto"
	"github.com/placehub/placehub/internal/service"
)

// UserHandler handles HTTP requests for user and identity operations.
type UserHandler struct {
	svc    *service.UserService
	blobs  blob.Store
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, blobs blob.Store, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		blobs:  blobs,
		logger: logger,
	}
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching users")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// Signup handles POST /api/v1/users/signup (multipart form with image).
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "INVALID_FORM", "Invalid multipart form")
		return
	}

	imagePath, err := storeImage(r, h.blobs, "avatars")
	if err != nil {
		if errors.Is(err, errImageRequired) {
			h.writeError(w, http.StatusUnprocessableEntity, "IMAGE_REQUIRED", "Image file is required")
			return
		}
		h.logger.Error("failed to store avatar", "error", err)
		h.writeError(w, http.StatusInternalServerError, "SIGNUP_FAILED", "Signup failed, try again later")
		return
	}

	input := service.SignupInput{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		ImagePath: imagePath,
	}

	result, err := h.svc.Signup(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user signed up", "user_id", result.UserID)

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		UserID: result.UserID,
		Email:  result.Email,
		Token:  result.Token,
	})
}

// Login handles POST /api/v1/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user logged in", "user_id", result.UserID)

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		UserID: result.UserID,
		Email:  result.Email,
		Token:  result.Token,
	})
}

// handleServiceError maps user service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.writeError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "Invalid inputs passed, check the data")
	case errors.Is(err, service.ErrEmailTaken):
		h.writeError(w, http.StatusUnprocessableEntity, "USER_EXISTS", "User already exists, please login")
	case errors.Is(err, service.ErrInvalidCredentials):
		h.writeError(w, http.StatusForbidden, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, service.ErrSignupFailed):
		h.logger.Error("signup failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "SIGNUP_FAILED", "Signup failed, try again later")
	case errors.Is(err, service.ErrLoginFailed):
		h.logger.Error("login failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "LOGIN_FAILED", "Login failed, try again later")
	default:
		h.logger.Error("internal error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *UserHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
