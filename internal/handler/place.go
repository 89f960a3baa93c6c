package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/placehub/placehub/internal/auth"
	"github.com/placehub/placehub/internal/blob"
	"github.com/placehub/placehub/internal/handler/dto"
	"github.com/placehub/placehub/internal/model"
	"github.com/placehub/placehub/internal/service"
)

// PlaceHandler handles HTTP requests for place operations.
type PlaceHandler struct {
	svc    *service.PlaceService
	blobs  blob.Store
	logger *slog.Logger
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(svc *service.PlaceService, blobs blob.Store, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{
		svc:    svc,
		blobs:  blobs,
		logger: logger,
	}
}

// Get handles GET /api/v1/places/{placeID}.
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeID")

	place, err := h.svc.GetPlaceByID(r.Context(), placeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPlaceResponse(place))
}

// ListByUser handles GET /api/v1/places/user/{userID}.
func (h *PlaceHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	places, err := h.svc.GetPlacesForUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPlaceListResponse(places))
}

// Create handles POST /api/v1/places (multipart form with image).
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "AUTH_MISSING", "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "INVALID_FORM", "Invalid multipart form")
		return
	}

	lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.FormValue("lng"), 64)
	if latErr != nil || lngErr != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "Invalid coordinates")
		return
	}

	imagePath, err := storeImage(r, h.blobs, "places")
	if err != nil {
		if errors.Is(err, errImageRequired) {
			h.writeError(w, http.StatusUnprocessableEntity, "IMAGE_REQUIRED", "Image file is required")
			return
		}
		h.logger.Error("failed to store place image", "error", err)
		h.writeError(w, http.StatusInternalServerError, "CREATE_FAILED", "Creating place failed, try again later")
		return
	}

	input := service.CreatePlaceInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		Location:    model.Coordinates{Lat: lat, Lng: lng},
		ImagePath:   imagePath,
	}

	place, err := h.svc.CreatePlace(r.Context(), userID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("place created", "place_id", place.ID, "user_id", userID)

	writeJSON(w, http.StatusCreated, dto.ToPlaceResponse(place))
}

// Update handles PATCH /api/v1/places/{placeID}.
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "AUTH_MISSING", "Authentication required")
		return
	}

	placeID := chi.URLParam(r, "placeID")

	var req dto.UpdatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
	}

	place, err := h.svc.UpdatePlace(r.Context(), userID, placeID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("place updated", "place_id", place.ID, "user_id", userID)

	writeJSON(w, http.StatusOK, dto.ToPlaceResponse(place))
}

// Delete handles DELETE /api/v1/places/{placeID}.
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "AUTH_MISSING", "Authentication required")
		return
	}

	placeID := chi.URLParam(r, "placeID")

	if err := h.svc.DeletePlace(r.Context(), userID, placeID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("place deleted", "place_id", placeID, "user_id", userID)

	writeJSON(w, http.StatusOK, dto.DeletePlaceResponse{Message: "Deleted place."})
}

// handleServiceError maps place service errors to HTTP responses.
func (h *PlaceHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.writeError(w, http.StatusUnprocessableEntity, "INVALID_INPUT", "Invalid inputs passed, check the data")
	case errors.Is(err, service.ErrPlaceNotFound):
		h.writeError(w, http.StatusNotFound, "PLACE_NOT_FOUND", "Could not find place for the provided id")
	case errors.Is(err, service.ErrInvalidUser):
		h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "Could not find user for the provided id")
	case errors.Is(err, service.ErrForbidden):
		h.writeError(w, http.StatusForbidden, "NOT_ALLOWED", "You are not allowed to modify this place")
	case errors.Is(err, service.ErrCreateFailed):
		h.logger.Error("create place failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "CREATE_FAILED", "Creating place failed, try again later")
	case errors.Is(err, service.ErrUpdateFailed):
		h.logger.Error("update place failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "UPDATE_FAILED", "Updating place failed, try again later")
	case errors.Is(err, service.ErrDeleteFailed):
		h.logger.Error("delete place failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "DELETE_FAILED", "Deleting place failed, try again later")
	default:
		h.logger.Error("internal error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *PlaceHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
