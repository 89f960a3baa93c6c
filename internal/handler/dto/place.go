package dto

import (
	"time"

	"github.com/placehub/placehub/internal/model"
)

// UpdatePlaceRequest represents the request body for updating a place.
type UpdatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlaceResponse represents a place in API responses.
type PlaceResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Location    model.Coordinates `json:"location"`
	Image       string            `json:"image"`
	Creator     string            `json:"creator"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// PlaceListResponse wraps a list of places.
type PlaceListResponse struct {
	Places []PlaceResponse `json:"places"`
}

// DeletePlaceResponse confirms a deletion.
type DeletePlaceResponse struct {
	Message string `json:"message"`
}

// ToPlaceResponse converts a Place model to PlaceResponse DTO.
func ToPlaceResponse(place *model.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Location:    place.Location,
		Image:       place.ImagePath,
		Creator:     place.CreatorID,
		CreatedAt:   place.CreatedAt,
		UpdatedAt:   place.UpdatedAt,
	}
}

// ToPlaceListResponse converts places to a list response.
func ToPlaceListResponse(places []*model.Place) PlaceListResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, place := range places {
		out = append(out, ToPlaceResponse(place))
	}
	return PlaceListResponse{Places: out}
}
