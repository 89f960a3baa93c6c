// Package model defines domain entities for the application.
package model

import "time"

// Coordinates is a geographic point resolved from a street address.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place represents a shared location owned by exactly one user.
type Place struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	Location    Coordinates `json:"location"`
	ImagePath   string      `json:"image"`
	// CreatorID is the authoritative ownership edge. Set once at
	// creation, immutable afterward.
	CreatorID string    `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy is the single authorization predicate for place mutations.
// Both update and delete gate on it.
func (p *Place) OwnedBy(userID string) bool {
	return userID != "" && p.CreatorID == userID
}
