// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account that can own places.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize
	ImagePath    string `json:"image"`
	// PlaceIDs is a cached back-reference to the places owned by this
	// user. The authoritative ownership edge is Place.CreatorID; this
	// set is maintained only by the transactional place operations.
	PlaceIDs  []string  `json:"places"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnsPlace reports whether the back-reference set contains the place.
func (u *User) OwnsPlace(placeID string) bool {
	for _, id := range u.PlaceIDs {
		if id == placeID {
			return true
		}
	}
	return false
}

// AuthContext carries the verified identity extracted from a request token.
type AuthContext struct {
	UserID string
	Email  string
}
