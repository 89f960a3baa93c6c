// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/placehub/placehub/internal/model"
)

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// UserResponse represents a user in API responses.
// The password hash is never included.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	Places    []string  `json:"places"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	places := user.PlaceIDs
	if places == nil {
		places = []string{}
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.ImagePath,
		Places:    places,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserListResponse converts users to a list response.
func ToUserListResponse(users []*model.User) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, ToUserResponse(user))
	}
	return UserListResponse{Users: out}
}
