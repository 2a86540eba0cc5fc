package http

import (
	"time"

	"github.com/cinereel/movie-booking-backend/internal/admin"
)

// SignupRequest defines the payload for admin registration.
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
}

// LoginRequest defines the payload for admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminResponse is the shape of admin data returned in API responses.
// The password hash never leaves the domain layer.
type AdminResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name"`
	AddedMovies []string   `json:"added_movies"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// LoginResponse returns the token and admin info.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Admin       AdminResponse `json:"admin"`
}

// NewAdminResponse converts a domain admin.Admin to the API shape.
func NewAdminResponse(a *admin.Admin) AdminResponse {
	movies := a.AddedMovies
	if movies == nil {
		movies = make([]string, 0)
	}

	var lastLoginAt *time.Time
	if a.LastLoginAt != nil {
		ll := *a.LastLoginAt
		lastLoginAt = &ll
	}

	return AdminResponse{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		AddedMovies: movies,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: lastLoginAt,
	}
}
