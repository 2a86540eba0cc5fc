package admin

import (
	"net/http"
	"time"

	"github.com/cinereel/movie-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "admin not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// Admin represents a catalog administrator.
// AddedMovies lists the ids of every movie this admin registered; each of
// those movies points back at this admin as its owner.
type Admin struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	AddedMovies  []string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
