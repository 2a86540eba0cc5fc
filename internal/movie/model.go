package movie

import (
	"net/http"
	"strings"
	"time"

	"github.com/cinereel/movie-booking-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "movie not found")

// registrationFailed is the single opaque error surfaced when any step of the
// registration transaction fails. The internal cause is logged, never exposed.
func registrationFailed(cause error) *apperror.AppError {
	return apperror.Wrap(cause, http.StatusInternalServerError, "registration failed")
}

// newValidationError aggregates every blank mandatory field into one failure.
func newValidationError(fields []string) *apperror.AppError {
	return apperror.New(
		http.StatusUnprocessableEntity,
		"missing or blank fields: "+strings.Join(fields, ", "),
	)
}

func newDateValidationError(raw string) *apperror.AppError {
	return apperror.New(
		http.StatusUnprocessableEntity,
		"invalid release date: "+raw,
	)
}

// Movie represents a catalog entry. A movie is never persisted without its
// owning admin, and that admin's added_movies set lists the movie post-commit.
type Movie struct {
	ID          string // UUID
	Title       string
	Description string
	ReleaseDate time.Time
	PosterURL   string
	TrailerURL  string
	Featured    bool
	Actors      []string
	AdminID     string
	CreatedAt   time.Time
}

// Filter defines parameters for listing movies.
type Filter struct {
	Featured *bool
	Page     int
	PageSize int
}
