package http

import (
	"time"

	"github.com/cinereel/movie-booking-backend/internal/movie"
	"github.com/cinereel/movie-booking-backend/internal/pkg/request"
)

// RegisterMovieRequest is the registration payload. Field names follow the
// public API contract (camelCase). Mandatory-field checks live in the
// service so a single aggregate validation failure can be reported.
type RegisterMovieRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"releaseDate"`
	PosterURL   string   `json:"posterUrl"`
	TrailerURL  string   `json:"trailerUrl"`
	Featured    bool     `json:"featured"`
	Actors      []string `json:"actors"`
}

// ListMoviesRequest defines query parameters for listing movies.
type ListMoviesRequest struct {
	request.ListParams
	Featured *bool `form:"featured"`
}

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"releaseDate"`
	PosterURL   string    `json:"posterUrl"`
	TrailerURL  string    `json:"trailerUrl"`
	Featured    bool      `json:"featured"`
	Actors      []string  `json:"actors"`
	AdminID     string    `json:"admin"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewMovieResponse(m *movie.Movie) MovieResponse {
	actors := m.Actors
	if actors == nil {
		actors = make([]string, 0)
	}

	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate,
		PosterURL:   m.PosterURL,
		TrailerURL:  m.TrailerURL,
		Featured:    m.Featured,
		Actors:      actors,
		AdminID:     m.AdminID,
		CreatedAt:   m.CreatedAt,
	}
}
