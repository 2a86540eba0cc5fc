package poster

import (
	"net/http"
	"time"

	"github.com/cinereel/movie-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound   = apperror.New(http.StatusNotFound, "poster not found")
	ErrNotAnImage = apperror.New(http.StatusBadRequest, "poster must be an image")
)

// Poster is an uploaded movie poster image. The returned URL is what admins
// submit as a movie's posterUrl.
type Poster struct {
	ID            string    `json:"id"`
	AdminID       string    `json:"admin_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath string    `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public URL for a poster by its ID.
func URL(id string) string {
	return "/v1/posters/" + id
}

// ThumbnailURL returns the public URL for a poster's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/posters/" + id + "/thumbnail"
}
