package http

type PosterUploadResponse struct {
	Message      string `json:"message"`
	PosterID     string `json:"poster_id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}
