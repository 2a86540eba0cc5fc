package http

import (
	"io"
	"net/http"

	"github.com/cinereel/movie-booking-backend/internal/auth"
	"github.com/cinereel/movie-booking-backend/internal/pkg/response"
	"github.com/cinereel/movie-booking-backend/internal/poster"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	posterService poster.Service
}

func NewHandler(posterService poster.Service) *Handler {
	return &Handler{
		posterService: posterService,
	}
}

// Upload accepts a multipart poster image from an authenticated admin and
// returns the URL to submit as a movie's posterUrl.
func (h *Handler) Upload(c *gin.Context) {
	adminID := auth.GetAdminID(c)
	if adminID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	header, err := c.FormFile("poster")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poster file is required"})
		return
	}

	p, err := h.posterService.Upload(c.Request.Context(), header, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, PosterUploadResponse{
		Message:      "poster uploaded",
		PosterID:     p.ID,
		URL:          poster.URL(p.ID),
		ThumbnailURL: poster.ThumbnailURL(p.ID),
	})
}

// Delete removes a poster, its record and stored files included.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poster ID is required"})
		return
	}

	if err := h.posterService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "poster deleted successfully"})
}

// ServePoster serves the poster content by ID.
func (h *Handler) ServePoster(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poster ID is required"})
		return
	}

	stream, p, err := h.posterService.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", p.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing sensible left to send.
		return
	}
}

// ServeThumbnail serves the poster thumbnail by ID (always JPEG).
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poster ID is required"})
		return
	}

	stream, p, err := h.posterService.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}
