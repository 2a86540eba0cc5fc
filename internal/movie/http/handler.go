package http

import (
	"net/http"

	"github.com/cinereel/movie-booking-backend/internal/auth"
	"github.com/cinereel/movie-booking-backend/internal/cache"
	"github.com/cinereel/movie-booking-backend/internal/movie"
	"github.com/cinereel/movie-booking-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service movie.Service
	cache   *cache.Store // optional, may be nil
}

func NewHandler(service movie.Service, cacheStore *cache.Store) *Handler {
	return &Handler{
		service: service,
		cache:   cacheStore,
	}
}

// Register handles the authenticated movie registration. The bearer token was
// verified by the auth middleware before this runs; a failed verification
// never reaches the service, so no store access happens on bad credentials.
func (h *Handler) Register(c *gin.Context) {
	adminID := auth.GetAdminID(c)
	if adminID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body RegisterMovieRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	in := movie.RegisterInput{
		Title:       body.Title,
		Description: body.Description,
		ReleaseDate: body.ReleaseDate,
		PosterURL:   body.PosterURL,
		TrailerURL:  body.TrailerURL,
		Featured:    body.Featured,
		Actors:      body.Actors,
	}

	m, err := h.service.Register(c.Request.Context(), adminID, in)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cache.InvalidatePrefix(c.Request.Context(), "/v1/movies")

	c.JSON(http.StatusCreated, NewMovieResponse(m))
}

func (h *Handler) List(c *gin.Context) {
	var req ListMoviesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := movie.Filter{
		Featured: req.Featured,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	movies, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list movies"})
		return
	}

	items := make([]MovieResponse, len(movies))
	for i, m := range movies {
		items[i] = NewMovieResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewMovieResponse(m))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.cache.InvalidatePrefix(c.Request.Context(), "/v1/movies")

	c.JSON(http.StatusOK, gin.H{"message": "movie deleted successfully"})
}
