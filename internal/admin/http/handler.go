package http

import (
	"errors"
	"net/http"

	"github.com/cinereel/movie-booking-backend/internal/admin"
	"github.com/cinereel/movie-booking-backend/internal/auth"
	"github.com/cinereel/movie-booking-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	adminService admin.Service
	jwtManager   *auth.JWTManager
}

func NewHandler(adminService admin.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		adminService: adminService,
		jwtManager:   jwtManager,
	}
}

// Signup creates a new admin account if the email is unique.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.adminService.Signup(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewAdminResponse(a))
}

// Login authenticates an admin using email and password.
// On success, it returns a JWT access token and the admin profile.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.adminService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidCredentials), errors.Is(err, admin.ErrNotFound):
			// Do not reveal which condition failed
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(a.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	resp := LoginResponse{
		AccessToken: token,
		Admin:       NewAdminResponse(a),
	}

	c.JSON(http.StatusOK, resp)
}

// Me retrieves the profile of the currently authenticated admin, including
// the ids of every movie they registered.
func (h *Handler) Me(c *gin.Context) {
	adminID := auth.GetAdminID(c)
	if adminID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	a, err := h.adminService.GetByID(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAdminResponse(a))
}
