package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/admins")

	group.POST("", h.Signup)
	group.POST("/login", h.Login)

	group.GET("/me", authMiddleware, h.Me)
}
