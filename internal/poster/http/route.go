package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers poster routes. Uploading and deleting require a
// verified admin; serving is public so poster URLs work in the browse UI.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/posters")

	group.POST("", authMiddleware, h.Upload)
	group.DELETE("/:id", authMiddleware, h.Delete)
	group.GET("/:id", h.ServePoster)
	group.GET("/:id/thumbnail", h.ServeThumbnail)
}
