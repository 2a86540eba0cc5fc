package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the movie routes. Registration requires a verified
// admin credential; browse and delete are public pass-throughs. cacheMiddleware
// may be nil when response caching is disabled.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, cacheMiddleware gin.HandlerFunc) {
	group := g.Group("/movies")

	browse := group.Group("")
	if cacheMiddleware != nil {
		browse.Use(cacheMiddleware)
	}
	browse.GET("", h.List)
	browse.GET("/:id", h.Get)

	group.POST("", authMiddleware, h.Register)
	group.DELETE("/:id", h.Delete)
}
