package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cinereel/movie-booking-backend/internal/admin"
	adminHttp "github.com/cinereel/movie-booking-backend/internal/admin/http"
	"github.com/cinereel/movie-booking-backend/internal/auth"
	"github.com/cinereel/movie-booking-backend/internal/cache"
	"github.com/cinereel/movie-booking-backend/internal/movie"
	movieHttp "github.com/cinereel/movie-booking-backend/internal/movie/http"
	"github.com/cinereel/movie-booking-backend/internal/poster"
	posterHttp "github.com/cinereel/movie-booking-backend/internal/poster/http"
)

// Config holds everything the router needs to assemble middleware and routes.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	AdminService  admin.Service
	MovieService  movie.Service
	PosterService poster.Service
	JWTManager    *auth.JWTManager
	CacheStore    *cache.Store // may be nil
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth, Cache) and
// registering routes for the admin, movie and poster modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware verifies the admin bearer token. Verification happens
	// here, before any handler touches a store.
	authMiddleware := auth.AdminRequired(cfg.JWTManager)

	var cacheMiddleware gin.HandlerFunc
	if cfg.CacheStore.Enabled() {
		cacheMiddleware = cfg.CacheStore.Middleware()
	}

	adminHandler := adminHttp.NewHandler(cfg.AdminService, cfg.JWTManager)
	movieHandler := movieHttp.NewHandler(cfg.MovieService, cfg.CacheStore)
	posterHandler := posterHttp.NewHandler(cfg.PosterService)

	v1 := r.Group("/v1")
	{
		adminHttp.RegisterRoutes(v1, adminHandler, authMiddleware)
		movieHttp.RegisterRoutes(v1, movieHandler, authMiddleware, cacheMiddleware)
		posterHttp.RegisterRoutes(v1, posterHandler, authMiddleware)
	}

	return r
}
