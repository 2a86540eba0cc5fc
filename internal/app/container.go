package app

import (
	"time"

	"github.com/cinereel/movie-booking-backend/internal/admin"
	"github.com/cinereel/movie-booking-backend/internal/api"
	"github.com/cinereel/movie-booking-backend/internal/auth"
	"github.com/cinereel/movie-booking-backend/internal/cache"
	"github.com/cinereel/movie-booking-backend/internal/movie"
	"github.com/cinereel/movie-booking-backend/internal/pkg/storage"
	"github.com/cinereel/movie-booking-backend/internal/poster"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	DBPool         *pgxpool.Pool
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	PosterStorage  storage.Storage
	CacheStore     *cache.Store         // may be nil
	EventPublisher movie.EventPublisher // may be nil
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Admin module
	adminRepo := admin.NewPgxRepository(cfg.DBPool)
	adminService := admin.NewService(adminRepo, passwordHasher)

	// Movie module; the pool doubles as the transaction beginner for the
	// registration coordinator.
	movieRepo := movie.NewPgxRepository(cfg.DBPool)
	movieService := movie.NewService(cfg.DBPool, movieRepo, adminRepo, cfg.EventPublisher)

	// Poster module
	posterRepo := poster.NewRepository(cfg.DBPool)
	posterService := poster.NewService(posterRepo, cfg.PosterStorage)

	routerParams := api.Config{
		IsProduction:  cfg.IsProduction,
		ProdOrigins:   cfg.ProdOrigins,
		AdminService:  adminService,
		MovieService:  movieService,
		PosterService: posterService,
		JWTManager:    jwtManager,
		CacheStore:    cfg.CacheStore,
	}

	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
