package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinereel/movie-booking-backend/internal/app"
	"github.com/cinereel/movie-booking-backend/internal/cache"
	"github.com/cinereel/movie-booking-backend/internal/config"
	"github.com/cinereel/movie-booking-backend/internal/db"
	"github.com/cinereel/movie-booking-backend/internal/event"
	"github.com/cinereel/movie-booking-backend/internal/movie"
	"github.com/cinereel/movie-booking-backend/internal/pkg/storage"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Poster storage
	posterStorage, err := storage.NewLocalStorage(cfg.PosterStoragePath)
	if err != nil {
		log.Fatalf("failed to init poster storage: %v", err)
	}

	// Response cache; nil client disables caching.
	var cacheStore *cache.Store
	if rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		cacheStore = cache.New(rdb, cfg.CacheTTL)
		log.Printf("response cache enabled (redis %s)", cfg.RedisAddr)
	} else if cfg.RedisAddr != "" {
		log.Printf("redis %s unreachable, response cache disabled", cfg.RedisAddr)
	}

	// Event publisher; empty URL disables publishing.
	var publisher movie.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = event.NewAMQPPublisher(cfg.AMQPURL)
	}

	container := app.NewContainer(app.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		DBPool:         pool,
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTAccessTokenTTL,
		BcryptCost:     cfg.BcryptCost,
		PosterStorage:  posterStorage,
		CacheStore:     cacheStore,
		EventPublisher: publisher,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
