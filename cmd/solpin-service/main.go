package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/solpin/solpin-service/docs"
	"github.com/solpin/solpin-service/internal/cache"
	"github.com/solpin/solpin-service/internal/challenge"
	"github.com/solpin/solpin-service/internal/config"
	"github.com/solpin/solpin-service/internal/events"
	uploadHandlers "github.com/solpin/solpin-service/internal/http/handlers/uploads"
	wsHandlers "github.com/solpin/solpin-service/internal/http/handlers/websocket"
	"github.com/solpin/solpin-service/internal/http/middleware"
	"github.com/solpin/solpin-service/internal/pinning"
	uploadService "github.com/solpin/solpin-service/internal/services/uploads"
	"github.com/solpin/solpin-service/internal/storage/postgres"
	"github.com/solpin/solpin-service/internal/websocket"
)

// @title solpin-service API
// @version 1.0
// @description Pins media and ERC-721-style metadata to content-addressed storage and keeps a browsable record of uploads.
// @BasePath /
func main() {
	// load config
	cfg := config.MustLoad()

	// database setup
	storage, err := postgres.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	slog.Info("Connected to Postgres database")

	// redis backs rate limiting and signing challenges
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// pinning provider; a missing token is a warning, not a startup failure,
	// uploads just fail until one is configured
	if cfg.Pinning.Token == "" {
		slog.Warn("pinning token is not set, uploads will fail until it is configured")
	}
	pinner := pinning.NewClient(cfg.Pinning.Endpoint, cfg.Pinning.Token)

	challenges := challenge.NewStore(redisClient, time.Duration(cfg.Challenge.TTLSeconds)*time.Second)

	// short-lived redis cache in front of the gallery listing
	cachedStorage := cache.NewCacheService(storage, redisClient)

	svc := uploadService.NewService(pinner, cachedStorage, cfg.Pinning.Gateway)
	if cfg.Challenge.Required {
		svc = svc.WithChallenges(challenges)
		slog.Info("Challenge enforcement enabled")
	}

	// live gallery feed
	hub := websocket.NewHub()
	go hub.Run()
	publisher := events.NewEventPublisher(hub)

	// setup server
	router := http.NewServeMux()

	uploadHandler := http.Handler(uploadHandlers.Upload(svc, publisher, cfg.Pinning.MaxFileSize))
	if cfg.RateLimit.Enabled {
		rateLimits := middleware.NewRateLimitConfig(redisClient, cfg.RateLimit.UploadsPerMin)
		uploadHandler = rateLimits.RateLimitMiddleware("upload")(uploadHandler)
	}

	router.Handle("POST /api/uploads/upload", uploadHandler)
	router.HandleFunc("GET /api/uploads", uploadHandlers.List(svc))
	router.HandleFunc("POST /api/uploads/challenge", uploadHandlers.Challenge(challenges))
	router.HandleFunc("GET /api/uploads/ws", wsHandlers.GalleryFeed(hub))
	router.HandleFunc("GET /health", uploadHandlers.Health())
	router.Handle("GET /swagger/", httpSwagger.WrapHandler)

	server := http.Server{
		Addr:    cfg.HTTPServer.Address,
		Handler: router,
	}

	log.Println("server started on", cfg.HTTPServer.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %s", err)
		}
	}()

	<-done

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = server.Shutdown(ctx)
	if err != nil {
		slog.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
		return
	}

	slog.Info("Server stopped")
}
