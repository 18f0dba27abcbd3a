package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/viniciusmartins/imagepress/internal/adapter/handler"
	adapterstorage "github.com/viniciusmartins/imagepress/internal/adapter/storage"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/cache"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/config"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/middleware"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/observability"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/server"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/storage"
	"github.com/viniciusmartins/imagepress/internal/pkg/storagekey"
	"github.com/viniciusmartins/imagepress/internal/usecase/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Infrastructure services. The S3 client is created once and shared
	// by all in-flight requests.
	s3Storage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to create s3 storage", zap.Error(err))
	}
	transcoder := storage.NewWebPTranscoder()
	keys := storagekey.NewGenerator(cfg.Upload.KeyPrefix, adapterstorage.ExtensionWebP)

	// Use cases
	uploadSvc := upload.NewService(transcoder, s3Storage, keys, cfg.Upload.MaxFileSize, cfg.Upload.Quality, cfg.Upload.KeepMetadata)

	// Handlers
	uploadHandler := handler.NewUploadHandler(uploadSvc, cfg.Upload.MaxFileSize)

	// Middleware
	var apiKey *middleware.APIKeyMiddleware
	if cfg.Auth.Enabled {
		apiKey = middleware.NewAPIKeyMiddleware(cfg.Auth.APIKey)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit)
	}

	// Router
	router := server.NewRouter(server.RouterConfig{
		UploadHandler: uploadHandler,
		APIKey:        apiKey,
		RateLimiter:   rateLimiter,
		Logger:        logger,
		CORSOrigins:   cfg.CORS.AllowedOrigins,
		Environment:   cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
