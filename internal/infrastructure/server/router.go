package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/viniciusmartins/imagepress/internal/adapter/handler"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/middleware"
)

type Router struct {
	engine        *gin.Engine
	uploadHandler *handler.UploadHandler
	apiKey        *middleware.APIKeyMiddleware
	rateLimiter   *middleware.RateLimiter
	logger        *zap.Logger
}

type RouterConfig struct {
	UploadHandler *handler.UploadHandler
	APIKey        *middleware.APIKeyMiddleware
	RateLimiter   *middleware.RateLimiter
	Logger        *zap.Logger
	CORSOrigins   []string
	Environment   string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:        engine,
		uploadHandler: cfg.UploadHandler,
		apiKey:        cfg.APIKey,
		rateLimiter:   cfg.RateLimiter,
		logger:        cfg.Logger,
	}

	r.setupMiddleware(cfg.CORSOrigins)
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware(corsOrigins []string) {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(corsOrigins))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")
	{
		images := api.Group("/images")
		if r.rateLimiter != nil {
			images.Use(r.rateLimiter.Limit())
		}
		if r.apiKey != nil {
			images.Use(r.apiKey.RequireKey())
		}
		images.POST("", r.uploadHandler.Upload)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
