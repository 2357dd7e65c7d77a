package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/POWERVHD/Viducate-backend/internal/gateway"
	"github.com/POWERVHD/Viducate-backend/internal/media"
	"github.com/POWERVHD/Viducate-backend/internal/observability"
)

// RouterConfig regroupe les dépendances du routeur
type RouterConfig struct {
	Gateway           gateway.Service
	Media             *media.Service
	Metrics           *observability.Metrics
	MetricsHandler    http.Handler
	RequestsPerMinute int
}

func SetupRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()

	r.Use(RequestIDMiddleware())
	r.Use(SecurityHeadersMiddleware())
	r.Use(MetricsMiddleware(cfg.Metrics))
	if cfg.RequestsPerMinute > 0 {
		r.Use(RateLimitMiddleware(cfg.RequestsPerMinute))
	}

	handlers := NewHandlers(cfg.Gateway, cfg.Media)

	// Routes
	r.GET("/health", handlers.Health)

	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")
	{
		video := api.Group("/video")
		{
			video.POST("/generate", handlers.Generate)
			video.GET("/status/:id", handlers.Status)
			video.GET("/avatars", handlers.Avatars)
			video.GET("/stream/:id", handlers.Stream)
			video.GET("/download/:id", handlers.Download)
		}
	}

	SetupSwagger(r)

	return r
}
