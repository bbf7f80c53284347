package api

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ggrmusic/ggr-web/pkg/config"
	"github.com/ggrmusic/ggr-web/pkg/middleware"
	"github.com/ggrmusic/ggr-web/pkg/web"
)

// NewRouter wires pages, the subscription endpoint and static images.
// Forwarded client addresses are only honoured from cfg.TrustedProxies.
func NewRouter(cfg *config.Config, handlers *Handlers, renderer *web.Renderer, logger *slog.Logger) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	if gin.IsDebugging() {
		router.Use(gin.Logger())
	} else {
		router.Use(middleware.RequestLogger(logger))
	}
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins...))
	router.HTMLRender = renderer

	router.GET("/", handlers.Home)
	router.GET("/subscribe", handlers.SubscribePage)
	router.POST("/subscribe", handlers.HandleSubscribe)
	router.GET("/shows", handlers.Shows)
	router.GET("/gallery", handlers.Gallery)
	router.GET("/api/gallery", handlers.GalleryJSON)
	router.GET("/health", handlers.HealthCheck)
	router.Static("/images", cfg.ImagesDir)

	return router, nil
}
