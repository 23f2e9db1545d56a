package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/ad-copy-agent/internal/a2a"
	"github.com/BerylCAtieno/ad-copy-agent/internal/middleware"
	"github.com/BerylCAtieno/ad-copy-agent/internal/web"
)

// RouterConfig carries the dependencies of the HTTP surface.
type RouterConfig struct {
	Generator          AdGenerator
	Logger             *zap.Logger
	CORSAllowedOrigins string
}

// NewRouter wires every route and middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	handler := NewHandler(cfg.Generator, cfg.Logger)
	a2aHandler := a2a.NewA2AHandler(cfg.Generator, cfg.Logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.Logger(cfg.Logger))

	router.GET("/", web.Index)
	router.GET("/health", handler.Health)

	api := router.Group("/api")
	{
		api.GET("/options", handler.Options)
		api.POST("/generate-ad", handler.GenerateAd)
	}

	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/adcopy", a2aHandler.HandleAdCopy)

	return router
}
