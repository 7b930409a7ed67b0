package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitelens/api/handler"
	"github.com/use-agent/sitelens/api/middleware"
	"github.com/use-agent/sitelens/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → RequestID → Logging → CORS
//	Analyze: RateLimit
//
// Health sits outside the rate limiter so monitoring probes always work.
func NewRouter(an handler.Analyzer, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.CORS(cfg.CORS))

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(startTime))

	limited := v1.Group("")
	limited.Use(middleware.RateLimit(cfg.RateLimit))

	limited.POST("/analyze", handler.Analyze(an))
	limited.POST("/analyze/source", handler.Source(an))

	return r
}
