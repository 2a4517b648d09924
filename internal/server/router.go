package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/coursegrid/scheduler/pkg/config"
	"github.com/coursegrid/scheduler/pkg/logger"
	corsmiddleware "github.com/coursegrid/scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/coursegrid/scheduler/pkg/middleware/requestid"
)

// NewRouter assembles the full HTTP surface: API routes, metrics scrape
// endpoint and the common middleware chain.
func NewRouter(cfg *config.Config, log *zap.Logger, metrics *Metrics, handler *Handler) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	RegisterValidators()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(MetricsMiddleware(metrics))

	api := r.Group("/api")
	api.POST("/generate-schedule", handler.Generate)
	api.GET("/examples/sample-schedule", handler.Sample)
	api.GET("/health", handler.Health)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Endpoint not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Message: "Method not allowed"})
	})

	return r
}
