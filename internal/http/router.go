package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/advisorly/advisorly-backend/internal/http/handlers"
	httpMW "github.com/advisorly/advisorly-backend/internal/http/middleware"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	BlueprintHandler *httpH.BlueprintHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.BlueprintHandler != nil {
			api.POST("/service-blueprints/promote", cfg.BlueprintHandler.Promote)
			api.GET("/service-blueprints/:blueprintId/status", cfg.BlueprintHandler.GetStatus)
		}
	}

	return r
}
