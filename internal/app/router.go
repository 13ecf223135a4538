package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/advisorly/advisorly-backend/internal/http"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:              log,
		AuthMiddleware:   middleware.Auth,
		BlueprintHandler: handlers.Blueprint,
		HealthHandler:    handlers.Health,
	})
}
