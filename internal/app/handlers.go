package app

import (
	httpH "github.com/advisorly/advisorly-backend/internal/http/handlers"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type Handlers struct {
	Blueprint *httpH.BlueprintHandler
	Health    *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Blueprint: httpH.NewBlueprintHandler(log, services.Promotion),
		Health:    httpH.NewHealthHandler(),
	}
}
