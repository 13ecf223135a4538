package app

import (
	"gorm.io/gorm"

	"github.com/advisorly/advisorly-backend/internal/platform/logger"
	"github.com/advisorly/advisorly-backend/internal/services"
)

type Services struct {
	Promotion services.PromotionService
}

func wireServices(db *gorm.DB, log *logger.Logger, repos Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Promotion: services.NewPromotionService(
			db,
			log,
			repos.ServiceBlueprint,
			repos.ServiceConcept,
			repos.Service,
			repos.PracticeService,
			repos.PracticeServiceTier,
			repos.AssessmentQuestion,
			repos.ScoringWeight,
		),
	}
}
