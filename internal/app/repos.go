package app

import (
	"gorm.io/gorm"

	blueprintrepo "github.com/advisorly/advisorly-backend/internal/data/repos/blueprint"
	catalogrepo "github.com/advisorly/advisorly-backend/internal/data/repos/catalog"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type Repos struct {
	ServiceBlueprint    blueprintrepo.ServiceBlueprintRepo
	ServiceConcept      blueprintrepo.ServiceConceptRepo
	Service             catalogrepo.ServiceRepo
	PracticeService     catalogrepo.PracticeServiceRepo
	PracticeServiceTier catalogrepo.PracticeServiceTierRepo
	AssessmentQuestion  catalogrepo.AssessmentQuestionRepo
	ScoringWeight       catalogrepo.ScoringWeightRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		ServiceBlueprint:    blueprintrepo.NewServiceBlueprintRepo(db, log),
		ServiceConcept:      blueprintrepo.NewServiceConceptRepo(db, log),
		Service:             catalogrepo.NewServiceRepo(db, log),
		PracticeService:     catalogrepo.NewPracticeServiceRepo(db, log),
		PracticeServiceTier: catalogrepo.NewPracticeServiceTierRepo(db, log),
		AssessmentQuestion:  catalogrepo.NewAssessmentQuestionRepo(db, log),
		ScoringWeight:       catalogrepo.NewScoringWeightRepo(db, log),
	}
}
