package domain

import (
	"github.com/advisorly/advisorly-backend/internal/domain/blueprint"
	"github.com/advisorly/advisorly-backend/internal/domain/catalog"
	"github.com/advisorly/advisorly-backend/internal/domain/practice"
)

type Practice = practice.Practice

type ServiceBlueprint = blueprint.ServiceBlueprint
type ServiceConcept = blueprint.ServiceConcept

type Service = catalog.Service
type PracticeService = catalog.PracticeService
type PracticeServiceTier = catalog.PracticeServiceTier
type AssessmentQuestion = catalog.AssessmentQuestion
type ScoringWeight = catalog.ScoringWeight
