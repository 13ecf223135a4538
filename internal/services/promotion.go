package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	blueprintrepo "github.com/advisorly/advisorly-backend/internal/data/repos/blueprint"
	catalogrepo "github.com/advisorly/advisorly-backend/internal/data/repos/catalog"
	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/domain/blueprint"
	"github.com/advisorly/advisorly-backend/internal/domain/catalog"
	"github.com/advisorly/advisorly-backend/internal/platform/apierr"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type PromotionResult struct {
	ServiceCode string `json:"serviceCode"`
	Message     string `json:"message"`
}

type BlueprintStatus struct {
	Status        string     `json:"status"`
	ImplementedAt *time.Time `json:"implementedAt,omitempty"`
}

type PromotionService interface {
	// Promote materializes an approved blueprint into the live catalogue,
	// pricing, assessment and scoring tables and advances the blueprint to
	// implemented. Single-flight per blueprint: a concurrent caller loses the
	// status gate and gets the invalid-state error.
	Promote(ctx context.Context, blueprintID, practiceID uuid.UUID) (*PromotionResult, error)
	Status(ctx context.Context, blueprintID, practiceID uuid.UUID) (*BlueprintStatus, error)
}

type promotionService struct {
	db  *gorm.DB
	log *logger.Logger

	blueprints       blueprintrepo.ServiceBlueprintRepo
	concepts         blueprintrepo.ServiceConceptRepo
	services         catalogrepo.ServiceRepo
	practiceServices catalogrepo.PracticeServiceRepo
	tiers            catalogrepo.PracticeServiceTierRepo
	questions        catalogrepo.AssessmentQuestionRepo
	weights          catalogrepo.ScoringWeightRepo
}

func NewPromotionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	blueprints blueprintrepo.ServiceBlueprintRepo,
	concepts blueprintrepo.ServiceConceptRepo,
	services catalogrepo.ServiceRepo,
	practiceServices catalogrepo.PracticeServiceRepo,
	tiers catalogrepo.PracticeServiceTierRepo,
	questions catalogrepo.AssessmentQuestionRepo,
	weights catalogrepo.ScoringWeightRepo,
) PromotionService {
	return &promotionService{
		db:               db,
		log:              baseLog.With("service", "PromotionService"),
		blueprints:       blueprints,
		concepts:         concepts,
		services:         services,
		practiceServices: practiceServices,
		tiers:            tiers,
		questions:        questions,
		weights:          weights,
	}
}

func (s *promotionService) Promote(ctx context.Context, blueprintID, practiceID uuid.UUID) (*PromotionResult, error) {
	if blueprintID == uuid.Nil || practiceID == uuid.Nil {
		return nil, apierr.BadRequest("missing_identifiers", errors.New("blueprintId and practiceId are required"))
	}

	// The conditional approved -> promoting move is both the approval gate
	// and the single-flight lock; it is the only write allowed before the
	// main transaction.
	won, err := s.blueprints.TransitionStatus(ctx, nil, blueprintID, practiceID, blueprint.StatusApproved, blueprint.StatusPromoting)
	if err != nil {
		return nil, apierr.Internal("promotion_gate_failed", fmt.Errorf("acquire promotion gate: %w", err))
	}
	if !won {
		row, err := s.blueprints.GetByIDForPractice(ctx, nil, blueprintID, practiceID)
		if err != nil {
			return nil, apierr.Internal("load_blueprint_failed", fmt.Errorf("load blueprint: %w", err))
		}
		if row == nil {
			return nil, apierr.NotFound("blueprint_not_found", errors.New("Blueprint not found or access denied"))
		}
		return nil, apierr.BadRequest("invalid_blueprint_status", errors.New("Blueprint must be in approved status to implement"))
	}

	bp, err := s.blueprints.GetByIDForPractice(ctx, nil, blueprintID, practiceID)
	if err != nil || bp == nil {
		s.releaseGate(ctx, blueprintID, practiceID)
		if err == nil {
			err = errors.New("blueprint disappeared after gate")
		}
		return nil, apierr.Internal("load_blueprint_failed", fmt.Errorf("load blueprint: %w", err))
	}

	doc, err := blueprint.ParseDocument(bp.Document)
	if err != nil {
		s.releaseGate(ctx, blueprintID, practiceID)
		return nil, apierr.BadRequest("invalid_blueprint_document", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.syncCatalog(ctx, tx, doc); err != nil {
			return fmt.Errorf("failed to upsert service: %w", err)
		}
		if err := s.syncPricing(ctx, tx, practiceID, doc); err != nil {
			return fmt.Errorf("failed to sync pricing: %w", err)
		}
		if err := s.syncQuestions(ctx, tx, doc); err != nil {
			return fmt.Errorf("failed to sync assessment questions: %w", err)
		}
		if err := s.syncWeights(ctx, tx, doc); err != nil {
			return fmt.Errorf("failed to sync scoring weights: %w", err)
		}
		if err := s.blueprints.MarkImplemented(ctx, tx, blueprintID, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to mark blueprint implemented: %w", err)
		}
		if bp.SourceConceptID != nil {
			if err := s.concepts.SetReviewStatus(ctx, tx, *bp.SourceConceptID, blueprint.ReviewStatusImplemented); err != nil {
				return fmt.Errorf("failed to mark source concept implemented: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.releaseGate(ctx, blueprintID, practiceID)
		s.log.Error("promotion failed",
			"blueprint_id", blueprintID.String(),
			"practice_id", practiceID.String(),
			"error", err,
		)
		return nil, apierr.Internal("promotion_failed", err)
	}

	s.log.Info("blueprint promoted",
		"blueprint_id", blueprintID.String(),
		"practice_id", practiceID.String(),
		"service_code", doc.Identity.Code,
	)
	return &PromotionResult{
		ServiceCode: doc.Identity.Code,
		Message: fmt.Sprintf(
			"Service %s has been implemented and is now active in the catalogue. Recommendation registry and scoring engine code changes must still be applied and redeployed manually.",
			doc.Identity.Code,
		),
	}, nil
}

func (s *promotionService) Status(ctx context.Context, blueprintID, practiceID uuid.UUID) (*BlueprintStatus, error) {
	if blueprintID == uuid.Nil || practiceID == uuid.Nil {
		return nil, apierr.BadRequest("missing_identifiers", errors.New("blueprintId and practiceId are required"))
	}
	row, err := s.blueprints.GetByIDForPractice(ctx, nil, blueprintID, practiceID)
	if err != nil {
		return nil, apierr.Internal("load_blueprint_failed", fmt.Errorf("load blueprint: %w", err))
	}
	if row == nil {
		return nil, apierr.NotFound("blueprint_not_found", errors.New("Blueprint not found or access denied"))
	}
	return &BlueprintStatus{Status: row.Status, ImplementedAt: row.ImplementedAt}, nil
}

// releaseGate returns a blueprint stuck in promoting to approved so the
// promotion can be retried. Best effort: the blueprint stays retryable even
// if this write fails, it just needs an operator reset.
func (s *promotionService) releaseGate(ctx context.Context, blueprintID, practiceID uuid.UUID) {
	moved, err := s.blueprints.TransitionStatus(ctx, nil, blueprintID, practiceID, blueprint.StatusPromoting, blueprint.StatusApproved)
	if err != nil || !moved {
		s.log.Warn("failed to release promotion gate",
			"blueprint_id", blueprintID.String(),
			"moved", moved,
			"error", err,
		)
	}
}

func (s *promotionService) syncCatalog(ctx context.Context, tx *gorm.DB, doc *blueprint.Document) error {
	amount, display, period := headlinePrice(doc)
	svc := &types.Service{
		ID:           uuid.New(),
		Code:         doc.Identity.Code,
		Name:         doc.Identity.Name,
		Category:     doc.Identity.Category,
		Description:  doc.Identity.Description,
		Status:       catalog.ServiceStatusActive,
		PriceAmount:  amount,
		PriceDisplay: display,
		PricePeriod:  period,
	}
	return s.services.Upsert(ctx, tx, svc)
}

func (s *promotionService) syncPricing(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID, doc *blueprint.Document) error {
	parent, err := s.practiceServices.Upsert(ctx, tx, &types.PracticeService{
		ID:          uuid.New(),
		PracticeID:  practiceID,
		ServiceCode: doc.Identity.Code,
		Status:      "active",
	})
	if err != nil {
		return err
	}
	if parent == nil {
		return errors.New("pricing parent missing after upsert")
	}
	return s.tiers.ReplaceForParent(ctx, tx, parent.ID, buildTierRows(parent.ID, doc))
}

func (s *promotionService) syncQuestions(ctx context.Context, tx *gorm.DB, doc *blueprint.Document) error {
	rows := make([]*types.AssessmentQuestion, 0)
	order := 0
	for _, section := range doc.Assessment.Sections {
		for _, q := range section.Questions {
			order++
			var options datatypes.JSON
			if len(q.Options) > 0 {
				raw, err := json.Marshal(q.Options)
				if err != nil {
					return fmt.Errorf("encode options for question %s: %w", q.Key, err)
				}
				options = datatypes.JSON(raw)
			}
			rows = append(rows, &types.AssessmentQuestion{
				ID:           uuid.New(),
				ServiceCode:  doc.Identity.Code,
				QuestionKey:  q.Key,
				Section:      section.Name,
				Prompt:       q.Text,
				QuestionType: q.Type,
				Options:      options,
				Required:     q.Required,
				DisplayOrder: order,
				Placeholder:  q.Placeholder,
				CharLimit:    q.CharLimit,
				AIAnchor:     q.AIAnchor,
			})
		}
	}
	return s.questions.UpsertMany(ctx, tx, rows)
}

func (s *promotionService) syncWeights(ctx context.Context, tx *gorm.DB, doc *blueprint.Document) error {
	if doc.Scoring == nil || len(doc.Scoring.ChoiceTriggers) == 0 {
		return nil
	}
	rows := make([]*types.ScoringWeight, 0, len(doc.Scoring.ChoiceTriggers))
	for _, trigger := range doc.Scoring.ChoiceTriggers {
		rows = append(rows, &types.ScoringWeight{
			ID:          uuid.New(),
			QuestionKey: trigger.QuestionKey,
			AnswerValue: trigger.AnswerValue,
			ServiceCode: doc.Identity.Code,
			Points:      trigger.Points,
			Description: trigger.Description,
		})
	}
	return s.weights.UpsertMany(ctx, tx, rows)
}
