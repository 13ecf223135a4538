package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type AssessmentQuestionRepo interface {
	// UpsertMany is additive-only: rows conflict on
	// (service_code, question_key) and are updated in place; questions absent
	// from the batch are never deleted.
	UpsertMany(ctx context.Context, tx *gorm.DB, questions []*types.AssessmentQuestion) error
	GetByServiceCode(ctx context.Context, tx *gorm.DB, serviceCode string) ([]*types.AssessmentQuestion, error)
}

type assessmentQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentQuestionRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentQuestionRepo {
	repoLog := baseLog.With("repo", "AssessmentQuestionRepo")
	return &assessmentQuestionRepo{db: db, log: repoLog}
}

func (r *assessmentQuestionRepo) UpsertMany(ctx context.Context, tx *gorm.DB, questions []*types.AssessmentQuestion) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questions) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "service_code"}, {Name: "question_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"section",
				"prompt",
				"question_type",
				"options",
				"required",
				"display_order",
				"placeholder",
				"char_limit",
				"ai_anchor",
				"updated_at",
			}),
		}).
		Create(&questions).Error
}

func (r *assessmentQuestionRepo) GetByServiceCode(ctx context.Context, tx *gorm.DB, serviceCode string) ([]*types.AssessmentQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AssessmentQuestion
	if err := transaction.WithContext(ctx).
		Where("service_code = ?", serviceCode).
		Order("display_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
