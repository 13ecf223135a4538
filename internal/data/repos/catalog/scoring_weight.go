package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type ScoringWeightRepo interface {
	// UpsertMany conflicts on (question_key, answer_value, service_code);
	// additive-only, same policy as assessment questions.
	UpsertMany(ctx context.Context, tx *gorm.DB, weights []*types.ScoringWeight) error
	GetByServiceCode(ctx context.Context, tx *gorm.DB, serviceCode string) ([]*types.ScoringWeight, error)
}

type scoringWeightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoringWeightRepo(db *gorm.DB, baseLog *logger.Logger) ScoringWeightRepo {
	repoLog := baseLog.With("repo", "ScoringWeightRepo")
	return &scoringWeightRepo{db: db, log: repoLog}
}

func (r *scoringWeightRepo) UpsertMany(ctx context.Context, tx *gorm.DB, weights []*types.ScoringWeight) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(weights) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "question_key"}, {Name: "answer_value"}, {Name: "service_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"points",
				"description",
				"updated_at",
			}),
		}).
		Create(&weights).Error
}

func (r *scoringWeightRepo) GetByServiceCode(ctx context.Context, tx *gorm.DB, serviceCode string) ([]*types.ScoringWeight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ScoringWeight
	if err := transaction.WithContext(ctx).
		Where("service_code = ?", serviceCode).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
