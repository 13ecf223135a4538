package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type PracticeServiceTierRepo interface {
	// ReplaceForParent deletes every tier under the parent and inserts
	// exactly the given list. Callers must run it inside a transaction so no
	// reader ever observes the empty set between delete and insert.
	ReplaceForParent(ctx context.Context, tx *gorm.DB, parentID uuid.UUID, tiers []*types.PracticeServiceTier) error
	GetByParentID(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.PracticeServiceTier, error)
}

type practiceServiceTierRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeServiceTierRepo(db *gorm.DB, baseLog *logger.Logger) PracticeServiceTierRepo {
	repoLog := baseLog.With("repo", "PracticeServiceTierRepo")
	return &practiceServiceTierRepo{db: db, log: repoLog}
}

func (r *practiceServiceTierRepo) ReplaceForParent(ctx context.Context, tx *gorm.DB, parentID uuid.UUID, tiers []*types.PracticeServiceTier) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("practice_service_id = ?", parentID).
		Delete(&types.PracticeServiceTier{}).Error; err != nil {
		return err
	}

	if len(tiers) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).Create(&tiers).Error
}

func (r *practiceServiceTierRepo) GetByParentID(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.PracticeServiceTier, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PracticeServiceTier
	if err := transaction.WithContext(ctx).
		Where("practice_service_id = ?", parentID).
		Order("display_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
