package blueprint

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type ServiceConceptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, concepts []*types.ServiceConcept) ([]*types.ServiceConcept, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, conceptIDs []uuid.UUID) ([]*types.ServiceConcept, error)
	SetReviewStatus(ctx context.Context, tx *gorm.DB, conceptID uuid.UUID, status string) error
}

type serviceConceptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceConceptRepo(db *gorm.DB, baseLog *logger.Logger) ServiceConceptRepo {
	repoLog := baseLog.With("repo", "ServiceConceptRepo")
	return &serviceConceptRepo{db: db, log: repoLog}
}

func (r *serviceConceptRepo) Create(ctx context.Context, tx *gorm.DB, concepts []*types.ServiceConcept) ([]*types.ServiceConcept, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(concepts) == 0 {
		return []*types.ServiceConcept{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&concepts).Error; err != nil {
		return nil, err
	}
	return concepts, nil
}

func (r *serviceConceptRepo) GetByIDs(ctx context.Context, tx *gorm.DB, conceptIDs []uuid.UUID) ([]*types.ServiceConcept, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ServiceConcept
	if len(conceptIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", conceptIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *serviceConceptRepo) SetReviewStatus(ctx context.Context, tx *gorm.DB, conceptID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.ServiceConcept{}).
		Where("id = ?", conceptID).
		Updates(map[string]interface{}{"review_status": status}).Error
}
