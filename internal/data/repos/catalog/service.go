package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type ServiceRepo interface {
	// Upsert inserts the catalogue row or, when the code already exists,
	// overwrites its identity and headline price fields in place.
	Upsert(ctx context.Context, tx *gorm.DB, svc *types.Service) error
	GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Service, error)
}

type serviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	repoLog := baseLog.With("repo", "ServiceRepo")
	return &serviceRepo{db: db, log: repoLog}
}

func (r *serviceRepo) Upsert(ctx context.Context, tx *gorm.DB, svc *types.Service) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"category",
				"description",
				"status",
				"price_amount",
				"price_display",
				"price_period",
				"updated_at",
			}),
		}).
		Create(svc).Error
}

func (r *serviceRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Service
	if len(codes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
