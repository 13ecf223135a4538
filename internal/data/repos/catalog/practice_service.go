package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type PracticeServiceRepo interface {
	// Upsert creates or refreshes the pricing parent for
	// (practice, service code) and returns the surviving row, whose ID the
	// tier rows hang off.
	Upsert(ctx context.Context, tx *gorm.DB, ps *types.PracticeService) (*types.PracticeService, error)
	GetByPracticeAndCode(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID, serviceCode string) (*types.PracticeService, error)
}

type practiceServiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeServiceRepo(db *gorm.DB, baseLog *logger.Logger) PracticeServiceRepo {
	repoLog := baseLog.With("repo", "PracticeServiceRepo")
	return &practiceServiceRepo{db: db, log: repoLog}
}

func (r *practiceServiceRepo) Upsert(ctx context.Context, tx *gorm.DB, ps *types.PracticeService) (*types.PracticeService, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "practice_id"}, {Name: "service_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status",
				"updated_at",
			}),
		}).
		Create(ps).Error; err != nil {
		return nil, err
	}

	// On conflict the inserted ID is discarded; reload the canonical row.
	return r.GetByPracticeAndCode(ctx, transaction, ps.PracticeID, ps.ServiceCode)
}

func (r *practiceServiceRepo) GetByPracticeAndCode(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID, serviceCode string) (*types.PracticeService, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.PracticeService
	err := transaction.WithContext(ctx).
		Where("practice_id = ? AND service_code = ?", practiceID, serviceCode).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
