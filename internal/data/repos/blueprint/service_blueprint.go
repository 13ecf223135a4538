package blueprint

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type ServiceBlueprintRepo interface {
	Create(ctx context.Context, tx *gorm.DB, blueprints []*types.ServiceBlueprint) ([]*types.ServiceBlueprint, error)
	// GetByIDForPractice loads one blueprint scoped to its practice. Returns
	// nil (no error) when the row is absent or belongs to another practice.
	GetByIDForPractice(ctx context.Context, tx *gorm.DB, blueprintID, practiceID uuid.UUID) (*types.ServiceBlueprint, error)
	// TransitionStatus performs a conditional status move and reports whether
	// this caller won the row. Zero rows moved means the blueprint is absent,
	// cross-tenant, or not in the expected state.
	TransitionStatus(ctx context.Context, tx *gorm.DB, blueprintID, practiceID uuid.UUID, from, to string) (bool, error)
	MarkImplemented(ctx context.Context, tx *gorm.DB, blueprintID uuid.UUID, at time.Time) error
}

type serviceBlueprintRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceBlueprintRepo(db *gorm.DB, baseLog *logger.Logger) ServiceBlueprintRepo {
	repoLog := baseLog.With("repo", "ServiceBlueprintRepo")
	return &serviceBlueprintRepo{db: db, log: repoLog}
}

func (r *serviceBlueprintRepo) Create(ctx context.Context, tx *gorm.DB, blueprints []*types.ServiceBlueprint) ([]*types.ServiceBlueprint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(blueprints) == 0 {
		return []*types.ServiceBlueprint{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&blueprints).Error; err != nil {
		return nil, err
	}
	return blueprints, nil
}

func (r *serviceBlueprintRepo) GetByIDForPractice(ctx context.Context, tx *gorm.DB, blueprintID, practiceID uuid.UUID) (*types.ServiceBlueprint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.ServiceBlueprint
	err := transaction.WithContext(ctx).
		Where("id = ? AND practice_id = ?", blueprintID, practiceID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *serviceBlueprintRepo) TransitionStatus(ctx context.Context, tx *gorm.DB, blueprintID, practiceID uuid.UUID, from, to string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.ServiceBlueprint{}).
		Where("id = ? AND practice_id = ? AND status = ?", blueprintID, practiceID, from).
		Updates(map[string]interface{}{"status": to})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *serviceBlueprintRepo) MarkImplemented(ctx context.Context, tx *gorm.DB, blueprintID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.ServiceBlueprint{}).
		Where("id = ?", blueprintID).
		Updates(map[string]interface{}{
			"status":         "implemented",
			"implemented_at": at,
		}).Error
}
