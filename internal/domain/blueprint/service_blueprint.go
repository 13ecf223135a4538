package blueprint

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/advisorly/advisorly-backend/internal/domain/practice"
)

// Blueprint approval states. Promotion owns exactly two transitions:
// approved -> promoting (single-flight gate) and promoting -> implemented.
// Everything earlier in the lifecycle is written by the authoring flow.
const (
	StatusDraft       = "draft"
	StatusPending     = "pending"
	StatusApproved    = "approved"
	StatusPromoting   = "promoting"
	StatusImplemented = "implemented"
	StatusRejected    = "rejected"
)

type ServiceBlueprint struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PracticeID uuid.UUID          `gorm:"type:uuid;not null;index" json:"practice_id"`
	Practice   *practice.Practice `gorm:"constraint:OnDelete:CASCADE;foreignKey:PracticeID;references:ID" json:"practice,omitempty"`

	Title  string `gorm:"column:title" json:"title"`
	Status string `gorm:"column:status;not null;default:'draft';index" json:"status"`

	// Document is the approved configuration payload produced by the
	// authoring flow; promotion treats it as read-only input.
	Document datatypes.JSON `gorm:"column:document;type:jsonb" json:"document"`

	SourceConceptID *uuid.UUID `gorm:"type:uuid;index" json:"source_concept_id,omitempty"`

	ImplementedAt *time.Time     `gorm:"column:implemented_at;index" json:"implemented_at,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ServiceBlueprint) TableName() string { return "service_blueprint" }
