package blueprint

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advisorly/advisorly-backend/internal/domain/practice"
)

const (
	ReviewStatusProposed    = "proposed"
	ReviewStatusApproved    = "approved"
	ReviewStatusImplemented = "implemented"
	ReviewStatusDismissed   = "dismissed"
)

// ServiceConcept is the upstream idea record a blueprint may originate from.
// When the blueprint is promoted the concept is marked implemented too.
type ServiceConcept struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PracticeID uuid.UUID          `gorm:"type:uuid;not null;index" json:"practice_id"`
	Practice   *practice.Practice `gorm:"constraint:OnDelete:CASCADE;foreignKey:PracticeID;references:ID" json:"practice,omitempty"`

	Title        string `gorm:"column:title;not null" json:"title"`
	Summary      string `gorm:"column:summary;type:text" json:"summary"`
	ReviewStatus string `gorm:"column:review_status;not null;default:'proposed';index" json:"review_status"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ServiceConcept) TableName() string { return "service_concept" }
