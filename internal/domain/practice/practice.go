package practice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Practice is an advisory firm tenant. Every blueprint and pricing row is
// scoped to exactly one practice.
type Practice struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string    `gorm:"column:name;not null" json:"name"`
	Status string    `gorm:"column:status;not null;default:'active'" json:"status"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Practice) TableName() string { return "practice" }
