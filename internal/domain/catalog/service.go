package catalog

import (
	"time"

	"github.com/google/uuid"
)

const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
)

// PriceDisplayTBD is the headline shown for services promoted without any
// priced tier. Degraded but deliberate: a missing price never blocks
// promotion.
const PriceDisplayTBD = "TBD"

// Service is the global catalogue row, one per service code. It is not
// tenant-scoped: the code identifies the service line across all practices.
type Service struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code string    `gorm:"column:code;not null;uniqueIndex:idx_service_code" json:"code"`

	Name        string `gorm:"column:name;not null" json:"name"`
	Category    string `gorm:"column:category" json:"category"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Status      string `gorm:"column:status;not null;default:'active';index" json:"status"`

	PriceAmount  float64 `gorm:"column:price_amount;not null" json:"price_amount"`
	PriceDisplay string  `gorm:"column:price_display" json:"price_display"`
	PricePeriod  string  `gorm:"column:price_period" json:"price_period"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Service) TableName() string { return "service" }
