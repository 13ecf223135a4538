package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Billing frequencies a tier can carry. Unrecognized blueprint periods
// normalize to one_time.
const (
	FrequencyMonthly   = "monthly"
	FrequencyAnnual    = "annual"
	FrequencyQuarterly = "quarterly"
	FrequencyOneTime   = "one_time"
)

// PracticeService is the tenant-scoped pricing parent: one row per
// (practice, service code). It owns the tier rows.
type PracticeService struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PracticeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_practice_service_code,priority:1" json:"practice_id"`
	ServiceCode string    `gorm:"column:service_code;not null;uniqueIndex:idx_practice_service_code,priority:2" json:"service_code"`

	Status string `gorm:"column:status;not null;default:'active'" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PracticeService) TableName() string { return "practice_service" }

// PracticeServiceTier is one purchasable option under a pricing parent.
// The full tier set for a parent always equals the blueprint's current tier
// list; re-promotion replaces all rows, never merges.
type PracticeServiceTier struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PracticeServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"practice_service_id"`

	TierKey      string   `gorm:"column:tier_key;not null" json:"tier_key"`
	Name         string   `gorm:"column:name;not null" json:"name"`
	Tagline      string   `gorm:"column:tagline" json:"tagline"`
	PricingModel string   `gorm:"column:pricing_model" json:"pricing_model"`
	PriceAmount  float64  `gorm:"column:price_amount;not null" json:"price_amount"`
	RangeLow     *float64 `gorm:"column:range_low" json:"range_low,omitempty"`
	RangeHigh    *float64 `gorm:"column:range_high" json:"range_high,omitempty"`
	Frequency    string   `gorm:"column:frequency;not null" json:"frequency"`

	DisplayOrder int  `gorm:"column:display_order;not null" json:"display_order"`
	IsDefault    bool `gorm:"column:is_default;not null" json:"is_default"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PracticeServiceTier) TableName() string { return "practice_service_tier" }
