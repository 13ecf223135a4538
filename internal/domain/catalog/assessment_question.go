package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AssessmentQuestion is one intake questionnaire row, keyed by
// (service_code, question_key). Sync is additive-only: questions dropped from
// a later blueprint revision stay in place.
type AssessmentQuestion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceCode string    `gorm:"column:service_code;not null;uniqueIndex:idx_assessment_question_key,priority:1" json:"service_code"`
	QuestionKey string    `gorm:"column:question_key;not null;uniqueIndex:idx_assessment_question_key,priority:2" json:"question_key"`

	Section      string         `gorm:"column:section" json:"section"`
	Prompt       string         `gorm:"column:prompt;type:text;not null" json:"prompt"`
	QuestionType string         `gorm:"column:question_type" json:"question_type"`
	Options      datatypes.JSON `gorm:"column:options;type:jsonb" json:"options,omitempty"`
	Required     bool           `gorm:"column:required;not null" json:"required"`

	// DisplayOrder increases across the whole flattened questionnaire, not
	// per section, so downstream rendering keeps cross-section order.
	DisplayOrder int `gorm:"column:display_order;not null" json:"display_order"`

	Placeholder string `gorm:"column:placeholder" json:"placeholder,omitempty"`
	CharLimit   int    `gorm:"column:char_limit" json:"char_limit,omitempty"`
	AIAnchor    string `gorm:"column:ai_anchor;type:text" json:"ai_anchor,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AssessmentQuestion) TableName() string { return "assessment_question" }
