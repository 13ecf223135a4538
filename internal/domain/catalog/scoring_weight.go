package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ScoringWeight maps a specific question/answer pair to the points it
// contributes toward recommending this service. Keyed by
// (question_key, answer_value, service_code); additive-only like questions.
type ScoringWeight struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionKey string    `gorm:"column:question_key;not null;uniqueIndex:idx_scoring_weight_key,priority:1" json:"question_key"`
	AnswerValue string    `gorm:"column:answer_value;not null;uniqueIndex:idx_scoring_weight_key,priority:2" json:"answer_value"`
	ServiceCode string    `gorm:"column:service_code;not null;uniqueIndex:idx_scoring_weight_key,priority:3;index" json:"service_code"`

	Points      int    `gorm:"column:points;not null" json:"points"`
	Description string `gorm:"column:description" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ScoringWeight) TableName() string { return "scoring_weight" }
