package blueprint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// Document is the parsed form of ServiceBlueprint.Document.
type Document struct {
	Identity   Identity   `json:"identity" validate:"required"`
	Pricing    Pricing    `json:"pricing"`
	Assessment Assessment `json:"assessment"`
	Scoring    *Scoring   `json:"scoring,omitempty"`
}

type Identity struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type Pricing struct {
	Tiers            []Tier `json:"tiers" validate:"dive"`
	DefaultTierIndex int    `json:"defaultTierIndex"`
}

type Tier struct {
	Name         string    `json:"name" validate:"required"`
	Tagline      string    `json:"tagline"`
	PricingModel string    `json:"pricingModel"`
	Price        float64   `json:"price"`
	PriceRange   []float64 `json:"priceRange,omitempty"`
	Period       string    `json:"period"`
}

type Assessment struct {
	Sections []Section `json:"sections" validate:"dive"`
}

type Section struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions" validate:"dive"`
}

type Question struct {
	Key         string   `json:"id" validate:"required"`
	Text        string   `json:"text" validate:"required"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required"`
	AIAnchor    string   `json:"aiAnchor,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	CharLimit   int      `json:"charLimit,omitempty"`
}

type Scoring struct {
	ChoiceTriggers []ChoiceTrigger `json:"choiceTriggers" validate:"dive"`
}

type ChoiceTrigger struct {
	QuestionKey string `json:"questionId" validate:"required"`
	AnswerValue string `json:"answerValue" validate:"required"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

var validate = validator.New()

// ParseDocument decodes and validates a stored blueprint document. It is the
// only gate between authored content and the live tables, so structural
// defects (colliding tier keys, dangling default tier index) fail here before
// any write happens.
func ParseDocument(raw datatypes.JSON) (*Document, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("blueprint document is empty")
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode blueprint document: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("validate blueprint document: %w", err)
	}
	if err := doc.check(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) check() error {
	tiers := d.Pricing.Tiers
	if len(tiers) > 0 {
		if d.Pricing.DefaultTierIndex < 0 || d.Pricing.DefaultTierIndex >= len(tiers) {
			return fmt.Errorf("default tier index %d out of range (have %d tiers)", d.Pricing.DefaultTierIndex, len(tiers))
		}
		seen := make(map[string]string, len(tiers))
		for _, t := range tiers {
			key := TierKey(t.Name)
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("tiers %q and %q collide on key %q", prev, t.Name, key)
			}
			seen[key] = t.Name
		}
	}
	return nil
}

// DefaultTier returns the tier the headline price derives from, or nil when
// the blueprint carries no tiers.
func (d *Document) DefaultTier() *Tier {
	if len(d.Pricing.Tiers) == 0 {
		return nil
	}
	idx := d.Pricing.DefaultTierIndex
	if idx < 0 || idx >= len(d.Pricing.Tiers) {
		idx = 0
	}
	return &d.Pricing.Tiers[idx]
}

// TierKey derives the stable business key for a tier from its display name:
// lower-cased, whitespace collapsed to underscores.
func TierKey(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "_")
}
