package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/domain/blueprint"
	"github.com/advisorly/advisorly-backend/internal/domain/catalog"
)

// normalizeFrequency maps blueprint billing periods onto the catalogue's
// fixed set; anything unrecognized bills once.
func normalizeFrequency(period string) string {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "monthly", "month", "mo", "per_month":
		return catalog.FrequencyMonthly
	case "annual", "annually", "yearly", "year", "per_year":
		return catalog.FrequencyAnnual
	case "quarterly", "quarter", "per_quarter":
		return catalog.FrequencyQuarterly
	default:
		return catalog.FrequencyOneTime
	}
}

// headlinePrice derives the catalogue's headline from the default tier:
// the tier price, else the low end of its range, else 0 with a "TBD"
// display. A missing price is degraded behavior, never an error.
func headlinePrice(doc *blueprint.Document) (amount float64, display string, period string) {
	tier := doc.DefaultTier()
	if tier == nil {
		return 0, catalog.PriceDisplayTBD, ""
	}
	amount = tier.Price
	if amount == 0 && len(tier.PriceRange) > 0 {
		amount = tier.PriceRange[0]
	}
	period = normalizeFrequency(tier.Period)
	if amount == 0 {
		return 0, catalog.PriceDisplayTBD, period
	}
	return amount, formatPrice(amount), period
}

func formatPrice(amount float64) string {
	return fmt.Sprintf("$%s", strconv.FormatFloat(amount, 'f', -1, 64))
}

// buildTierRows converts blueprint tiers into child rows for the pricing
// parent, assigning 1-based display order by list position.
func buildTierRows(parentID uuid.UUID, doc *blueprint.Document) []*types.PracticeServiceTier {
	tiers := doc.Pricing.Tiers
	if len(tiers) == 0 {
		return nil
	}
	defaultIdx := doc.Pricing.DefaultTierIndex
	if defaultIdx < 0 || defaultIdx >= len(tiers) {
		defaultIdx = 0
	}

	rows := make([]*types.PracticeServiceTier, 0, len(tiers))
	for i, t := range tiers {
		amount := t.Price
		var rangeLow, rangeHigh *float64
		if len(t.PriceRange) > 0 {
			low := t.PriceRange[0]
			high := t.PriceRange[len(t.PriceRange)-1]
			rangeLow, rangeHigh = &low, &high
			if amount == 0 {
				amount = low
			}
		}
		rows = append(rows, &types.PracticeServiceTier{
			ID:                uuid.New(),
			PracticeServiceID: parentID,
			TierKey:           blueprint.TierKey(t.Name),
			Name:              t.Name,
			Tagline:           t.Tagline,
			PricingModel:      t.PricingModel,
			PriceAmount:       amount,
			RangeLow:          rangeLow,
			RangeHigh:         rangeHigh,
			Frequency:         normalizeFrequency(t.Period),
			DisplayOrder:      i + 1,
			IsDefault:         i == defaultIdx,
		})
	}
	return rows
}
