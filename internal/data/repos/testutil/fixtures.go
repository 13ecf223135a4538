package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/advisorly/advisorly-backend/internal/domain"
)

func SeedPractice(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Practice {
	tb.Helper()
	p := &types.Practice{
		ID:     uuid.New(),
		Name:   name,
		Status: "active",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed practice: %v", err)
	}
	return p
}

func SeedServiceConcept(tb testing.TB, ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) *types.ServiceConcept {
	tb.Helper()
	c := &types.ServiceConcept{
		ID:           uuid.New(),
		PracticeID:   practiceID,
		Title:        "concept",
		ReviewStatus: "approved",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed service concept: %v", err)
	}
	return c
}

func SeedServiceBlueprint(tb testing.TB, ctx context.Context, tx *gorm.DB, practiceID uuid.UUID, status string, document string) *types.ServiceBlueprint {
	tb.Helper()
	doc := document
	if doc == "" {
		doc = "{}"
	}
	b := &types.ServiceBlueprint{
		ID:         uuid.New(),
		PracticeID: practiceID,
		Title:      "blueprint",
		Status:     status,
		Document:   datatypes.JSON([]byte(doc)),
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed service blueprint: %v", err)
	}
	return b
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrFloat(v float64) *float64 { return &v }
