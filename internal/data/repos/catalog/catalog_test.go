package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/advisorly/advisorly-backend/internal/data/repos/testutil"
	types "github.com/advisorly/advisorly-backend/internal/domain"
)

func TestServiceUpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewServiceRepo(tx, testutil.Logger(t))

	first := &types.Service{
		ID:           uuid.New(),
		Code:         "AUDIT_PRO",
		Name:         "Professional Audit",
		Category:     "assurance",
		Status:       "active",
		PriceAmount:  500,
		PriceDisplay: "$500",
		PricePeriod:  "monthly",
	}
	if err := repo.Upsert(ctx, tx, first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second := &types.Service{
		ID:           uuid.New(),
		Code:         "AUDIT_PRO",
		Name:         "Professional Audit v2",
		Category:     "assurance",
		Status:       "active",
		PriceAmount:  650,
		PriceDisplay: "$650",
		PricePeriod:  "monthly",
	}
	if err := repo.Upsert(ctx, tx, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	var count int64
	if err := tx.Model(&types.Service{}).Where("code = ?", "AUDIT_PRO").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("row count = %d, want 1", count)
	}

	var row types.Service
	if err := tx.Where("code = ?", "AUDIT_PRO").First(&row).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.ID != first.ID {
		t.Fatalf("id changed on conflict: %v -> %v", first.ID, row.ID)
	}
	if row.Name != "Professional Audit v2" || row.PriceAmount != 650 {
		t.Fatalf("row not refreshed: %+v", row)
	}
}

func TestPracticeServiceUpsertReturnsCanonicalRow(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewPracticeServiceRepo(tx, testutil.Logger(t))

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")

	first, err := repo.Upsert(ctx, tx, &types.PracticeService{
		ID:          uuid.New(),
		PracticeID:  practice.ID,
		ServiceCode: "AUDIT_PRO",
		Status:      "active",
	})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, tx, &types.PracticeService{
		ID:          uuid.New(),
		PracticeID:  practice.ID,
		ServiceCode: "AUDIT_PRO",
		Status:      "active",
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("conflicting upsert returned new id: %v -> %v", first.ID, second.ID)
	}

	var count int64
	if err := tx.Model(&types.PracticeService{}).Where("practice_id = ?", practice.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("row count = %d, want 1", count)
	}
}

func TestPracticeServiceTierReplaceForParent(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewPracticeServiceTierRepo(tx, testutil.Logger(t))

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")
	parentRepo := NewPracticeServiceRepo(tx, testutil.Logger(t))
	parent, err := parentRepo.Upsert(ctx, tx, &types.PracticeService{
		ID:          uuid.New(),
		PracticeID:  practice.ID,
		ServiceCode: "AUDIT_PRO",
		Status:      "active",
	})
	if err != nil {
		t.Fatalf("seed parent: %v", err)
	}

	makeTier := func(key string, order int) *types.PracticeServiceTier {
		return &types.PracticeServiceTier{
			ID:                uuid.New(),
			PracticeServiceID: parent.ID,
			TierKey:           key,
			Name:              key,
			PriceAmount:       100,
			Frequency:         "monthly",
			DisplayOrder:      order,
		}
	}

	if err := repo.ReplaceForParent(ctx, tx, parent.ID, []*types.PracticeServiceTier{
		makeTier("basic", 1),
		makeTier("premium", 2),
	}); err != nil {
		t.Fatalf("first ReplaceForParent: %v", err)
	}

	if err := repo.ReplaceForParent(ctx, tx, parent.ID, []*types.PracticeServiceTier{
		makeTier("starter", 1),
		makeTier("growth", 2),
		makeTier("enterprise", 3),
	}); err != nil {
		t.Fatalf("second ReplaceForParent: %v", err)
	}

	rows, err := repo.GetByParentID(ctx, tx, parent.ID)
	if err != nil {
		t.Fatalf("GetByParentID: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("tier count = %d, want 3", len(rows))
	}
	for i, row := range rows {
		if row.DisplayOrder != i+1 {
			t.Fatalf("row %d display_order = %d", i, row.DisplayOrder)
		}
	}
	if rows[0].TierKey != "starter" || rows[2].TierKey != "enterprise" {
		t.Fatalf("stale tiers survived replace: %+v", rows)
	}

	// An empty tier set clears the parent.
	if err := repo.ReplaceForParent(ctx, tx, parent.ID, nil); err != nil {
		t.Fatalf("empty ReplaceForParent: %v", err)
	}
	rows, err = repo.GetByParentID(ctx, tx, parent.ID)
	if err != nil {
		t.Fatalf("GetByParentID after clear: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("tier count = %d, want 0", len(rows))
	}
}

func TestAssessmentQuestionUpsertManyIsAdditive(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewAssessmentQuestionRepo(tx, testutil.Logger(t))

	makeQuestion := func(key, prompt string, order int) *types.AssessmentQuestion {
		return &types.AssessmentQuestion{
			ID:           uuid.New(),
			ServiceCode:  "AUDIT_PRO",
			QuestionKey:  key,
			Section:      "Company",
			Prompt:       prompt,
			QuestionType: "text",
			DisplayOrder: order,
		}
	}

	if err := repo.UpsertMany(ctx, tx, []*types.AssessmentQuestion{
		makeQuestion("q_entity", "Entity type?", 1),
		makeQuestion("q_revenue", "Annual revenue?", 2),
	}); err != nil {
		t.Fatalf("first UpsertMany: %v", err)
	}

	// Second sync drops q_revenue and rewords q_entity.
	if err := repo.UpsertMany(ctx, tx, []*types.AssessmentQuestion{
		makeQuestion("q_entity", "What kind of entity are you?", 1),
	}); err != nil {
		t.Fatalf("second UpsertMany: %v", err)
	}

	rows, err := repo.GetByServiceCode(ctx, tx, "AUDIT_PRO")
	if err != nil {
		t.Fatalf("GetByServiceCode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("question count = %d, want 2 (dropped questions remain)", len(rows))
	}
	byKey := map[string]*types.AssessmentQuestion{}
	for _, row := range rows {
		byKey[row.QuestionKey] = row
	}
	if byKey["q_entity"].Prompt != "What kind of entity are you?" {
		t.Fatalf("q_entity not refreshed: %+v", byKey["q_entity"])
	}
	if byKey["q_revenue"] == nil {
		t.Fatal("q_revenue was deleted")
	}
}

func TestScoringWeightUpsertManyIsAdditive(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewScoringWeightRepo(tx, testutil.Logger(t))

	makeWeight := func(key, answer string, points int) *types.ScoringWeight {
		return &types.ScoringWeight{
			ID:          uuid.New(),
			QuestionKey: key,
			AnswerValue: answer,
			ServiceCode: "AUDIT_PRO",
			Points:      points,
		}
	}

	if err := repo.UpsertMany(ctx, tx, []*types.ScoringWeight{
		makeWeight("q_entity", "corp", 10),
		makeWeight("q_entity", "llc", 5),
	}); err != nil {
		t.Fatalf("first UpsertMany: %v", err)
	}

	if err := repo.UpsertMany(ctx, tx, []*types.ScoringWeight{
		makeWeight("q_entity", "corp", 15),
	}); err != nil {
		t.Fatalf("second UpsertMany: %v", err)
	}

	rows, err := repo.GetByServiceCode(ctx, tx, "AUDIT_PRO")
	if err != nil {
		t.Fatalf("GetByServiceCode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("weight count = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.AnswerValue == "corp" && row.Points != 15 {
			t.Fatalf("corp weight not refreshed: %+v", row)
		}
		if row.AnswerValue == "llc" && row.Points != 5 {
			t.Fatalf("llc weight lost: %+v", row)
		}
	}

	// No rows is a no-op, not an error.
	if err := repo.UpsertMany(ctx, tx, nil); err != nil {
		t.Fatalf("empty UpsertMany: %v", err)
	}
}
