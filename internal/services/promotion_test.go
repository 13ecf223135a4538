package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	blueprintrepo "github.com/advisorly/advisorly-backend/internal/data/repos/blueprint"
	catalogrepo "github.com/advisorly/advisorly-backend/internal/data/repos/catalog"
	"github.com/advisorly/advisorly-backend/internal/data/repos/testutil"
	types "github.com/advisorly/advisorly-backend/internal/domain"
	"github.com/advisorly/advisorly-backend/internal/domain/blueprint"
	"github.com/advisorly/advisorly-backend/internal/platform/apierr"
)

func newTestPromotionService(tb testing.TB, tx *gorm.DB) PromotionService {
	tb.Helper()
	logg := testutil.Logger(tb)
	return NewPromotionService(
		tx,
		logg,
		blueprintrepo.NewServiceBlueprintRepo(tx, logg),
		blueprintrepo.NewServiceConceptRepo(tx, logg),
		catalogrepo.NewServiceRepo(tx, logg),
		catalogrepo.NewPracticeServiceRepo(tx, logg),
		catalogrepo.NewPracticeServiceTierRepo(tx, logg),
		catalogrepo.NewAssessmentQuestionRepo(tx, logg),
		catalogrepo.NewScoringWeightRepo(tx, logg),
	)
}

const auditProDoc = `{
	"identity": {
		"code": "AUDIT_PRO",
		"name": "Professional Audit",
		"category": "assurance",
		"description": "Annual audit engagement"
	},
	"pricing": {
		"tiers": [
			{"name": "Standard", "tagline": "Core audit", "pricingModel": "fixed", "price": 500, "period": "monthly"}
		],
		"defaultTierIndex": 0
	},
	"assessment": {
		"sections": [
			{"name": "Company", "questions": [
				{"id": "audit_entity_type", "text": "What type of entity are you?", "type": "single_choice", "options": ["llc", "corp"], "required": true},
				{"id": "audit_revenue", "text": "Annual revenue?", "type": "number", "required": true}
			]},
			{"name": "History", "questions": [
				{"id": "audit_prior", "text": "Have you been audited before?", "type": "single_choice", "options": ["yes", "no"], "required": false}
			]}
		]
	},
	"scoring": {
		"choiceTriggers": [
			{"questionId": "audit_entity_type", "answerValue": "corp", "points": 10, "description": "Corporations need assurance work"},
			{"questionId": "audit_prior", "answerValue": "no", "points": 5, "description": "First audit is heavier"}
		]
	}
}`

const threeTierDoc = `{
	"identity": {"code": "AUDIT_PRO", "name": "Professional Audit", "category": "assurance"},
	"pricing": {
		"tiers": [
			{"name": "Starter", "price": 250, "period": "monthly"},
			{"name": "Standard Plus", "price": 600, "period": "monthly"},
			{"name": "Enterprise", "priceRange": [1000, 2500], "period": "annual"}
		],
		"defaultTierIndex": 1
	},
	"assessment": {"sections": [
		{"name": "Company", "questions": [
			{"id": "audit_entity_type", "text": "What type of entity are you?", "type": "single_choice", "options": ["llc", "corp"], "required": true}
		]}
	]}
}`

const tierlessDoc = `{
	"identity": {"code": "BOOKKEEPING_LITE", "name": "Bookkeeping Lite"},
	"pricing": {"tiers": []},
	"assessment": {"sections": []}
}`

func approveBlueprint(tb testing.TB, tx *gorm.DB, id uuid.UUID, document string) {
	tb.Helper()
	updates := map[string]interface{}{"status": blueprint.StatusApproved}
	if document != "" {
		updates["document"] = document
	}
	if err := tx.Model(&types.ServiceBlueprint{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		tb.Fatalf("approve blueprint: %v", err)
	}
}

func TestPromoteImplementsBlueprint(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")
	concept := testutil.SeedServiceConcept(t, ctx, tx, practice.ID)
	bp := testutil.SeedServiceBlueprint(t, ctx, tx, practice.ID, blueprint.StatusApproved, auditProDoc)
	if err := tx.Model(&types.ServiceBlueprint{}).Where("id = ?", bp.ID).
		Update("source_concept_id", concept.ID).Error; err != nil {
		t.Fatalf("link concept: %v", err)
	}

	result, err := svc.Promote(ctx, bp.ID, practice.ID)
	if err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if result.ServiceCode != "AUDIT_PRO" {
		t.Fatalf("service code = %q, want AUDIT_PRO", result.ServiceCode)
	}
	if !strings.Contains(result.Message, "AUDIT_PRO") || !strings.Contains(result.Message, "manually") {
		t.Fatalf("unexpected message: %q", result.Message)
	}

	var catalogRow types.Service
	if err := tx.Where("code = ?", "AUDIT_PRO").First(&catalogRow).Error; err != nil {
		t.Fatalf("load service: %v", err)
	}
	if catalogRow.Status != "active" || catalogRow.PriceAmount != 500 || catalogRow.PricePeriod != "monthly" {
		t.Fatalf("service row = status %q amount %v period %q", catalogRow.Status, catalogRow.PriceAmount, catalogRow.PricePeriod)
	}
	if catalogRow.PriceDisplay != "$500" {
		t.Fatalf("price display = %q, want $500", catalogRow.PriceDisplay)
	}

	var parent types.PracticeService
	if err := tx.Where("practice_id = ? AND service_code = ?", practice.ID, "AUDIT_PRO").First(&parent).Error; err != nil {
		t.Fatalf("load practice service: %v", err)
	}
	var tiers []types.PracticeServiceTier
	if err := tx.Where("practice_service_id = ?", parent.ID).Order("display_order ASC").Find(&tiers).Error; err != nil {
		t.Fatalf("load tiers: %v", err)
	}
	if len(tiers) != 1 {
		t.Fatalf("tier count = %d, want 1", len(tiers))
	}
	tier := tiers[0]
	if tier.TierKey != "standard" || tier.Frequency != "monthly" || tier.DisplayOrder != 1 || !tier.IsDefault {
		t.Fatalf("tier = key %q frequency %q order %d default %v", tier.TierKey, tier.Frequency, tier.DisplayOrder, tier.IsDefault)
	}

	var questions []types.AssessmentQuestion
	if err := tx.Where("service_code = ?", "AUDIT_PRO").Order("display_order ASC").Find(&questions).Error; err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("question count = %d, want 3", len(questions))
	}
	for i, q := range questions {
		if q.DisplayOrder != i+1 {
			t.Fatalf("question %s display_order = %d, want %d", q.QuestionKey, q.DisplayOrder, i+1)
		}
	}
	if questions[2].QuestionKey != "audit_prior" || questions[2].Section != "History" {
		t.Fatalf("cross-section ordering broken: %+v", questions[2])
	}

	var weightCount int64
	if err := tx.Model(&types.ScoringWeight{}).Where("service_code = ?", "AUDIT_PRO").Count(&weightCount).Error; err != nil {
		t.Fatalf("count weights: %v", err)
	}
	if weightCount != 2 {
		t.Fatalf("weight count = %d, want 2", weightCount)
	}

	var after types.ServiceBlueprint
	if err := tx.Where("id = ?", bp.ID).First(&after).Error; err != nil {
		t.Fatalf("reload blueprint: %v", err)
	}
	if after.Status != blueprint.StatusImplemented || after.ImplementedAt == nil {
		t.Fatalf("blueprint = status %q implemented_at %v", after.Status, after.ImplementedAt)
	}

	var conceptAfter types.ServiceConcept
	if err := tx.Where("id = ?", concept.ID).First(&conceptAfter).Error; err != nil {
		t.Fatalf("reload concept: %v", err)
	}
	if conceptAfter.ReviewStatus != blueprint.ReviewStatusImplemented {
		t.Fatalf("concept review status = %q, want implemented", conceptAfter.ReviewStatus)
	}
}

func TestPromoteNotFound(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")

	_, err := svc.Promote(ctx, uuid.New(), practice.ID)
	if err == nil {
		t.Fatal("expected error for missing blueprint")
	}
	if apierr.StatusOf(err) != 404 {
		t.Fatalf("status = %d, want 404", apierr.StatusOf(err))
	}
	if !strings.Contains(err.Error(), "not found or access denied") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPromoteDeniesOtherPractice(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	owner := testutil.SeedPractice(t, ctx, tx, "Owner Advisory")
	other := testutil.SeedPractice(t, ctx, tx, "Other Advisory")
	bp := testutil.SeedServiceBlueprint(t, ctx, tx, owner.ID, blueprint.StatusApproved, auditProDoc)

	_, err := svc.Promote(ctx, bp.ID, other.ID)
	if apierr.StatusOf(err) != 404 {
		t.Fatalf("status = %d, want 404 (err %v)", apierr.StatusOf(err), err)
	}

	var after types.ServiceBlueprint
	if err := tx.Where("id = ?", bp.ID).First(&after).Error; err != nil {
		t.Fatalf("reload blueprint: %v", err)
	}
	if after.Status != blueprint.StatusApproved {
		t.Fatalf("blueprint status = %q, want approved", after.Status)
	}
}

func TestPromoteRequiresApprovedStatus(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")

	for _, status := range []string{
		blueprint.StatusDraft,
		blueprint.StatusPending,
		blueprint.StatusPromoting,
		blueprint.StatusImplemented,
		blueprint.StatusRejected,
	} {
		bp := testutil.SeedServiceBlueprint(t, ctx, tx, practice.ID, status, auditProDoc)
		_, err := svc.Promote(ctx, bp.ID, practice.ID)
		if apierr.StatusOf(err) != 400 {
			t.Fatalf("status %q: http status = %d, want 400 (err %v)", status, apierr.StatusOf(err), err)
		}
		if !strings.Contains(err.Error(), "approved status") {
			t.Fatalf("status %q: unexpected error: %v", status, err)
		}
	}

	var count int64
	if err := tx.Model(&types.Service{}).Where("code = ?", "AUDIT_PRO").Count(&count).Error; err != nil {
		t.Fatalf("count services: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected promotions wrote %d catalogue rows", count)
	}
}

func TestPromoteMalformedDocumentReleasesGate(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")
	bp := testutil.SeedServiceBlueprint(t, ctx, tx, practice.ID, blueprint.StatusApproved, `{"identity": {"name": "missing code"}}`)

	_, err := svc.Promote(ctx, bp.ID, practice.ID)
	if apierr.StatusOf(err) != 400 {
		t.Fatalf("status = %d, want 400 (err %v)", apierr.StatusOf(err), err)
	}

	var after types.ServiceBlueprint
	if err := tx.Where("id = ?", bp.ID).First(&after).Error; err != nil {
		t.Fatalf("reload blueprint: %v", err)
	}
	if after.Status != blueprint.StatusApproved {
		t.Fatalf("blueprint status = %q, want approved after failed promotion", after.Status)
	}
}

func TestPromoteReplacesTiers(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")
	bp := testutil.SeedServiceBlueprint(t, ctx, tx, practice.ID, blueprint.StatusApproved, auditProDoc)

	if _, err := svc.Promote(ctx, bp.ID, practice.ID); err != nil {
		t.Fatalf("first Promote: %v", err)
	}

	approveBlueprint(t, tx, bp.ID, threeTierDoc)
	if _, err := svc.Promote(ctx, bp.ID, practice.ID); err != nil {
		t.Fatalf("second Promote: %v", err)
	}

	var parent types.PracticeService
	if err := tx.Where("practice_id = ? AND service_code = ?", practice.ID, "AUDIT_PRO").First(&parent).Error; err != nil {
		t.Fatalf("load practice service: %v", err)
	}
	var tiers []types.PracticeServiceTier
	if err := tx.Where("practice_service_id = ?", parent.ID).Order("display_order ASC").Find(&tiers).Error; err != nil {
		t.Fatalf("load tiers: %v", err)
	}
	if len(tiers) != 3 {
		t.Fatalf("tier count = %d, want exactly the new tier set", len(tiers))
	}
	wantKeys := []string{"starter", "standard_plus", "enterprise"}
	for i, tier := range tiers {
		if tier.TierKey != wantKeys[i] || tier.DisplayOrder != i+1 {
			t.Fatalf("tier %d = key %q order %d, want key %q order %d", i, tier.TierKey, tier.DisplayOrder, wantKeys[i], i+1)
		}
	}
	if tiers[0].IsDefault || !tiers[1].IsDefault || tiers[2].IsDefault {
		t.Fatalf("default flags = %v %v %v, want only standard_plus", tiers[0].IsDefault, tiers[1].IsDefault, tiers[2].IsDefault)
	}
	if tiers[2].PriceAmount != 1000 || tiers[2].RangeLow == nil || *tiers[2].RangeLow != 1000 || tiers[2].RangeHigh == nil || *tiers[2].RangeHigh != 2500 {
		t.Fatalf("range tier = amount %v low %v high %v", tiers[2].PriceAmount, tiers[2].RangeLow, tiers[2].RangeHigh)
	}

	// Pricing parent is upserted, never duplicated.
	var parentCount int64
	if err := tx.Model(&types.PracticeService{}).Where("practice_id = ? AND service_code = ?", practice.ID, "AUDIT_PRO").Count(&parentCount).Error; err != nil {
		t.Fatalf("count parents: %v", err)
	}
	if parentCount != 1 {
		t.Fatalf("parent count = %d, want 1", parentCount)
	}

	var catalogRow types.Service
	if err := tx.Where("code = ?", "AUDIT_PRO").First(&catalogRow).Error; err != nil {
		t.Fatalf("load service: %v", err)
	}
	if catalogRow.PriceAmount != 600 {
		t.Fatalf("headline price = %v, want 600 from new default tier", catalogRow.PriceAmount)
	}
}

func TestPromoteKeepsRetiredQuestions(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")
	bp := testutil.SeedServiceBlueprint(t, ctx, tx, practice.ID, blueprint.StatusApproved, auditProDoc)

	if _, err := svc.Promote(ctx, bp.ID, practice.ID); err != nil {
		t.Fatalf("first Promote: %v", err)
	}

	// The revised blueprint drops two of the three questions and all weights.
	approveBlueprint(t, tx, bp.ID, threeTierDoc)
	if _, err := svc.Promote(ctx, bp.ID, practice.ID); err != nil {
		t.Fatalf("second Promote: %v", err)
	}

	var questionCount int64
	if err := tx.Model(&types.AssessmentQuestion{}).Where("service_code = ?", "AUDIT_PRO").Count(&questionCount).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if questionCount != 3 {
		t.Fatalf("question count = %d, want 3 (dropped questions are retained)", questionCount)
	}

	var weightCount int64
	if err := tx.Model(&types.ScoringWeight{}).Where("service_code = ?", "AUDIT_PRO").Count(&weightCount).Error; err != nil {
		t.Fatalf("count weights: %v", err)
	}
	if weightCount != 2 {
		t.Fatalf("weight count = %d, want 2 (weights are additive-only)", weightCount)
	}
}

func TestPromoteTierlessBlueprint(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")
	bp := testutil.SeedServiceBlueprint(t, ctx, tx, practice.ID, blueprint.StatusApproved, tierlessDoc)

	if _, err := svc.Promote(ctx, bp.ID, practice.ID); err != nil {
		t.Fatalf("Promote: %v", err)
	}

	var catalogRow types.Service
	if err := tx.Where("code = ?", "BOOKKEEPING_LITE").First(&catalogRow).Error; err != nil {
		t.Fatalf("load service: %v", err)
	}
	if catalogRow.PriceAmount != 0 || catalogRow.PriceDisplay != "TBD" {
		t.Fatalf("tierless headline = amount %v display %q, want 0 / TBD", catalogRow.PriceAmount, catalogRow.PriceDisplay)
	}

	var parent types.PracticeService
	if err := tx.Where("practice_id = ? AND service_code = ?", practice.ID, "BOOKKEEPING_LITE").First(&parent).Error; err != nil {
		t.Fatalf("load practice service: %v", err)
	}
	var tierCount int64
	if err := tx.Model(&types.PracticeServiceTier{}).Where("practice_service_id = ?", parent.ID).Count(&tierCount).Error; err != nil {
		t.Fatalf("count tiers: %v", err)
	}
	if tierCount != 0 {
		t.Fatalf("tier count = %d, want 0", tierCount)
	}
}

func TestStatusReportsBlueprint(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestPromotionService(t, tx)

	practice := testutil.SeedPractice(t, ctx, tx, "Harbor Advisory")
	bp := testutil.SeedServiceBlueprint(t, ctx, tx, practice.ID, blueprint.StatusApproved, auditProDoc)

	got, err := svc.Status(ctx, bp.ID, practice.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got.Status != blueprint.StatusApproved || got.ImplementedAt != nil {
		t.Fatalf("status = %+v, want approved with nil implemented_at", got)
	}

	if _, err := svc.Promote(ctx, bp.ID, practice.ID); err != nil {
		t.Fatalf("Promote: %v", err)
	}

	got, err = svc.Status(ctx, bp.ID, practice.ID)
	if err != nil {
		t.Fatalf("Status after promote: %v", err)
	}
	if got.Status != blueprint.StatusImplemented || got.ImplementedAt == nil {
		t.Fatalf("status = %+v, want implemented with timestamp", got)
	}

	if _, err := svc.Status(ctx, uuid.New(), practice.ID); apierr.StatusOf(err) != 404 {
		t.Fatalf("missing blueprint status = %d, want 404", apierr.StatusOf(err))
	}
}
