package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/advisorly/advisorly-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Tenancy
		&types.Practice{},

		// Blueprint workflow
		&types.ServiceConcept{},
		&types.ServiceBlueprint{},

		// Live catalogue + pricing
		&types.Service{},
		&types.PracticeService{},
		&types.PracticeServiceTier{},

		// Intake + scoring
		&types.AssessmentQuestion{},
		&types.ScoringWeight{},
	)
}

// EnsureCatalogIndexes re-asserts the unique indexes every promotion upsert
// targets with ON CONFLICT. AutoMigrate creates them from the model tags; the
// raw statements keep databases that predate a tag change honest.
func EnsureCatalogIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_service_code ON service(code);`).Error; err != nil {
		return fmt.Errorf("create idx_service_code: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_practice_service_code
		ON practice_service(practice_id, service_code);
	`).Error; err != nil {
		return fmt.Errorf("create idx_practice_service_code: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_assessment_question_key
		ON assessment_question(service_code, question_key);
	`).Error; err != nil {
		return fmt.Errorf("create idx_assessment_question_key: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_scoring_weight_key
		ON scoring_weight(question_key, answer_value, service_code);
	`).Error; err != nil {
		return fmt.Errorf("create idx_scoring_weight_key: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_practice_service_tier_parent_order
		ON practice_service_tier(practice_service_id, display_order);
	`).Error; err != nil {
		return fmt.Errorf("create idx_practice_service_tier_parent_order: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureCatalogIndexes(s.db); err != nil {
		s.log.Error("Catalog index migration failed", "error", err)
		return err
	}
	return nil
}
