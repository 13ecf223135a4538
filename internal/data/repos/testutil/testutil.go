package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/advisorly/advisorly-backend/internal/data/db"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

var (
	dbOnce sync.Once
	gdb    *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns the shared test database: Postgres when TEST_POSTGRES_DSN is
// set, otherwise an in-memory sqlite database so the suite runs without
// external services.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		}

		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			gdb, dbErr = gorm.Open(postgres.Open(dsn), cfg)
			if dbErr != nil {
				return
			}
			if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
				dbErr = err
				return
			}
		} else {
			gdb, dbErr = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
			if dbErr != nil {
				return
			}
		}

		if err := db.AutoMigrateAll(gdb); err != nil {
			dbErr = err
			return
		}
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return gdb
}

// Tx opens a transaction that rolls back when the test finishes, keeping the
// shared database clean between tests.
func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
