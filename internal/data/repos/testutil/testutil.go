package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/skillgraph-backend/internal/data/db"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

var (
	dbOnce  sync.Once
	testDB  *gorm.DB
	dbErr   error
	dbSkip  string
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

// DB returns a migrated database shared by the package's tests: Postgres when
// TEST_POSTGRES_DSN is set, otherwise an in-memory SQLite database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		}
		var err error
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			testDB, err = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
			if err == nil {
				err = pingSQLite(testDB)
			}
			if err != nil {
				// go-sqlite3 needs cgo; without it the fallback is unavailable.
				dbSkip = "sqlite unavailable (" + err.Error() + "); set TEST_POSTGRES_DSN to run repo tests"
				return
			}
		}
		if err != nil {
			dbErr = err
			return
		}
		dbErr = db.AutoMigrateAll(testDB)
	})

	if dbSkip != "" {
		tb.Skip(dbSkip)
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return testDB
}

func pingSQLite(g *gorm.DB) error {
	sqlDB, err := g.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
