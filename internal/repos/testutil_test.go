package repos

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/types"
)

var testDBSeq atomic.Int64

// setupTestDB opens an isolated in-memory database. cache=shared keeps the
// pooled connections of one gorm.DB pointed at the same database; the unique
// name keeps tests isolated from each other.
func setupTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.AccountRequest{},
		&types.PasswordResetRequest{},
		&types.StockAssessment{},
		&types.ScoreSnapshot{},
		&types.RatingSnapshot{},
		&types.UserStockPreference{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return db, log
}
