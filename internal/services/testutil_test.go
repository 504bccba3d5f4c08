package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/types"
)

var testDBSeq atomic.Int64

func setupTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
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

// fakeMailer records the codes the auth flows would have emailed.
type fakeMailer struct {
	lastEmail string
	lastCode  string
	sendErr   error
}

func (fm *fakeMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	fm.lastEmail = email
	fm.lastCode = code
	return fm.sendErr
}

func (fm *fakeMailer) SendPasswordResetCode(ctx context.Context, email, code string) error {
	fm.lastEmail = email
	fm.lastCode = code
	return fm.sendErr
}
