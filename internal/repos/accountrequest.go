package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/types"
)

type AccountRequestRepo interface {
	Replace(ctx context.Context, tx *gorm.DB, email, verificationCode string) error
	GetByEmailAndCode(ctx context.Context, tx *gorm.DB, email, verificationCode string) (*types.AccountRequest, error)
	DeleteByEmail(ctx context.Context, tx *gorm.DB, email string) error
}

type accountRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRequestRepo(db *gorm.DB, baseLog *logger.Logger) AccountRequestRepo {
	repoLog := baseLog.With("repo", "AccountRequestRepo")
	return &accountRequestRepo{db: db, log: repoLog}
}

// Replace upserts the pending request for an email, overwriting any earlier
// code so only the most recently mailed one is valid.
func (arr *accountRequestRepo) Replace(ctx context.Context, tx *gorm.DB, email, verificationCode string) error {
	transaction := tx
	if transaction == nil {
		transaction = arr.db
	}

	row := &types.AccountRequest{
		ID:               uuid.New(),
		Email:            email,
		VerificationCode: verificationCode,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"verification_code", "updated_at"}),
		}).
		Create(row).Error
}

func (arr *accountRequestRepo) GetByEmailAndCode(ctx context.Context, tx *gorm.DB, email, verificationCode string) (*types.AccountRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = arr.db
	}

	var result types.AccountRequest
	err := transaction.WithContext(ctx).
		Where("email = ? AND verification_code = ?", email, verificationCode).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (arr *accountRequestRepo) DeleteByEmail(ctx context.Context, tx *gorm.DB, email string) error {
	transaction := tx
	if transaction == nil {
		transaction = arr.db
	}

	return transaction.WithContext(ctx).
		Where("email = ?", email).
		Delete(&types.AccountRequest{}).Error
}
