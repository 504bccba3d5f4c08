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

type PasswordResetRequestRepo interface {
	Replace(ctx context.Context, tx *gorm.DB, email, resetCode string) error
	GetByEmailAndCode(ctx context.Context, tx *gorm.DB, email, resetCode string) (*types.PasswordResetRequest, error)
	DeleteByEmail(ctx context.Context, tx *gorm.DB, email string) error
}

type passwordResetRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPasswordResetRequestRepo(db *gorm.DB, baseLog *logger.Logger) PasswordResetRequestRepo {
	repoLog := baseLog.With("repo", "PasswordResetRequestRepo")
	return &passwordResetRequestRepo{db: db, log: repoLog}
}

func (prr *passwordResetRequestRepo) Replace(ctx context.Context, tx *gorm.DB, email, resetCode string) error {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}

	row := &types.PasswordResetRequest{
		ID:        uuid.New(),
		Email:     email,
		ResetCode: resetCode,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"reset_code", "updated_at"}),
		}).
		Create(row).Error
}

func (prr *passwordResetRequestRepo) GetByEmailAndCode(ctx context.Context, tx *gorm.DB, email, resetCode string) (*types.PasswordResetRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}

	var result types.PasswordResetRequest
	err := transaction.WithContext(ctx).
		Where("email = ? AND reset_code = ?", email, resetCode).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (prr *passwordResetRequestRepo) DeleteByEmail(ctx context.Context, tx *gorm.DB, email string) error {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}

	return transaction.WithContext(ctx).
		Where("email = ?", email).
		Delete(&types.PasswordResetRequest{}).Error
}
