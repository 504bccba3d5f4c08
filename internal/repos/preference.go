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

// StatusCount is one row of the per-status aggregation.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PreferenceRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID, symbol string) (*types.UserStockPreference, error)
	Upsert(ctx context.Context, tx *gorm.DB, pref *types.UserStockPreference, columns []string) (*types.UserStockPreference, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, statuses []string) ([]StatusCount, error)
	SymbolsByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]string, error)
}

type preferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) PreferenceRepo {
	repoLog := baseLog.With("repo", "PreferenceRepo")
	return &preferenceRepo{db: db, log: repoLog}
}

// Get fetches the preference row for a (user, symbol) pair. Absence is not
// an error: callers treat nil as "no status, no comments".
func (pr *preferenceRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID, symbol string) (*types.UserStockPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.UserStockPreference
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Upsert inserts or updates the single row for (user_id, symbol). Only the
// named columns are overwritten on conflict, which is what gives partial
// updates their merge semantics. The merged row is read back and returned.
func (pr *preferenceRepo) Upsert(ctx context.Context, tx *gorm.DB, pref *types.UserStockPreference, columns []string) (*types.UserStockPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if pref.ID == uuid.Nil {
		pref.ID = uuid.New()
	}
	assignments := append([]string{}, columns...)
	assignments = append(assignments, "updated_at")

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
			DoUpdates: clause.AssignmentColumns(assignments),
		}).
		Create(pref).Error; err != nil {
		return nil, err
	}

	return pr.Get(ctx, transaction, pref.UserID, pref.Symbol)
}

func (pr *preferenceRepo) CountByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, statuses []string) ([]StatusCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []StatusCount
	if err := transaction.WithContext(ctx).
		Model(&types.UserStockPreference{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ? AND status IN ?", userID, statuses).
		Group("status").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *preferenceRepo) SymbolsByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var symbols []string
	if err := transaction.WithContext(ctx).
		Model(&types.UserStockPreference{}).
		Where("user_id = ? AND status = ?", userID, status).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
