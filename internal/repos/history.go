package repos

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/types"
)

type HistoryRepo interface {
	ScoreDocs(ctx context.Context, tx *gorm.DB, symbol string, limit int) ([]map[string]any, error)
	RatingDocs(ctx context.Context, tx *gorm.DB, symbol string, limit int) ([]map[string]any, error)
}

type historyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryRepo {
	repoLog := baseLog.With("repo", "HistoryRepo")
	return &historyRepo{db: db, log: repoLog}
}

func snapshotDoc(raw []byte) map[string]any {
	doc := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			doc = map[string]any{}
		}
	}
	return doc
}

// ScoreDocs returns raw score snapshots for a symbol, oldest first, capped at
// limit. The documents come back as written by the recorder; date and value
// resolution happen downstream in the extractor.
func (hr *historyRepo) ScoreDocs(ctx context.Context, tx *gorm.DB, symbol string, limit int) ([]map[string]any, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var rows []*types.ScoreSnapshot
	if err := transaction.WithContext(ctx).
		Where("UPPER(symbol) = ?", strings.ToUpper(strings.TrimSpace(symbol))).
		Order("recorded_at ASC, created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, snapshotDoc(row.Doc))
	}
	return docs, nil
}

// RatingDocs returns raw AI-rating snapshots for a symbol, oldest first,
// capped at limit.
func (hr *historyRepo) RatingDocs(ctx context.Context, tx *gorm.DB, symbol string, limit int) ([]map[string]any, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var rows []*types.RatingSnapshot
	if err := transaction.WithContext(ctx).
		Where("UPPER(symbol) = ?", strings.ToUpper(strings.TrimSpace(symbol))).
		Order("recorded_at ASC, created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, snapshotDoc(row.Doc))
	}
	return docs, nil
}
