package repos

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/types"
)

// StockNamePair is the projection used by search suggestions and the slim
// by-status listing.
type StockNamePair struct {
	Symbol string `json:"symbol,omitempty"`
	Name   string `json:"name,omitempty"`
}

type AssessmentRepo interface {
	List(ctx context.Context, tx *gorm.DB, offset, limit int, symbolFilter string) ([]map[string]any, error)
	GetBySymbol(ctx context.Context, tx *gorm.DB, symbol string) (map[string]any, error)
	GetBySymbols(ctx context.Context, tx *gorm.DB, symbols []string) ([]map[string]any, error)
	Suggest(ctx context.Context, tx *gorm.DB, query string, limit int) ([]StockNamePair, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	repoLog := baseLog.With("repo", "AssessmentRepo")
	return &assessmentRepo{db: db, log: repoLog}
}

// rawDoc decodes the stored document into the generic map the projector
// consumes. Corrupt JSON degrades to an empty document rather than failing
// the row; the row id backfills the identity field when the document lacks
// one, so every listed record keeps a stable id.
func rawDoc(row *types.StockAssessment) map[string]any {
	doc := map[string]any{}
	if len(row.Doc) > 0 {
		if err := json.Unmarshal(row.Doc, &doc); err != nil {
			doc = map[string]any{}
		}
	}
	if doc["_id"] == nil && doc["id"] == nil {
		doc["_id"] = row.ID.String()
	}
	return doc
}

func rawDocs(rows []*types.StockAssessment) []map[string]any {
	docs := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, rawDoc(row))
	}
	return docs
}

// List returns raw documents ordered for display: strongest AI rating first,
// then name and symbol. An exact case-insensitive symbol filter narrows the
// result when provided.
func (ar *assessmentRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int, symbolFilter string) ([]map[string]any, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.StockAssessment{}).
		Order("ai_rating_score DESC, name ASC, symbol ASC").
		Offset(offset).
		Limit(limit)
	if trimmed := strings.TrimSpace(symbolFilter); trimmed != "" {
		query = query.Where("UPPER(symbol) = ?", strings.ToUpper(trimmed))
	}

	var rows []*types.StockAssessment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rawDocs(rows), nil
}

// GetBySymbol fetches one raw document by exact case-insensitive symbol
// match. Returns nil when not found.
func (ar *assessmentRepo) GetBySymbol(ctx context.Context, tx *gorm.DB, symbol string) (map[string]any, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	trimmed := strings.TrimSpace(symbol)
	if trimmed == "" {
		return nil, nil
	}

	var rows []*types.StockAssessment
	if err := transaction.WithContext(ctx).
		Where("UPPER(symbol) = ?", strings.ToUpper(trimmed)).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rawDoc(rows[0]), nil
}

func (ar *assessmentRepo) GetBySymbols(ctx context.Context, tx *gorm.DB, symbols []string) ([]map[string]any, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(symbols) == 0 {
		return []map[string]any{}, nil
	}

	upper := make([]string, 0, len(symbols))
	for _, s := range symbols {
		upper = append(upper, strings.ToUpper(strings.TrimSpace(s)))
	}

	var rows []*types.StockAssessment
	if err := transaction.WithContext(ctx).
		Where("UPPER(symbol) IN ?", upper).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rawDocs(rows), nil
}

// Suggest does a contains match on symbol or name for search-as-you-type.
func (ar *assessmentRepo) Suggest(ctx context.Context, tx *gorm.DB, query string, limit int) ([]StockNamePair, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []StockNamePair{}, nil
	}
	pattern := "%" + strings.ToUpper(trimmed) + "%"

	var results []StockNamePair
	if err := transaction.WithContext(ctx).
		Model(&types.StockAssessment{}).
		Select("symbol", "name").
		Where("symbol <> ''").
		Where("UPPER(symbol) LIKE ? OR UPPER(name) LIKE ?", pattern, pattern).
		Order("symbol ASC, name ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
