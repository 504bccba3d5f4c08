package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valuesearchapp/backend/internal/clients/redis"
	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/repos"
	"github.com/valuesearchapp/backend/internal/valuescore"
)

// PageSize is the number of records on one listing page.
const PageSize = 25

const suggestLimit = 10

const suggestCacheTTL = 5 * time.Minute

type ValueService interface {
	ListValues(ctx context.Context, page int, symbolFilter string) ([]valuescore.Record, bool, error)
	GetBySymbol(ctx context.Context, symbol string) (*valuescore.Record, error)
	Suggest(ctx context.Context, query string) ([]repos.StockNamePair, error)
}

type valueService struct {
	log            *logger.Logger
	assessmentRepo repos.AssessmentRepo
	cache          redis.Cache
}

func NewValueService(log *logger.Logger, assessmentRepo repos.AssessmentRepo, cache redis.Cache) ValueService {
	serviceLog := log.With("service", "ValueService")
	return &valueService{
		log:            serviceLog,
		assessmentRepo: assessmentRepo,
		cache:          cache,
	}
}

// ListValues returns one page of projected records plus a has-more flag. The
// flag comes from probing one row past the page boundary, so no count query
// is needed.
func (vs *valueService) ListValues(ctx context.Context, page int, symbolFilter string) ([]valuescore.Record, bool, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	docs, err := vs.assessmentRepo.List(ctx, nil, offset, PageSize+1, symbolFilter)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list stock assessments: %w", err)
	}

	hasMore := len(docs) > PageSize
	if hasMore {
		docs = docs[:PageSize]
	}

	records := make([]valuescore.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, valuescore.ProjectRecord(doc))
	}
	return records, hasMore, nil
}

func (vs *valueService) GetBySymbol(ctx context.Context, symbol string) (*valuescore.Record, error) {
	trimmed := strings.TrimSpace(symbol)
	if trimmed == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	doc, err := vs.assessmentRepo.GetBySymbol(ctx, nil, trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock assessment: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	record := valuescore.ProjectRecord(doc)
	return &record, nil
}

// Suggest serves search-as-you-type. Results are cached briefly per query;
// the underlying table changes at most daily.
func (vs *valueService) Suggest(ctx context.Context, query string) ([]repos.StockNamePair, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []repos.StockNamePair{}, nil
	}

	cacheKey := "suggest:" + strings.ToUpper(trimmed)
	if vs.cache != nil {
		if raw, ok := vs.cache.Get(ctx, cacheKey); ok {
			var cached []repos.StockNamePair
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	results, err := vs.assessmentRepo.Suggest(ctx, nil, trimmed, suggestLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	if vs.cache != nil {
		if raw, err := json.Marshal(results); err == nil {
			vs.cache.Set(ctx, cacheKey, raw, suggestCacheTTL)
		}
	}
	return results, nil
}
