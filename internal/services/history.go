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

const historyCacheTTL = 15 * time.Minute

// HistoryResponse bundles both time series for one symbol. Either side may be
// empty when its snapshots are missing or unresolvable; that is not an error.
type HistoryResponse struct {
	ScoreHistory  []valuescore.HistoryPoint `json:"scoreHistory"`
	RatingHistory []valuescore.HistoryPoint `json:"ratingHistory"`
}

type HistoryService interface {
	GetHistory(ctx context.Context, symbol string) (*HistoryResponse, error)
}

type historyService struct {
	log         *logger.Logger
	historyRepo repos.HistoryRepo
	cache       redis.Cache
}

func NewHistoryService(log *logger.Logger, historyRepo repos.HistoryRepo, cache redis.Cache) HistoryService {
	serviceLog := log.With("service", "HistoryService")
	return &historyService{
		log:         serviceLog,
		historyRepo: historyRepo,
		cache:       cache,
	}
}

// GetHistory assembles the score and rating series for a symbol. The two
// sides fail independently: a broken score query still returns the rating
// series with an empty scoreHistory, and vice versa.
func (hs *historyService) GetHistory(ctx context.Context, symbol string) (*HistoryResponse, error) {
	trimmed := strings.TrimSpace(symbol)
	if trimmed == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	cacheKey := "history:" + strings.ToUpper(trimmed)
	if hs.cache != nil {
		if raw, ok := hs.cache.Get(ctx, cacheKey); ok {
			var cached HistoryResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	response := &HistoryResponse{
		ScoreHistory:  []valuescore.HistoryPoint{},
		RatingHistory: []valuescore.HistoryPoint{},
	}

	scoreDocs, err := hs.historyRepo.ScoreDocs(ctx, nil, trimmed, valuescore.MaxHistoryPoints)
	if err != nil {
		hs.log.Warn("Failed to load score history", "symbol", trimmed, "error", err)
	} else {
		response.ScoreHistory = valuescore.AssembleSeries(scoreDocs, valuescore.KindScore)
	}

	ratingDocs, err := hs.historyRepo.RatingDocs(ctx, nil, trimmed, valuescore.MaxHistoryPoints)
	if err != nil {
		hs.log.Warn("Failed to load rating history", "symbol", trimmed, "error", err)
	} else {
		response.RatingHistory = valuescore.AssembleSeries(ratingDocs, valuescore.KindRating)
	}

	if hs.cache != nil {
		if raw, err := json.Marshal(response); err == nil {
			hs.cache.Set(ctx, cacheKey, raw, historyCacheTTL)
		}
	}
	return response, nil
}
