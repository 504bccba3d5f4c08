package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/repos"
	"github.com/valuesearchapp/backend/internal/types"
)

type fakeHistoryRepo struct {
	scoreDocs  []map[string]any
	scoreErr   error
	ratingDocs []map[string]any
	ratingErr  error
}

func (f *fakeHistoryRepo) ScoreDocs(ctx context.Context, tx *gorm.DB, symbol string, limit int) ([]map[string]any, error) {
	return f.scoreDocs, f.scoreErr
}

func (f *fakeHistoryRepo) RatingDocs(ctx context.Context, tx *gorm.DB, symbol string, limit int) ([]map[string]any, error) {
	return f.ratingDocs, f.ratingErr
}

func TestGetHistoryEndToEnd(t *testing.T) {
	db, log := setupTestDB(t)
	svc := NewHistoryService(log, repos.NewHistoryRepo(db, log), nil)
	ctx := context.Background()

	seed := func(table any, symbol string, recordedAt time.Time, doc map[string]any) {
		raw, err := json.Marshal(doc)
		require.NoError(t, err)
		switch table.(type) {
		case *types.ScoreSnapshot:
			require.NoError(t, db.Create(&types.ScoreSnapshot{
				ID: uuid.New(), Symbol: symbol, Doc: datatypes.JSON(raw), RecordedAt: recordedAt,
			}).Error)
		case *types.RatingSnapshot:
			require.NoError(t, db.Create(&types.RatingSnapshot{
				ID: uuid.New(), Symbol: symbol, Doc: datatypes.JSON(raw), RecordedAt: recordedAt,
			}).Error)
		}
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(&types.ScoreSnapshot{}, "AAPL", base, map[string]any{"date": "2024-01-01", "score": 0.5})
	seed(&types.ScoreSnapshot{}, "AAPL", base.AddDate(0, 1, 0), map[string]any{"date": "2024-02-01", "score": 72.0})
	seed(&types.ScoreSnapshot{}, "AAPL", base.AddDate(0, 2, 0), map[string]any{"noDate": true, "score": 99.0})
	seed(&types.RatingSnapshot{}, "AAPL", base, map[string]any{"date": "2024-01-01", "aiRating": "SELL", "aiRatingScore": -1.5})

	response, err := svc.GetHistory(ctx, "aapl")
	require.NoError(t, err)

	require.Len(t, response.ScoreHistory, 2)
	assert.Equal(t, 50.0, response.ScoreHistory[0].Value)
	assert.Equal(t, 72.0, response.ScoreHistory[1].Value)

	require.Len(t, response.RatingHistory, 1)
	assert.Equal(t, -1.5, response.RatingHistory[0].Value)
	assert.Equal(t, "SELL", response.RatingHistory[0].Label)
}

func TestGetHistoryUnknownSymbol(t *testing.T) {
	db, log := setupTestDB(t)
	svc := NewHistoryService(log, repos.NewHistoryRepo(db, log), nil)

	response, err := svc.GetHistory(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.NotNil(t, response.ScoreHistory)
	assert.Empty(t, response.ScoreHistory)
	assert.NotNil(t, response.RatingHistory)
	assert.Empty(t, response.RatingHistory)
}

func TestGetHistorySidesFailIndependently(t *testing.T) {
	_, log := setupTestDB(t)
	fake := &fakeHistoryRepo{
		scoreErr: errors.New("score table unavailable"),
		ratingDocs: []map[string]any{
			{"date": "2024-01-01", "aiRatingScore": 2.0, "aiRating": "BUY"},
		},
	}
	svc := NewHistoryService(log, fake, nil)

	response, err := svc.GetHistory(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Empty(t, response.ScoreHistory)
	require.Len(t, response.RatingHistory, 1)
	assert.Equal(t, "BUY", response.RatingHistory[0].Label)
}

func TestGetHistoryBlankSymbol(t *testing.T) {
	_, log := setupTestDB(t)
	svc := NewHistoryService(log, &fakeHistoryRepo{}, nil)

	_, err := svc.GetHistory(context.Background(), "   ")
	assert.Error(t, err)
}
