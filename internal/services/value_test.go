package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/valuesearchapp/backend/internal/repos"
	"github.com/valuesearchapp/backend/internal/types"
)

func newTestValueService(t *testing.T) (ValueService, *gorm.DB) {
	t.Helper()
	db, log := setupTestDB(t)
	svc := NewValueService(log, repos.NewAssessmentRepo(db, log), nil)
	return svc, db
}

func seedValueRows(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		symbol := fmt.Sprintf("SYM%03d", i)
		doc := map[string]any{"_id": symbol, "symbol": symbol, "name": "Company " + symbol}
		raw, err := json.Marshal(doc)
		require.NoError(t, err)
		require.NoError(t, db.Create(&types.StockAssessment{
			ID:            uuid.New(),
			Symbol:        symbol,
			Name:          "Company " + symbol,
			AIRatingScore: float64(n - i),
			Doc:           datatypes.JSON(raw),
		}).Error)
	}
}

func TestListValuesPagination(t *testing.T) {
	svc, db := newTestValueService(t)
	ctx := context.Background()

	seedValueRows(t, db, PageSize+3)

	t.Run("first page is full with more remaining", func(t *testing.T) {
		records, hasMore, err := svc.ListValues(ctx, 1, "")
		require.NoError(t, err)
		assert.Len(t, records, PageSize)
		assert.True(t, hasMore)
		// Highest rating first.
		assert.Equal(t, "SYM000", records[0].Symbol)
	})

	t.Run("last page is short with nothing after", func(t *testing.T) {
		records, hasMore, err := svc.ListValues(ctx, 2, "")
		require.NoError(t, err)
		assert.Len(t, records, 3)
		assert.False(t, hasMore)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		records, hasMore, err := svc.ListValues(ctx, 5, "")
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.False(t, hasMore)
	})

	t.Run("page below one is clamped", func(t *testing.T) {
		records, _, err := svc.ListValues(ctx, 0, "")
		require.NoError(t, err)
		assert.Equal(t, "SYM000", records[0].Symbol)
	})

	t.Run("symbol filter narrows to one", func(t *testing.T) {
		records, hasMore, err := svc.ListValues(ctx, 1, "sym001")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "SYM001", records[0].Symbol)
		assert.False(t, hasMore)
	})
}

func TestGetBySymbol(t *testing.T) {
	svc, db := newTestValueService(t)
	ctx := context.Background()

	seedValueRows(t, db, 1)

	record, err := svc.GetBySymbol(ctx, "sym000")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "SYM000", record.Symbol)

	record, err = svc.GetBySymbol(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, record)

	_, err = svc.GetBySymbol(ctx, "   ")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	svc, db := newTestValueService(t)
	ctx := context.Background()

	seedValueRows(t, db, 30)

	results, err := svc.Suggest(ctx, "SYM00")
	require.NoError(t, err)
	assert.Len(t, results, 10)
	assert.Equal(t, "SYM000", results[0].Symbol)

	results, err = svc.Suggest(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}
