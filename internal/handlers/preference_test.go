package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/valuesearchapp/backend/internal/requestdata"
	"github.com/valuesearchapp/backend/internal/services"
	"github.com/valuesearchapp/backend/internal/types"
)

type fakePreferenceService struct {
	view   *services.PreferenceView
	counts map[string]int64
	result *services.StocksByStatusResult
	err    error
}

func (f *fakePreferenceService) GetPreference(ctx context.Context, userID uuid.UUID, symbol string) (*services.PreferenceView, error) {
	return f.view, f.err
}

func (f *fakePreferenceService) UpdatePreference(ctx context.Context, userID uuid.UUID, symbol string, update services.PreferenceUpdate) (*services.PreferenceView, error) {
	return f.view, f.err
}

func (f *fakePreferenceService) Counts(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	return f.counts, f.err
}

func (f *fakePreferenceService) StocksByStatus(ctx context.Context, userID uuid.UUID, status string, full bool) (*services.StocksByStatusResult, error) {
	return f.result, f.err
}

func preferenceRouter(svc *fakePreferenceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Stand-in for the auth middleware: the handlers only need the user id.
	router.Use(func(c *gin.Context) {
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			UserID: uuid.New(),
		})
		c.Request = c.Request.WithContext(ctx)
	})
	handler := NewPreferenceHandler(svc)
	router.GET("/api/user-stock-counts", handler.StockCounts)
	return router
}

func TestStockCountsBodyIsBareObject(t *testing.T) {
	router := preferenceRouter(&fakePreferenceService{
		counts: map[string]int64{
			types.StatusAvoid: 1,
			types.StatusWatch: 0,
			types.StatusOwn:   2,
			types.StatusHold:  0,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user-stock-counts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// The per-status object is the response body itself, not wrapped.
	assert.JSONEq(t, `{"Avoid": 1, "Watch": 0, "Own": 2, "Hold": 0}`, w.Body.String())
}
