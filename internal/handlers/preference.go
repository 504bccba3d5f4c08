package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/valuesearchapp/backend/internal/requestdata"
	"github.com/valuesearchapp/backend/internal/services"
	"github.com/valuesearchapp/backend/internal/types"
)

type PreferenceHandler struct {
	preferenceService services.PreferenceService
}

func NewPreferenceHandler(preferenceService services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func (ph *PreferenceHandler) GetStockData(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	view, err := ph.preferenceService.GetPreference(c.Request.Context(), userID, symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stock data"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateStockData applies a partial update. Omitted fields keep their stored
// values; sending comments replaces the whole list.
func (ph *PreferenceHandler) UpdateStockData(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Symbol   string                     `json:"symbol"`
		Status   *string                    `json:"status"`
		Comments *[]types.PreferenceComment `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	view, err := ph.preferenceService.UpdatePreference(c.Request.Context(), userID, req.Symbol, services.PreferenceUpdate{
		Status:   req.Status,
		Comments: req.Comments,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ph *PreferenceHandler) StockCounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	counts, err := ph.preferenceService.Counts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load counts"})
		return
	}
	// The counts object is the whole response body.
	c.JSON(http.StatusOK, counts)
}

// StocksByStatus lists the caller's tagged symbols for one status. With
// full=true the response carries projected records; otherwise symbol/name
// pairs.
func (ph *PreferenceHandler) StocksByStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	status := c.Query("status")
	full := c.Query("full") == "true"

	result, err := ph.preferenceService.StocksByStatus(c.Request.Context(), userID, status, full)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if full {
		c.JSON(http.StatusOK, gin.H{"stocks": result.Records})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stocks": result.Pairs})
}
