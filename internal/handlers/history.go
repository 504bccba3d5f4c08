package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valuesearchapp/backend/internal/services"
)

type HistoryHandler struct {
	historyService services.HistoryService
}

func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetHistory returns both time series for a symbol. A symbol with no
// snapshots still answers 200 with two empty arrays.
func (hh *HistoryHandler) GetHistory(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	response, err := hh.historyService.GetHistory(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, response)
}
