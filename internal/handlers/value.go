package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/valuesearchapp/backend/internal/services"
)

type ValueHandler struct {
	valueService services.ValueService
}

func NewValueHandler(valueService services.ValueService) *ValueHandler {
	return &ValueHandler{valueService: valueService}
}

// ListValues serves the paginated assessment listing. Query params: page
// (1-based, default 1) and symbol (optional exact filter).
func (vh *ValueHandler) ListValues(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
		page = parsed
	}

	records, hasMore, err := vh.valueService.ListValues(c.Request.Context(), page, c.Query("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load values"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": records, "hasMore": hasMore, "page": page})
}

// GetBySymbol looks up one assessment. An unknown symbol is a normal empty
// result: the response is 200 with a null stock, not an error.
func (vh *ValueHandler) GetBySymbol(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	record, err := vh.valueService.GetBySymbol(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load value"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": record})
}

func (vh *ValueHandler) Suggestions(c *gin.Context) {
	results, err := vh.valueService.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load suggestions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": results})
}
