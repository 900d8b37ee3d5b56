package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/domain"
)

// HistoryHandler handles classification-history HTTP requests
type HistoryHandler struct {
	repo   domain.HistoryRepository
	logger *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(repo domain.HistoryRepository, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	var (
		records []*domain.ClassifyRecord
		err     error
	)
	if url := c.Query("url"); url != "" {
		records, err = h.repo.FindByURL(url)
	} else {
		records, err = h.repo.FindRecent(limit)
	}
	if err != nil {
		h.logger.Error("Failed to list history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Stats handles GET /api/v1/history/stats
func (h *HistoryHandler) Stats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
