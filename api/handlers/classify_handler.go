package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/app"
	"github.com/croxz/croxz-go/internal/domain"
)

// ClassifyHandler handles classification HTTP requests
type ClassifyHandler struct {
	manager *app.ClassifyManager
	logger  *zap.Logger
}

// NewClassifyHandler creates a new classify handler
func NewClassifyHandler(manager *app.ClassifyManager, logger *zap.Logger) *ClassifyHandler {
	return &ClassifyHandler{
		manager: manager,
		logger:  logger,
	}
}

// CheckRequest represents a predicate-only classification request
type CheckRequest struct {
	URL         string `json:"url" binding:"required"`
	ContentType string `json:"content_type,omitempty"`
}

// Check handles POST /api/v1/classify
func (h *ClassifyHandler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.manager.Check(req.URL, req.ContentType))
}

// ParseRequest represents a full classify-and-extract request
type ParseRequest struct {
	URL         string `json:"url" binding:"required"`
	Playlist    bool   `json:"playlist,omitempty"`
	Interactive bool   `json:"interactive,omitempty"`
}

// Parse handles POST /api/v1/parse
func (h *ClassifyHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := ""
	if req.Playlist {
		name = "playlist"
	}

	result, err := h.manager.Parse(c.Request.Context(), req.URL, name, req.Interactive)
	if err != nil {
		if domain.IsParseError(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":       err.Error(),
				"parse_error": true,
			})
			return
		}
		h.logger.Error("Parse failed", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
