package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	bridgeScript string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(bridgeScript string) *HealthHandler {
	return &HealthHandler{
		bridgeScript: bridgeScript,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Bridge  struct {
		Script    string `json:"script"`
		Available bool   `json:"available"`
	} `json:"bridge"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}
	response.Bridge.Script = h.bridgeScript
	response.Bridge.Available = h.bridgeAvailable()

	c.JSON(http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.bridgeAvailable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "bridge script not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) bridgeAvailable() bool {
	if h.bridgeScript == "" {
		return false
	}
	_, err := os.Stat(h.bridgeScript)
	return err == nil
}
