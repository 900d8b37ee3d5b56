package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/croxz/croxz-go/api/handlers"
	"github.com/croxz/croxz-go/api/middleware"
	"github.com/croxz/croxz-go/internal/app"
	"github.com/croxz/croxz-go/internal/domain"
)

// SetupRouter sets up the HTTP router
func SetupRouter(
	manager *app.ClassifyManager,
	history domain.HistoryRepository,
	bridgeScript string,
	log *zap.Logger,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(bridgeScript)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		classifyHandler := handlers.NewClassifyHandler(manager, log)
		v1.POST("/classify", classifyHandler.Check)
		v1.POST("/parse", classifyHandler.Parse)

		if history != nil {
			historyHandler := handlers.NewHistoryHandler(history, log)
			v1.GET("/history", historyHandler.List)
			v1.GET("/history/stats", historyHandler.Stats)
		}
	}

	return router
}
