package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	api := router.Group("/api")
	{
		api.GET("/fetch-emails", handler.FetchEmails)
		api.POST("/analyze-email", handler.AnalyzeEmail)
		api.GET("/status", handler.GetStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Endpoint not found"})
	})
}
