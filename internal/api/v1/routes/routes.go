package routes

import (
	"github.com/gin-gonic/gin"

	"transcribe-relay/internal/api/v1/handlers"
	"transcribe-relay/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
}

// RegisterRoutes registers the public endpoints on router
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	healthHandler := handlers.NewHealthHandler()
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)

	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	router.POST("/transcribe", transcriptionHandler.Transcribe)
}
