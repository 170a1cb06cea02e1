package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"transcribe-relay/internal/api/v1/dto"
)

// RootMessage is returned by GET / whether or not a provider is configured.
const RootMessage = "Transcription service is running. POST a file to /transcribe to begin."

// HealthHandler serves liveness endpoints
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Root handles GET /
//
// @Summary Service status message
// @Tags health
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Message: RootMessage})
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Unix(),
	})
}
