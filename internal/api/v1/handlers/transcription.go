package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transcribe-relay/internal/api/errors"
	"transcribe-relay/internal/api/middleware"
	"transcribe-relay/internal/api/v1/dto"
	"transcribe-relay/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Transcribe handles POST /transcribe
//
// @Summary Transcribe an uploaded media file
// @Description Stores the upload temporarily, sends it to the configured speech-to-text provider and returns the transcript
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio or video file"
// @Success 200 {object} dto.TranscriptionResponse "Transcript text"
// @Failure 400 {object} errors.APIError "The provider rejected the file"
// @Failure 413 {object} errors.APIError "Upload exceeds the size limit"
// @Failure 422 {object} errors.APIError "Missing file field"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcribe [post]
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	var req dto.TranscribeRequest

	if err := middleware.ValidateForm(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	file, err := req.File.Open()
	if err != nil {
		middleware.HandleError(c, errors.WrapError(err, errors.KindInternal,
			"Internal Server Error during processing: "+err.Error()))
		return
	}
	defer file.Close()

	response, err := h.service.Transcribe(c.Request.Context(), file, req.File.Filename)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
