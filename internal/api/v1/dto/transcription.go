package dto

import (
	"mime/multipart"
)

// TranscribeRequest is the multipart form accepted by POST /transcribe
type TranscribeRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required" swaggerignore:"true"`
}

// TranscriptionResponse is returned for a completed transcription. The
// transcript may be empty when the audio contains no speech.
type TranscriptionResponse struct {
	Transcript string `json:"transcript" example:"Hello and welcome to the show."`
}
