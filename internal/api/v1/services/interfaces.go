package services

import (
	"context"
	"io"

	"transcribe-relay/internal/api/v1/dto"
)

// TranscriptionService defines the interface for transcription operations
type TranscriptionService interface {
	// Transcribe stages file, sends it to the configured provider and
	// returns the transcript. Errors are *errors.APIError values.
	Transcribe(ctx context.Context, file io.Reader, filename string) (*dto.TranscriptionResponse, error)
}
