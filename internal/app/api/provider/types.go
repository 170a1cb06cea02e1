package provider

import (
	"fmt"
	"strings"
	"time"
)

// TranscriptStatus is the lifecycle state reported by a transcription service.
type TranscriptStatus string

const (
	StatusQueued     TranscriptStatus = "queued"
	StatusProcessing TranscriptStatus = "processing"
	StatusCompleted  TranscriptStatus = "completed"
	StatusError      TranscriptStatus = "error"
)

// IsTerminal reports whether no further status change will happen.
func (s TranscriptStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// TranscriptResult is the outcome of a transcription request.
type TranscriptResult struct {
	ID            string           `json:"id,omitempty"`
	Status        TranscriptStatus `json:"status"`
	Text          string           `json:"text"`
	Error         string           `json:"error,omitempty"`
	Language      string           `json:"language,omitempty"`
	AudioDuration time.Duration    `json:"audio_duration,omitempty"`
}

// Completed builds a successful result.
func Completed(text string) *TranscriptResult {
	return &TranscriptResult{Status: StatusCompleted, Text: text}
}

// Rejected builds a result for input the service refused to transcribe.
func Rejected(message string) *TranscriptResult {
	return &TranscriptResult{Status: StatusError, Error: message}
}

// TranscriptionError represents a failed call to a provider, as opposed to a
// rejected input.
type TranscriptionError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Provider   string `json:"provider"`
	StatusCode int    `json:"status_code,omitempty"`
	Retryable  bool   `json:"retryable"`
	Err        error  `json:"-"`
}

func (e *TranscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// IsRemoteSource reports whether source is an http(s) URL rather than a path.
func IsRemoteSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// IsRejectionStatus reports whether an HTTP status returned by a provider
// means the input itself was refused.
func IsRejectionStatus(code int) bool {
	switch code {
	case 400, 413, 415, 422:
		return true
	default:
		return false
	}
}
