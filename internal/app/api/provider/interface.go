package provider

import (
	"context"
	"net/http"
	"time"
)

// Transcriber is an external speech-to-text service.
//
// Transcribe blocks until the service has produced a final result. A result
// whose Status is StatusError means the service looked at the input and
// rejected it; any returned error means the call itself failed.
type Transcriber interface {
	// Name returns the registered provider name (e.g. "assemblyai").
	Name() string

	// Transcribe transcribes a local file path, or a public URL when
	// SupportsURL reports true.
	Transcribe(ctx context.Context, source string) (*TranscriptResult, error)

	// SupportsURL reports whether sources may be http(s) URLs.
	SupportsURL() bool
}

// Config carries the settings every provider understands. Zero values mean
// the provider's own default.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Language     string
	PollInterval time.Duration
	HTTPClient   *http.Client
}

// Client returns the configured HTTP client or http.DefaultClient.
func (c Config) Client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
