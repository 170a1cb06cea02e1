package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"

	"transcribe-relay/internal/app/api/provider"
	apperrors "transcribe-relay/internal/app/errors"
)

// ProviderName is the registry name of this provider.
const ProviderName = "openai"

// RemoteTranscriber transcribes local files with the OpenAI audio API.
type RemoteTranscriber struct {
	client   *openai.Client
	apiKey   string
	model    string
	language string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, apiKey, model, language string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{
		client:   client,
		apiKey:   apiKey,
		model:    model,
		language: language,
	}
}

// Name implements provider.Transcriber.
func (rt *RemoteTranscriber) Name() string { return ProviderName }

// SupportsURL implements provider.Transcriber. The audio API only accepts uploads.
func (rt *RemoteTranscriber) SupportsURL() bool { return false }

// Transcribe implements provider.Transcriber.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, source string) (*provider.TranscriptResult, error) {
	if rt.apiKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingAPIKey, ProviderName)
	}
	if provider.IsRemoteSource(source) {
		return nil, &provider.TranscriptionError{
			Code:     "unsupported_source",
			Message:  "OpenAI transcription requires a local file",
			Provider: ProviderName,
			Err:      apperrors.ErrUnsupportedSource,
		}
	}
	if _, err := os.Stat(source); err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "file_not_found",
			Message:  fmt.Sprintf("input file not found: %s", source),
			Provider: ProviderName,
			Err:      errors.Join(apperrors.ErrFileNotFound, err),
		}
	}

	resp, err := rt.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    rt.model,
		FilePath: source,
		Language: rt.language,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return rt.handleAPIError(err)
	}

	result := provider.Completed(resp.Text)
	result.Language = resp.Language
	return result, nil
}

// handleAPIError turns input rejections into a rejected result and
// everything else into a *provider.TranscriptionError.
func (rt *RemoteTranscriber) handleAPIError(err error) (*provider.TranscriptResult, error) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if provider.IsRejectionStatus(apiErr.HTTPStatusCode) {
			return provider.Rejected(apiErr.Message), nil
		}

		transcriptionErr := &provider.TranscriptionError{
			Code:       "api_error",
			Message:    apiErr.Message,
			Provider:   ProviderName,
			StatusCode: apiErr.HTTPStatusCode,
			Retryable:  true,
			Err:        err,
		}
		switch {
		case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403:
			transcriptionErr.Code = "authentication_failed"
			transcriptionErr.Retryable = false
		case apiErr.HTTPStatusCode == 429:
			transcriptionErr.Code = "rate_limit_exceeded"
		case apiErr.HTTPStatusCode >= 500:
			transcriptionErr.Code = "server_error"
		}
		return nil, transcriptionErr
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if provider.IsRejectionStatus(reqErr.HTTPStatusCode) {
			return provider.Rejected(reqErr.Error()), nil
		}
		return nil, &provider.TranscriptionError{
			Code:       "request_failed",
			Message:    "OpenAI request failed",
			Provider:   ProviderName,
			StatusCode: reqErr.HTTPStatusCode,
			Retryable:  reqErr.HTTPStatusCode >= 500,
			Err:        err,
		}
	}

	return nil, &provider.TranscriptionError{
		Code:      "network_error",
		Message:   "failed to call OpenAI API",
		Provider:  ProviderName,
		Retryable: true,
		Err:       errors.Join(apperrors.ErrRequestFailed, err),
	}
}
