package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"transcribe-relay/internal/app/api/provider"
	apperrors "transcribe-relay/internal/app/errors"
)

const (
	// ProviderName is the registry name of this provider.
	ProviderName = "elevenlabs"

	DefaultBaseURL = "https://api.elevenlabs.io"
	DefaultModel   = "scribe_v1"
)

// STTProvider transcribes media with the ElevenLabs speech-to-text API.
type STTProvider struct {
	apiKey   string
	baseURL  string
	model    string
	language string
	client   *http.Client
}

// Response represents the response from ElevenLabs STT API
type Response struct {
	Text                string  `json:"text"`
	LanguageCode        string  `json:"language_code,omitempty"`
	LanguageProbability float64 `json:"language_probability,omitempty"`
	Words               []Word  `json:"words,omitempty"`
}

// Word represents word-level timing information from ElevenLabs
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// NewSTTProvider creates a new ElevenLabs STT provider
func NewSTTProvider(cfg provider.Config) *STTProvider {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &STTProvider{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		model:    model,
		language: cfg.Language,
		client:   cfg.Client(),
	}
}

// Name implements provider.Transcriber.
func (el *STTProvider) Name() string { return ProviderName }

// SupportsURL implements provider.Transcriber via cloud_storage_url.
func (el *STTProvider) SupportsURL() bool { return true }

// Transcribe implements provider.Transcriber.
func (el *STTProvider) Transcribe(ctx context.Context, source string) (*provider.TranscriptResult, error) {
	if el.apiKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingAPIKey, ProviderName)
	}

	httpReq, err := el.createHTTPRequest(ctx, source)
	if err != nil {
		return nil, err
	}

	resp, err := el.client.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &provider.TranscriptionError{
			Code:      "network_error",
			Message:   "failed to call ElevenLabs API",
			Provider:  ProviderName,
			Retryable: true,
			Err:       errors.Join(apperrors.ErrRequestFailed, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return el.handleHTTPError(resp)
	}

	var elevenLabsResp Response
	if err := json.NewDecoder(resp.Body).Decode(&elevenLabsResp); err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "response_parse_error",
			Message:  "failed to parse API response",
			Provider: ProviderName,
			Err:      errors.Join(apperrors.ErrResponseInvalid, err),
		}
	}

	result := provider.Completed(elevenLabsResp.Text)
	result.Language = elevenLabsResp.LanguageCode
	if n := len(elevenLabsResp.Words); n > 0 {
		result.AudioDuration = time.Duration(elevenLabsResp.Words[n-1].End * float64(time.Second))
	}
	return result, nil
}

// createHTTPRequest builds the multipart request. Local files are sent as
// "file", remote sources as "cloud_storage_url".
func (el *STTProvider) createHTTPRequest(ctx context.Context, source string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if provider.IsRemoteSource(source) {
		if err := writer.WriteField("cloud_storage_url", source); err != nil {
			return nil, el.formError(err)
		}
	} else {
		if err := el.writeFile(writer, source); err != nil {
			return nil, err
		}
	}

	if err := writer.WriteField("model_id", el.model); err != nil {
		return nil, el.formError(err)
	}
	if el.language != "" {
		if err := writer.WriteField("language_code", el.language); err != nil {
			return nil, el.formError(err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, el.formError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, el.baseURL+"/v1/speech-to-text", &body)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "request_creation_error",
			Message:  "failed to create HTTP request",
			Provider: ProviderName,
			Err:      err,
		}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", el.apiKey)
	req.Header.Set("User-Agent", "transcribe-relay/1.0")

	return req, nil
}

func (el *STTProvider) writeFile(writer *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &provider.TranscriptionError{
				Code:     "file_not_found",
				Message:  fmt.Sprintf("input file not found: %s", path),
				Provider: ProviderName,
				Err:      apperrors.ErrFileNotFound,
			}
		}
		return &provider.TranscriptionError{
			Code:     "file_open_error",
			Message:  "failed to open audio file",
			Provider: ProviderName,
			Err:      err,
		}
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return el.formError(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return &provider.TranscriptionError{
			Code:     "file_copy_error",
			Message:  "failed to copy file data",
			Provider: ProviderName,
			Err:      errors.Join(apperrors.ErrFileReadFailed, err),
		}
	}
	return nil
}

func (el *STTProvider) formError(err error) error {
	return &provider.TranscriptionError{
		Code:     "form_write_error",
		Message:  "failed to build multipart form",
		Provider: ProviderName,
		Err:      err,
	}
}

// handleHTTPError converts HTTP error responses. Input rejections become a
// rejected result.
func (el *STTProvider) handleHTTPError(resp *http.Response) (*provider.TranscriptResult, error) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	message := detailMessage(body)

	if provider.IsRejectionStatus(resp.StatusCode) {
		return provider.Rejected(message), nil
	}

	transcriptionErr := &provider.TranscriptionError{
		Code:       "unknown_error",
		Message:    fmt.Sprintf("unexpected HTTP status %d: %s", resp.StatusCode, message),
		Provider:   ProviderName,
		StatusCode: resp.StatusCode,
		Retryable:  true,
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		transcriptionErr.Code = "authentication_failed"
		transcriptionErr.Message = "ElevenLabs API key is invalid or missing"
		transcriptionErr.Retryable = false
	case resp.StatusCode == http.StatusTooManyRequests:
		transcriptionErr.Code = "rate_limit_exceeded"
		transcriptionErr.Message = "ElevenLabs API rate limit exceeded"
	case resp.StatusCode >= 500:
		transcriptionErr.Code = "server_error"
		transcriptionErr.Message = fmt.Sprintf("ElevenLabs server error (%d)", resp.StatusCode)
	}
	return nil, transcriptionErr
}

// detailMessage extracts a readable message from an error body. The API
// sends "detail" either as a string or as {"status", "message"}.
func detailMessage(body []byte) string {
	var decoded errorResponse
	if err := json.Unmarshal(body, &decoded); err == nil && len(decoded.Detail) > 0 {
		var text string
		if err := json.Unmarshal(decoded.Detail, &text); err == nil {
			return text
		}
		var structured struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(decoded.Detail, &structured); err == nil && structured.Message != "" {
			return structured.Message
		}
	}
	return strings.TrimSpace(string(body))
}
