package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"transcribe-relay/internal/app/api/provider"
	apperrors "transcribe-relay/internal/app/errors"
)

const (
	// ProviderName is the registry name of this provider.
	ProviderName = "assemblyai"

	DefaultBaseURL      = "https://api.assemblyai.com"
	DefaultPollInterval = 3 * time.Second

	maxErrorBody = 1 << 20
)

// Provider transcribes media with the AssemblyAI v2 REST API: upload the
// file, submit a transcript, then poll until it is completed or errored.
type Provider struct {
	apiKey       string
	baseURL      string
	model        string
	language     string
	pollInterval time.Duration
	client       *http.Client
}

// transcript mirrors the subset of the AssemblyAI transcript object we use.
type transcript struct {
	ID            string   `json:"id"`
	Status        string   `json:"status"`
	Text          *string  `json:"text"`
	Error         *string  `json:"error"`
	LanguageCode  *string  `json:"language_code"`
	AudioDuration *float64 `json:"audio_duration"`
}

type transcriptRequest struct {
	AudioURL     string `json:"audio_url"`
	LanguageCode string `json:"language_code,omitempty"`
	SpeechModel  string `json:"speech_model,omitempty"`
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates an AssemblyAI provider. An empty API key is accepted so the
// service can start unconfigured; Transcribe then fails.
func New(cfg provider.Config) *Provider {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	return &Provider{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		model:        cfg.Model,
		language:     cfg.Language,
		pollInterval: poll,
		client:       cfg.Client(),
	}
}

// Name implements provider.Transcriber.
func (p *Provider) Name() string { return ProviderName }

// SupportsURL implements provider.Transcriber. AssemblyAI fetches public URLs itself.
func (p *Provider) SupportsURL() bool { return true }

// Transcribe implements provider.Transcriber.
func (p *Provider) Transcribe(ctx context.Context, source string) (*provider.TranscriptResult, error) {
	if p.apiKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingAPIKey, ProviderName)
	}

	audioURL := source
	if !provider.IsRemoteSource(source) {
		uploaded, rejected, err := p.upload(ctx, source)
		if err != nil {
			return nil, err
		}
		if rejected != nil {
			return rejected, nil
		}
		audioURL = uploaded
	}

	submitted, rejected, err := p.submit(ctx, audioURL)
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return rejected, nil
	}

	final, err := p.wait(ctx, submitted)
	if err != nil {
		return nil, err
	}

	return toResult(final), nil
}

// upload streams a local file to /v2/upload and returns the private upload URL.
func (p *Provider) upload(ctx context.Context, path string) (string, *provider.TranscriptResult, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &provider.TranscriptionError{
				Code:     "file_not_found",
				Message:  fmt.Sprintf("input file not found: %s", path),
				Provider: ProviderName,
				Err:      apperrors.ErrFileNotFound,
			}
		}
		return "", nil, &provider.TranscriptionError{
			Code:     "file_open_error",
			Message:  "failed to open audio file",
			Provider: ProviderName,
			Err:      err,
		}
	}
	defer file.Close()

	req, err := p.newRequest(ctx, http.MethodPost, "/v2/upload", file)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	var out uploadResponse
	rejected, err := p.do(req, &out)
	if err != nil || rejected != nil {
		return "", rejected, err
	}
	if out.UploadURL == "" {
		return "", nil, &provider.TranscriptionError{
			Code:     "response_parse_error",
			Message:  "upload response has no upload_url",
			Provider: ProviderName,
			Err:      apperrors.ErrResponseInvalid,
		}
	}
	return out.UploadURL, nil, nil
}

func (p *Provider) submit(ctx context.Context, audioURL string) (*transcript, *provider.TranscriptResult, error) {
	body, err := json.Marshal(transcriptRequest{
		AudioURL:     audioURL,
		LanguageCode: p.language,
		SpeechModel:  p.model,
	})
	if err != nil {
		return nil, nil, err
	}

	req, err := p.newRequest(ctx, http.MethodPost, "/v2/transcript", bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out transcript
	rejected, err := p.do(req, &out)
	if err != nil || rejected != nil {
		return nil, rejected, err
	}
	return &out, nil, nil
}

// wait polls the transcript until it reaches a terminal status or ctx ends.
func (p *Provider) wait(ctx context.Context, t *transcript) (*transcript, error) {
	if provider.TranscriptStatus(t.Status).IsTerminal() {
		return t, nil
	}
	if t.ID == "" {
		return nil, &provider.TranscriptionError{
			Code:     "response_parse_error",
			Message:  "transcript response has no id",
			Provider: ProviderName,
			Err:      apperrors.ErrResponseInvalid,
		}
	}

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		req, err := p.newRequest(ctx, http.MethodGet, "/v2/transcript/"+t.ID, nil)
		if err != nil {
			return nil, err
		}

		var current transcript
		rejected, err := p.do(req, &current)
		if err != nil {
			return nil, err
		}
		if rejected != nil {
			return &transcript{ID: t.ID, Status: string(provider.StatusError), Error: &rejected.Error}, nil
		}
		if provider.TranscriptStatus(current.Status).IsTerminal() {
			return &current, nil
		}
	}
}

func (p *Provider) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "request_creation_error",
			Message:  "failed to create HTTP request",
			Provider: ProviderName,
			Err:      err,
		}
	}
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("User-Agent", "transcribe-relay/1.0")
	return req, nil
}

// do executes req and decodes a 2xx JSON body into out. Input rejections
// come back as a result, other failures as *provider.TranscriptionError.
func (p *Provider) do(req *http.Request, out interface{}) (*provider.TranscriptResult, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &provider.TranscriptionError{
			Code:      "network_error",
			Message:   fmt.Sprintf("failed to call AssemblyAI API (%s %s)", req.Method, req.URL.Path),
			Provider:  ProviderName,
			Retryable: true,
			Err:       errors.Join(apperrors.ErrRequestFailed, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return p.handleHTTPError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "response_parse_error",
			Message:  "failed to parse API response",
			Provider: ProviderName,
			Err:      errors.Join(apperrors.ErrResponseInvalid, err),
		}
	}
	return nil, nil
}

func (p *Provider) handleHTTPError(resp *http.Response) (*provider.TranscriptResult, error) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := strings.TrimSpace(string(body))
	var decoded errorResponse
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Error != "" {
		message = decoded.Error
	}

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
		transcriptionErr.Message = "AssemblyAI API key is invalid or missing"
		transcriptionErr.Retryable = false
	case resp.StatusCode == http.StatusTooManyRequests:
		transcriptionErr.Code = "rate_limit_exceeded"
		transcriptionErr.Message = "AssemblyAI API rate limit exceeded"
	case resp.StatusCode >= 500:
		transcriptionErr.Code = "server_error"
		transcriptionErr.Message = fmt.Sprintf("AssemblyAI server error (%d)", resp.StatusCode)
	}
	return nil, transcriptionErr
}

func toResult(t *transcript) *provider.TranscriptResult {
	result := &provider.TranscriptResult{
		ID:     t.ID,
		Status: provider.TranscriptStatus(t.Status),
	}
	if t.Text != nil {
		result.Text = *t.Text
	}
	if t.Error != nil {
		result.Error = *t.Error
	}
	if t.LanguageCode != nil {
		result.Language = *t.LanguageCode
	}
	if t.AudioDuration != nil {
		result.AudioDuration = time.Duration(*t.AudioDuration * float64(time.Second))
	}
	return result
}
