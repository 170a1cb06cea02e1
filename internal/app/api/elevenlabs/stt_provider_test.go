package elevenlabs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcribe-relay/internal/app/api/provider"
	apperrors "transcribe-relay/internal/app/errors"
)

const testAPIKey = "el_0123456789abcdef0123456789abcdef"

func newTestProvider(serverURL string) *STTProvider {
	return NewSTTProvider(provider.Config{APIKey: testAPIKey, BaseURL: serverURL, Language: "en"})
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speech.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WAVE"), 0o644))
	return path
}

func TestNewSTTProviderDefaults(t *testing.T) {
	p := NewSTTProvider(provider.Config{})

	assert.Equal(t, DefaultBaseURL, p.baseURL)
	assert.Equal(t, DefaultModel, p.model)
	assert.True(t, p.SupportsURL())
}

func TestTranscribeLocalFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/speech-to-text", r.URL.Path)
		assert.Equal(t, testAPIKey, r.Header.Get("xi-api-key"))
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, DefaultModel, r.FormValue("model_id"))
		assert.Equal(t, "en", r.FormValue("language_code"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "speech.wav", header.Filename)
		assert.Equal(t, "RIFF....WAVE", string(data))

		_, _ = io.WriteString(w, `{"text":"hi there","language_code":"eng","words":[{"text":"hi","start":0.1,"end":0.4,"type":"word"},{"text":"there","start":0.5,"end":1.5,"type":"word"}]}`)
	}))
	defer server.Close()

	result, err := newTestProvider(server.URL).Transcribe(context.Background(), writeAudio(t))

	require.NoError(t, err)
	assert.Equal(t, provider.StatusCompleted, result.Status)
	assert.Equal(t, "hi there", result.Text)
	assert.Equal(t, "eng", result.Language)
	assert.Equal(t, "1.5s", result.AudioDuration.String())
}

func TestTranscribeRemoteSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "https://bucket.example.com/a.mp3", r.FormValue("cloud_storage_url"))
		_, _, err := r.FormFile("file")
		assert.Error(t, err)
		_, _ = io.WriteString(w, `{"text":"remote"}`)
	}))
	defer server.Close()

	result, err := newTestProvider(server.URL).Transcribe(context.Background(), "https://bucket.example.com/a.mp3")

	require.NoError(t, err)
	assert.Equal(t, "remote", result.Text)
}

func TestTranscribeRejected(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"structured detail", http.StatusBadRequest, `{"detail":{"status":"invalid_file","message":"Unsupported audio format"}}`, "Unsupported audio format"},
		{"string detail", http.StatusUnprocessableEntity, `{"detail":"file is required"}`, "file is required"},
		{"plain body", http.StatusRequestEntityTooLarge, `too big`, "too big"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			result, err := newTestProvider(server.URL).Transcribe(context.Background(), writeAudio(t))

			require.NoError(t, err)
			assert.Equal(t, provider.StatusError, result.Status)
			assert.Equal(t, tt.message, result.Error)
		})
	}
}

func TestTranscribeHTTPErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      string
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, "authentication_failed", false},
		{"rate limited", http.StatusTooManyRequests, "rate_limit_exceeded", true},
		{"server error", http.StatusServiceUnavailable, "server_error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestProvider(server.URL).Transcribe(context.Background(), writeAudio(t))

			var terr *provider.TranscriptionError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.code, terr.Code)
			assert.Equal(t, tt.retryable, terr.Retryable)
		})
	}
}

func TestTranscribeMissingAPIKeyAndFile(t *testing.T) {
	_, err := NewSTTProvider(provider.Config{}).Transcribe(context.Background(), "x.wav")
	assert.True(t, errors.Is(err, apperrors.ErrMissingAPIKey))

	_, err = newTestProvider("http://127.0.0.1:1").Transcribe(context.Background(), filepath.Join(t.TempDir(), "nope.wav"))
	assert.True(t, errors.Is(err, apperrors.ErrFileNotFound))
}
