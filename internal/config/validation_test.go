package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "transcribe-relay/internal/app/errors"
)

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("8000", "server"))
	assert.NoError(t, ValidatePort("65535", "server"))
	assert.Error(t, ValidatePort("", "server"))
	assert.Error(t, ValidatePort("0", "server"))
	assert.Error(t, ValidatePort("70000", "server"))
	assert.Error(t, ValidatePort("http", "server"))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://api.assemblyai.com", "base"))
	assert.NoError(t, ValidateURL("http://localhost:9000", "base"))
	assert.EqualError(t, ValidateURL("", "base"), "base URL is required")
	assert.Error(t, ValidateURL("ftp://example.com", "base"))
}

func TestValidateTimeout(t *testing.T) {
	assert.NoError(t, ValidateTimeout(3*time.Second, "poll"))
	assert.Error(t, ValidateTimeout(0, "poll"))
	assert.Error(t, ValidateTimeout(time.Hour, "poll"))
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		keyType string
		wantErr bool
	}{
		{"empty", "", "OpenAI", true},
		{"openai ok", "sk-1234567890abcdef1234", "OpenAI", false},
		{"openai prefix", "pk-1234567890abcdef1234", "OpenAI", true},
		{"assemblyai ok", "0123456789abcdef0123456789abcdef", "AssemblyAI", false},
		{"assemblyai short", "0123", "AssemblyAI", true},
		{"elevenlabs short", "sk_123", "ElevenLabs", true},
		{"unknown type accepts anything", "x", "Other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.key, tt.keyType)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.key != "" {
					assert.ErrorIs(t, err, apperrors.ErrInvalidAPIKey)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
