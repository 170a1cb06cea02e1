package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "transcribe-relay/internal/app/errors"
)

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return apperrors.Wrap(apperrors.ErrInvalidAPIKey, "OpenAI key must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return apperrors.Wrap(apperrors.ErrInvalidAPIKey, "OpenAI key too short")
		}
	case "AssemblyAI":
		if len(apiKey) < 32 {
			return apperrors.Wrap(apperrors.ErrInvalidAPIKey, "AssemblyAI key too short")
		}
	case "ElevenLabs":
		if len(apiKey) < 32 {
			return apperrors.Wrap(apperrors.ErrInvalidAPIKey, "ElevenLabs key too short")
		}
	}

	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%s port invalid", name)
	}

	return nil
}
