package whisper

import (
	openaiclient "transcribe-relay/internal/app/api/openai"
	"transcribe-relay/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(ProviderName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI transcription provider from configuration
func createOpenAIProvider(cfg provider.Config) (provider.Transcriber, error) {
	client := openaiclient.NewClient(cfg.APIKey, cfg.BaseURL, cfg.HTTPClient)
	return NewRemoteTranscriber(client, cfg.APIKey, cfg.Model, cfg.Language), nil
}
