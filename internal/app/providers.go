package app

import (
	"context"
	"errors"

	"github.com/google/wire"
	"go.uber.org/zap"

	"transcribe-relay/internal/api/server"
	"transcribe-relay/internal/api/v1/services"
	"transcribe-relay/internal/app/api/provider"
	apperrors "transcribe-relay/internal/app/errors"
	"transcribe-relay/internal/app/metrics"
	"transcribe-relay/internal/app/storage/staging"
	"transcribe-relay/internal/config"

	// Providers register themselves with the provider registry.
	_ "transcribe-relay/internal/app/api/assemblyai"
	_ "transcribe-relay/internal/app/api/elevenlabs"
	_ "transcribe-relay/internal/app/api/openai/whisper"
)

// ServiceSet builds the transcription service and everything below it.
var ServiceSet = wire.NewSet(
	ProvideMetrics,
	ProvideTranscriber,
	ProvideStager,
	services.NewTranscriptionService,
)

// ServerSet builds the HTTP server on top of ServiceSet.
var ServerSet = wire.NewSet(
	ServiceSet,
	ProvideServerConfig,
	server.NewServer,
)

// ProvideMetrics creates the Prometheus collectors.
func ProvideMetrics() *metrics.Metrics {
	return metrics.New()
}

// ProvideTranscriber builds the configured provider. A missing API key only
// produces a warning so the server can still start.
func ProvideTranscriber(cfg *config.Config, logger *zap.Logger) (provider.Transcriber, error) {
	logger.Debug("Creating transcriber",
		zap.String("provider", cfg.Transcription.Provider),
		zap.Strings("registered", provider.ListRegisteredProviders()))

	apiKey := cfg.APIKey()
	if err := cfg.CheckAPIKey(); err != nil {
		if errors.Is(err, apperrors.ErrMissingAPIKey) {
			logger.Warn("No API key configured, transcription requests will fail",
				zap.String("provider", cfg.Transcription.Provider),
				zap.Strings("configured", cfg.APIKeys.Available()))
		} else {
			logger.Warn("Configured API key looks malformed",
				zap.String("provider", cfg.Transcription.Provider),
				zap.Error(err))
		}
	}

	return provider.New(cfg.Transcription.Provider, provider.Config{
		APIKey:       apiKey,
		BaseURL:      cfg.Transcription.BaseURL,
		Model:        cfg.Transcription.Model,
		Language:     cfg.Transcription.Language,
		PollInterval: cfg.Transcription.PollInterval,
	})
}

// ProvideStager selects the upload staging backend.
func ProvideStager(cfg *config.Config, transcriber provider.Transcriber, logger *zap.Logger) (staging.Stager, error) {
	return staging.New(context.Background(), cfg, transcriber, logger)
}

// ProvideServerConfig maps configuration onto the HTTP server settings.
func ProvideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		Environment:    cfg.Environment,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}
}
