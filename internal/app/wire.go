//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"transcribe-relay/internal/api/server"
	"transcribe-relay/internal/api/v1/services"
	"transcribe-relay/internal/config"
)

// InitializeServer wires the HTTP server from configuration.
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	wire.Build(ServerSet)
	return nil, nil
}

// InitializeTranscriptionService wires the service used by the one-shot CLI.
func InitializeTranscriptionService(cfg *config.Config, logger *zap.Logger) (services.TranscriptionService, error) {
	wire.Build(ServiceSet)
	return nil, nil
}
