package shared

import (
	"fmt"

	"go.uber.org/zap"

	"transcribe-relay/internal/app/common"
	"transcribe-relay/internal/config"
)

// Flags bound by the root command.
var (
	ConfigPath string
	Verbose    bool
)

// Bootstrap loads configuration and builds the logger every subcommand uses.
func Bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.InitializeConfig(ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	level := cfg.LogLevel
	if Verbose {
		level = "debug"
	}

	logger, err := common.NewLogger(!cfg.IsProduction(), level)
	if err != nil {
		return nil, nil, err
	}

	if cfg.EnvFile != "" {
		logger.Debug("Loaded environment file", zap.String("path", cfg.EnvFile))
	}
	if cfg.FilePath != "" {
		logger.Debug("Loaded config file", zap.String("path", cfg.FilePath))
	}
	return cfg, logger, nil
}
