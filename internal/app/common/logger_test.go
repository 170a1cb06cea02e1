package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		level       string
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"production default", false, "", zapcore.InfoLevel, zapcore.DebugLevel},
		{"development debug", true, "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn level", false, "WARN", zapcore.WarnLevel, zapcore.InfoLevel},
		{"unknown level keeps default", false, "loud", zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.development, tt.level)
			require.NoError(t, err)
			defer logger.Sync() //nolint:errcheck

			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.disabled))
		})
	}
}
