package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// envPaths are checked in order; the first existing file wins.
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	AssemblyAI string
	OpenAI     string
	ElevenLabs string
}

// LoadEnv loads environment variables from the first .env file found and
// returns its path. A missing file is not an error: variables may be set
// system-wide.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", nil
}

// GetAPIKeys reads API keys from environment variables. API_KEY is the
// historical name of the AssemblyAI key and takes precedence. Formats are
// checked later, and only for the configured provider (see Config.CheckAPIKey).
func GetAPIKeys() *APIKeys {
	assembly := strings.TrimSpace(os.Getenv("API_KEY"))
	if assembly == "" {
		assembly = strings.TrimSpace(os.Getenv("ASSEMBLYAI_API_KEY"))
	}

	apiKeys := &APIKeys{
		AssemblyAI: assembly,
		OpenAI:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		ElevenLabs: strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")),
	}

	return apiKeys
}

// Available lists the providers that have a key configured.
func (k *APIKeys) Available() []string {
	keys := map[string]string{
		"assemblyai": k.AssemblyAI,
		"openai":     k.OpenAI,
		"elevenlabs": k.ElevenLabs,
	}
	names := lo.Filter([]string{"assemblyai", "openai", "elevenlabs"}, func(name string, _ int) bool {
		return keys[name] != ""
	})
	return names
}

// ForProvider returns the key used by the named provider.
func (k *APIKeys) ForProvider(name string) string {
	switch name {
	case "assemblyai":
		return k.AssemblyAI
	case "openai":
		return k.OpenAI
	case "elevenlabs":
		return k.ElevenLabs
	default:
		return ""
	}
}

// InitializeConfig loads the .env file, then the YAML file and environment
// overrides. This is the main entry point for configuration loading.
func InitializeConfig(configPath string) (*Config, error) {
	envFile, err := LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile

	return cfg, nil
}
