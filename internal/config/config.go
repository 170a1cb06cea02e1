package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "transcribe-relay/internal/app/errors"
)

// Defaults
const (
	DefaultConfigFile   = "relay.yaml"
	DefaultHost         = "0.0.0.0"
	DefaultPort         = "8000"
	DefaultProvider     = "assemblyai"
	DefaultPollInterval = 3 * time.Second
	DefaultIdleTimeout  = 120 * time.Second
	DefaultURLExpiry    = time.Hour
	MaxUploadLimitMB    = 4096
)

// Config is the complete service configuration. Values come from defaults,
// then the optional YAML file, then environment variables.
type Config struct {
	Environment   string              `yaml:"environment"`
	LogLevel      string              `yaml:"log_level"`
	Server        ServerConfig        `yaml:"server"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Upload        UploadConfig        `yaml:"upload"`
	Staging       StagingConfig       `yaml:"staging"`

	APIKeys  APIKeys `yaml:"-"`
	EnvFile  string  `yaml:"-"`
	FilePath string  `yaml:"-"`
}

// ServerConfig holds HTTP listener settings. Zero timeouts mean no limit.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// TranscriptionConfig selects and tunes the speech-to-text provider.
type TranscriptionConfig struct {
	Provider     string        `yaml:"provider"`
	BaseURL      string        `yaml:"base_url"`
	Model        string        `yaml:"model"`
	Language     string        `yaml:"language"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// UploadConfig controls where uploads are written and how large they may be.
type UploadConfig struct {
	TempDir   string `yaml:"temp_dir"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// StagingConfig selects how a staged upload is handed to the provider.
type StagingConfig struct {
	Backend string      `yaml:"backend"`
	MinIO   MinIOConfig `yaml:"minio"`
}

// MinIOConfig holds object storage settings for the minio staging backend.
type MinIOConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	Bucket    string        `yaml:"bucket"`
	UseSSL    bool          `yaml:"use_ssl"`
	Region    string        `yaml:"region"`
	URLExpiry time.Duration `yaml:"url_expiry"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Host:        DefaultHost,
			Port:        DefaultPort,
			IdleTimeout: DefaultIdleTimeout,
		},
		Transcription: TranscriptionConfig{
			Provider:     DefaultProvider,
			PollInterval: DefaultPollInterval,
		},
		Upload: UploadConfig{
			TempDir: os.TempDir(),
		},
		Staging: StagingConfig{
			Backend: "local",
			MinIO: MinIOConfig{
				Endpoint:  "localhost:9000",
				Bucket:    "relay-uploads",
				URLExpiry: DefaultURLExpiry,
			},
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// CONFIG_FILE and then ./relay.yaml are tried.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	cfg.APIKeys = *GetAPIKeys()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.FilePath = path
	return nil
}

func (c *Config) applyEnv() {
	envString("APP_ENV", &c.Environment)
	envString("LOG_LEVEL", &c.LogLevel)

	envString("SERVER_HOST", &c.Server.Host)
	envString("SERVER_PORT", &c.Server.Port)
	envDuration("SERVER_READ_TIMEOUT", &c.Server.ReadTimeout)
	envDuration("SERVER_WRITE_TIMEOUT", &c.Server.WriteTimeout)
	envDuration("SERVER_IDLE_TIMEOUT", &c.Server.IdleTimeout)

	envString("TRANSCRIBE_PROVIDER", &c.Transcription.Provider)
	envString("TRANSCRIBE_BASE_URL", &c.Transcription.BaseURL)
	envString("TRANSCRIBE_MODEL", &c.Transcription.Model)
	envString("TRANSCRIBE_LANGUAGE", &c.Transcription.Language)
	envDuration("TRANSCRIBE_POLL_INTERVAL", &c.Transcription.PollInterval)

	envString("TEMP_DIR", &c.Upload.TempDir)
	envInt("MAX_UPLOAD_MB", &c.Upload.MaxSizeMB)

	envString("STAGING_BACKEND", &c.Staging.Backend)
	envString("MINIO_ENDPOINT", &c.Staging.MinIO.Endpoint)
	envString("MINIO_ACCESS_KEY", &c.Staging.MinIO.AccessKey)
	envString("MINIO_SECRET_KEY", &c.Staging.MinIO.SecretKey)
	envString("MINIO_BUCKET", &c.Staging.MinIO.Bucket)
	envBool("MINIO_USE_SSL", &c.Staging.MinIO.UseSSL)
	envString("MINIO_REGION", &c.Staging.MinIO.Region)
	envDuration("MINIO_URL_EXPIRY", &c.Staging.MinIO.URLExpiry)

	c.Transcription.Provider = strings.ToLower(strings.TrimSpace(c.Transcription.Provider))
	c.Staging.Backend = strings.ToLower(strings.TrimSpace(c.Staging.Backend))
}

// Validate checks the configuration for values the server cannot run with.
// A missing API key is deliberately not an error here.
func (c *Config) Validate() error {
	if err := ValidatePort(c.Server.Port, "server"); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}
	if c.Transcription.Provider == "" {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, apperrors.RequiredField("transcription.provider").Error())
	}
	if c.Transcription.BaseURL != "" {
		if err := ValidateURL(c.Transcription.BaseURL, "transcription base"); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
		}
	}
	if err := ValidateTimeout(c.Transcription.PollInterval, "poll interval"); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}
	if c.Upload.MaxSizeMB < 0 || c.Upload.MaxSizeMB > MaxUploadLimitMB {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, apperrors.OutOfRange("upload.max_size_mb", 0, MaxUploadLimitMB).Error())
	}

	switch c.Staging.Backend {
	case "", "local":
		// empty selects local staging
	case "minio":
		if c.Staging.MinIO.Endpoint == "" {
			return apperrors.Wrap(apperrors.ErrInvalidConfig, apperrors.RequiredField("staging.minio.endpoint").Error())
		}
		if c.Staging.MinIO.Bucket == "" {
			return apperrors.Wrap(apperrors.ErrInvalidConfig, apperrors.RequiredField("staging.minio.bucket").Error())
		}
		if err := ValidateTimeout(c.Staging.MinIO.URLExpiry, "presigned URL"); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
		}
	default:
		return apperrors.Wrap(apperrors.ErrInvalidConfig,
			apperrors.InvalidField("staging.backend", "must be local or minio").Error())
	}

	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// APIKey returns the key of the configured provider.
func (c *Config) APIKey() string {
	return c.APIKeys.ForProvider(c.Transcription.Provider)
}

// CheckAPIKey reports a missing or malformed key for the configured provider.
// Keys of other providers are ignored. The result is advisory: the server
// still starts and GET / keeps working.
func (c *Config) CheckAPIKey() error {
	key := c.APIKey()
	if key == "" {
		return apperrors.Wrap(apperrors.ErrMissingAPIKey, c.Transcription.Provider)
	}
	return ValidateAPIKey(key, providerKeyType[c.Transcription.Provider])
}

var providerKeyType = map[string]string{
	"assemblyai": "AssemblyAI",
	"openai":     "OpenAI",
	"elevenlabs": "ElevenLabs",
}

// MaxUploadBytes returns the upload limit in bytes, 0 meaning unlimited.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}

func envString(key string, dst *string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func envInt(key string, dst *int) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			*dst = d
		}
	}
}
