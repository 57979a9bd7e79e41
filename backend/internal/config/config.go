package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all carrierview configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
	Preload PreloadConfig `yaml:"preload"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr             string        `yaml:"addr" validate:"required"`
	MaxUploadBytes   int64         `yaml:"max_upload_bytes" validate:"gt=0"`
	UploadRatePerSec float64       `yaml:"upload_rate_per_sec" validate:"gte=0"` // 0 disables throttling
	UploadBurst      int           `yaml:"upload_burst" validate:"gte=0"`
	ReadTimeout      time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout     time.Duration `yaml:"write_timeout" validate:"gte=0"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// TracingConfig configures OpenTelemetry. Spans go to stdout when enabled.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"omitempty,startswith=/"`
}

// PreloadConfig names a dataset file loaded at start and reloaded when it changes.
type PreloadConfig struct {
	Path     string        `yaml:"path"`
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             ":8080",
			MaxUploadBytes:   32 << 20,
			UploadRatePerSec: 5,
			UploadBurst:      10,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     60 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
		Tracing: TracingConfig{ServiceName: "carrierview"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		Preload: PreloadConfig{Debounce: 500 * time.Millisecond},
	}
}

// Load reads a YAML config over the defaults, applies env overrides and validates.
// An empty path means defaults plus env.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("CARRIERVIEW_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("CARRIERVIEW_LOG_LEVEL")); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CARRIERVIEW_PRELOAD")); v != "" {
		c.Preload.Path = v
	}
}
