// Package config provides configuration management for the normalizer and the prediction server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"carprice/pkg/utils"
)

// Configuration validation errors.
var (
	ErrMissingInput         = errors.New("normalizer.input is required")
	ErrMissingOutput        = errors.New("normalizer.output is required")
	ErrInputIsOutput        = errors.New("normalizer.output must differ from normalizer.input")
	ErrInvalidPreviewRows   = errors.New("normalizer.preview_rows must be non-negative")
	ErrMissingAddress       = errors.New("server.address is required")
	ErrInvalidServerTimeout = errors.New("server timeouts must be at least 1 second")
	ErrInvalidBackend       = errors.New("model.backend must be 'linear' or 'remote'")
	ErrMissingArtifact      = errors.New("model.artifact is required for the linear backend")
	ErrMissingRemoteURL     = errors.New("model.remote_url must be an http(s) URL for the remote backend")
	ErrInvalidModelTimeout  = errors.New("model.timeout_sec must be at least 1")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("logging.format must be 'text' or 'json'")
)

// Model backends.
const (
	BackendLinear = "linear"
	BackendRemote = "remote"
)

// Config represents the complete application configuration.
type Config struct {
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Server     ServerConfig     `yaml:"server"`
	Model      ModelConfig      `yaml:"model"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// NormalizerConfig contains the batch normalizer settings.
type NormalizerConfig struct {
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Report      string `yaml:"report"`
	PreviewRows int    `yaml:"preview_rows"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address            string `yaml:"address"`
	ReadTimeoutSec     int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int    `yaml:"write_timeout_sec"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec"`
}

// ModelConfig selects and configures the prediction backend.
type ModelConfig struct {
	Backend    string `yaml:"backend"`
	Artifact   string `yaml:"artifact"`
	RemoteURL  string `yaml:"remote_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Normalizer: NormalizerConfig{
			Input:  "data/car_details_v4.csv",
			Output: "data/cleaned_car_details_v4.csv",
		},
		Server: ServerConfig{
			Address:            ":8000",
			ReadTimeoutSec:     10,
			WriteTimeoutSec:    10,
			ShutdownTimeoutSec: 5,
		},
		Model: ModelConfig{
			Backend:    BackendLinear,
			Artifact:   "data/model.json5",
			TimeoutSec: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ReadConfig parses a YAML file without validating it. Keys absent from the
// file keep their Default values.
func ReadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// LoadConfig loads and validates configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	cfg, err := ReadConfig(filepath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the whole configuration.
func (c *Config) Validate() error {
	if err := c.ValidateNormalizer(); err != nil {
		return err
	}

	return c.ValidateServer()
}

// ValidateNormalizer checks the sections the normalizer CLI depends on.
func (c *Config) ValidateNormalizer() error {
	n := c.Normalizer

	if n.Input == "" {
		return ErrMissingInput
	}

	if n.Output == "" {
		return ErrMissingOutput
	}

	if n.Input == n.Output {
		return ErrInputIsOutput
	}

	if n.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}

	return c.Logging.validate()
}

// ValidateServer checks the sections the prediction server depends on.
func (c *Config) ValidateServer() error {
	s := c.Server

	if s.Address == "" {
		return ErrMissingAddress
	}

	if s.ReadTimeoutSec < 1 || s.WriteTimeoutSec < 1 || s.ShutdownTimeoutSec < 1 {
		return ErrInvalidServerTimeout
	}

	switch c.Model.Backend {
	case BackendLinear:
		if c.Model.Artifact == "" {
			return ErrMissingArtifact
		}
	case BackendRemote:
		if !utils.IsValidURL(c.Model.RemoteURL) {
			return fmt.Errorf("%w: got %q", ErrMissingRemoteURL, c.Model.RemoteURL)
		}
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidBackend, c.Model.Backend)
	}

	if c.Model.TimeoutSec < 1 {
		return ErrInvalidModelTimeout
	}

	return c.Logging.validate()
}

func (l LoggingConfig) validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return ErrInvalidLogLevel
	}

	if l.Format != "text" && l.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// ReadTimeout returns the server read timeout.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the server write timeout.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// ShutdownTimeout returns how long in-flight requests get on shutdown.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

// GetTimeout returns the per-request model timeout.
func (m ModelConfig) GetTimeout() time.Duration {
	return time.Duration(m.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, Address: %s, Backend: %s}",
		c.Normalizer.Input,
		c.Normalizer.Output,
		c.Server.Address,
		c.Model.Backend,
	)
}
