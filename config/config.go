// Package config loads babelpipe settings from an optional YAML file,
// environment variables and defaults, in that order of precedence:
// environment beats file, file beats defaults. CLI flags are applied on top
// by the cmd package.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gaurav-prasanna/babelpipe/core/chunk"
	"github.com/gaurav-prasanna/babelpipe/core/fetch"
	"gopkg.in/yaml.v3"
)

// Config holds all babelpipe configuration.
type Config struct {
	// Archive connection
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`

	// Search behaviour
	ChunkSize     int  `yaml:"chunk_size"`
	IncludeHidden bool `yaml:"include_hidden"` // send method=x with searches

	// Logging
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       fetch.DefaultBaseURL,
		Timeout:       fetch.DefaultTimeout.String(),
		UserAgent:     fetch.DefaultUserAgent,
		ChunkSize:     chunk.MaxChunkSize,
		IncludeHidden: true,
		LogLevel:      "info",
	}
}

// Load reads configuration from path. A missing file, or an empty path,
// yields the defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BABEL_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("BABEL_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("BABEL_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("BABEL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks values that would otherwise fail later with a less
// helpful message.
func (c *Config) Validate() error {
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.ChunkSize < 0 || c.ChunkSize > chunk.MaxChunkSize {
		return fmt.Errorf("chunk_size must be between 1 and %d (0 for default), got %d", chunk.MaxChunkSize, c.ChunkSize)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value means the fetch default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return fetch.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return d, nil
}
