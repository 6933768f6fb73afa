package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Explorer  ExplorerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// ExplorerConfig holds file operations configuration.
type ExplorerConfig struct {
	// MountsFile is a YAML or TOML mount table. Empty mounts one in-memory
	// drive.
	MountsFile  string `envconfig:"EXPLORER_MOUNTS"`
	RecycleRoot string `envconfig:"EXPLORER_RECYCLE_ROOT" default:"/$Recycle.Bin"`
	MRUSize     int    `envconfig:"EXPLORER_MRU_SIZE" default:"10"`
	SniffLimit  int64  `envconfig:"EXPLORER_SNIFF_LIMIT" default:"1048576"`
	RootLabel   string `envconfig:"EXPLORER_ROOT_LABEL" default:"This PC"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Explorer: ExplorerConfig{
			RecycleRoot: paths.DefaultRecycleRoot,
			MRUSize:     10,
			SniffLimit:  1 << 20,
			RootLabel:   paths.DefaultRootLabel,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if paths.IsRoot(c.Explorer.RecycleRoot) {
		return fmt.Errorf("EXPLORER_RECYCLE_ROOT must not be the root")
	}
	if c.Explorer.MRUSize < 1 {
		return fmt.Errorf("EXPLORER_MRU_SIZE must be positive, got %d", c.Explorer.MRUSize)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond < 1 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs positive RATE_LIMIT_RPS and RATE_LIMIT_BURST")
	}
	return nil
}
