package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is the environment variable prefix, e.g. BABYSTEPS_API_BASE_URL.
const Prefix = "BABYSTEPS"

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds babyctl settings. Flags override these after loading.
type Config struct {
	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:3001"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Empty means DefaultSessionFile().
	SessionFile string `envconfig:"SESSION_FILE" default:""`

	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`
	Debug       bool        `envconfig:"DEBUG" default:"false"`
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
}

// Validate checks the settings and fills derived defaults.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q: want http(s)://host[:port]", c.APIBaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}
	if c.SessionFile == "" {
		p, err := DefaultSessionFile()
		if err != nil {
			return err
		}
		c.SessionFile = p
	}
	return nil
}

// New creates a validated Config from BABYSTEPS_* environment variables.
func New() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the environment without validating, so callers can apply
// overrides (e.g. command-line flags) before calling Validate.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting(baseURL, sessionFile string) *Config {
	return &Config{
		APIBaseURL:  baseURL,
		HTTPTimeout: 5 * time.Second,
		SessionFile: sessionFile,
		LogLevel:    "warn",
		Environment: EnvTesting,
	}
}

// DefaultSessionFile returns $XDG_CONFIG_HOME/baby-steps/session.json, or
// the platform equivalent.
func DefaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "baby-steps", "session.json"), nil
}
