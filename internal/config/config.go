// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultBaseURL is the public Webex REST API endpoint.
const DefaultBaseURL = "https://webexapis.com/v1"

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Webex credentials and endpoint
	AccessToken string        `env:"WT_ACCESS_TOKEN,required,notEmpty"`
	BaseURL     string        `env:"WEBEX_BASE_URL" envDefault:"https://webexapis.com/v1"`
	Timeout     time.Duration `env:"WEBEX_TIMEOUT" envDefault:"30s"`

	// Optional team that owns the target space
	Team string `env:"COMBOT_TEAM"`

	// Messages are only posted when Send is true; otherwise recipients are listed.
	Send bool `env:"COMBOT_SEND" envDefault:"false"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// IsDryRun returns true if messages should be listed but not sent.
func (c *Config) IsDryRun() bool {
	return !c.Send
}

// TeamName returns the configured team name with surrounding spaces removed.
func (c *Config) TeamName() string {
	return strings.TrimSpace(c.Team)
}

// Validate checks values the env tags cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid WEBEX_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid WEBEX_BASE_URL %q: must be an absolute http(s) URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return errors.New("WEBEX_TIMEOUT must be positive")
	}
	return nil
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
