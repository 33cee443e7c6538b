package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/vinser/pathbot/internal/pathbot"
	"github.com/vinser/pathbot/internal/sim"
)

// Config holds all configuration for the client
type Config struct {
	API     APIConfig
	Sim     SimConfig
	LogFile string // empty disables logging
}

// APIConfig holds Pathbot API configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	// NoCache turns off entering known rooms without a request.
	NoCache bool
}

// SimConfig holds the in-process simulator configuration
type SimConfig struct {
	Enabled bool
	Seed    int64
	Width   int
	Height  int
}

const defaultTimeoutSeconds = 10

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnvOrDefault("PATHBOT_BASE_URL", pathbot.DefaultBaseURL),
			Timeout: time.Duration(getEnvAsIntOrDefault("PATHBOT_TIMEOUT", defaultTimeoutSeconds)) * time.Second,
			NoCache: getEnvAsBoolOrDefault("PATHBOT_NO_CACHE", false),
		},
		Sim: SimConfig{
			Enabled: getEnvAsBoolOrDefault("PATHBOT_SIM", false),
			Seed:    int64(getEnvAsIntOrDefault("PATHBOT_SIM_SEED", 0)),
			Width:   getEnvAsIntOrDefault("PATHBOT_SIM_WIDTH", sim.DefaultWidth),
			Height:  getEnvAsIntOrDefault("PATHBOT_SIM_HEIGHT", sim.DefaultHeight),
		},
		LogFile: os.Getenv("PATHBOT_LOG_FILE"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that may also come from command-line flags.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Sim.Width <= 0 || c.Sim.Height <= 0 {
		return fmt.Errorf("simulator maze size must be positive, got %dx%d", c.Sim.Width, c.Sim.Height)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
