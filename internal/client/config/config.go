package config

import (
	"time"

	"github.com/dmitrijs2005/billio/internal/client/idle"
)

// Config holds runtime settings for the Billio CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST API, including the /api prefix.
//   - DataDir: directory holding the local session database.
//   - RequestTimeout: per-request deadline of the API client.
//   - WarningTime, LogoutTime, CheckInterval: inactivity monitor settings.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
	WarningTime    time.Duration
	LogoutTime     time.Duration
	CheckInterval  time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.DataDir = ".billio"
	c.RequestTimeout = 15 * time.Second
	c.WarningTime = idle.DefaultWarningTime
	c.LogoutTime = idle.DefaultLogoutTime
	c.CheckInterval = idle.DefaultCheckInterval
	c.LogLevel = "info"
}

// Idle returns the inactivity monitor part of the configuration.
func (c *Config) Idle() idle.Config {
	return idle.Config{
		WarningTime:   c.WarningTime,
		LogoutTime:    c.LogoutTime,
		CheckInterval: c.CheckInterval,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
