package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL   = "BILLIO_API_URL"
	EnvDataDir  = "BILLIO_DATA_DIR"
	EnvLogLevel = "BILLIO_LOG_LEVEL"
)

// envFile is loaded into the process environment before variables are read.
// Variables that are already set win over the file.
var envFile = ".env"

// parseEnv overlays Config with values from the environment, after loading
// envFile if it exists. A malformed .env file panics like the other loaders.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg.APIBaseURL = getenv(EnvAPIURL, cfg.APIBaseURL)
	cfg.DataDir = getenv(EnvDataDir, cfg.DataDir)
	cfg.LogLevel = getenv(EnvLogLevel, cfg.LogLevel)
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}
