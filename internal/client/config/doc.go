// Package config loads runtime configuration for the Billio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, after loading an optional .env file (see parseEnv):
//     BILLIO_API_URL, BILLIO_DATA_DIR, BILLIO_LOG_LEVEL.
//  3. Optional JSON file selected via -c/-config or $BILLIO_CONFIG.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   data directory
//	-t int      request timeout (seconds)
//	-w int      idle warning time (minutes)
//	-l int      idle logout time (minutes)
//	-i int      idle check interval (seconds)
//	-v string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds. Every key is optional:
//
//	{
//	  "api_base_url": "https://billing.example.com/api",
//	  "data_dir": "/var/lib/billio",
//	  "request_timeout": "15s",
//	  "warning_time": "5m",
//	  "logout_time": "30m",
//	  "check_interval": "30s",
//	  "log_level": "debug"
//	}
//
// Any loader panics on malformed input.
package config
