package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/billio/internal/flagx"
	"github.com/dmitrijs2005/billio/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration, so they can be strings like "30s" or integer nanoseconds.
// Fields left out of the file keep their current value.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DataDir        *string         `json:"data_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	WarningTime    *timex.Duration `json:"warning_time"`
	LogoutTime     *timex.Duration `json:"logout_time"`
	CheckInterval  *timex.Duration `json:"check_interval"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c/-config, or $BILLIO_CONFIG when neither flag is
// given (see flagx.ConfigFileFlag). With no path, nothing is loaded. Read and
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.WarningTime, jc.WarningTime)
	setDuration(&cfg.LogoutTime, jc.LogoutTime)
	setDuration(&cfg.CheckInterval, jc.CheckInterval)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
